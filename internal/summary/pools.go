package summary

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/taskfleet/poolwatch/types"
)

type poolRow struct {
	poolID        string
	providerID    string
	capacity      int
	minCapacity   string
	maxCapacity   string
	owner         string
	launchConfigs int
}

// Pools renders one row per distinct pool configuration tuple plus a
// total pool count.
func Pools(pools []types.Record) string {
	seen := map[poolRow]bool{}
	for _, p := range pools {
		config := p.Map("config")
		row := poolRow{
			poolID:        p.String("workerPoolId"),
			providerID:    p.String("providerId"),
			capacity:      p.Int("currentCapacity", 0),
			minCapacity:   capacityField(config, "minCapacity"),
			maxCapacity:   capacityField(config, "maxCapacity"),
			owner:         p.String("owner"),
			launchConfigs: len(config.List("launchConfigs")),
		}
		seen[row] = true
	}

	rows := make([]poolRow, 0, len(seen))
	for row := range seen {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].poolID != rows[j].poolID {
			return rows[i].poolID < rows[j].poolID
		}
		return rows[i].providerID < rows[j].providerID
	})

	var buf strings.Builder
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POOL ID\tPROVIDER\tCAPACITY\tMIN\tMAX\tOWNER\tLAUNCH CONFIGS")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%d\n",
			row.poolID, row.providerID, row.capacity,
			row.minCapacity, row.maxCapacity, row.owner, row.launchConfigs)
	}
	w.Flush()

	fmt.Fprintf(&buf, "\nWorker Pools: %d\n", len(pools))
	return buf.String()
}

// capacityField formats a numeric config field, or "" when the pool's
// provider has no such setting.
func capacityField(config types.Record, key string) string {
	if config == nil {
		return ""
	}
	if _, ok := config[key]; !ok {
		return ""
	}
	return fmt.Sprintf("%d", config.Int(key, 0))
}
