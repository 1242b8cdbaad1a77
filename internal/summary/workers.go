// Package summary renders the text tables printed after a fetch.
package summary

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/taskfleet/poolwatch/types"
)

// Worker states the service defines, in lifecycle order. States the API
// returns beyond these are appended as they appear.
var baseStates = []string{"requested", "running", "stopping", "stopped"}

type workerKey struct {
	poolID   string
	group    string
	provider string
	state    string
}

// Workers renders a two-part summary: worker and capacity counts
// grouped by (pool, group, provider, state), then totals per state.
func Workers(workers []types.Record) string {
	stateOrder := append([]string{}, baseStates...)
	stateIndex := map[string]int{}
	for i, s := range stateOrder {
		stateIndex[s] = i
	}

	workerCounts := map[workerKey]int{}
	capacityCounts := map[workerKey]int{}
	stateWorkers := map[string]int{}
	stateCapacity := map[string]int{}

	for _, w := range workers {
		key := workerKey{
			poolID:   w.String("workerPoolId"),
			group:    w.String("workerGroup"),
			provider: w.String("providerId"),
			state:    w.String("state"),
		}
		capacity := w.Int("capacity", 1)

		workerCounts[key]++
		capacityCounts[key] += capacity
		stateWorkers[key.state]++
		stateCapacity[key.state] += capacity

		if _, known := stateIndex[key.state]; !known {
			stateIndex[key.state] = len(stateOrder)
			stateOrder = append(stateOrder, key.state)
		}
	}

	keys := make([]workerKey, 0, len(workerCounts))
	for key := range workerCounts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.poolID != b.poolID {
			return a.poolID < b.poolID
		}
		if a.group != b.group {
			return a.group < b.group
		}
		if a.provider != b.provider {
			return a.provider < b.provider
		}
		return stateIndex[a.state] < stateIndex[b.state]
	})

	var buf strings.Builder
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POOL ID\tGROUP\tPROVIDER\tSTATE\tWORKERS\tCAPACITY")
	for _, key := range keys {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			key.poolID, key.group, key.provider, key.state,
			workerCounts[key], capacityCounts[key])
	}
	w.Flush()

	buf.WriteString("\n")
	w = tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATE\tWORKERS\tCAPACITY")
	for _, state := range stateOrder {
		fmt.Fprintf(w, "%s\t%d\t%d\n", state, stateWorkers[state], stateCapacity[state])
	}
	w.Flush()

	return buf.String()
}
