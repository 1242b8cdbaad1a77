package export

import (
	"fmt"

	"github.com/taskfleet/poolwatch/internal/flatten"
	"github.com/taskfleet/poolwatch/types"
)

// PoolRows turns worker-pool records into flat CSV rows, one row per
// launch config. Pool fields are flattened with underscore-joined keys;
// each entry of config.launchConfigs is flattened under an "lc" prefix
// with list elements expanded by index. Pools without launch configs
// produce no rows.
func PoolRows(pools []types.Record) ([]map[string]any, error) {
	var rows []map[string]any
	for _, pool := range pools {
		flatPool, err := flatten.Flatten(pool, "", false)
		if err != nil {
			return nil, fmt.Errorf("pool %s: %w", pool.String("workerPoolId"), err)
		}

		launchConfigs, _ := flatPool["config_launchConfigs"].([]any)
		delete(flatPool, "config_launchConfigs")

		for pos, lc := range launchConfigs {
			lcMap, ok := lc.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("pool %s: launch config %d is not an object",
					pool.String("workerPoolId"), pos)
			}
			flatLC, err := flatten.Flatten(lcMap, "lc", true)
			if err != nil {
				return nil, fmt.Errorf("pool %s: launch config %d: %w",
					pool.String("workerPoolId"), pos, err)
			}

			row := make(map[string]any, len(flatPool)+len(flatLC))
			for k, v := range flatPool {
				row[k] = v
			}
			for k, v := range flatLC {
				row[k] = v
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// WorkerRows turns worker records into CSV rows. Workers are already
// flat enough for display, so fields pass through as-is.
func WorkerRows(workers []types.Record) []map[string]any {
	rows := make([]map[string]any, len(workers))
	for i, w := range workers {
		rows[i] = map[string]any(w)
	}
	return rows
}
