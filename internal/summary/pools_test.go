package summary

import (
	"strings"
	"testing"

	"github.com/taskfleet/poolwatch/types"
)

func TestPools_Summary(t *testing.T) {
	pools := []types.Record{
		{
			"workerPoolId":    "gecko-t/win10-64",
			"providerId":      "aws",
			"currentCapacity": float64(12),
			"owner":           "releng@example.com",
			"config": map[string]any{
				"minCapacity":   float64(0),
				"maxCapacity":   float64(50),
				"launchConfigs": []any{map[string]any{}, map[string]any{}},
			},
		},
		{
			"workerPoolId": "gecko-t/static",
			"providerId":   "static",
			"owner":        "relops@example.com",
		},
	}

	out := Pools(pools)

	if !strings.Contains(out, "gecko-t/win10-64") {
		t.Errorf("missing pool row:\n%s", out)
	}
	if !strings.Contains(out, "Worker Pools: 2") {
		t.Errorf("missing pool count footer:\n%s", out)
	}

	// Pools sort by pool ID.
	if strings.Index(out, "gecko-t/static") > strings.Index(out, "gecko-t/win10-64") {
		t.Errorf("pools out of order:\n%s", out)
	}

	// Static pool has no capacity config; min/max render blank, and the
	// aws pool shows its configured bounds.
	for _, want := range []string{"50", "relops@example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestPools_DeduplicatesIdenticalTuples(t *testing.T) {
	pool := types.Record{
		"workerPoolId": "gecko-t/linux",
		"providerId":   "gcp",
		"owner":        "releng@example.com",
	}

	out := Pools([]types.Record{pool, pool})

	if got := strings.Count(out, "gecko-t/linux"); got != 1 {
		t.Errorf("duplicate tuple should render once, got %d rows", got)
	}
	if !strings.Contains(out, "Worker Pools: 2") {
		t.Errorf("footer counts raw pools:\n%s", out)
	}
}
