package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskfleet/poolwatch/types"
)

func TestDumpAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workers.json")
	workers := []types.Record{
		{"workerId": "i-0abc", "state": "running", "capacity": float64(2)},
		{"workerId": "i-0def", "state": "stopped"},
	}

	require.NoError(t, DumpJSON(path, workers))

	got, err := LoadJSON(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "i-0abc", got[0].String("workerId"))
	assert.Equal(t, 2, got[0].Int("capacity", 1))
}

func TestLoadJSON_MissingFile(t *testing.T) {
	_, err := LoadJSON(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
