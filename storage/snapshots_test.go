package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskfleet/poolwatch/types"
)

func testArchive(t *testing.T) *Archive {
	t.Helper()
	archive, err := Open(filepath.Join(t.TempDir(), "poolwatch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = archive.Close() })
	return archive
}

func TestArchive_RecordAndLoad(t *testing.T) {
	archive := testArchive(t)
	pools := []types.Record{
		{"workerPoolId": "gecko-t/win10-64", "providerId": "aws"},
	}
	taken := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	key, err := archive.Record(KindPools, "firefox-ci", "", pools, taken)
	require.NoError(t, err)
	assert.Equal(t, "firefox-ci/2026-08-01T12:00:00Z", key)

	got, err := archive.Load(KindPools, key)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "gecko-t/win10-64", got[0].String("workerPoolId"))
}

func TestArchive_KindsAreSeparate(t *testing.T) {
	archive := testArchive(t)
	taken := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	key, err := archive.Record(KindWorkers, "firefox-ci", "gecko-t/win10-64",
		[]types.Record{{"workerId": "i-0abc"}}, taken)
	require.NoError(t, err)

	_, err = archive.Load(KindPools, key)
	require.Error(t, err)
}

func TestArchive_ListNewestFirst(t *testing.T) {
	archive := testArchive(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	_, err := archive.Record(KindPools, "firefox-ci", "", nil, base)
	require.NoError(t, err)
	_, err = archive.Record(KindPools, "community", "", []types.Record{{}}, base.Add(time.Hour))
	require.NoError(t, err)
	_, err = archive.Record(KindWorkers, "firefox-ci", "gecko-t/linux",
		[]types.Record{{}, {}}, base.Add(2*time.Hour))
	require.NoError(t, err)

	infos, err := archive.List()
	require.NoError(t, err)
	require.Len(t, infos, 3)

	assert.Equal(t, KindWorkers, infos[0].Kind)
	assert.Equal(t, "gecko-t/linux", infos[0].PoolID)
	assert.Equal(t, 2, infos[0].Records)
	assert.Equal(t, "community", infos[1].Deployment)
	assert.Equal(t, "firefox-ci", infos[2].Deployment)
}

func TestArchive_LoadMissing(t *testing.T) {
	archive := testArchive(t)

	_, err := archive.Load(KindPools, "firefox-ci/2026-01-01T00:00:00Z")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pools snapshot")
}
