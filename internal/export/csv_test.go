package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV_HeaderUnion(t *testing.T) {
	rows := []map[string]any{
		{"workerPoolId": "gecko-t/win10-64", "state": "running"},
		{"workerPoolId": "gecko-t/win10-64", "state": "stopped", "quarantineUntil": "never"},
	}

	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, rows, CSVOptions{}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	// Column added by the second row comes after the first row's columns.
	assert.Equal(t, "state,workerPoolId,quarantineUntil", lines[0])
	assert.Equal(t, "running,gecko-t/win10-64,", lines[1])
	assert.Equal(t, "stopped,gecko-t/win10-64,never", lines[2])
}

func TestWriteCSV_DatetimeNormalization(t *testing.T) {
	rows := []map[string]any{
		{"workerId": "i-0abc", "created": "2024-03-05T12:34:56.789Z"},
	}

	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, rows, CSVOptions{}))
	assert.Contains(t, buf.String(), "2024-03-05 12:34:56")
	assert.NotContains(t, buf.String(), ".789")

	buf.Reset()
	require.NoError(t, WriteCSV(&buf, rows, CSVOptions{FullDatetimes: true}))
	assert.Contains(t, buf.String(), "2024-03-05 12:34:56.789000+00:00")
}

func TestWriteCSV_DatetimeWithoutFraction(t *testing.T) {
	rows := []map[string]any{
		{"lastModified": "2024-03-05T12:34:56Z"},
	}

	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, rows, CSVOptions{}))
	assert.Contains(t, buf.String(), "2024-03-05 12:34:56")
}

func TestWriteCSV_BadDatetime(t *testing.T) {
	rows := []map[string]any{
		{"created": "yesterday"},
	}

	err := WriteCSV(&strings.Builder{}, rows, CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created")
	assert.Contains(t, err.Error(), "yesterday")
}

func TestWriteCSV_NumberFormatting(t *testing.T) {
	rows := []map[string]any{
		{"capacity": float64(4), "utilization": 0.25, "quarantined": false},
	}

	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, rows, CSVOptions{}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "capacity,quarantined,utilization", lines[0])
	assert.Equal(t, "4,false,0.25", lines[1])
}

func TestWriteCSVColumns_MissingFieldsBlank(t *testing.T) {
	rows := []map[string]any{
		{"workerPoolId": "gecko-t/linux"},
	}

	var buf strings.Builder
	err := WriteCSVColumns(&buf, []string{"workerPoolId", "owner"}, rows, CSVOptions{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "workerPoolId,owner", lines[0])
	assert.Equal(t, "gecko-t/linux,", lines[1])
}
