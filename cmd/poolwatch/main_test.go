package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskfleet/poolwatch/types"
)

func TestWriteReportCSVs(t *testing.T) {
	dir := t.TempDir()
	pools := []types.Record{
		{
			"workerPoolId": "gecko-t/win10-64",
			"providerId":   "aws",
			"owner":        "releng@example.com",
			"created":      "2024-01-10T08:00:00.000Z",
			"lastModified": "2024-02-01T09:30:00.000Z",
			"config": map[string]any{
				"launchConfigs": []any{
					map[string]any{
						"region":       "us-east-1",
						"launchConfig": map[string]any{"ImageId": "ami-0aaa111"},
					},
				},
			},
		},
	}

	require.NoError(t, writeReportCSVs(dir, pools))

	want := []string{
		"pools.csv", "images.csv", "aws-images.csv", "gcp-images.csv", "azure-images.csv",
	}
	for _, name := range want {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing report file %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "aws-images.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "lc_launchConfig_ImageId")
	assert.Contains(t, lines[0], "launch_config_count")
	assert.Contains(t, lines[1], "ami-0aaa111")
	// Datetimes are normalized for spreadsheets.
	assert.Contains(t, lines[1], "2024-01-10 08:00:00")
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"workers", "pools", "report", "history"} {
		if !names[want] {
			t.Errorf("command %s not registered", want)
		}
	}
}
