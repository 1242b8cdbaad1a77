package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/taskfleet/poolwatch/internal/export"
	"github.com/taskfleet/poolwatch/internal/summary"
	"github.com/taskfleet/poolwatch/storage"
	"github.com/taskfleet/poolwatch/types"
	"github.com/taskfleet/poolwatch/wmclient"
)

var (
	poolsJSONFile      string
	poolsFromJSONFile  string
	poolsCSVFile       string
	poolsCSVSet        string
	poolsFullDatetimes bool
	poolsSkipSummary   bool
	poolsSnapshot      string
	poolsSnapshotDB    string
)

// poolsCmd represents the pools command
var poolsCmd = &cobra.Command{
	Use:   "pools",
	Short: "Examine all worker pool configurations",
	Long: `Fetch every worker pool from the worker-manager API and print a
summary of capacity, owner, and launch config counts. Pool data can be
dumped as JSON, or exported as CSV with nested launch configs flattened
into one row each. Named column sets restrict the CSV to the columns
that identify machine images per cloud.`,
	Example: `  poolwatch pools
  poolwatch pools --csv-file pools.csv
  poolwatch pools --csv-file images.csv --csv-set aws-images
  poolwatch pools --from-json-file pools.json --skip-summary`,
	Args: cobra.NoArgs,
	RunE: runPools,
}

func init() {
	rootCmd.AddCommand(poolsCmd)

	poolsCmd.Flags().StringVar(&poolsCSVFile, "csv-file", "", "Output worker pool data in CSV format")
	poolsCmd.Flags().StringVar(&poolsCSVSet, "csv-set", "",
		"Select a set of columns for the CSV ("+export.SetDescriptions()+")")
	poolsCmd.Flags().StringVar(&poolsJSONFile, "json-file", "", "Output worker pool data in JSON format")
	poolsCmd.Flags().StringVar(&poolsFromJSONFile, "from-json-file", "", "Get worker pool data from a JSON file instead of the API")
	poolsCmd.Flags().StringVar(&poolsSnapshot, "snapshot", "", "Get worker pool data from an archived snapshot key instead of the API")
	poolsCmd.Flags().StringVar(&poolsSnapshotDB, "snapshot-db", "poolwatch.db", "Path to the snapshot archive")
	poolsCmd.Flags().BoolVar(&poolsFullDatetimes, "full-datetimes", false,
		"In CSV, retain sub-seconds and timezone in datetimes, which may prevent them being parsed as dates")
	poolsCmd.Flags().BoolVar(&poolsSkipSummary, "skip-summary", false, "Do not print the text summary")
}

func runPools(cmd *cobra.Command, args []string) error {
	if poolsCSVSet != "" {
		if _, ok := export.ColumnSets[poolsCSVSet]; !ok {
			return fmt.Errorf("invalid csv set: %s (must be one of: %s)",
				poolsCSVSet, export.SetDescriptions())
		}
	}

	var pools []types.Record
	switch {
	case poolsFromJSONFile != "":
		var err error
		pools, err = export.LoadJSON(poolsFromJSONFile)
		if err != nil {
			return err
		}
		log.Info().Int("pools", len(pools)).Str("file", poolsFromJSONFile).Msg("loaded worker pools")
	case poolsSnapshot != "":
		var err error
		pools, err = loadSnapshot(poolsSnapshotDB, storage.KindPools, poolsSnapshot)
		if err != nil {
			return err
		}
		log.Info().Int("pools", len(pools)).Str("snapshot", poolsSnapshot).Msg("loaded worker pools")
	default:
		var err error
		pools, err = fetchPools(cmd)
		if err != nil {
			return err
		}
	}

	if poolsCSVFile != "" {
		if err := writePoolsCSV(poolsCSVFile, pools, poolsCSVSet, poolsFullDatetimes); err != nil {
			return err
		}
		log.Info().Str("file", poolsCSVFile).Msg("wrote worker pool CSV")
	}

	if poolsJSONFile != "" {
		if err := export.DumpJSON(poolsJSONFile, pools); err != nil {
			return err
		}
		log.Info().Str("file", poolsJSONFile).Msg("wrote worker pool JSON")
	}

	if !poolsSkipSummary {
		fmt.Print(summary.Pools(pools))
	}
	return nil
}

func fetchPools(cmd *cobra.Command) ([]types.Record, error) {
	client, err := wmclient.New(wmclient.CredentialsFromEnv(), log.Logger)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()

	if err := client.Ping(ctx); err != nil {
		return nil, err
	}
	return client.ListWorkerPools(ctx)
}

func writePoolsCSV(path string, pools []types.Record, setName string, fullDatetimes bool) error {
	rows, err := export.PoolRows(pools)
	if err != nil {
		return err
	}

	f, err := os.Create(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	opts := export.CSVOptions{FullDatetimes: fullDatetimes}
	if setName != "" {
		setRows, headers := export.ApplySet(rows, export.ColumnSets[setName])
		err = export.WriteCSVColumns(f, headers, setRows, opts)
	} else {
		err = export.WriteCSV(f, rows, opts)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
