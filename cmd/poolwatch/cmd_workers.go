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
	workersJSONFile      string
	workersFromJSONFile  string
	workersCSVFile       string
	workersFullDatetimes bool
	workersSkipSummary   bool
	workersSnapshot      string
	workersSnapshotDB    string
)

// workersCmd represents the workers command
var workersCmd = &cobra.Command{
	Use:   "workers [pool-id]",
	Short: "Examine the workers of one pool",
	Long: `Fetch every worker of a pool from the worker-manager API and
print a summary grouped by pool, group, provider, and state. Worker
data can also be dumped as JSON or exported as CSV, and re-read from a
previous JSON dump or snapshot without touching the API.`,
	Example: `  poolwatch workers gecko-t/win10-64
  poolwatch workers gecko-t/win10-64 --csv-file workers.csv
  poolwatch workers gecko-t/win10-64 --json-file workers.json
  poolwatch workers --from-json-file workers.json
  poolwatch workers --snapshot firefox-ci/2026-08-01T12:00:00Z`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWorkers,
}

func init() {
	rootCmd.AddCommand(workersCmd)

	workersCmd.Flags().StringVar(&workersCSVFile, "csv-file", "", "Output worker data in CSV format")
	workersCmd.Flags().StringVar(&workersJSONFile, "json-file", "", "Output worker data in JSON format")
	workersCmd.Flags().StringVar(&workersFromJSONFile, "from-json-file", "", "Get worker data from a JSON file instead of the API")
	workersCmd.Flags().StringVar(&workersSnapshot, "snapshot", "", "Get worker data from an archived snapshot key instead of the API")
	workersCmd.Flags().StringVar(&workersSnapshotDB, "snapshot-db", "poolwatch.db", "Path to the snapshot archive")
	workersCmd.Flags().BoolVar(&workersFullDatetimes, "full-datetimes", false,
		"In CSV, retain sub-seconds and timezone in datetimes, which may prevent them being parsed as dates")
	workersCmd.Flags().BoolVar(&workersSkipSummary, "skip-summary", false, "Do not print the text summary")
}

func runWorkers(cmd *cobra.Command, args []string) error {
	poolID := ""
	if len(args) > 0 {
		poolID = args[0]
	}

	var workers []types.Record
	switch {
	case workersFromJSONFile != "":
		var err error
		workers, err = export.LoadJSON(workersFromJSONFile)
		if err != nil {
			return err
		}
		log.Info().Int("workers", len(workers)).Str("file", workersFromJSONFile).Msg("loaded workers")
	case workersSnapshot != "":
		var err error
		workers, err = loadSnapshot(workersSnapshotDB, storage.KindWorkers, workersSnapshot)
		if err != nil {
			return err
		}
		log.Info().Int("workers", len(workers)).Str("snapshot", workersSnapshot).Msg("loaded workers")
	default:
		if poolID == "" {
			return fmt.Errorf("a pool-id argument is required unless --from-json-file or --snapshot is given")
		}
		var err error
		workers, err = fetchWorkers(cmd, poolID)
		if err != nil {
			return err
		}
	}

	if workersCSVFile != "" {
		if err := writeWorkersCSV(workersCSVFile, workers); err != nil {
			return err
		}
		log.Info().Str("file", workersCSVFile).Msg("wrote worker CSV")
	}

	if workersJSONFile != "" {
		if err := export.DumpJSON(workersJSONFile, workers); err != nil {
			return err
		}
		log.Info().Str("file", workersJSONFile).Msg("wrote worker JSON")
	}

	if !workersSkipSummary {
		fmt.Print(summary.Workers(workers))
	}
	return nil
}

func fetchWorkers(cmd *cobra.Command, poolID string) ([]types.Record, error) {
	client, err := wmclient.New(wmclient.CredentialsFromEnv(), log.Logger)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()

	if err := client.Ping(ctx); err != nil {
		return nil, err
	}
	pool, err := client.WorkerPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	log.Info().Str("pool", pool.String("workerPoolId")).Msg("pool found")

	return client.ListWorkersForWorkerPool(ctx, poolID)
}

func writeWorkersCSV(path string, workers []types.Record) error {
	f, err := os.Create(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	opts := export.CSVOptions{FullDatetimes: workersFullDatetimes}
	if err := export.WriteCSV(f, export.WorkerRows(workers), opts); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func loadSnapshot(dbPath string, kind storage.Kind, key string) ([]types.Record, error) {
	archive, err := storage.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = archive.Close() }()
	return archive.Load(kind, key)
}
