package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/taskfleet/poolwatch/config"
	"github.com/taskfleet/poolwatch/internal/export"
	"github.com/taskfleet/poolwatch/internal/summary"
	"github.com/taskfleet/poolwatch/storage"
	"github.com/taskfleet/poolwatch/types"
	"github.com/taskfleet/poolwatch/wmclient"
)

var (
	reportOutputDir     string
	reportSnapshotDB    string
	reportFullDatetimes bool
	reportSkipSummary   bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report [deployment...]",
	Short: "Export pool data for configured deployments",
	Long: `Fetch worker pools from each configured deployment and write the
standard set of export files into the output directory, one
subdirectory per deployment:

  pools.json        raw pool records
  pools.csv         full flattened launch config rows
  images.csv        image columns for all clouds, de-duplicated
  aws-images.csv    AMI per region
  gcp-images.csv    source image per region
  azure-images.csv  image reference per location

Every fetched dataset is also recorded in the snapshot archive. With no
arguments, all configured deployments are reported.`,
	Example: `  poolwatch report
  poolwatch report firefox-ci
  poolwatch report firefox-ci community --skip-summary`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportOutputDir, "output-dir", "", "Output directory (default from config)")
	reportCmd.Flags().StringVar(&reportSnapshotDB, "snapshot-db", "", "Path to the snapshot archive (default from config)")
	reportCmd.Flags().BoolVar(&reportFullDatetimes, "full-datetimes", false,
		"In CSV, retain sub-seconds and timezone in datetimes, which may prevent them being parsed as dates")
	reportCmd.Flags().BoolVar(&reportSkipSummary, "skip-summary", false, "Do not print per-deployment summaries")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	// Resolve deployment names before any network work: an unknown name
	// fails the whole run.
	deployments := cfg.Deployments
	if len(args) > 0 {
		deployments = make([]config.Deployment, 0, len(args))
		for _, name := range args {
			d, err := cfg.Deployment(name)
			if err != nil {
				return err
			}
			deployments = append(deployments, d)
		}
	}

	outputDir := reportOutputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	dbPath := reportSnapshotDB
	if dbPath == "" {
		dbPath = cfg.SnapshotDB
	}
	if dbPath == "" {
		dbPath = "poolwatch.db"
	}

	archive, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = archive.Close() }()

	for _, d := range deployments {
		if err := reportDeployment(cmd.Context(), d, outputDir, archive); err != nil {
			return fmt.Errorf("deployment %s: %w", d.Name, err)
		}
	}
	return nil
}

func reportDeployment(ctx context.Context, d config.Deployment, outputDir string, archive *storage.Archive) error {
	creds := wmclient.CredentialsFromEnv()
	creds.RootURL = d.RootURL

	client, err := wmclient.New(creds, log.Logger)
	if err != nil {
		return err
	}
	if err := client.Ping(ctx); err != nil {
		return err
	}

	pools, err := client.ListWorkerPools(ctx)
	if err != nil {
		return err
	}

	key, err := archive.Record(storage.KindPools, d.Name, "", pools, time.Now())
	if err != nil {
		return err
	}
	log.Info().Str("snapshot", key).Int("pools", len(pools)).Msg("recorded snapshot")

	dir := filepath.Join(outputDir, d.Name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	if err := export.DumpJSON(filepath.Join(dir, "pools.json"), pools); err != nil {
		return err
	}
	if err := writeReportCSVs(dir, pools); err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msg("wrote deployment report")

	if !reportSkipSummary {
		fmt.Printf("=== %s (%s) ===\n", d.Name, client.RootURL())
		fmt.Print(summary.Pools(pools))
		fmt.Println()
	}
	return nil
}

func writeReportCSVs(dir string, pools []types.Record) error {
	rows, err := export.PoolRows(pools)
	if err != nil {
		return err
	}
	opts := export.CSVOptions{FullDatetimes: reportFullDatetimes}

	if err := writeCSVFile(filepath.Join(dir, "pools.csv"), func(f *os.File) error {
		return export.WriteCSV(f, rows, opts)
	}); err != nil {
		return err
	}

	for _, name := range export.SetNames() {
		setRows, headers := export.ApplySet(rows, export.ColumnSets[name])
		path := filepath.Join(dir, name+".csv")
		if err := writeCSVFile(path, func(f *os.File) error {
			return export.WriteCSVColumns(f, headers, setRows, opts)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path) // #nosec G304 -- path is built from config
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
