package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taskfleet/poolwatch/storage"
)

var historyDB string

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived snapshots",
	Long: `List the datasets recorded in the local snapshot archive, newest
first. Snapshot keys can be fed back to 'pools --snapshot' or
'workers --snapshot' to re-render an earlier fetch.`,
	Example: `  poolwatch history
  poolwatch history --snapshot-db /var/lib/poolwatch/poolwatch.db`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDB, "snapshot-db", "poolwatch.db", "Path to the snapshot archive")
}

func runHistory(cmd *cobra.Command, args []string) error {
	archive, err := storage.Open(historyDB)
	if err != nil {
		return err
	}
	defer func() { _ = archive.Close() }()

	infos, err := archive.List()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("No snapshots recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tKIND\tPOOL\tRECORDS\tTAKEN")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			info.Key, info.Kind, info.PoolID, info.Records,
			info.Taken.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
