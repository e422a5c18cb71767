package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	inventory "github.com/kailas-cloud/inventory/pkg/sdk"
)

var (
	reportOut   string
	reportQuery queryFlags
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate report files",
	Long: `Generate the list view's report files into a directory.

Examples:
  inventoryctl report ids --index title moby --out ./reports
  inventoryctl report in-transit --lang de
  inventoryctl report cql --filter language=eng`,
}

var reportIDsCmd = &cobra.Command{
	Use:   "ids [term...]",
	Short: "Export the ids of every matching instance as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := reportQuery.query(args)
		if err != nil {
			return err
		}
		return runReport(cmd.Context(), func(ctx context.Context, r *inventory.ReportService, sink inventory.Sink) (inventory.Outcome, error) {
			return r.IDs(ctx, q, sink)
		})
	},
}

var reportInTransitCmd = &cobra.Command{
	Use:   "in-transit",
	Short: "Export every item currently in transit as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd.Context(), func(ctx context.Context, r *inventory.ReportService, sink inventory.Sink) (inventory.Outcome, error) {
			return r.InTransit(ctx, sink)
		})
	},
}

var reportCQLCmd = &cobra.Command{
	Use:   "cql [term...]",
	Short: "Save the CQL expression of a search as a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := reportQuery.query(args)
		if err != nil {
			return err
		}
		return runReport(cmd.Context(), func(ctx context.Context, r *inventory.ReportService, sink inventory.Sink) (inventory.Outcome, error) {
			return r.CQL(ctx, q, sink)
		})
	},
}

type reportFunc func(ctx context.Context, r *inventory.ReportService, sink inventory.Sink) (inventory.Outcome, error)

func runReport(ctx context.Context, run reportFunc) error {
	client, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	sink := inventory.DirSink(reportOut, printNotice)
	outcome, err := run(ctx, client.Reports(), sink)
	if errors.Is(err, inventory.ErrExportDisabled) {
		return fmt.Errorf("exports are disabled in the %q environment", cfg.Env)
	}
	if err != nil {
		return err
	}

	switch outcome {
	case inventory.OutcomeSucceeded:
		for _, p := range inventory.SavedPaths(sink) {
			fmt.Println(p)
		}
	case inventory.OutcomeEmpty:
		fmt.Println("No records matched; nothing written.")
	case inventory.OutcomeFailed:
		return errors.New("report failed")
	case inventory.OutcomeIgnored:
		return errors.New("a report of this kind is already running")
	}
	return nil
}

func printNotice(n inventory.Notice) {
	switch n.Level {
	case inventory.NoticeError:
		fmt.Fprintln(os.Stderr, "error:", n.Message)
	case inventory.NoticeModal:
		fmt.Fprintf(os.Stderr, "%s: %s\n", n.Title, n.Message)
	default:
		fmt.Fprintln(os.Stderr, n.Message)
	}
}

func init() {
	reportCmd.PersistentFlags().StringVarP(&reportOut, "out", "o", ".", "directory report files are written to")
	reportQuery.register(reportIDsCmd)
	reportQuery.register(reportCQLCmd)

	reportCmd.AddCommand(reportIDsCmd, reportInTransitCmd, reportCQLCmd)
	rootCmd.AddCommand(reportCmd)
}
