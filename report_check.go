package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Full report: loaded keys, missing translations, used and unused keys",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
	addWatchFlag(cmd)
	return cmd
}

func addWatchFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("watch", false, "Re-run the check whenever a resource or source file changes")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchAndCheck(ctx, cfg, log, cmd.OutOrStdout())
	}
	return reportCheck(cmd.OutOrStdout(), cfg, log)
}

// reportCheck runs one analysis and prints the report. It returns
// errChecksFailed when the analysis found a consistency failure.
func reportCheck(w io.Writer, cfg *config, log zerolog.Logger) error {
	a, err := analyze(cfg, log)
	if err != nil {
		return err
	}

	if cfg.Format == "json" {
		if err := writeJSON(w, a); err != nil {
			return err
		}
	} else {
		writeReport(w, a)
	}

	if a.failed() {
		return errChecksFailed
	}
	return nil
}
