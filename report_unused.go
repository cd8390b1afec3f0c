package main

import (
	"github.com/spf13/cobra"
)

func newUnusedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unused",
		Short: "Declared keys not referenced in source code",
		Args:  cobra.NoArgs,
		RunE:  runUnused,
	}
}

func runUnused(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	a, err := analyze(cfg, log)
	if err != nil {
		return err
	}

	if err := outputStrings(cmd.OutOrStdout(), a.Unused, cfg.Format, "unused keys"); err != nil {
		return err
	}
	if len(a.Unused) > 0 {
		return errChecksFailed
	}
	return nil
}
