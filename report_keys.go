package main

import (
	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Every declared key, qualified by namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			a, err := analyze(cfg, log)
			if err != nil {
				return err
			}
			return outputStrings(cmd.OutOrStdout(), a.declared, cfg.Format, "translation keys")
		},
	}
}
