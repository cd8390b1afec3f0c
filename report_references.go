package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newReferencesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "references",
		Short: "Where each declared key is used (file:line)",
		Args:  cobra.NoArgs,
		RunE:  runReferences,
	}
}

func runReferences(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	a, err := analyze(cfg, log)
	if err != nil {
		return err
	}
	return reportReferences(cmd.OutOrStdout(), a, cfg.Format)
}

func reportReferences(w io.Writer, a *analysis, format string) error {
	refs := make(map[string][]keyReference)
	for _, k := range a.declared {
		if locations := a.usage.Keys[k]; len(locations) > 0 {
			refs[k] = locations
		}
	}

	if format == "json" {
		return writeJSON(w, refs)
	}

	for _, k := range a.declared {
		locations := refs[k]
		if len(locations) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", k)
		for _, loc := range locations {
			fmt.Fprintf(w, "  %s:%d\n", loc.File, loc.Line)
		}
	}
	return nil
}
