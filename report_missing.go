package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMissingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "missing",
		Short: "Keys present in some languages of a namespace but absent from others",
		Args:  cobra.NoArgs,
		RunE:  runMissing,
	}
}

func runMissing(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	cfg.CrossLanguage = true

	resources, err := loadResources(cfg, log)
	if err != nil {
		return err
	}
	missing := []missingTranslation{}
	for _, res := range resources.Resources {
		_, m := diffLanguages(res, cfg.KeySeparator)
		missing = append(missing, m...)
	}

	if cfg.Format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), missing); err != nil {
			return err
		}
	} else {
		items := make([]string, 0, len(missing))
		for _, m := range missing {
			items = append(items, fmt.Sprintf("%s%s%s: missing in [%s]", m.Namespace, cfg.NSSeparator, m.Key, strings.Join(m.Languages, ", ")))
		}
		if err := outputStrings(cmd.OutOrStdout(), items, cfg.Format, "missing translations"); err != nil {
			return err
		}
	}

	if len(missing) > 0 {
		return errChecksFailed
	}
	return nil
}
