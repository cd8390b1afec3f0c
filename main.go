// check-translations cross-checks translation resource files against the
// translation keys referenced in application source code.
//
// Usage:
//
//	check-translations [subcommand] [flags]
//
// Without a subcommand it runs "check". Run "check-translations --help" for
// the list of subcommands and flags.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "check-translations",
		Short: "Cross-check translation resources against their usage in source code",
		Long: `check-translations loads the translation resource files (one namespace per
file, one key tree per language), scans the application sources for
translation key references and reports unused keys and keys missing from
some languages.

Key references are found by a best-effort static scan: t("ns:key"),
useTranslation("ns", { keyPrefix: "prefix" }) and i18nKey="ns:key".
Computed keys cannot be resolved.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCheck,
	}
	registerFlags(rootCmd.PersistentFlags())
	addWatchFlag(rootCmd)

	rootCmd.AddCommand(
		newCheckCmd(),
		newUnusedCmd(),
		newMissingCmd(),
		newReferencesCmd(),
		newKeysCmd(),
		newDynamicCmd(),
	)
	return rootCmd
}

func main() {
	os.Exit(exitStatus(newRootCmd().Execute(), os.Stderr))
}

// exitStatus maps the command result to the process exit code. Failed
// checks exit 1 silently since their report is already on stdout.
func exitStatus(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if !errors.Is(err, errChecksFailed) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

// setup loads the configuration for a subcommand and builds its logger.
func setup(cmd *cobra.Command) (*config, zerolog.Logger, error) {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	if cfg.ConfigFile != "" {
		log.Debug().Str("file", cfg.ConfigFile).Msg("Using config file")
	}
	return cfg, log, nil
}
