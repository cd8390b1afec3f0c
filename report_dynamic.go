package main

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newDynamicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dynamic",
		Short: "Translation calls with computed keys and the declared keys they may match",
		Long: `dynamic lists t() calls whose key is a template literal with substitutions
or a string concatenation. These keys cannot be resolved statically, so
they never count as usage; the report only shows which declared keys each
pattern could stand for.`,
		Args: cobra.NoArgs,
		RunE: runDynamic,
	}
}

func runDynamic(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	a, err := analyze(cfg, log)
	if err != nil {
		return err
	}
	return reportDynamic(cmd.OutOrStdout(), a, cfg, cfg.Format)
}

type dynamicReportEntry struct {
	Pattern string   `json:"pattern"`
	Source  string   `json:"source"`
	Matches []string `json:"matches"`
}

func reportDynamic(w io.Writer, a *analysis, cfg *config, format string) error {
	entries := dynamicEntries(a.usage.Dynamic, a.declared, cfg.NSSeparator, cfg.KeySeparator)

	if format == "json" {
		if entries == nil {
			entries = []dynamicReportEntry{}
		}
		return writeJSON(w, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No dynamic key patterns found.")
		return nil
	}

	fmt.Fprintf(w, "Found %d dynamic key patterns:\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(w, "  %s\n", e.Pattern)
		fmt.Fprintf(w, "    source:  %s\n", e.Source)
		fmt.Fprintf(w, "    matches: %d keys\n", len(e.Matches))
		for _, k := range e.Matches {
			fmt.Fprintf(w, "      %s\n", k)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// dynamicEntries deduplicates patterns, drops the ones without any static
// text and lists the declared keys each remaining pattern matches. A pattern
// without a namespace is matched against the key part of declared keys.
func dynamicEntries(refs []dynamicReference, declared []string, nsSep, keySep string) []dynamicReportEntry {
	seen := make(map[string]bool)
	var unique []dynamicReference
	for _, d := range refs {
		static := strings.ReplaceAll(d.Pattern, "{}", "")
		if seen[d.Pattern] || strings.Trim(static, nsSep+keySep) == "" {
			continue
		}
		seen[d.Pattern] = true
		unique = append(unique, d)
	}
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].Pattern < unique[j].Pattern
	})

	var entries []dynamicReportEntry
	for _, d := range unique {
		re := patternToKeyRegex(d.Pattern, keySep)
		qualified := strings.Contains(d.Pattern, nsSep)
		var matches []string
		for _, k := range declared {
			candidate := k
			if !qualified {
				_, candidate, _ = strings.Cut(k, nsSep)
			}
			if re.MatchString(candidate) {
				matches = append(matches, k)
			}
		}
		entries = append(entries, dynamicReportEntry{
			Pattern: d.Pattern,
			Source:  fmt.Sprintf("%s:%d", d.File, d.Line),
			Matches: matches,
		})
	}
	return entries
}

// patternToKeyRegex converts a pattern such as "common:status.{}" into an
// anchored regex where each {} stands for part of a single key segment.
func patternToKeyRegex(pattern, keySep string) *regexp.Regexp {
	wildcard := ".+"
	if len(keySep) == 1 {
		wildcard = "[^" + regexp.QuoteMeta(keySep) + "]+"
	}
	parts := strings.Split(pattern, "{}")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("^" + strings.Join(parts, wildcard) + "$")
}
