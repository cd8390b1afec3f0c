package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputStrings prints a list of strings in text or JSON format.
func outputStrings(w io.Writer, items []string, format, label string) error {
	if format == "json" {
		if items == nil {
			items = []string{}
		}
		return writeJSON(w, items)
	}

	if len(items) == 0 {
		fmt.Fprintf(w, "No %s found.\n", label)
		return nil
	}

	fmt.Fprintf(w, "Found %d %s:\n", len(items), label)
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item)
	}
	return nil
}

// writeReport prints the full check report.
func writeReport(w io.Writer, a *analysis) {
	fmt.Fprintln(w, "Analyzing translations...")
	fmt.Fprintln(w)
	for _, ns := range a.Namespaces {
		fmt.Fprintf(w, "Loaded %d keys from %s\n", ns.Keys, ns.Namespace)
	}
	fmt.Fprintf(w, "Total: %d translation keys\n", a.TotalKeys)

	if len(a.Skipped) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Skipped resource files:")
		for _, s := range a.Skipped {
			fmt.Fprintf(w, "  %s: %s\n", s.File, s.Message)
		}
	}

	if a.CrossLanguage && len(a.Missing) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Missing translations:")
		for _, group := range groupMissing(a.Missing) {
			fmt.Fprintf(w, "  %s:\n", group[0].Namespace)
			for _, m := range group {
				fmt.Fprintf(w, "    %s: missing in [%s]\n", m.Key, strings.Join(m.Languages, ", "))
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Scanned %d source files\n", a.Files)
	fmt.Fprintf(w, "Used: %d keys\n", len(a.Used))
	fmt.Fprintf(w, "Unused: %d keys\n", len(a.Unused))
	fmt.Fprintf(w, "Key prefix usages: %d\n", len(a.Prefixes))

	if len(a.Unused) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Unused translation keys:")
		for _, group := range groupByNamespace(a.Unused, a.nsSep) {
			fmt.Fprintf(w, "  %s:\n", group.Namespace)
			for _, k := range group.Keys {
				fmt.Fprintf(w, "    - %s\n", k)
			}
		}
	} else {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "All translation keys are used!")
	}

	if a.Strict && len(a.Unknown) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Unknown key references:")
		for _, u := range a.Unknown {
			fmt.Fprintf(w, "  %s:%d  %s\n", u.File, u.Line, u.Key)
		}
	}

	fmt.Fprintln(w)
	for _, c := range a.checks() {
		status := "OK"
		if c.Count > 0 {
			status = "FAIL"
		}
		fmt.Fprintf(w, "  %-30s %3d  %s\n", c.Label+":", c.Count, status)
	}
	if !a.failed() {
		fmt.Fprintln(w, "All checks passed.")
	}
}

// groupMissing groups records by namespace, keeping their order. Records of
// one namespace are contiguous since namespaces are diffed one at a time.
func groupMissing(missing []missingTranslation) [][]missingTranslation {
	var groups [][]missingTranslation
	for i, m := range missing {
		if i == 0 || m.Namespace != missing[i-1].Namespace {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], m)
	}
	return groups
}
