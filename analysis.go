package main

import (
	"errors"
	"sort"

	"github.com/rs/zerolog"
)

// errChecksFailed is returned when the analysis finds unused keys, missing
// translations or (in strict mode) unknown key references.
var errChecksFailed = errors.New("checks failed")

// namespaceSummary describes one loaded namespace.
type namespaceSummary struct {
	Namespace string   `json:"namespace"`
	File      string   `json:"file"`
	Languages []string `json:"languages"`
	Keys      int      `json:"keys"`
}

// unknownReference is a literal key reference that matches no declared key.
type unknownReference struct {
	Key string `json:"key"`
	keyReference
}

// analysis is the outcome of one check run.
type analysis struct {
	Namespaces    []namespaceSummary   `json:"namespaces"`
	Skipped       []loadIssue          `json:"skipped"`
	TotalKeys     int                  `json:"totalKeys"`
	Missing       []missingTranslation `json:"missing,omitempty"`
	Files         int                  `json:"files"`
	Used          []keyCount           `json:"used"`
	Unused        []string             `json:"unused"`
	Prefixes      []keyPrefixUsage     `json:"keyPrefixes"`
	Unknown       []unknownReference   `json:"unknown,omitempty"`
	CrossLanguage bool                 `json:"crossLanguage"`
	Strict        bool                 `json:"strict"`

	declared []string
	usage    *usage
	nsSep    string
}

// failed reports whether the run must exit with a failure status.
func (a *analysis) failed() bool {
	return len(a.Unused) > 0 ||
		(a.CrossLanguage && len(a.Missing) > 0) ||
		(a.Strict && len(a.Unknown) > 0)
}

// analyze loads the resources, scans the sources and reconciles the two.
func analyze(cfg *config, log zerolog.Logger) (*analysis, error) {
	resources, err := loadResources(cfg, log)
	if err != nil {
		return nil, err
	}

	a := &analysis{
		Skipped:       resources.Skipped,
		CrossLanguage: cfg.CrossLanguage,
		Strict:        cfg.Strict,
		nsSep:         cfg.NSSeparator,
	}
	reg := newRegistry(cfg.NSSeparator)
	for _, res := range resources.Resources {
		var keys []string
		if cfg.CrossLanguage {
			var missing []missingTranslation
			keys, missing = diffLanguages(res, cfg.KeySeparator)
			a.Missing = append(a.Missing, missing...)
		} else {
			// Basic mode assumes every language shares the first one's keys.
			keys = flattenTree(res.Languages[0].Tree, "", cfg.KeySeparator)
		}
		for _, k := range keys {
			reg.add(res.Namespace, k)
		}

		langs := make([]string, 0, len(res.Languages))
		for _, l := range res.Languages {
			langs = append(langs, l.Code)
		}
		a.Namespaces = append(a.Namespaces, namespaceSummary{
			Namespace: res.Namespace,
			File:      res.File,
			Languages: langs,
			Keys:      len(keys),
		})
	}
	a.TotalKeys = reg.len()
	a.declared = reg.keys

	u, err := scanSources(cfg, log)
	if err != nil {
		return nil, err
	}
	a.usage = u
	a.Files = u.Files
	a.Prefixes = u.Prefixes

	for _, key := range sortedKeys(u.Keys) {
		reg.mark(key)
	}
	a.Used, a.Unused = reg.partition()
	if cfg.Strict {
		a.Unknown = unknownReferences(reg, u.Calls)
	}
	return a, nil
}

// unknownReferences returns the calls none of whose candidate keys is
// declared, ordered by file and line.
func unknownReferences(reg *registry, calls []keyCall) []unknownReference {
	var unknown []unknownReference
	for _, c := range calls {
		known := false
		for _, k := range c.Candidates {
			if reg.has(k) {
				known = true
				break
			}
		}
		if !known {
			unknown = append(unknown, unknownReference{Key: c.Raw, keyReference: c.Ref})
		}
	}
	sort.SliceStable(unknown, func(i, j int) bool {
		if unknown[i].File != unknown[j].File {
			return unknown[i].File < unknown[j].File
		}
		return unknown[i].Line < unknown[j].Line
	})
	return unknown
}

// checkResult is one line of the check summary.
type checkResult struct {
	Label string
	Count int
}

func (a *analysis) checks() []checkResult {
	results := []checkResult{{"unused keys", len(a.Unused)}}
	if a.CrossLanguage {
		results = append(results, checkResult{"missing translations", len(a.Missing)})
	}
	if a.Strict {
		results = append(results, checkResult{"unknown key references", len(a.Unknown)})
	}
	return results
}
