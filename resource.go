package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// language is one language's tree inside a resource file.
type language struct {
	Code string
	Tree keyTree
}

// resource is a loaded resource file: one namespace, one tree per language.
type resource struct {
	File      string
	Namespace string
	Languages []language
}

// loadIssue records a resource file that was skipped.
type loadIssue struct {
	File    string `json:"file"`
	Message string `json:"message"`
	Warning bool   `json:"warning"`
}

type resourceSet struct {
	Resources []resource
	Skipped   []loadIssue
}

type resourceParser func(name string, data []byte) (keyTree, error)

var resourceParsers = map[string]resourceParser{
	".ts":   parseModuleResource,
	".tsx":  parseModuleResource,
	".js":   parseModuleResource,
	".mjs":  parseModuleResource,
	".json": func(_ string, data []byte) (keyTree, error) { return parseYAMLResource(data) },
	".yaml": func(_ string, data []byte) (keyTree, error) { return parseYAMLResource(data) },
	".yml":  func(_ string, data []byte) (keyTree, error) { return parseYAMLResource(data) },
}

// loadResources loads every resource file in the resource directory, one at
// a time in file name order. Files that cannot be loaded are logged and
// recorded in Skipped; only a missing directory is an error.
func loadResources(cfg *config, log zerolog.Logger) (*resourceSet, error) {
	entries, err := os.ReadDir(cfg.LocalesDir)
	if err != nil {
		return nil, fmt.Errorf("reading resource directory: %w", err)
	}

	set := &resourceSet{}
	declared := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || cfg.ignoredResource(name) {
			continue
		}
		parse, ok := resourceParsers[filepath.Ext(name)]
		if !ok {
			continue
		}

		res, warning, err := loadResourceFile(filepath.Join(cfg.LocalesDir, name), parse)
		if err != nil {
			log.Error().Str("file", name).Err(err).Msg("Error loading resource file")
			set.Skipped = append(set.Skipped, loadIssue{File: name, Message: err.Error()})
			continue
		}
		if prev, dup := declared[res.Namespace]; warning == "" && dup {
			warning = fmt.Sprintf("namespace %q already declared in %s", res.Namespace, prev)
		}
		if warning != "" {
			log.Warn().Str("file", name).Msg(warning)
			set.Skipped = append(set.Skipped, loadIssue{File: name, Message: warning, Warning: true})
			continue
		}
		declared[res.Namespace] = name
		set.Resources = append(set.Resources, res)
		log.Debug().Str("file", name).Str("namespace", res.Namespace).Int("languages", len(res.Languages)).Msg("Loaded resource file")
	}
	return set, nil
}

func loadResourceFile(path string, parse resourceParser) (resource, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return resource{}, "", err
	}
	tree, err := parse(filepath.Base(path), data)
	if err != nil {
		return resource{}, "", err
	}
	res, warning := resourceFromTree(filepath.Base(path), tree)
	return res, warning, nil
}

// resourceFromTree validates the top level of a resource file. A non-empty
// warning means the file must be skipped.
func resourceFromTree(file string, tree keyTree) (resource, string) {
	res := resource{File: file}
	hasNamespace := false
	for _, f := range tree {
		if f.Name == "namespace" {
			res.Namespace, hasNamespace = f.Value.(string)
			continue
		}
		if sub, ok := f.Value.(keyTree); ok {
			res.Languages = append(res.Languages, language{Code: f.Name, Tree: sub})
		}
	}
	switch {
	case !hasNamespace || res.Namespace == "":
		return res, "missing namespace field"
	case len(res.Languages) == 0:
		return res, "no language fields"
	}
	return res, ""
}

// ignoredResource reports whether a file in the resource directory is not a
// namespace file (the aggregator, type definitions, declaration files).
func (c *config) ignoredResource(name string) bool {
	if strings.HasSuffix(name, ".d.ts") {
		return true
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	for _, ignore := range c.Ignore {
		if base == ignore || name == ignore {
			return true
		}
	}
	return false
}
