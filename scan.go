package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
)

// keyReference records where a translation key is used.
type keyReference struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// keyPrefixUsage is a useTranslation(namespace, { keyPrefix }) call site.
type keyPrefixUsage struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Namespace string `json:"namespace"`
	Prefix    string `json:"prefix"`
}

// dynamicReference is a translation call whose key is computed at runtime.
// Pattern has {} in place of every computed part.
type dynamicReference struct {
	Pattern string `json:"pattern"`
	File    string `json:"file"`
	Line    int    `json:"line"`
}

// keyCall is one literal key reference with every key it may resolve to:
// the raw key plus its key-prefix variants.
type keyCall struct {
	Raw        string
	Candidates []string
	Ref        keyReference
}

// usage is the result of scanning the source tree.
type usage struct {
	Keys     map[string][]keyReference
	Calls    []keyCall
	Prefixes []keyPrefixUsage
	Dynamic  []dynamicReference
	Files    int
}

func newUsage() *usage {
	return &usage{Keys: make(map[string][]keyReference)}
}

func (u *usage) add(key string, ref keyReference) {
	u.Keys[key] = append(u.Keys[key], ref)
}

// excludeSet matches slash-separated paths relative to the source root.
type excludeSet []glob.Glob

// compileExcludes compiles exclusion globs. A pattern starting with **/
// also matches at the root, so **/dist/** excludes both dist/ and a/dist/.
func compileExcludes(patterns []string) (excludeSet, error) {
	var set excludeSet
	for _, p := range patterns {
		variants := []string{p}
		if rest, ok := strings.CutPrefix(p, "**/"); ok {
			variants = append(variants, rest)
		}
		for _, v := range variants {
			g, err := glob.Compile(v, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
			}
			set = append(set, g)
		}
	}
	return set, nil
}

func (s excludeSet) match(rel string) bool {
	for _, g := range s {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// scanSourceFiles walks the source tree and returns file paths matching
// the given extensions and not excluded.
func scanSourceFiles(root string, exts []string, exclude excludeSet) ([]string, error) {
	var files []string
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[e] = true
	}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && exclude.match(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if extSet[filepath.Ext(path)] && !exclude.match(rel) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// scanSources scans every source file in order and collects key usage.
// Reference paths are relative to the project root.
func scanSources(cfg *config, log zerolog.Logger) (*usage, error) {
	exclude, err := compileExcludes(cfg.Exclude)
	if err != nil {
		return nil, err
	}
	files, err := scanSourceFiles(cfg.SrcDir, cfg.Extensions, exclude)
	if err != nil {
		return nil, fmt.Errorf("scanning source directory: %w", err)
	}

	rules := newScanRules(cfg)
	u := newUsage()
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(cfg.Root, file)
		if err != nil {
			rel = file
		}
		before := len(u.Keys)
		rules.scanFile(filepath.ToSlash(rel), string(data), u)
		log.Debug().Str("file", rel).Int("newKeys", len(u.Keys)-before).Msg("Scanned source file")
	}
	u.Files = len(files)
	return u, nil
}

// quoted matches a JS string literal in any quote style. Groups 1 to 3
// hold the body of the double-quoted, single-quoted and template form.
// Quoted strings end at the line; templates may span lines.
const quoted = `(?:"((?:\\.|[^"\\\n])*)"|'((?:\\.|[^'\\\n])*)'|` + "`" + `((?:\\.|[^` + "`" + `\\])*)` + "`)"

var (
	// ${...} substitutions inside a template literal.
	substitution = regexp.MustCompile(`\$\{[^}]*\}`)
	// Nested objects in a hook's options, which cannot hold the hook's own keyPrefix.
	nestedObject = regexp.MustCompile(`\{[^{}]*\}`)
	// keyPrefix: "prefix" or "keyPrefix": "prefix" inside the hook options.
	keyPrefixOption = regexp.MustCompile(`(?:^|[\s,])["']?keyPrefix["']?\s*:\s*` + quoted)
)

// scanRules are the reference shapes the scanner recognizes.
type scanRules struct {
	call         *regexp.Regexp
	hook         *regexp.Regexp
	attr         *regexp.Regexp
	nsSeparator  string
	keySeparator string
}

func newScanRules(cfg *config) scanRules {
	return compileScanRules(cfg.Funcs, cfg.Hook, cfg.TransAttr, cfg.NSSeparator, cfg.KeySeparator)
}

func compileScanRules(funcs []string, hook, attr, nsSep, keySep string) scanRules {
	names := make([]string, 0, len(funcs))
	for _, f := range funcs {
		names = append(names, regexp.QuoteMeta(f))
	}
	r := scanRules{nsSeparator: nsSep, keySeparator: keySep}
	// t("key"), followed by the next argument, the closing paren or a +.
	r.call = regexp.MustCompile(`(` + strings.Join(names, "|") + `)\(\s*` + quoted + `\s*([,)+])`)
	if hook != "" {
		// useTranslation("ns", { ... }), options nested at most one level.
		r.hook = regexp.MustCompile(`(` + regexp.QuoteMeta(hook) + `)\(\s*` + quoted + `\s*,\s*\{((?:[^{}]|\{[^{}]*\})*)\}`)
	}
	if attr != "" {
		r.attr = regexp.MustCompile(`(` + regexp.QuoteMeta(attr) + `)\s*=\s*(?:"([^"\n]*)"|'([^'\n]*)')`)
	}
	return r
}

// literal is a string literal found by a rule.
type literal struct {
	text     string
	pos      int
	template bool
}

// static reports whether the literal's value is known without running the code.
func (l literal) static() bool {
	return !l.template || !strings.Contains(l.text, "${")
}

// pattern returns the literal with every substitution replaced by {}.
func (l literal) pattern() string {
	return substitution.ReplaceAllString(l.text, "{}")
}

// quotedAt returns the literal captured by the quoted groups starting at
// submatch group first of m.
func quotedAt(src string, m []int, first int) (literal, bool) {
	for g := first; g < first+3; g++ {
		if m[2*g] >= 0 {
			return literal{
				text:     unescape(src[m[2*g]:m[2*g+1]]),
				pos:      m[2*g],
				template: g == first+2,
			}, true
		}
	}
	return literal{}, false
}

// scanFile applies the three reference rules to one file: literal
// translation calls, prefixed hooks and markup key attributes. Calls without
// a namespace are also recorded under every key prefix declared in the file.
func (r scanRules) scanFile(file, src string, u *usage) {
	lines := newlineIndex(src)

	var prefixes []keyPrefixUsage
	for _, m := range findAll(r.hook, src) {
		if !atBoundary(src, m[2], false) || commented(src, m[2]) {
			continue
		}
		ns, ok := quotedAt(src, m, 2)
		if !ok || !ns.static() {
			continue
		}
		options := src[m[10]:m[11]]
		for nestedObject.MatchString(options) {
			options = nestedObject.ReplaceAllString(options, "")
		}
		pm := keyPrefixOption.FindStringSubmatchIndex(options)
		if pm == nil {
			continue
		}
		prefix, ok := quotedAt(options, pm, 1)
		if !ok || !prefix.static() {
			continue
		}
		prefixes = append(prefixes, keyPrefixUsage{
			File:      file,
			Line:      lineAt(lines, m[2]),
			Namespace: ns.text,
			Prefix:    prefix.text,
		})
	}

	for _, m := range r.call.FindAllStringSubmatchIndex(src, -1) {
		if !atBoundary(src, m[2], false) || commented(src, m[2]) {
			continue
		}
		arg, ok := quotedAt(src, m, 2)
		if !ok {
			continue
		}
		line := lineAt(lines, arg.pos)
		concat := src[m[10]:m[11]] == "+"
		if concat || !arg.static() {
			pattern := arg.pattern()
			if concat {
				pattern += "{}"
			}
			u.Dynamic = append(u.Dynamic, dynamicReference{Pattern: pattern, File: file, Line: line})
			continue
		}

		ref := keyReference{File: file, Line: line}
		candidates := []string{arg.text}
		if !strings.Contains(arg.text, r.nsSeparator) {
			for _, p := range prefixes {
				candidates = append(candidates, p.Namespace+r.nsSeparator+p.Prefix+r.keySeparator+arg.text)
			}
		}
		for _, k := range candidates {
			u.add(k, ref)
		}
		u.Calls = append(u.Calls, keyCall{Raw: arg.text, Candidates: candidates, Ref: ref})
	}

	for _, m := range findAll(r.attr, src) {
		if !atBoundary(src, m[2], true) || commented(src, m[2]) {
			continue
		}
		g := 2
		if m[4] < 0 {
			g = 3
		}
		key := src[m[2*g]:m[2*g+1]]
		ref := keyReference{File: file, Line: lineAt(lines, m[2*g])}
		u.add(key, ref)
		u.Calls = append(u.Calls, keyCall{Raw: key, Candidates: []string{key}, Ref: ref})
	}

	u.Prefixes = append(u.Prefixes, prefixes...)
}

func findAll(re *regexp.Regexp, src string) [][]int {
	if re == nil {
		return nil
	}
	return re.FindAllStringSubmatchIndex(src, -1)
}

// atBoundary reports whether the name starting at pos is not the tail of a
// longer identifier (or, for attributes, of a dashed attribute name).
func atBoundary(src string, pos int, dashed bool) bool {
	if pos == 0 {
		return true
	}
	c := src[pos-1]
	return !isIdentPart(c) && !(dashed && c == '-')
}

// commented reports whether pos follows a line comment or starts a line
// inside a block comment. Comment markers inside strings are not detected.
func commented(src string, pos int) bool {
	start := strings.LastIndexByte(src[:pos], '\n') + 1
	before := src[start:pos]
	if strings.Contains(before, "//") {
		return !strings.Contains(before, "://")
	}
	trimmed := strings.TrimSpace(before)
	return strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*")
}

// newlineIndex returns the offsets of every newline in src.
func newlineIndex(src string) []int {
	var idx []int
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			idx = append(idx, i)
		}
	}
	return idx
}

// lineAt returns the 1-based line holding offset pos.
func lineAt(newlines []int, pos int) int {
	return sort.SearchInts(newlines, pos) + 1
}

// unescape decodes the common JS string escapes.
func unescape(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch e := s[i]; e {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\n':
		case 'u':
			if i+5 <= len(s) {
				if r, err := strconv.ParseUint(s[i+1:i+5], 16, 32); err == nil {
					sb.WriteRune(rune(r))
					i += 4
					continue
				}
			}
			sb.WriteByte(e)
		default:
			sb.WriteByte(e)
		}
	}
	return sb.String()
}

func isIdentPart(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
