package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckReportsUnusedAndMissing(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json":          `{"name": "demo"}`,
		"src/locales/common.ts": commonModule,
		"src/locales/index.ts":  `export { default as common } from "./common";`,
		"src/App.tsx":           `export const App = () => <h1>{t("common:welcome")}</h1>;`,
	})

	out, err := runCLI(t, "--root", root)
	require.ErrorIs(t, err, errChecksFailed)

	assert.Contains(t, out, "Loaded 2 keys from common\n")
	assert.Contains(t, out, "Total: 2 translation keys\n")
	assert.Contains(t, out, "Missing translations:\n  common:\n    counter.button: missing in [ru]\n")
	assert.Contains(t, out, "Scanned 1 source files\n")
	assert.Contains(t, out, "Used: 1 keys\n")
	assert.Contains(t, out, "Unused: 1 keys\n")
	assert.Contains(t, out, "Unused translation keys:\n  common:\n    - counter.button\n")
	assert.Contains(t, out, "  unused keys:                     1  FAIL\n")
	assert.Contains(t, out, "  missing translations:            1  FAIL\n")
	assert.NotContains(t, out, "All checks passed.")
}

func TestCheckPasses(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/locales/common.json": `{"namespace": "common", "en": {"welcome": "Welcome", "counter": {"button": "Count"}}, "ru": {"welcome": "Привет", "counter": {"button": "Счёт"}}}`,
		"src/App.tsx": `import { Trans } from "react-i18next";
export const App = () => (
  <>
    <p>Don't miss the "new" counter</p>
    <h1>{t("common:welcome")}</h1>
    <Trans i18nKey="common:counter.button" />
  </>
);
`,
	})

	out, err := runCLI(t, "check", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Used: 2 keys\n")
	assert.Contains(t, out, "All translation keys are used!\n")
	assert.Contains(t, out, "  unused keys:                     0  OK\n")
	assert.Contains(t, out, "All checks passed.\n")
}

func TestCheckBasicMode(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/locales/common.ts": commonModule,
		"src/App.tsx":           `t("common:welcome"); t("common:counter.button");`,
	})

	_, err := runCLI(t, "--root", root)
	require.ErrorIs(t, err, errChecksFailed)

	out, err := runCLI(t, "--root", root, "--cross-language=false")
	require.NoError(t, err)
	assert.NotContains(t, out, "Missing translations:")
	assert.NotContains(t, out, "missing translations:")
	assert.Contains(t, out, "All checks passed.\n")
}

func TestCheckKeyPrefix(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/locales/common.ts": commonModule,
		"src/Counter.tsx": `export function Counter() {
  const { t } = useTranslation("common", { keyPrefix: "counter" });
  return <button>{t("button")} {t("common:welcome")}</button>;
}
`,
	})

	out, err := runCLI(t, "--root", root, "--cross-language=false", "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "Used: 2 keys\n")
	assert.Contains(t, out, "Key prefix usages: 1\n")
	assert.Contains(t, out, "  unknown key references:          0  OK\n")
}

func TestCheckStrict(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/locales/common.ts": commonModule,
		"src/App.tsx":           "t(\"common:welcome\");\nt(\"common:counter.button\");\nt(\"common:gone\");\n",
	})

	out, err := runCLI(t, "--root", root, "--cross-language=false")
	require.NoError(t, err)
	assert.NotContains(t, out, "Unknown key references:")

	out, err = runCLI(t, "--root", root, "--cross-language=false", "--strict")
	require.ErrorIs(t, err, errChecksFailed)
	assert.Contains(t, out, "Unknown key references:\n  src/App.tsx:3  common:gone\n")
	assert.Contains(t, out, "  unknown key references:          1  FAIL\n")
}

func TestCheckJSON(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/locales/common.ts": commonModule,
		"src/App.tsx":           `t("common:welcome")`,
	})

	out, err := runCLI(t, "--root", root, "--format", "json")
	require.ErrorIs(t, err, errChecksFailed)

	var got struct {
		TotalKeys  int                  `json:"totalKeys"`
		Files      int                  `json:"files"`
		Used       []keyCount           `json:"used"`
		Unused     []string             `json:"unused"`
		Missing    []missingTranslation `json:"missing"`
		Namespaces []namespaceSummary   `json:"namespaces"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.TotalKeys)
	assert.Equal(t, 1, got.Files)
	assert.Equal(t, []keyCount{{Key: "common:welcome", Count: 1}}, got.Used)
	assert.Equal(t, []string{"common:counter.button"}, got.Unused)
	assert.Equal(t, []missingTranslation{{Namespace: "common", Key: "counter.button", Languages: []string{"ru"}}}, got.Missing)
	require.Len(t, got.Namespaces, 1)
	assert.Equal(t, []string{"en", "ru"}, got.Namespaces[0].Languages)
}

func TestCheckMissingLocalesDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/App.tsx": `t("common:welcome")`,
	})

	_, err := runCLI(t, "--root", root)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errChecksFailed)
	assert.Contains(t, err.Error(), "reading resource directory")
}

func TestCheckInvalidFormat(t *testing.T) {
	_, err := runCLI(t, "--root", t.TempDir(), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
}

func TestFocusedSubcommands(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/locales/common.ts": commonModule,
		"src/App.tsx":           "t(\"common:welcome\");\nt(`common:${k}`);\n",
		"src/Home.tsx":          `t("common:welcome")`,
	})

	t.Run("unused", func(t *testing.T) {
		out, err := runCLI(t, "unused", "--root", root)
		require.ErrorIs(t, err, errChecksFailed)
		assert.Equal(t, "Found 1 unused keys:\n  common:counter.button\n", out)
	})

	t.Run("unused json", func(t *testing.T) {
		out, err := runCLI(t, "unused", "--root", root, "--format", "json")
		require.ErrorIs(t, err, errChecksFailed)
		assert.JSONEq(t, `["common:counter.button"]`, out)
	})

	t.Run("missing", func(t *testing.T) {
		out, err := runCLI(t, "missing", "--root", root, "--cross-language=false")
		require.ErrorIs(t, err, errChecksFailed)
		assert.Equal(t, "Found 1 missing translations:\n  common:counter.button: missing in [ru]\n", out)
	})

	t.Run("keys", func(t *testing.T) {
		out, err := runCLI(t, "keys", "--root", root)
		require.NoError(t, err)
		assert.Equal(t, "Found 2 translation keys:\n  common:welcome\n  common:counter.button\n", out)
	})

	t.Run("references", func(t *testing.T) {
		out, err := runCLI(t, "references", "--root", root)
		require.NoError(t, err)
		assert.Equal(t, "common:welcome:\n  src/App.tsx:1\n  src/Home.tsx:1\n", out)
	})

	t.Run("references json", func(t *testing.T) {
		out, err := runCLI(t, "references", "--root", root, "--format", "json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"common:welcome": [{"file": "src/App.tsx", "line": 1}, {"file": "src/Home.tsx", "line": 1}]}`, out)
	})

	t.Run("dynamic", func(t *testing.T) {
		out, err := runCLI(t, "dynamic", "--root", root)
		require.NoError(t, err)
		assert.Contains(t, out, "  common:{}\n")
		assert.Contains(t, out, "    matches: 1 keys\n")
	})
}
