package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName = ".i18ncheck"
	envPrefix  = "I18NCHECK"
)

// config holds the checker settings. Keys match the flag names.
type config struct {
	Root          string        `mapstructure:"root"`
	LocalesDir    string        `mapstructure:"locales-dir"`
	SrcDir        string        `mapstructure:"src-dir"`
	Extensions    []string      `mapstructure:"ext"`
	Exclude       []string      `mapstructure:"exclude"`
	Ignore        []string      `mapstructure:"ignore"`
	Funcs         []string      `mapstructure:"func"`
	Hook          string        `mapstructure:"hook"`
	TransAttr     string        `mapstructure:"trans-attr"`
	NSSeparator   string        `mapstructure:"ns-separator"`
	KeySeparator  string        `mapstructure:"key-separator"`
	CrossLanguage bool          `mapstructure:"cross-language"`
	Strict        bool          `mapstructure:"strict"`
	Format        string        `mapstructure:"format"`
	Verbose       bool          `mapstructure:"verbose"`
	WatchDebounce time.Duration `mapstructure:"watch-debounce"`

	// ConfigFile is the config file that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

// registerFlags defines the settings shared by every subcommand.
func registerFlags(fs *pflag.FlagSet) {
	fs.String("root", "", "Project root (default: nearest directory with package.json, else the working directory)")
	fs.String("locales-dir", "src/locales", "Directory holding one resource file per namespace")
	fs.String("src-dir", "src", "Source directory to scan for key references")
	fs.StringSlice("ext", []string{".ts", ".tsx"}, "Source file extensions to scan")
	fs.StringSlice("exclude", []string{"**/node_modules/**", "**/dist/**", "**/build/**", "**/.git/**"}, "Glob patterns excluded from the source scan (relative to the source directory)")
	fs.StringSlice("ignore", []string{"index", "types"}, "Resource file names that are not namespaces")
	fs.StringSlice("func", []string{"t"}, "Translation function names")
	fs.String("hook", "useTranslation", "Translation hook accepting a keyPrefix option")
	fs.String("trans-attr", "i18nKey", "Markup attribute holding a translation key")
	fs.String("ns-separator", ":", "Namespace separator")
	fs.String("key-separator", ".", "Key path separator")
	fs.Bool("cross-language", true, "Register keys of every language and report missing translations")
	fs.Bool("strict", false, "Fail on key references that match no declared key")
	fs.String("format", "text", "Output format: text, json")
	fs.BoolP("verbose", "v", false, "Log per-file details")
	fs.Duration("watch-debounce", 300*time.Millisecond, "Delay before re-running after a change in watch mode")
}

// loadConfig merges flags, I18NCHECK_* environment variables and the
// optional .i18ncheck.yaml in the project root, in that order of precedence.
func loadConfig(flags *pflag.FlagSet) (*config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	root, err := resolveRoot(v.GetString("root"))
	if err != nil {
		return nil, err
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(root)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Root = root
	cfg.ConfigFile = v.ConfigFileUsed()
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		if root, err = repoRoot(wd); err != nil {
			root = wd
		}
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	return root, nil
}

// finalize resolves directories, normalizes extensions, excludes the
// resource directory from the source scan and validates the result.
func (c *config) finalize() error {
	c.LocalesDir = projectPath(c.Root, c.LocalesDir)
	c.SrcDir = projectPath(c.Root, c.SrcDir)

	exts := make([]string, 0, len(c.Extensions))
	for _, e := range c.Extensions {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	c.Extensions = exts

	if rel, err := filepath.Rel(c.SrcDir, c.LocalesDir); err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		c.Exclude = append(c.Exclude, filepath.ToSlash(rel)+"/**")
	}

	switch {
	case len(c.Extensions) == 0:
		return fmt.Errorf("no source extensions configured")
	case len(c.Funcs) == 0:
		return fmt.Errorf("no translation functions configured")
	case c.NSSeparator == "" || c.KeySeparator == "":
		return fmt.Errorf("namespace and key separators must not be empty")
	case c.Format != "text" && c.Format != "json":
		return fmt.Errorf("unknown format %q (want text or json)", c.Format)
	}
	if _, err := compileExcludes(c.Exclude); err != nil {
		return err
	}
	return nil
}
