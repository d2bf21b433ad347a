package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"src.pyweb.sh/pkg/env"
	"src.pyweb.sh/pkg/logutil"
)

var logger = logutil.GetLogger("config")

// ErrExists is returned by WriteDefault when the target already exists.
var ErrExists = errors.New("config already exists")

func defaults(cfg Config) map[string]any {
	return map[string]any{
		"config_version":                cfg.ConfigVersion,
		"rc":                            cfg.RC,
		"console.indent_size":           cfg.Console.IndentSize,
		"console.tab_to_space":          cfg.Console.TabToSpace,
		"console.dedent_on_paste":       cfg.Console.DedentOnPaste,
		"console.mirror_output":         cfg.Console.MirrorOutput,
		"console.output_lines":          cfg.Console.OutputLines,
		"console.locked_console_log":    cfg.Console.LockedConsoleLog,
		"console.locked_terminal_error": cfg.Console.LockedTerminalError,
		"console.greeting":              cfg.Console.Greeting,
		"console.loading_message":       cfg.Console.LoadingMessage,
		"history.db":                    cfg.History.DB,
		"history.limit":                 cfg.History.Limit,
		"packages.dir":                  cfg.Packages.Dir,
		"packages.preload":              cfg.Packages.Preload,
		"log.file":                      cfg.Log.File,
	}
}

// Load reads configuration from the provided path. If path is empty, uses
// DefaultConfigPath. A missing file yields the defaults. Keys in the
// environment with the PYWEB_ prefix override the file, for example
// PYWEB_CONSOLE_INDENT_SIZE.
//
// Keys in the file that are not recognized are returned as the second value;
// they are also logged as warnings.
func Load(path string) (Config, []string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, nil, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, nil, err
	}
	known := defaults(cfg)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(env.PYWEB_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range known {
		v.SetDefault(key, value)
	}

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil, fmt.Errorf("read config %s: %w", path, err)
		}
		logger.Debug("no config file, using defaults", "path", path)
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.InConfig("config_version") {
			return Config{}, nil, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, nil, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	var unknown []string
	for _, key := range v.AllKeys() {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)
	for _, key := range unknown {
		logger.Warn("unknown config key ignored", "key", key, "path", path)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	expandConfigEnv(&cfg)
	if err := validate(cfg); err != nil {
		return Config{}, nil, err
	}
	return cfg, unknown, nil
}

func validate(cfg Config) error {
	var errs []error
	if cfg.Console.IndentSize < 1 {
		errs = append(errs, fmt.Errorf("console.indent_size must be positive, got %d", cfg.Console.IndentSize))
	}
	if cfg.Console.OutputLines < 1 {
		errs = append(errs, fmt.Errorf("console.output_lines must be positive, got %d", cfg.Console.OutputLines))
	}
	if cfg.History.Limit < 0 {
		errs = append(errs, fmt.Errorf("history.limit must not be negative, got %d", cfg.History.Limit))
	}
	return errors.Join(errs...)
}

func expandConfigEnv(cfg *Config) {
	cfg.RC = expandPath(cfg.RC)
	cfg.History.DB = expandPath(cfg.History.DB)
	cfg.Packages.Dir = expandPath(cfg.Packages.Dir)
	cfg.Log.File = expandPath(cfg.Log.File)
}

// Expands environment variables and a leading "~/" in a path.
func expandPath(value string) string {
	if value == "" {
		return value
	}
	value = os.Expand(value, func(key string) string {
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
	if rest, ok := strings.CutPrefix(value, "~/"); ok {
		if home, err := homeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return value
}

// WriteDefault writes the default config to the target path, which defaults
// to DefaultConfigPath. It returns the path written.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w at %s", ErrExists, path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
