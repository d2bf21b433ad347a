// Package config reads the pyweb config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"src.pyweb.sh/pkg/console"
	"src.pyweb.sh/pkg/env"
)

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

const appName = "pyweb"

// Config is the top-level configuration.
type Config struct {
	ConfigVersion int            `mapstructure:"config_version" yaml:"config_version"`
	RC            string         `mapstructure:"rc" yaml:"rc"`
	Console       ConsoleConfig  `mapstructure:"console" yaml:"console"`
	History       HistoryConfig  `mapstructure:"history" yaml:"history"`
	Packages      PackagesConfig `mapstructure:"packages" yaml:"packages"`
	Log           LogConfig      `mapstructure:"log" yaml:"log"`
}

// ConsoleConfig mirrors console.Options.
type ConsoleConfig struct {
	IndentSize          int  `mapstructure:"indent_size" yaml:"indent_size"`
	TabToSpace          bool `mapstructure:"tab_to_space" yaml:"tab_to_space"`
	DedentOnPaste       bool `mapstructure:"dedent_on_paste" yaml:"dedent_on_paste"`
	MirrorOutput        bool `mapstructure:"mirror_output" yaml:"mirror_output"`
	OutputLines         int  `mapstructure:"output_lines" yaml:"output_lines"`
	LockedConsoleLog    bool `mapstructure:"locked_console_log" yaml:"locked_console_log"`
	LockedTerminalError bool `mapstructure:"locked_terminal_error" yaml:"locked_terminal_error"`
	Greeting            bool `mapstructure:"greeting" yaml:"greeting"`
	LoadingMessage      bool `mapstructure:"loading_message" yaml:"loading_message"`
}

// HistoryConfig controls the persistent command history.
type HistoryConfig struct {
	// Path of the bbolt database. Empty means memory-only history.
	DB string `mapstructure:"db" yaml:"db"`
	// Number of most recent entries read at startup.
	Limit int `mapstructure:"limit" yaml:"limit"`
}

// PackagesConfig controls the Starlark package library.
type PackagesConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
	// Patterns loaded at startup.
	Preload []string `mapstructure:"preload" yaml:"preload"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	// Empty means no log file.
	File string `mapstructure:"file" yaml:"file"`
}

// Options converts c to session options.
func (c ConsoleConfig) Options() []console.Option {
	return []console.Option{
		console.WithIndentSize(c.IndentSize),
		console.WithTabToSpace(c.TabToSpace),
		console.WithDedentOnPaste(c.DedentOnPaste),
		console.WithMirrorOutput(c.MirrorOutput),
		console.WithOutputLines(c.OutputLines),
		console.WithLockedConsoleLog(c.LockedConsoleLog),
		console.WithLockedTerminalError(c.LockedTerminalError),
		console.WithGreeting(c.Greeting),
		console.WithLoadingMessage(c.LoadingMessage),
	}
}

// DefaultConfig returns the default configuration, with paths under the XDG
// base directories.
func DefaultConfig() (Config, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return Config{}, err
	}
	stateDir, err := StateDir()
	if err != nil {
		return Config{}, err
	}
	o := console.DefaultOptions()
	return Config{
		ConfigVersion: CurrentConfigVersion,
		RC:            filepath.Join(configDir, "rc.star"),
		Console: ConsoleConfig{
			IndentSize:          o.IndentSize,
			TabToSpace:          o.TabToSpace,
			DedentOnPaste:       o.DedentOnPaste,
			MirrorOutput:        o.MirrorOutput,
			OutputLines:         o.OutputLines,
			LockedConsoleLog:    o.LockedConsoleLog,
			LockedTerminalError: o.LockedTerminalError,
			Greeting:            o.Greeting,
			LoadingMessage:      o.LoadingMessage,
		},
		History: HistoryConfig{
			DB:    filepath.Join(stateDir, "history.db"),
			Limit: 1000,
		},
		Packages: PackagesConfig{
			Dir:     filepath.Join(configDir, "lib"),
			Preload: []string{},
		},
	}, nil
}

// ConfigDir returns the directory holding the config file, the rc file and
// the package library.
func ConfigDir() (string, error) {
	if dir := os.Getenv(env.XDG_CONFIG_HOME); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// StateDir returns the directory holding the history database.
func StateDir() (string, error) {
	if dir := os.Getenv(env.XDG_STATE_HOME); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", appName), nil
}

// DefaultConfigPath returns the path of the config file used when none is
// given.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func homeDir() (string, error) {
	if home := os.Getenv(env.HOME); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return home, nil
}
