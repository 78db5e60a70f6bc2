// Package config loads and saves the toolchain's TOML-backed settings:
// default execution parameters, the assembler's include search path, and
// CLI display preferences.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the toolchain's persisted configuration.
type Config struct {
	Execution struct {
		MaxCycles    uint64 `toml:"max_cycles"`
		MemorySize   int    `toml:"memory_size"`
		StackBase    uint32 `toml:"stack_base"`
		DefaultEntry uint32 `toml:"default_entry"`
		ITPBase      uint32 `toml:"itp_base"`
	} `toml:"execution"`

	Assembler struct {
		IncludePaths []string `toml:"include_paths"`
		StdlibDir    string   `toml:"stdlib_dir"`
	} `toml:"assembler"`

	Display struct {
		Color        bool   `toml:"color"`
		NumberFormat string `toml:"number_format"` // "hex" or "dec"
	} `toml:"display"`
}

// Default returns a Config populated with the toolchain's built-in
// defaults, used whenever no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Execution.MaxCycles = 1_000_000
	cfg.Execution.MemorySize = 0x10000
	cfg.Execution.StackBase = 0x8000
	cfg.Execution.DefaultEntry = 0
	cfg.Execution.ITPBase = 0x100

	cfg.Assembler.IncludePaths = []string{"."}
	cfg.Assembler.StdlibDir = "stdlib"

	cfg.Display.Color = true
	cfg.Display.NumberFormat = "hex"
	return cfg
}

// Path returns the platform-specific config file path.
func Path() string {
	var dir string
	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		dir = filepath.Join(dir, "swvm")
	case "darwin", "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return "swvm.toml"
		}
		dir = filepath.Join(home, ".config", "swvm")
	default:
		return "swvm.toml"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "swvm.toml"
	}
	return filepath.Join(dir, "swvm.toml")
}

// Load reads the default config file, falling back to Default() if it does
// not exist.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads a config file at an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes c to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("config: create directory for %s: %w", path, err)
	}
	f, err := os.Create(path) // #nosec G304 -- path is caller-supplied config location
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}
