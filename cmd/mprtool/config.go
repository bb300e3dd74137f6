package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the tool's file-based defaults. Flags override it.
type Config struct {
	DBPath    string `toml:"db_path"`
	OuterType string `toml:"outer_type"`
}

func defaultConfig() Config {
	return Config{
		DBPath:    filepath.Join(os.Getenv("HOME"), ".mprtool", "hints.db"),
		OuterType: "mprlist",
	}
}

// loadConfig reads the TOML config at path, or the default location when
// path is empty. A missing file at the default location is fine; a
// missing file named explicitly is an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = filepath.Join(os.Getenv("HOME"), ".mprtool", "config.toml")
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
