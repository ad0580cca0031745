package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const defaultConfigFile = "ecsgen.toml"

// config is the optional ecsgen.toml project file.
type config struct {
	Package string   `toml:"package"`
	Output  string   `toml:"output"`
	Schemas []string `toml:"schemas"`
}

// loadConfig reads path. A missing default config yields an empty config;
// a missing explicit one is an error.
func loadConfig(path string, explicit bool) (config, error) {
	var cfg config
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}
