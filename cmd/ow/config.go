package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// config holds the interpreter settings. Sources, lowest priority
// first: defaults, ow.yaml, OW_* environment variables, flags.
type config struct {
	Seed    int64  `koanf:"seed"`
	PS1     string `koanf:"ps1"`
	PS2     string `koanf:"ps2"`
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

func loadConfig(flags *pflag.FlagSet) (*config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"seed":    int64(0),
		"ps1":     "ow> ",
		"ps2":     "... ",
		"color":   true,
		"verbose": false,
	}, "."), nil); err != nil {
		return nil, err
	}

	path, _ := flags.GetString("config")
	if path == "" {
		if _, err := os.Stat("ow.yaml"); err == nil {
			path = "ow.yaml"
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("OW_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "OW_"))
	}), nil); err != nil {
		return nil, err
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, err
	}

	var cfg config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
