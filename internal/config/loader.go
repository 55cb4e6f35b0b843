package config

import (
	"context"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if HUDDLE_CONFIG is set
//  3. env (prefix HUDDLE_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("HUDDLE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, NewKind(ErrLoadConfig, err)
		}
	}

	// Environment variables: HUDDLE_ADDR, HUDDLE_INTAKE_PATH, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("HUDDLE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "huddle_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, NewKind(ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, NewKind(ErrLoadConfig, err)
	}

	switch {
	case cfg.Addr == "":
		return nil, NewKind(ErrInvalidConfig, nil)
	case cfg.IntakePath == "":
		return nil, NewKind(ErrInvalidConfig, nil)
	}
	if cfg.ChallengeName == "" {
		cfg.ChallengeName = base.ChallengeName
	}
	return &cfg, nil
}
