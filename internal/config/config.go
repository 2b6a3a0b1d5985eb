// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config loads server settings from defaults, an optional YAML
// file, environment variables, and CLI flags, in that order of increasing
// priority — the same layered koanf setup the rest of the project's
// tooling uses for configuration.
package config

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

// Settings holds the tunables that bound a running server's resource use.
type Settings struct {
	Host               string `koanf:"host"`
	Port               int    `koanf:"port"`
	MaxSessions        int    `koanf:"max_sessions"`
	MaxUsersPerSession int    `koanf:"users_per_session"`
	MaxProjSizeKB      int    `koanf:"max_proj_size_kb"`
	TLSCert            string `koanf:"tls_cert"`
	TLSKey             string `koanf:"tls_key"`
}

// defaults mirror the original server's fallback values.
var defaults = map[string]interface{}{
	"host":              "0.0.0.0",
	"port":              8080,
	"max_sessions":      4,
	"users_per_session": 8,
	"max_proj_size_kb":  1024,
	"tls_cert":          "",
	"tls_key":           "",
}

// Load builds a Settings from, in increasing priority: built-in defaults,
// an optional YAML file at configPath (skipped if empty or missing),
// environment variables, then the flags already parsed onto flagSet.
func Load(configPath string, flagSet *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", configPath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	if flagSet != nil {
		if err := k.Load(posflag.Provider(flagSet, ".", k), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unmarshalling settings: %w", err)
	}
	return &s, nil
}
