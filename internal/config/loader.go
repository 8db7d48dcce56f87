package config

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "PUIMURI_"
	envConfig  = envPrefix + "CONFIG"
	keyDivider = "."

	// Bare PORT and ADDRESS are honoured for deployments that predate addr.
	envLegacyPort    = "PORT"
	envLegacyAddress = "ADDRESS"
	defaultHost      = "127.0.0.1"
	defaultPort      = "8000"
)

// Load builds a Config by layering defaults, an optional file and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. YAML file if PUIMURI_CONFIG is set
//  3. env (prefix PUIMURI_)
//
// When neither the file nor the env sets addr, PORT and ADDRESS are
// combined into it.
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(keyDivider)

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// PUIMURI_FRONTEND_DIR -> frontend_dir; underscores are kept so keys
	// stay flat and match the koanf tags.
	envProvider := env.Provider(envPrefix, keyDivider, func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ToLower(s)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}
	// The config path itself is not a setting.
	k.Delete("config")

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if !k.Exists("addr") {
		if a, ok := legacyAddr(); ok {
			cfg.Addr = a
		}
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func legacyAddr() (string, bool) {
	host, hostSet := os.LookupEnv(envLegacyAddress)
	port, portSet := os.LookupEnv(envLegacyPort)
	if !hostSet && !portSet {
		return "", false
	}
	if host == "" {
		host = defaultHost
	}
	if port == "" {
		port = defaultPort
	}
	return net.JoinHostPort(host, port), true
}
