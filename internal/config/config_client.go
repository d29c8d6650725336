// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ServerAddress is the HTTP endpoint of the stack-keeper server.
	ServerAddress string `env:"SERVER_ADDRESS"`
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the configuration of the terminal client. It is
// intentionally small: the client only needs to know where the server is
// and how patient to be.
type ClientConfig struct {
	// Adapter contains client transport address and timeout.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`
}

// GetClientConfig assembles the client configuration from environment
// variables and command-line flags, with built-in defaults filling the
// gaps, and validates the result.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	var serverAddress string
	var requestTimeout time.Duration
	flag.StringVar(&serverAddress, "s", "", "Server address, e.g. http://localhost:6543")
	flag.DurationVar(&requestTimeout, "timeout", 0, "Request timeout (e.g. 15s)")
	flag.Parse()

	if cfg.Adapter.ServerAddress == "" {
		cfg.Adapter.ServerAddress = serverAddress
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = requestTimeout
	}

	if cfg.Adapter.ServerAddress == "" {
		cfg.Adapter.ServerAddress = "http://localhost:6543"
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = 15 * time.Second
	}

	return cfg, cfg.validate()
}
