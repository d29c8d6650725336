// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the process cannot start without. Everything else is left to
// the consuming subsystem: unknown keys are ignored and optional groups
// (cache, notifications, container copy) may be empty.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DatabaseURL == "" {
		return ErrInvalidStorageConfigs
	}
	if !strings.Contains(cfg.Storage.DatabaseURL, "://") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return ErrInvalidServerConfigs
	}

	if cfg.Session.Type != "" {
		if cfg.Session.Secret == "" || cfg.Session.DataDir == "" {
			return ErrInvalidSessionConfigs
		}
	}

	if cfg.AuthTkt.Secret == "" {
		return ErrInvalidAuthTktConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.ServerAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
