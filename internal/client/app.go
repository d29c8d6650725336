// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-stack-keeper/internal/adapter"
	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/internal/tui"
)

type App struct {
	tui *tui.TUI
}

func NewApp(log *logger.Logger) (*App, error) {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	ui, err := tui.New(serverAdapter, log)
	if err != nil {
		return nil, fmt.Errorf("create terminal ui: %w", err)
	}

	return &App{tui: ui}, nil
}

func (a *App) Run() error {
	return a.tui.Run(context.Background())
}
