// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the interactive terminal client.
//
// It is built on Bubble Tea: a single appModel owns every screen (welcome,
// login, register, stack listing, stack detail, stack form) plus the error
// and confirmation overlays, and switches between them on navigation keys.
// All server communication happens through [adapter.ServerAdapter] in
// asynchronous tea commands.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-stack-keeper/internal/adapter"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	server adapter.ServerAdapter
}

func New(server adapter.ServerAdapter, _ *logger.Logger) (*TUI, error) {
	return &TUI{server: server}, nil
}

// Run starts the full interactive session: the welcome/login flow first,
// then the stack browser. It blocks until the user quits.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.server)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if errors.Is(result.err, ErrUserQuit) {
		return nil
	}
	return result.err
}
