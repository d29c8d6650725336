// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the stack-keeper server.
//
// The primary abstraction is [ServerAdapter], which decouples the terminal
// client from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-stack-keeper/models"
)

// ServerAdapter defines transport-agnostic communication with the
// stack-keeper server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
type ServerAdapter interface {
	// SetTicket stores the bearer auth ticket that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful Register or Login.
	SetTicket(ticket string)

	// Ticket returns the auth ticket currently stored in the adapter, or an
	// empty string if no ticket has been set yet.
	Ticket() string

	// Register sends a registration request to the server with the provided
	// user credentials. On success it stores the returned bearer ticket via
	// SetTicket and returns the user value.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user with the server. On success it stores the
	// returned bearer ticket via SetTicket.
	Login(ctx context.Context, user models.User) (models.User, error)

	// ListStacks fetches one page of the stack listing matching the query.
	ListStacks(ctx context.Context, query models.StackQuery) (models.StackListResponse, error)

	// GetStack fetches a single stack by name.
	GetStack(ctx context.Context, name string) (models.StackResponse, error)

	// SaveStack creates or updates a stack. Requires a valid bearer ticket.
	SaveStack(ctx context.Context, request models.SaveStackRequest) (models.StackResponse, error)

	// DeleteStack removes a stack by name. Requires a valid bearer ticket.
	DeleteStack(ctx context.Context, name string) (models.StatusResponse, error)
}
