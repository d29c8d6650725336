// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/internal/service"
	"github.com/MKhiriev/go-stack-keeper/internal/session"
	"github.com/MKhiriev/go-stack-keeper/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	loginFn        func(ctx context.Context, user models.User) (models.User, error)
	createTicketFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTicketFn  func(ctx context.Context, ticketString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) CreateTicket(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTicketFn(ctx, user)
}

func (m *mockAuthService) ParseTicket(ctx context.Context, ticketString string) (models.Token, error) {
	return m.parseTicketFn(ctx, ticketString)
}

// ─────────────────────────────────────────────
// Mock StackService
// ─────────────────────────────────────────────

// mockStackService implements service.StackService for unit tests.
type mockStackService struct {
	getFn    func(ctx context.Context, name string) (models.StackResponse, error)
	queryFn  func(ctx context.Context, query models.StackQuery) (models.StackListResponse, error)
	saveFn   func(ctx context.Context, userID int64, request models.SaveStackRequest) (models.StackResponse, error)
	deleteFn func(ctx context.Context, userID int64, name string) (models.StatusResponse, error)
}

func (m *mockStackService) GetStack(ctx context.Context, name string) (models.StackResponse, error) {
	return m.getFn(ctx, name)
}

func (m *mockStackService) QueryStacks(ctx context.Context, query models.StackQuery) (models.StackListResponse, error) {
	return m.queryFn(ctx, query)
}

func (m *mockStackService) SaveStack(ctx context.Context, userID int64, request models.SaveStackRequest) (models.StackResponse, error) {
	return m.saveFn(ctx, userID, request)
}

func (m *mockStackService) DeleteStack(ctx context.Context, userID int64, name string) (models.StatusResponse, error) {
	return m.deleteFn(ctx, userID, name)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler around the given service mocks with
// sessions disabled and no CORS configuration.
func newTestHandler(t *testing.T, auth service.AuthService, stacks service.StackService) *Handler {
	t.Helper()
	svcs := &service.Services{
		AuthService:  auth,
		StackService: stacks,
	}
	return NewHandler(svcs, nil, config.CORS{}, logger.Nop())
}

// newTestSessionStore builds a filesystem session store in a temporary
// directory.
func newTestSessionStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.NewStore(config.Session{
		Type:    "file",
		DataDir: t.TempDir(),
		Key:     "stack-keeper",
		Secret:  "test-session-secret",
		Timeout: time.Hour,
	}, logger.Nop())
	require.NoError(t, err)
	return store
}

// jsonBody serialises any value to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// stubTicket returns a models.Token with the given signed string.
func stubTicket(signed string) models.Token {
	return models.Token{SignedString: signed}
}

// validUser is a convenience fixture used across multiple tests.
var validUser = models.User{
	Login:    "alice",
	Password: "s3cret",
}
