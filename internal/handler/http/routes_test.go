// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/internal/service"
	"github.com/MKhiriev/go-stack-keeper/models"
	"github.com/stretchr/testify/assert"
)

// ---- Mock: AuthService ----

type mockAuthSvc struct{}

func (m *mockAuthSvc) RegisterUser(_ context.Context, u models.User) (models.User, error) {
	return u, nil
}
func (m *mockAuthSvc) Login(_ context.Context, u models.User) (models.User, error) {
	return u, nil
}
func (m *mockAuthSvc) CreateTicket(_ context.Context, _ models.User) (models.Token, error) {
	return models.Token{}, nil
}
func (m *mockAuthSvc) ParseTicket(_ context.Context, _ string) (models.Token, error) {
	return models.Token{UserID: 1}, nil
}

// ---- Mock: StackService ----

type mockStackSvc struct{}

func (m *mockStackSvc) GetStack(_ context.Context, _ string) (models.StackResponse, error) {
	return models.StackResponse{}, nil
}
func (m *mockStackSvc) QueryStacks(_ context.Context, _ models.StackQuery) (models.StackListResponse, error) {
	return models.StackListResponse{}, nil
}
func (m *mockStackSvc) SaveStack(_ context.Context, _ int64, _ models.SaveStackRequest) (models.StackResponse, error) {
	return models.StackResponse{}, nil
}
func (m *mockStackSvc) DeleteStack(_ context.Context, _ int64, _ string) (models.StatusResponse, error) {
	return models.StatusResponse{}, nil
}

// ---- Helper ----

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	h := &Handler{
		logger: logger.Nop(),
		cors: config.CORS{
			OriginsRO: []string{"*"},
			OriginsRW: []string{"https://bodhi.example.com"},
		},
		services: &service.Services{
			AuthService:  &mockAuthSvc{},
			StackService: &mockStackSvc{},
		},
	}
	return h.Init()
}

// ---- Public routes: reachable without auth ----

func TestInit_PublicRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/stacks/"},
		{http.MethodGet, "/api/stacks/GNOME"},
		{http.MethodPost, "/api/user/register"},
		{http.MethodPost, "/api/user/login"},
		{http.MethodPost, "/api/user/logout"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.NotEqual(t, http.StatusNotFound, rr.Code,
				"route should be registered: %s %s", tt.method, tt.path)
			assert.NotEqual(t, http.StatusUnauthorized, rr.Code,
				"route should not require auth: %s %s", tt.method, tt.path)
		})
	}
}

// ---- Protected routes: 401 without a ticket ----

func TestInit_ProtectedRoutes_RequireAuth(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/stacks/"},
		{http.MethodDelete, "/api/stacks/GNOME"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code,
				"route should require auth: %s %s", tt.method, tt.path)
		})
	}
}

// ---- Protected routes: pass with a ticket ----

func TestInit_ProtectedRoutes_AcceptBearerTicket(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/stacks/GNOME", nil)
	req.Header.Set("Authorization", "Bearer stub-ticket")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

// ---- CORS: read-only listing allows any origin ----

func TestInit_ReadOnlyCORS(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stacks/", nil)
	req.Header.Set("Origin", "https://anywhere.example.org")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "https://anywhere.example.org", rr.Header().Get("Access-Control-Allow-Origin"))
}

// ---- Unknown method on a known path maps to 404 ----

func TestInit_MethodNotAllowedBecomesNotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/stacks/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
