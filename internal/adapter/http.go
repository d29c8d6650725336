// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/internal/utils"
	"github.com/MKhiriev/go-stack-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	ticket string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.ServerAddress and configures the underlying HTTP client with
// the resolved base URL and request timeout.
//
// Returns an error if adapterCfg.ServerAddress is empty or cannot be parsed
// as a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter server address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetTicket implements [ServerAdapter]. It stores the ticket
// (whitespace-trimmed) for use in the Authorization header of all
// subsequent authenticated requests.
func (h *httpServerAdapter) SetTicket(ticket string) {
	h.ticket = strings.TrimSpace(ticket)
}

// Ticket implements [ServerAdapter]. It returns the bearer ticket currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Ticket() string {
	return h.ticket
}

// Register implements [ServerAdapter]. It POSTs the user credentials to
// POST /api/user/register. On success the bearer ticket is extracted from
// the Authorization response header and stored via SetTicket.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/user/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	ticket, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer ticket: %w", err)
	}

	h.SetTicket(ticket)
	return user, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/user/login. On success the bearer ticket is extracted from the
// Authorization response header and stored via SetTicket.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/user/login")
	if err != nil {
		return user, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return user, err
	}

	ticket, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return user, fmt.Errorf("login parse bearer ticket: %w", err)
	}

	h.SetTicket(ticket)
	return user, nil
}

// ListStacks implements [ServerAdapter]. It GETs /api/stacks/ with the
// query criteria encoded as URL parameters and decodes the paginated
// listing envelope.
func (h *httpServerAdapter) ListStacks(ctx context.Context, query models.StackQuery) (models.StackListResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(listingParams(query)).
		Get("/api/stacks/")
	if err != nil {
		return models.StackListResponse{}, fmt.Errorf("list stacks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StackListResponse{}, err
	}

	var listing models.StackListResponse
	if err = json.Unmarshal(resp.Body(), &listing); err != nil {
		return models.StackListResponse{}, fmt.Errorf("decode stack listing response: %w", err)
	}

	return listing, nil
}

// GetStack implements [ServerAdapter]. It GETs /api/stacks/{name} and
// decodes the single-stack envelope.
func (h *httpServerAdapter) GetStack(ctx context.Context, name string) (models.StackResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("name", name).
		Get("/api/stacks/{name}")
	if err != nil {
		return models.StackResponse{}, fmt.Errorf("get stack request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StackResponse{}, err
	}

	var stack models.StackResponse
	if err = json.Unmarshal(resp.Body(), &stack); err != nil {
		return models.StackResponse{}, fmt.Errorf("decode stack response: %w", err)
	}

	return stack, nil
}

// SaveStack implements [ServerAdapter]. It POSTs the submission to
// POST /api/stacks/. Requires a valid bearer ticket. Returns [ErrConflict]
// (wrapped) on HTTP 409 and [ErrForbidden] (wrapped) on HTTP 403.
func (h *httpServerAdapter) SaveStack(ctx context.Context, request models.SaveStackRequest) (models.StackResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Post("/api/stacks/")
	if err != nil {
		return models.StackResponse{}, fmt.Errorf("save stack request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StackResponse{}, err
	}

	var saved models.StackResponse
	if err = json.Unmarshal(resp.Body(), &saved); err != nil {
		return models.StackResponse{}, fmt.Errorf("decode saved stack response: %w", err)
	}

	return saved, nil
}

// DeleteStack implements [ServerAdapter]. It sends a DELETE request to
// DELETE /api/stacks/{name}. Requires a valid bearer ticket. Returns
// [ErrForbidden] (wrapped) on HTTP 403 and [ErrNotFound] (wrapped) on
// HTTP 404.
func (h *httpServerAdapter) DeleteStack(ctx context.Context, name string) (models.StatusResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("name", name).
		Delete("/api/stacks/{name}")
	if err != nil {
		return models.StatusResponse{}, fmt.Errorf("delete stack request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StatusResponse{}, err
	}

	var status models.StatusResponse
	if err = json.Unmarshal(resp.Body(), &status); err != nil {
		return models.StatusResponse{}, fmt.Errorf("decode delete status response: %w", err)
	}

	return status, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if ticket := h.Ticket(); ticket != "" {
		req.SetHeader("Authorization", "Bearer "+ticket)
	}
	return req
}

func listingParams(query models.StackQuery) url.Values {
	params := url.Values{}
	if query.Name != "" {
		params.Set("name", query.Name)
	}
	if query.Like != "" {
		params.Set("like", query.Like)
	}
	for _, name := range query.Packages {
		params.Add("packages", name)
	}
	if query.Page > 0 {
		params.Set("page", fmt.Sprint(query.Page))
	}
	if query.RowsPerPage > 0 {
		params.Set("rows_per_page", fmt.Sprint(query.RowsPerPage))
	}
	return params
}
