// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/internal/service"
	"github.com/MKhiriev/go-stack-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces authentication on mutating
// endpoints.
//
// Requests carrying an "Authorization" header are authenticated by the
// bearer auth ticket: the ticket is validated via
// [service.AuthService.ParseTicket] and the subject user ID is stored in
// the request context under [utils.UserIDCtxKey]. When the header is
// absent and sessions are enabled, the middleware falls back to the
// server-side session cookie.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the
// following cases:
//   - No "Authorization" header and no authenticated session.
//   - The header value cannot be parsed as a bearer credential.
//   - The ticket has expired or is otherwise invalid.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			if h.sessions != nil {
				if userID, ok := h.sessions.UserID(r); ok {
					ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ticketString, err := getTicketFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		ticket, err := h.services.AuthService.ParseTicket(ctx, ticketString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTicketIsExpiredOrInvalid):
				log.Err(err).Msg("auth ticket expired or invalid")
				http.Error(w, service.ErrTicketIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("error occurred during parsing auth ticket")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
		}

		// Store the authenticated user's ID in the context so that downstream
		// handlers can retrieve it without re-parsing the ticket.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, ticket.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTicketFromAuthHeader extracts the bearer credential from a raw
// "Authorization" HTTP header value of the form "<scheme> <credential>".
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] if the header contains fewer than
//     two space-separated parts (i.e. the credential is missing entirely).
//   - [ErrEmptyToken] if the second part exists but is an empty string.
func getTicketFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	ticketString := parts[1]
	if ticketString == "" {
		return "", ErrEmptyToken
	}

	return ticketString, nil
}
