// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session provides server-side session management backed by the
// filesystem. Session payloads are stored as files in the configured data
// directory; the browser only carries a signed session ID cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/models"
	"github.com/gorilla/sessions"
)

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
	loginKey  = "login"
)

// ErrSessionsDisabled is returned when a session store is requested but the
// configuration does not enable a supported session backend.
var ErrSessionsDisabled = errors.New("sessions are disabled or backend is unsupported")

// Store wraps a gorilla filesystem session store configured from the
// session.* settings of the application configuration.
type Store struct {
	store  *sessions.FilesystemStore
	name   string
	logger *logger.Logger
}

// NewStore builds a filesystem-backed session store from cfg. Only the
// "file" backend is supported; any other value (including empty, meaning
// sessions are disabled) returns [ErrSessionsDisabled].
func NewStore(cfg config.Session, log *logger.Logger) (*Store, error) {
	if cfg.Type != "file" {
		return nil, ErrSessionsDisabled
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("error creating session data directory: %w", err)
	}

	store := sessions.NewFilesystemStore(cfg.DataDir, []byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Timeout.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	log.Debug().Str("data_dir", cfg.DataDir).Msg("created filesystem session store")

	return &Store{
		store:  store,
		name:   cfg.Key,
		logger: log,
	}, nil
}

// Create opens (or starts) the session for the request, marks it
// authenticated for the given user and writes the session cookie to the
// response.
func (s *Store) Create(w http.ResponseWriter, r *http.Request, user models.User) error {
	sess, err := s.store.Get(r, s.name)
	if err != nil {
		// A stale or tampered cookie yields a decode error together with a
		// fresh session, which is all Create needs.
		s.logger.Debug().Err(err).Msg("replacing undecodable session")
	}

	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = user.UserID
	sess.Values[loginKey] = user.Login

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}

	return nil
}

// Destroy invalidates the session of the request, removing its file and
// expiring the cookie.
func (s *Store) Destroy(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.store.Get(r, s.name)
	if err != nil {
		return nil
	}

	sess.Options.MaxAge = -1
	sess.Values = make(map[any]any)

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("error destroying session: %w", err)
	}

	return nil
}

// UserID returns the authenticated user ID stored in the request's session.
// The second return value is false when the request carries no valid
// authenticated session.
func (s *Store) UserID(r *http.Request) (int64, bool) {
	sess, err := s.store.Get(r, s.name)
	if err != nil {
		return 0, false
	}

	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return 0, false
	}

	userID, ok := sess.Values[userIDKey].(int64)
	return userID, ok
}

// Name returns the session cookie name.
func (s *Store) Name() string {
	return s.name
}
