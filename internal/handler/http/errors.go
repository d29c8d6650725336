// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Errors returned while extracting the auth ticket from the Authorization
// request header.
var (
	// ErrEmptyAuthorizationHeader: the request carries no Authorization
	// header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader: the header cannot be split into a
	// scheme and a ticket value.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken: the scheme is present but the ticket value is empty.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
