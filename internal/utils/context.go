// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small helpers shared across the application: context
// keys, JSON response writing, the outbound HTTP client, and auth ticket
// generation and validation.
package utils

import "context"

// contextKey is a private key type, so context values set here cannot
// collide with string keys from other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the authenticated user's id in a request context.
// Paired with [GetUserIDFromContext] for type-safe retrieval.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext returns the user id stored in ctx. ok is false when
// the value is absent or not an int64.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
