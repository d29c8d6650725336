// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and stack
// ownership checks. Sensitive fields must never be exposed outside trusted
// boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name,omitempty"`

	// Password carries the plaintext password on inbound register/login
	// requests only. It is never persisted and never serialized back.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored at the persistence layer.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// Groups lists the names of the groups the user belongs to.
	Groups []string `json:"groups,omitempty"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
