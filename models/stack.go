// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Stack is a named collection of packages that are built, tested, and
// updated together. Ownership is tracked through associated users and
// groups; only owners (or members of owning groups) may modify a stack
// that has any owners at all.
type Stack struct {
	// StackID is the internal unique identifier of the stack.
	StackID int64 `json:"-"`

	// Name is the unique, user-visible stack name.
	Name string `json:"name"`

	// Description is free-form text describing the stack.
	Description string `json:"description,omitempty"`

	// Packages are the packages grouped under this stack.
	Packages []Package `json:"packages,omitempty"`

	// Users are the stack owners.
	Users []User `json:"users,omitempty"`

	// Groups are the groups whose members co-own the stack.
	Groups []Group `json:"groups,omitempty"`

	// CreatedAt is the timestamp when the stack was first saved.
	CreatedAt time.Time `json:"created_at,omitzero"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the Stack model.
func (s Stack) TableName() string {
	return "stacks"
}

// OwnedBy reports whether the given user is an owner of the stack, either
// directly or through one of the owning groups.
func (s Stack) OwnedBy(user User) bool {
	for _, owner := range s.Users {
		if owner.Login == user.Login {
			return true
		}
	}

	for _, group := range s.Groups {
		for _, member := range user.Groups {
			if group.Name == member {
				return true
			}
		}
	}

	return false
}

// HasOwners reports whether any user or group owns the stack. A stack
// without owners may be modified by any authenticated user, who becomes
// its first owner.
func (s Stack) HasOwners() bool {
	return len(s.Users) > 0 || len(s.Groups) > 0
}
