// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// StackQuery represents search criteria for the paginated stack listing.
type StackQuery struct {
	// Name filters for an exact stack name match.
	Name string `json:"name,omitempty"`

	// Like filters for stack names containing the given substring.
	Like string `json:"like,omitempty"`

	// Packages filters for stacks containing any of the named packages.
	Packages []string `json:"packages,omitempty"`

	// Page is the 1-based page number. Values below 1 are normalized
	// to 1.
	Page int `json:"page,omitempty"`

	// RowsPerPage caps the number of stacks per page. Values below 1
	// fall back to the default page size.
	RowsPerPage int `json:"rows_per_page,omitempty"`
}

// SaveStackRequest carries a stack create-or-update submission. The three
// relationship lists fully replace the stack's current associations when
// non-nil.
type SaveStackRequest struct {
	// Name identifies the stack to create or update. Required.
	Name string `json:"name"`

	// Description replaces the stack description when non-empty.
	Description string `json:"description,omitempty"`

	// Packages lists package names grouped under the stack.
	Packages []string `json:"packages,omitempty"`

	// Users lists the logins of the stack owners.
	Users []string `json:"users,omitempty"`

	// Groups lists the names of the owning groups.
	Groups []string `json:"groups,omitempty"`
}
