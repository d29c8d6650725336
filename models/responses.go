// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// StackResponse wraps a single stack, matching the envelope of the JSON
// API.
type StackResponse struct {
	Stack Stack `json:"stack"`
}

// StackListResponse is the paginated stack listing envelope.
type StackListResponse struct {
	// Stacks holds the page of matching stacks ordered by name
	// descending.
	Stacks []Stack `json:"stacks"`

	// Page is the 1-based page number that was returned.
	Page int `json:"page"`

	// Pages is the total number of pages for the query.
	Pages int `json:"pages"`

	// RowsPerPage is the page size used for the query.
	RowsPerPage int `json:"rows_per_page"`

	// Total is the total number of stacks matching the query across all
	// pages.
	Total int `json:"total"`
}

// StatusResponse reports the outcome of a mutation without a payload,
// e.g. a stack deletion.
type StatusResponse struct {
	Status string `json:"status"`
}
