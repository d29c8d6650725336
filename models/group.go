// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Group is a named collection of users used for stack co-ownership.
type Group struct {
	// GroupID is the internal unique identifier of the group.
	GroupID int64 `json:"-"`

	// Name is the unique group name, e.g. "infra-sig".
	Name string `json:"name"`
}

// TableName returns the name of the database table
// associated with the Group model.
func (g Group) TableName() string {
	return "groups"
}
