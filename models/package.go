// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Package is a software package tracked by the application. A package may
// belong to at most one stack.
type Package struct {
	// PackageID is the internal unique identifier of the package.
	PackageID int64 `json:"-"`

	// Name is the unique package name, e.g. "gnome-shell".
	Name string `json:"name"`

	// Requirements lists test gating requirements recorded for the
	// package, if any.
	Requirements string `json:"requirements,omitempty"`
}

// TableName returns the name of the database table
// associated with the Package model.
func (p Package) TableName() string {
	return "packages"
}
