// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client is a runnable client application. Run blocks until the user exits
// or a fatal error occurs.
type Client interface {
	Run() error
}
