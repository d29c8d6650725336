// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background tasks of the server process: small
// periodic jobs that live next to the request path but never block it.
package workers

// Worker is a background task started once at process startup. Run either
// returns after scheduling its own goroutines or blocks for the lifetime of
// the worker.
type Worker interface {
	Run()
}
