// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

// Server is the lifecycle contract of a transport server. RunServer blocks
// until the process is asked to stop; Shutdown drains in-flight requests and
// releases the listener.
type Server interface {
	RunServer()
	Shutdown()
}
