// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import "github.com/go-resty/resty/v2"

// HTTPClient embeds a *resty.Client so callers get the full resty request
// API while the application keeps one place to hang shared client behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent HTTP client with its own connection
// pool and configuration.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
