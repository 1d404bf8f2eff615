// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPSource fetches the schema document from a fixed URL.
type HTTPSource struct {
	client *http.Client
	url    string
}

// NewHTTPSource creates an HTTPSource. client may be nil, in which case
// http.DefaultClient is used.
func NewHTTPSource(client *http.Client, url string) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{client: client, url: url}
}

// Name identifies the source in logs and errors.
func (s *HTTPSource) Name() string {
	return s.url
}

// Fetch performs a single GET. 2xx is Found, 4xx is NotFound, everything
// else (5xx, network failure) is Transient.
func (s *HTTPSource) Fetch(ctx context.Context) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Result{Status: Transient, Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{Status: Transient, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return Result{Status: Transient, Err: fmt.Errorf("read response body: %w", err)}
		}
		return Result{Status: Found, Body: body}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return Result{Status: NotFound, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	default:
		return Result{Status: Transient, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
}
