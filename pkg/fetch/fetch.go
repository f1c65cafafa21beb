// Package fetch performs the small JSON GET requests the widgets make against
// public services.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// UserAgent identifies requests to public services that ask for one.
const UserAgent = "routine/1.0 (daily checklist)"

const maxBody = 2 * 1024 * 1024

// DefaultTimeout bounds a single request when the caller has no client.
const DefaultTimeout = 10 * time.Second

// StatusError is returned for any non-200 response.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// Client returns a client with timeout, or DefaultTimeout when zero.
func Client(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// JSON issues a GET for rawURL and decodes the body into v.
func JSON(ctx context.Context, client *http.Client, rawURL string, v interface{}) error {
	body, err := get(ctx, client, rawURL, "application/json", maxBody)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// Bytes issues a GET for rawURL and returns at most limit bytes of the body.
func Bytes(ctx context.Context, client *http.Client, rawURL string, limit int64) ([]byte, error) {
	return get(ctx, client, rawURL, "", limit)
}

func get(ctx context.Context, client *http.Client, rawURL, accept string, limit int64) ([]byte, error) {
	if client == nil {
		client = Client(0)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: rawURL, Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
