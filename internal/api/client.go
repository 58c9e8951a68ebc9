// Package api is the thin HTTP layer shared by every resource store. It
// knows how to issue JSON requests against the portfolio API and how to
// surface the server's structured error messages; it holds no state beyond
// the base URL and credentials.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TokenFunc supplies the bearer token for authenticated requests. An empty
// string means the request goes out unauthenticated.
type TokenFunc func() string

type Client struct {
	baseURL string
	token   TokenFunc
	httpc   *http.Client
}

func New(baseURL string, token TokenFunc) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// WithHTTPClient swaps the underlying transport, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpc = hc
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Error is a failed API response. Message is the server's structured
// message field when the body carried one, empty otherwise.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return c.httpc.Do(req)
}

// decode drains resp into T. Error responses become *Error carrying the
// server's message field when one can be extracted.
func decode[T any](resp *http.Response) (T, error) {
	defer resp.Body.Close()
	var zero T

	if resp.StatusCode >= 400 {
		return zero, decodeError(resp)
	}

	if resp.StatusCode == http.StatusNoContent {
		return zero, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(&zero); err != nil {
		if err == io.EOF {
			return zero, nil
		}
		return zero, fmt.Errorf("decoding response: %w", err)
	}
	return zero, nil
}

func decodeError(resp *http.Response) *Error {
	var payload struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	apiErr := &Error{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else if payload.Error.Message != "" {
			apiErr.Message = payload.Error.Message
		}
	}
	return apiErr
}

func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](resp)
}

func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](resp)
}

func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	resp, err := c.do(ctx, http.MethodPut, path, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](resp)
}

func Patch[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	resp, err := c.do(ctx, http.MethodPatch, path, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](resp)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	return nil
}
