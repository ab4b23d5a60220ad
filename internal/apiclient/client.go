package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/candy-inventory-ui/internal/metrics"
)

const (
	StreamPath = "/stream/inventory"
	ExportPath = "/export"
)

// APIError is returned for any response outside the 2xx range. Its message is
// the response body when there is one, the status code otherwise.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return body
	}
	return strconv.Itoa(e.Status)
}

// Client talks to the inventory API. Every call is a single attempt: there are
// no retries and no client-side timeout.
type Client struct {
	baseURL    string
	prefix     string
	httpClient *http.Client
}

func New(baseURL, prefix string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		prefix:     strings.TrimRight(prefix, "/"),
		httpClient: httpClient,
	}
}

// URL resolves an API path against the base URL and the configured prefix.
func (c *Client) URL(path string) string {
	return c.baseURL + c.prefix + path
}

// ExportURL is the CSV download address for a table. It is meant to be
// navigated to, never fetched by the client.
func (c *Client) ExportURL(table string) string {
	return c.URL(ExportPath + "?" + url.Values{"table": {table}}.Encode())
}

func (c *Client) StreamURL() string {
	return c.URL(StreamPath)
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (err error) {
	defer func() {
		metrics.APICalls.WithLabelValues(method, metrics.Outcome(err)).Inc()
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Body: string(text)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
