package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-sod/attrition/internal/httputil"
	"github.com/go-sod/attrition/internal/predict"
)

type prefixRoundTripper struct {
	addr string
	rt   http.RoundTripper
}

func (p *prefixRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	u := r.URL
	if u.Scheme == "" {
		u.Scheme = "http"
	}
	if u.Host == "" {
		u.Host = p.addr
	}

	return p.rt.RoundTrip(r)
}

// NewClient returns a client of the attrition HTTP API served on addr.
func NewClient(addr string, cfg httputil.HTTPClientConfig) *Client {
	client := httputil.NewClientFromConfig(cfg)
	client.Transport = &prefixRoundTripper{addr: addr, rt: client.Transport}
	return &Client{client: client}
}

type Client struct {
	client *http.Client
}

// StatusError is returned for any non-2xx answer of the server.
type StatusError struct {
	Code int
	Body predict.ErrorResponse
}

func (e *StatusError) Error() string {
	if e.Body.Kind != "" {
		return fmt.Sprintf("server responded %d: %s: %s", e.Code, e.Body.Kind, e.Body.Error)
	}
	return fmt.Sprintf("server responded %d: %s", e.Code, e.Body.Error)
}

func (c *Client) Predict(ctx context.Context, fields map[string]interface{}) (*predict.Item, error) {
	resp, err := c.PredictBatch(ctx, []map[string]interface{}{fields})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != 1 {
		return nil, fmt.Errorf("unexpected response length: %d", len(resp.Data))
	}
	return &resp.Data[0], nil
}

func (c *Client) PredictBatch(ctx context.Context, data []map[string]interface{}) (*predict.Response, error) {
	b, err := json.Marshal(&predict.Request{Data: data})
	if err != nil {
		return nil, fmt.Errorf("unable marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/predict", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out predict.Response
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Schema(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/schema", nil)
	if err != nil {
		return nil, fmt.Errorf("create new request: %w", err)
	}

	var out struct {
		Columns []string `json:"columns"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Columns, nil
}

func (c *Client) Health(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, fmt.Errorf("create new request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return resp, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("error with sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Code: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&statusErr.Body); err != nil {
			statusErr.Body.Error = http.StatusText(resp.StatusCode)
		}
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("unable decode response: %w", err)
	}
	return nil
}
