// Package apiclient talks to the storefront backend. Every endpoint answers with
// the same envelope ({"success", "message", "data"}); a non-success envelope and a
// transport failure both come back as *APIError so callers can treat them alike.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pawmart-web/internal/logger"
	"pawmart-web/internal/metrics"
	"pawmart-web/internal/utils"

	"go.uber.org/zap"
)

const (
	MetricRequests = "backend.requests"
	MetricFailures = "backend.failures"
)

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Registry
}

func New(baseURL string, timeout time.Duration, reg *metrics.Registry) *Client {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: reg,
	}
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

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "apiclient"),
		zap.String("op", op),
	)

	c.metrics.Counter(MetricRequests).Inc()
	timer := metrics.StartTimer()

	fail := func(err *APIError) error {
		c.metrics.Counter(MetricFailures).Inc()
		log.Warn("backend call failed",
			zap.Int("status", err.StatusCode),
			zap.String("message", err.Message),
			zap.Error(err.Err),
			zap.Duration("duration", timer.Duration()),
		)
		return err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fail(&APIError{Op: op, Err: fmt.Errorf("marshal request: %w", err)})
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fail(&APIError{Op: op, Err: err})
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := utils.GetAccessToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if reqID := logger.RequestIDFrom(ctx); reqID != "" {
		req.Header.Set(logger.RequestIDHeader, reqID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(&APIError{Op: op, Err: err})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(&APIError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)})
	}

	var env envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return fail(&APIError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode envelope: %w", err)})
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || (env.Success != nil && !*env.Success) {
		return fail(&APIError{Op: op, StatusCode: resp.StatusCode, Message: env.Message, Err: ErrNotSuccessful})
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fail(&APIError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode data: %w", err)})
		}
	}

	log.Debug("backend call ok",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", timer.Duration()),
	)
	return nil
}
