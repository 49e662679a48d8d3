package supplier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"travelhub/apperr"
	"travelhub/obs"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// StatusReporter is implemented by response envelopes that carry their own
// success flag next to the HTTP status.
type StatusReporter interface {
	SupplierStatus() (ok bool, message string)
}

// Client performs authenticated JSON calls against one supplier. Calls are
// never retried.
type Client struct {
	Name    string
	BaseURL string
	Auth    Authenticator
	HTTP    *http.Client
	// Limiter paces outbound calls when set.
	Limiter *rate.Limiter
	Metrics *obs.Metrics
	Logger  *zap.Logger

	now func() time.Time
}

func NewClient(name, baseURL string, auth Authenticator, timeout time.Duration, metrics *obs.Metrics, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		Name:    name,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Auth:    auth,
		HTTP:    &http.Client{Timeout: timeout},
		Metrics: metrics,
		Logger:  logger.With(zap.String("supplier", name)),
		now:     time.Now,
	}
}

// Do sends body (if any) as JSON and decodes the response into out (if any).
// Transport failures, non-2xx answers and envelopes reporting a non-ok status
// are returned as apperr Upstream errors.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	start := time.Now()
	err := c.do(ctx, method, path, query, body, out)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		c.Logger.Warn("Supplier call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err))
	} else {
		c.Logger.Debug("Supplier call succeeded",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("latency", time.Since(start)))
	}
	if c.Metrics != nil {
		c.Metrics.ObserveSupplier(c.Name, outcome, time.Since(start).Seconds())
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return apperr.Upstream(0, fmt.Sprintf("%s request cancelled", c.Name))
		}
	}

	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", c.Name, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", c.Name, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Auth != nil {
		c.Auth.Apply(req, c.now())
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &apperr.Error{
			Kind:    apperr.KindUpstream,
			Message: fmt.Sprintf("%s is unreachable", c.Name),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperr.Error{
			Kind:       apperr.KindUpstream,
			Message:    fmt.Sprintf("failed to read %s response", c.Name),
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperr.Upstream(resp.StatusCode, fmt.Sprintf("%s: %s", c.Name, errorMessage(raw, resp.StatusCode)))
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &apperr.Error{
			Kind:       apperr.KindUpstream,
			Message:    fmt.Sprintf("unexpected %s response", c.Name),
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	if sr, ok := out.(StatusReporter); ok {
		if good, msg := sr.SupplierStatus(); !good {
			return apperr.Upstream(resp.StatusCode, fmt.Sprintf("%s: %s", c.Name, msg))
		}
	}
	return nil
}

// errorMessage extracts the supplier's own error text from a failed response.
func errorMessage(raw []byte, status int) string {
	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		var s string
		if json.Unmarshal(body.Error, &s) == nil && s != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body.Error, &nested) == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return http.StatusText(status)
}
