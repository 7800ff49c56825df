package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/x1thexxx-lgtm/pinger/pkg/config"
)

// HTTPReporter posts identity records to a collector endpoint.
type HTTPReporter struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewHTTPReporter builds an HTTP reporter.
func NewHTTPReporter(cfg config.ReportingConfig) *HTTPReporter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPReporter{
		endpoint:   sanitizeEndpoint(cfg.Endpoint),
		token:      strings.TrimSpace(cfg.Token),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name implements Reporter.
func (r *HTTPReporter) Name() string { return config.TransportHTTP }

// Send posts the record as a JSON object.
func (r *HTTPReporter) Send(ctx context.Context, data map[string]string) error {
	if r.endpoint == "" {
		return fmt.Errorf("reporting endpoint not configured")
	}
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("report failed: %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	return nil
}

func sanitizeEndpoint(raw string) string {
	trimmed := strings.TrimSpace(raw)
	return strings.TrimRight(trimmed, "/")
}
