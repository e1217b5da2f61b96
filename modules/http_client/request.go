package http_client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Response is what a request returns to script.
type Response struct {
	StatusCode int    `json:"status_code"`
	Body       string `json:"body"`
}

// Do performs one request. An empty method means GET.
func Do(ctx context.Context, logger *slog.Logger, client *http.Client, method, url, body string) (*Response, error) {
	if method == "" {
		method = http.MethodGet
	}
	logger.Info("Making HTTP request", "method", method, "url", url)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	logger.Info("Received HTTP response", "status", resp.Status)

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: string(bodyBytes)}, nil
}
