package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client retrieves result payloads over HTTP. It satisfies the
// transcribe.ResultFetcher interface.
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
	retries    int
}

type Options struct {
	Retries    int
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewClient(opts Options) *Client {
	if opts.Retries <= 0 {
		opts.Retries = 3
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 2 * time.Minute}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Client{
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		retries:    opts.Retries,
	}
}

// Fetch downloads the document at uri into memory. Transient failures are
// retried with a short linear delay; the payload of a completed job stays
// available on the service side, so a retry is always safe.
func (c *Client) Fetch(ctx context.Context, uri string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			c.logger.Warn("retrying result fetch", zap.Int("attempt", attempt), zap.Int("max", c.retries), zap.String("uri", uri))
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
		}

		body, err := c.fetchOnce(ctx, uri)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "distill/1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch result payload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read result payload: %w", err)
	}

	return body, nil
}
