package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// Network performs one GET and returns the response body.
type Network interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// HTTPNetwork is the Network used on real hosts. Requests are spaced by a
// rate limiter so rapid feed skipping cannot hammer upstream servers, and
// bodies are converted to UTF-8 using the declared or sniffed charset.
type HTTPNetwork struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
}

func NewHTTPNetwork(timeout time.Duration, userAgent string, minInterval time.Duration) *HTTPNetwork {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &HTTPNetwork{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

func (n *HTTPNetwork) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	url := NormalizeURL(rawURL)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var body io.Reader = resp.Body
	if r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type")); err == nil {
		body = r
	} else {
		slog.Debug("Charset detection failed, using raw body", "url", url, "error", err)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// NormalizeURL adds an http scheme to URLs configured without one.
func NormalizeURL(rawURL string) string {
	if strings.Contains(rawURL, "://") {
		return rawURL
	}
	return "http://" + rawURL
}
