package downloader

import (
	"net/http"
	"time"
)

// Option configures an HTTPDownloader
type Option func(*HTTPDownloader)

// WithTimeout sets the per-request timeout. Ignored when a custom client is set.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPDownloader) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithToken sends token as X-Plex-Token on every request
func WithToken(token string) Option {
	return func(h *HTTPDownloader) { h.token = token }
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(h *HTTPDownloader) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying client (tests, custom transports)
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPDownloader) { h.httpClient = c }
}
