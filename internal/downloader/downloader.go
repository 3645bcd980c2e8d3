package downloader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/kinoart/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Kinoart/1.0"
	clientID       = "kinoart-client"

	// Posters above this size are almost certainly a misrouted response
	maxImageBytes = 32 << 20
)

// HTTPDownloader implements domain.ImageDownloader over plain HTTP(S)
type HTTPDownloader struct {
	token      string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates an HTTPDownloader
func New(logger *slog.Logger, opts ...Option) *HTTPDownloader {
	if logger == nil {
		logger = slog.Default()
	}
	h := &HTTPDownloader{
		userAgent: userAgent,
		timeout:   defaultTimeout,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.httpClient == nil {
		h.httpClient = &http.Client{Timeout: h.timeout}
	}
	return h
}

// Download fetches the image at rawURL
func (h *HTTPDownloader) Download(ctx context.Context, rawURL string) (*domain.Image, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "image/*")
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("X-Plex-Client-Identifier", clientID)
	if h.token != "" {
		req.Header.Set("X-Plex-Token", h.token)
	}

	h.logger.Debug("image request", "url", rawURL)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		h.logger.Error("image request failed", "url", rawURL, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrImageNotFound, rawURL)
	default:
		h.logger.Error("image request error", "url", rawURL, "status", resp.StatusCode)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes: %s", maxImageBytes, rawURL)
	}

	contentType := mediaType(resp.Header.Get("Content-Type"))
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mediaType(http.DetectContentType(body))
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: content type %q", domain.ErrNotAnImage, contentType)
	}

	h.logger.Debug("image downloaded", "url", rawURL, "bytes", len(body), "type", contentType)

	return &domain.Image{
		Key:         rawURL,
		URL:         rawURL,
		ContentType: contentType,
		Data:        body,
		FetchedAt:   time.Now(),
	}, nil
}

// mediaType strips parameters ("image/png; q=1" -> "image/png")
func mediaType(header string) string {
	if header == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(header, ";")[0]))
	}
	return mt
}
