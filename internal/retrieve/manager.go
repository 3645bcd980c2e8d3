// Package retrieve resolves image URLs through a cache and a downloader,
// both chosen per call from an options.Info.
package retrieve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"reflect"

	"github.com/mmcdole/kinoart/internal/domain"
	"github.com/mmcdole/kinoart/internal/options"
	"github.com/mmcdole/kinoart/internal/transition"
)

// Result is the outcome of a retrieval
type Result struct {
	Image      *domain.Image
	CacheType  domain.CacheType  // None when freshly downloaded
	Transition transition.Effect // None unless downloaded and configured
}

// Manager is the entry point for image retrieval. The cache and downloader
// it is built with are the process-wide defaults; an options list may
// replace either for a single call.
type Manager struct {
	cache      domain.ImageCache
	downloader domain.ImageDownloader
	defaults   options.Info
	logger     *slog.Logger
}

// NewManager creates a Manager. defaults are appended to every call's
// options, so anything the caller passes takes precedence.
func NewManager(cache domain.ImageCache, downloader domain.ImageDownloader, defaults options.Info, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cache:      cache,
		downloader: downloader,
		defaults:   defaults,
		logger:     logger,
	}
}

// isNil also catches interfaces wrapping a nil pointer, such as
// TargetCache{Cache: (*store.ImageStore)(nil)}.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Options returns a copy of the manager's default options
func (m *Manager) Options() options.Info {
	return append(options.Info(nil), m.defaults...)
}

// Retrieve returns the image for url, from cache when possible
func (m *Manager) Retrieve(ctx context.Context, url string, info options.Info) (*Result, error) {
	info = m.defaults.With(info...)

	cache := m.cache
	if c, ok := info.TargetCache(); ok && !isNil(c) {
		cache = c
	}
	downloader := m.downloader
	if d, ok := info.Downloader(); ok && !isNil(d) {
		downloader = d
	}
	flags := info.Flags()
	key := CacheKey(url)

	if cache != nil && !flags.Has(options.ForceRefresh) {
		if img, from, ok := cache.Retrieve(key); ok {
			m.logger.Debug("cache hit", "key", key, "layer", from.String())
			return &Result{Image: img, CacheType: from, Transition: transition.None()}, nil
		}
	}

	if downloader == nil {
		return nil, errors.New("no downloader configured")
	}

	img, err := downloader.Download(ctx, url)
	if err != nil {
		m.logger.Error("failed to download image", "url", url, "error", err)
		return nil, err
	}

	if flags.Has(options.DecodeImage) {
		if err := decodeDimensions(img); err != nil {
			m.logger.Warn("downloaded image failed to decode", "url", url, "error", err)
			return nil, err
		}
	}

	img.Key = key
	if cache != nil {
		toDisk := !flags.Has(options.CacheMemoryOnly)
		if err := cache.Store(img, key, toDisk); err != nil {
			m.logger.Error("failed to cache image", "key", key, "error", err)
		}
	}

	effect := transition.None()
	if !flags.Has(options.SkipTransition) {
		if e, ok := info.Transition(); ok {
			effect = e
		}
	}

	m.logger.Info("downloaded image", "key", key, "bytes", img.Size(), "flags", flags.String())

	return &Result{Image: img, CacheType: domain.CacheTypeNone, Transition: effect}, nil
}

// decodeDimensions fills in Width and Height from the image header
func decodeDimensions(img *domain.Image) error {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotAnImage, err)
	}
	img.Width = cfg.Width
	img.Height = cfg.Height
	if img.ContentType == "" {
		img.ContentType = "image/" + format
	}
	return nil
}
