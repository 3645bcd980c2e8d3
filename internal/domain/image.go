package domain

import "time"

// Image is a retrieved artwork payload (poster, thumbnail, background art)
type Image struct {
	Key         string    // Cache key (the source URL unless overridden)
	URL         string    // Source URL
	ContentType string    // MIME type, e.g. "image/jpeg"
	Data        []byte    // Raw encoded bytes
	Width       int       // Pixel width (0 if not decoded)
	Height      int       // Pixel height (0 if not decoded)
	FetchedAt   time.Time // When the image was downloaded
}

// Size returns the encoded size in bytes
func (i *Image) Size() int {
	if i == nil {
		return 0
	}
	return len(i.Data)
}

// CacheType reports where a retrieved image came from
type CacheType int

const (
	CacheTypeNone   CacheType = iota // Not cached, freshly downloaded
	CacheTypeMemory                  // In-memory hot layer
	CacheTypeDisk                    // Persistent disk layer
)

func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeDisk:
		return "disk"
	default:
		return "none"
	}
}

// Cached returns true if the image was served from a cache layer
func (c CacheType) Cached() bool {
	return c != CacheTypeNone
}
