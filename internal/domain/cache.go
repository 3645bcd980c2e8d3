package domain

import "context"

// ImageCache stores downloaded images (memory + optional disk).
// Retrieval code consults it before going to the network.
type ImageCache interface {
	// Retrieve returns the cached image for key and which layer served it
	Retrieve(key string) (*Image, CacheType, bool)

	// Store caches img under key. toDisk=false keeps it in memory only.
	Store(img *Image, key string, toDisk bool) error

	// Remove drops key from every layer
	Remove(key string)
}

// ImageDownloader fetches images over the network.
type ImageDownloader interface {
	Download(ctx context.Context, url string) (*Image, error)
}
