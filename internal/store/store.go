package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/kinoart/internal/domain"
	sfuzzy "github.com/sahilm/fuzzy"
	bolt "go.etcd.io/bbolt"
)

var bucketImages = []byte("images")

// ImageStore implements domain.ImageCache using BoltDB.
type ImageStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string]*domain.Image
}

// KeyMatch is a fuzzy search hit over cached keys
type KeyMatch struct {
	Key            string
	MatchedIndexes []int
	Score          int
}

// NewImageStore opens the cache under baseCacheDir. An empty baseCacheDir
// gives a memory-only store. namespace (usually the server URL) partitions
// the cache so images from different servers never collide.
func NewImageStore(baseCacheDir, namespace string) (*ImageStore, error) {
	if baseCacheDir == "" {
		return &ImageStore{cache: make(map[string]*domain.Image)}, nil
	}

	dir := baseCacheDir
	if namespace != "" {
		dir = filepath.Join(baseCacheDir, hashNamespace(namespace))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "images.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketImages)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ImageStore{db: db, cache: make(map[string]*domain.Image)}, nil
}

func hashNamespace(namespace string) string {
	normalized := strings.TrimRight(strings.ToLower(namespace), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// Persistent returns false for memory-only stores
func (s *ImageStore) Persistent() bool {
	return s.db != nil
}

func (s *ImageStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Retrieve implements domain.ImageCache. The returned image is a copy.
func (s *ImageStore) Retrieve(key string) (*domain.Image, domain.CacheType, bool) {
	s.mu.RLock()
	if img, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return cloneImage(img), domain.CacheTypeMemory, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, domain.CacheTypeNone, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketImages)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return nil, domain.CacheTypeNone, false
	}

	var img domain.Image
	if err := json.Unmarshal(data, &img); err != nil {
		return nil, domain.CacheTypeNone, false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = &img
	s.mu.Unlock()

	return cloneImage(&img), domain.CacheTypeDisk, true
}

// cloneImage keeps callers from mutating what the memory layer holds
func cloneImage(img *domain.Image) *domain.Image {
	c := *img
	c.Data = bytes.Clone(img.Data)
	return &c
}

// Store implements domain.ImageCache
func (s *ImageStore) Store(img *domain.Image, key string, toDisk bool) error {
	if img == nil {
		return fmt.Errorf("cannot cache nil image for key %q", key)
	}

	s.mu.Lock()
	s.cache[key] = cloneImage(img)
	s.mu.Unlock()

	if s.db == nil || !toDisk {
		return nil
	}

	data, err := json.Marshal(img)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketImages).Put([]byte(key), data)
	})
}

// Remove implements domain.ImageCache
func (s *ImageStore) Remove(key string) {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketImages)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// Contains returns true if key is cached in any layer
func (s *ImageStore) Contains(key string) bool {
	s.mu.RLock()
	_, ok := s.cache[key]
	s.mu.RUnlock()
	if ok || s.db == nil {
		return ok
	}

	s.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketImages); b != nil {
			ok = b.Get([]byte(key)) != nil
		}
		return nil
	})
	return ok
}

// Clear wipes both layers
func (s *ImageStore) Clear() error {
	s.mu.Lock()
	s.cache = make(map[string]*domain.Image)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketImages)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Keys returns every cached key across both layers, sorted
func (s *ImageStore) Keys() []string {
	seen := make(map[string]struct{})

	s.mu.RLock()
	for k := range s.cache {
		seen[k] = struct{}{}
	}
	s.mu.RUnlock()

	if s.db != nil {
		s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketImages)
			if b == nil {
				return nil
			}
			return b.ForEach(func(k, _ []byte) error {
				seen[string(k)] = struct{}{}
				return nil
			})
		})
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Search fuzzy-matches query against cached keys, best match first.
// An empty query returns every key unranked.
func (s *ImageStore) Search(query string) []KeyMatch {
	keys := s.Keys()
	query = strings.TrimSpace(query)
	if query == "" {
		results := make([]KeyMatch, len(keys))
		for i, k := range keys {
			results[i] = KeyMatch{Key: k}
		}
		return results
	}

	// sahilm/fuzzy folds case itself; matching the original keys keeps
	// MatchedIndexes valid byte offsets into them
	matches := sfuzzy.Find(query, keys)
	results := make([]KeyMatch, len(matches))
	for i, m := range matches {
		results[i] = KeyMatch{
			Key:            keys[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// Suggest returns the cached key closest to key, for "did you mean" hints
func (s *ImageStore) Suggest(key string) (string, bool) {
	keys := s.Keys()
	if len(keys) == 0 || key == "" {
		return "", false
	}

	ranks := fuzzy.RankFindFold(key, keys)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target, true
	}

	// Nothing contains key as a subsequence; fall back to edit distance
	best, bestDist := "", -1
	lower := strings.ToLower(key)
	for _, k := range keys {
		d := fuzzy.LevenshteinDistance(lower, strings.ToLower(k))
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	if bestDist > len(key)/2 {
		return "", false
	}
	return best, true
}
