package concat

import (
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mvp-joe/loppers/internal/skeleton"
)

// DefaultCacheSize is the number of skeletons a Cache keeps.
const DefaultCacheSize = 4096

type cacheKey struct {
	language string
	digest   [sha256.Size]byte
}

// Cache memoizes skeletons by language and content digest so repeated
// concatenations of an unchanged tree skip parsing. It is safe for concurrent use.
// A nil *Cache extracts every time.
type Cache struct {
	skeletons *lru.Cache[cacheKey, string]
}

// NewCache creates a cache holding up to size skeletons.
func NewCache(size int) (*Cache, error) {
	c, err := lru.New[cacheKey, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create skeleton cache: %w", err)
	}
	return &Cache{skeletons: c}, nil
}

// Len returns the number of cached skeletons.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.skeletons.Len()
}

// extract returns the cached skeleton or extracts and stores it. Failures are not cached.
func (c *Cache) extract(extractor *skeleton.Extractor, content, language string) (string, error) {
	if c == nil {
		return extractor.Extract(content, language)
	}

	key := cacheKey{language: language, digest: sha256.Sum256([]byte(content))}
	if out, ok := c.skeletons.Get(key); ok {
		return out, nil
	}

	out, err := extractor.Extract(content, language)
	if err != nil {
		return "", err
	}
	c.skeletons.Add(key, out)
	return out, nil
}
