package trainjatri

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/bluele/gcache"
)

const (
	cacheSize = 256
	cacheTTL  = 30 * time.Second
)

// responseCache memoizes rendered JSON for hot read endpoints. Randomized
// endpoints (status, crowd) bypass it entirely.
type responseCache struct {
	cache gcache.Cache
}

func newResponseCache(size int, ttl time.Duration) *responseCache {
	return &responseCache{
		cache: gcache.New(size).LRU().Expiration(ttl).Build(),
	}
}

func (c *responseCache) key(parts ...string) string {
	var b bytes.Buffer
	for i, p := range parts {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(p)
	}
	return b.String()
}

// serve writes the cached body for key, building and storing it on a miss.
// build returns the status code and the fully rendered JSON body.
func (c *responseCache) serve(w http.ResponseWriter, key string, build func() (int, []byte)) {
	if v, err := c.cache.Get(key); err == nil {
		if body, ok := v.([]byte); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(body)
			return
		}
	}

	status, body := build()
	if status == http.StatusOK {
		if err := c.cache.Set(key, body); err != nil {
			log.Printf("caching %s: %v", key, err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
