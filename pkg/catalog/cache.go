package catalog

import (
	"os"
	"path/filepath"
)

// Cache is the on-disk store of the last successfully fetched catalog per
// domain: one JSON file per domain holding the raw response body verbatim.
// It has no TTL; a cached catalog is valid until the next successful fetch
// overwrites it.
type Cache struct {
	Dir string
}

// Path returns the fixed cache file path for a domain.
func (c *Cache) Path(d Domain) string {
	return filepath.Join(c.Dir, d.String()+".json")
}

// Read returns the cached raw catalog body for a domain.
func (c *Cache) Read(d Domain) ([]byte, error) {
	return os.ReadFile(c.Path(d))
}

// Write stores the raw catalog body for a domain, creating the cache
// directory if needed.
func (c *Cache) Write(d Domain, body []byte) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.Path(d), body, 0o644)
}
