package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// FetchTimeout bounds the single catalog download attempt. There are no
// retries; retry policy is the caller's responsibility.
const FetchTimeout = 5 * time.Second

// Fetcher retrieves a domain's catalog over HTTP with a local-cache
// fallback. On success the raw body refreshes the cache (best effort); on
// any network failure the cache is consulted instead, and a missing cache is
// fatal for the operation.
type Fetcher struct {
	URLs   map[Domain]string
	Cache  *Cache
	Client *http.Client
	Logger *slog.Logger
	Opts   ParseOptions
}

// NewFetcher returns a Fetcher with the default timeout-bounded HTTP client.
func NewFetcher(urls map[Domain]string, cache *Cache, logger *slog.Logger, opts ParseOptions) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		URLs:   urls,
		Cache:  cache,
		Client: &http.Client{Timeout: FetchTimeout},
		Logger: logger,
		Opts:   opts,
	}
}

// Fetch downloads, caches, and parses the catalog for a domain.
func (f *Fetcher) Fetch(ctx context.Context, domain Domain) (*Catalog, error) {
	url, ok := f.URLs[domain]
	if !ok || url == "" {
		return nil, fmt.Errorf("no catalog URL configured for domain %s", domain)
	}

	f.Logger.Info("downloading profile catalog", "domain", domain.String(), "url", url)
	body, err := f.download(ctx, url)
	if err != nil {
		f.Logger.Warn("catalog download failed, trying cache", "domain", domain.String(), "error", err)
		cached, cacheErr := f.Cache.Read(domain)
		if cacheErr != nil {
			return nil, fmt.Errorf("%w: %s", ErrFetchUnavailable, domain)
		}
		f.Logger.Info("using cached catalog", "domain", domain.String(), "path", f.Cache.Path(domain))
		return Parse(cached, domain, f.Opts)
	}

	// A failed cache write must not abort a successful fetch.
	if err := f.Cache.Write(domain, body); err != nil {
		f.Logger.Warn("could not refresh catalog cache", "domain", domain.String(), "error", err)
	}
	return Parse(body, domain, f.Opts)
}

// download performs the single GET attempt. A non-success status is folded
// into failure so the caller falls back to the cache.
func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
