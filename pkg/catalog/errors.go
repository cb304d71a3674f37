package catalog

import "errors"

var (
	// ErrFetchUnavailable is returned when the network fetch failed and no
	// cached catalog exists for the domain. There is nothing to match
	// against, so the calling operation must abort.
	ErrFetchUnavailable = errors.New("catalog fetch failed and no cache is available")

	// ErrCatalogCorrupt is returned when the catalog JSON violates a
	// structural invariant (for example a "packages" value that is neither
	// string nor array). The whole catalog parse is aborted.
	ErrCatalogCorrupt = errors.New("catalog is corrupt")

	// ErrProfileNotFound is returned when a codename does not match any
	// catalog entry.
	ErrProfileNotFound = errors.New("no profile with matching codename")
)
