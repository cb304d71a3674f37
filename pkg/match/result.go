package match

import (
	"sync"

	"github.com/hwdb-project/hwdbctl/pkg/catalog"
)

// Result is the mutable "available profiles" slot on an otherwise immutable
// device record. It is written once per matching pass and may be read
// concurrently by display and execution code afterwards.
//
// Unlike the historical behavior of leaving the slot unset on an empty match,
// Result records that a pass ran even when it produced zero matches, so
// "no profiles" and "not yet matched" are distinguishable states.
type Result struct {
	mu       sync.Mutex
	profiles []*catalog.Profile
	computed bool
}

// Set stores the outcome of a matching pass. An empty (or nil) list still
// marks the slot as computed.
func (r *Result) Set(profiles []*catalog.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = profiles
	r.computed = true
}

// Get returns the matched profiles and whether a matching pass has run.
func (r *Result) Get() ([]*catalog.Profile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profiles, r.computed
}
