package catalog

import (
	"fmt"
	"sort"
)

// Wildcard is the token that matches any device attribute value when it
// appears in a profile's whitelist or blacklist array.
const Wildcard = "*"

// Profile is a declarative catalog entry describing which devices it applies
// to and how to install, remove, and detect the associated software.
type Profile struct {
	Codename    string `json:"codename" yaml:"codename"`
	Description string `json:"description" yaml:"description"`
	IconName    string `json:"icon_name" yaml:"icon_name"`
	License     string `json:"license" yaml:"license"`

	// Match and Blacklist hold the domain-specific rule arrays, keyed by
	// the field names of MatchFields. A blacklist hit on any field excludes
	// the profile regardless of the whitelist.
	Match     map[string][]string `json:"match" yaml:"match"`
	Blacklist map[string][]string `json:"blacklist" yaml:"blacklist"`

	// Packages is nil when the catalog entry carries its package handling
	// inside the scripts instead of a package list.
	Packages []string `json:"packages" yaml:"packages"`

	CheckScript   string  `json:"check_script" yaml:"check_script"`
	InstallScript *string `json:"install_script" yaml:"install_script"`
	RemoveScript  *string `json:"remove_script" yaml:"remove_script"`

	Experimental bool  `json:"experimental" yaml:"experimental"`
	Removable    bool  `json:"removable" yaml:"removable"`
	Veiled       bool  `json:"veiled" yaml:"veiled"`
	Priority     int32 `json:"priority" yaml:"priority"`
}

// Catalog is the ordered collection of all profiles for one domain. It is
// kept sorted ascending by priority after every insertion; consumers rely on
// that order (first entry in a listing is the highest-priority profile).
type Catalog struct {
	Domain   Domain     `json:"domain" yaml:"domain"`
	Profiles []*Profile `json:"profiles" yaml:"profiles"`
}

// append adds p and restores the priority order. The sort is stable, so
// profiles with equal priority keep their catalog insertion order.
func (c *Catalog) append(p *Profile) {
	c.Profiles = append(c.Profiles, p)
	sort.SliceStable(c.Profiles, func(i, j int) bool {
		return c.Profiles[i].Priority < c.Profiles[j].Priority
	})
}

// Profile returns the entry with the given codename.
func (c *Catalog) Profile(codename string) (*Profile, error) {
	for _, p := range c.Profiles {
		if p.Codename == codename {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s catalog", ErrProfileNotFound, codename, c.Domain)
}

// Len returns the number of profiles in the catalog.
func (c *Catalog) Len() int { return len(c.Profiles) }
