// Package match implements the wildcard/blacklist rule algebra shared by the
// USB, Bluetooth, and DMI domains. The engine is generic over a list of
// (device value, whitelist, blacklist) rules so the three domains share one
// implementation.
package match

import "github.com/hwdb-project/hwdbctl/pkg/catalog"

// Rule pairs one device attribute value with the profile's whitelist and
// blacklist arrays for the corresponding field.
type Rule struct {
	Value string
	Allow []string
	Deny  []string
}

// hit reports whether list contains the wildcard token or the value.
func hit(list []string, value string) bool {
	for _, e := range list {
		if e == catalog.Wildcard || e == value {
			return true
		}
	}
	return false
}

// Matches evaluates the rule algebra for one (device, profile) pair:
// a blacklist hit on any field rejects outright, otherwise every whitelist
// field must contain the wildcard or the device's value. An empty whitelist
// array fails its conjunct, so a profile must whitelist at least the
// wildcard per field to ever match.
func Matches(rules []Rule) bool {
	for _, r := range rules {
		if hit(r.Deny, r.Value) {
			return false
		}
	}
	for _, r := range rules {
		if !hit(r.Allow, r.Value) {
			return false
		}
	}
	return true
}

// Available filters profiles to those matching the device whose rules are
// produced by rulesFor, preserving catalog (priority) order.
func Available(profiles []*catalog.Profile, rulesFor func(*catalog.Profile) []Rule) []*catalog.Profile {
	var out []*catalog.Profile
	for _, p := range profiles {
		if Matches(rulesFor(p)) {
			out = append(out, p)
		}
	}
	return out
}
