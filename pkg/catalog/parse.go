package catalog

import (
	"encoding/json"
	"fmt"
)

// scriptAbsent is the sentinel string that existing catalogs use to mark an
// install or remove script as absent. It must be recognized verbatim at the
// parse boundary for interop with published catalog files; past that
// boundary an absent script is a nil pointer.
const scriptAbsent = "Option::is_none"

// defaultIconName is used when a profile carries no icon hint.
const defaultIconName = "package-x-generic"

// ParseOptions control locale-dependent normalization.
type ParseOptions struct {
	// Locale selects the i18n_desc[<locale>] description variant. A
	// non-empty locale-specific value wins over the base i18n_desc key.
	Locale string
	// UnknownLicense is the (localized) fallback for a missing license.
	UnknownLicense string
}

// Parse normalizes the loosely-typed catalog JSON for a domain into a
// strictly-typed Catalog. Individual malformed values are coerced to
// defaults; only structural violations (undecodable JSON, a packages value
// of the wrong shape) abort the parse with ErrCatalogCorrupt.
func Parse(raw []byte, domain Domain, opts ParseOptions) (*Catalog, error) {
	if opts.UnknownLicense == "" {
		opts.UnknownLicense = "Unknown"
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogCorrupt, err)
	}

	c := &Catalog{Domain: domain}
	entries, ok := doc["profiles"].([]any)
	if !ok {
		// A missing or non-array profiles key is an empty catalog, not an
		// error.
		return c, nil
	}

	for i, entry := range entries {
		m, _ := entry.(map[string]any)
		p, err := parseProfile(m, domain, opts)
		if err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		c.append(p)
	}
	return c, nil
}

func parseProfile(m map[string]any, domain Domain, opts ParseOptions) (*Profile, error) {
	packages, err := parsePackages(m["packages"])
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Codename:     asString(m["codename"], ""),
		Description:  parseDescription(m, opts.Locale),
		IconName:     asString(m["icon_name"], defaultIconName),
		License:      asString(m["license"], opts.UnknownLicense),
		Match:        map[string][]string{},
		Blacklist:    map[string][]string{},
		Packages:     packages,
		CheckScript:  asString(m["check_script"], "false"),
		Experimental: asBool(m["experimental"]),
		Removable:    asBool(m["removable"]),
		Veiled:       asBool(m["veiled"]),
		Priority:     asInt32(m["priority"]),
	}
	p.InstallScript = parseScript(m["install_script"])
	p.RemoveScript = parseScript(m["remove_script"])

	for _, key := range MatchFields(domain) {
		p.Match[key] = asStringList(m[key])
		p.Blacklist[key] = asStringList(m["blacklisted_"+key])
	}
	return p, nil
}

// parseDescription applies the strict locale fallback order: a non-empty
// locale-qualified i18n_desc[<locale>] beats the base i18n_desc beats empty.
func parseDescription(m map[string]any, locale string) string {
	if locale != "" {
		if v, ok := m[fmt.Sprintf("i18n_desc[%s]", locale)].(string); ok && v != "" {
			return v
		}
	}
	return asString(m["i18n_desc"], "")
}

// parsePackages enforces the packages shape rule: a string value means the
// scripts embed their own package handling (nil), an array is coerced to
// strings, absence means no packages, and any other shape is a corrupt
// catalog.
func parsePackages(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return nil, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, asString(e, ""))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: packages is neither string nor array", ErrCatalogCorrupt)
	}
}

// parseScript keeps a script string verbatim and maps the absent-sentinel to
// nil. A missing key yields an empty-but-present script, faithful to the
// catalog format.
func parseScript(v any) *string {
	s := asString(v, "")
	if s == scriptAbsent {
		return nil
	}
	return &s
}

func asString(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt32(v any) int32 {
	if f, ok := v.(float64); ok {
		return int32(f)
	}
	return 0
}

func asStringList(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		out = append(out, asString(e, ""))
	}
	return out
}
