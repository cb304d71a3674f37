package catalog

import (
	"errors"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	raw := []byte(`{"profiles": [{"codename": "bare"}]}`)
	c, err := Parse(raw, DomainUSB, ParseOptions{UnknownLicense: "Unknown"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 profile, got %d", c.Len())
	}
	p := c.Profiles[0]
	if p.Codename != "bare" {
		t.Errorf("codename = %q", p.Codename)
	}
	if p.Description != "" {
		t.Errorf("description should default empty, got %q", p.Description)
	}
	if p.IconName != "package-x-generic" {
		t.Errorf("icon default = %q", p.IconName)
	}
	if p.License != "Unknown" {
		t.Errorf("license default = %q", p.License)
	}
	if p.CheckScript != "false" {
		t.Errorf("check script default = %q", p.CheckScript)
	}
	if p.Priority != 0 {
		t.Errorf("priority default = %d", p.Priority)
	}
	if p.Packages != nil {
		t.Errorf("packages should default nil, got %v", p.Packages)
	}
	if p.InstallScript == nil || *p.InstallScript != "" {
		t.Errorf("missing install_script should parse as empty-present, got %v", p.InstallScript)
	}
	for _, key := range MatchFields(DomainUSB) {
		if p.Match[key] == nil {
			t.Errorf("match list for %q should be empty, not nil", key)
		}
		if p.Blacklist[key] == nil {
			t.Errorf("blacklist for %q should be empty, not nil", key)
		}
	}
}

func TestParseDescriptionLocaleFallback(t *testing.T) {
	cases := []struct {
		name   string
		entry  string
		locale string
		want   string
	}{
		{"locale wins", `{"i18n_desc": "base", "i18n_desc[ru]": "русский"}`, "ru", "русский"},
		{"empty locale value falls through", `{"i18n_desc": "base", "i18n_desc[fr]": ""}`, "fr", "base"},
		{"missing locale key falls through", `{"i18n_desc": "base"}`, "de", "base"},
		{"nothing present", `{}`, "ru", ""},
		{"non-string coerced", `{"i18n_desc": 7}`, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := []byte(`{"profiles": [` + tc.entry + `]}`)
			c, err := Parse(raw, DomainDMI, ParseOptions{Locale: tc.locale})
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := c.Profiles[0].Description; got != tc.want {
				t.Errorf("description = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseScriptSentinel(t *testing.T) {
	raw := []byte(`{"profiles": [{
		"install_script": "Option::is_none",
		"remove_script": "apt remove foo"
	}]}`)
	c, err := Parse(raw, DomainUSB, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	p := c.Profiles[0]
	if p.InstallScript != nil {
		t.Errorf("sentinel install_script should be nil, got %q", *p.InstallScript)
	}
	if p.RemoveScript == nil || *p.RemoveScript != "apt remove foo" {
		t.Errorf("remove_script not kept verbatim: %v", p.RemoveScript)
	}
}

func TestParsePackagesShapes(t *testing.T) {
	cases := []struct {
		name    string
		entry   string
		want    []string
		corrupt bool
	}{
		{"array", `{"packages": ["a", "b"]}`, []string{"a", "b"}, false},
		{"string means scripts handle packages", `{"packages": "embedded"}`, nil, false},
		{"absent", `{}`, nil, false},
		{"null", `{"packages": null}`, nil, false},
		{"object is corrupt", `{"packages": {"a": 1}}`, nil, true},
		{"number is corrupt", `{"packages": 3}`, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := []byte(`{"profiles": [` + tc.entry + `]}`)
			c, err := Parse(raw, DomainUSB, ParseOptions{})
			if tc.corrupt {
				if !errors.Is(err, ErrCatalogCorrupt) {
					t.Fatalf("expected ErrCatalogCorrupt, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			got := c.Profiles[0].Packages
			if len(got) != len(tc.want) {
				t.Fatalf("packages = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("packages[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`), DomainUSB, ParseOptions{})
	if !errors.Is(err, ErrCatalogCorrupt) {
		t.Fatalf("expected ErrCatalogCorrupt, got %v", err)
	}
}

func TestParseMissingProfilesKey(t *testing.T) {
	for _, raw := range []string{`{}`, `{"profiles": "nope"}`, `{"profiles": 1}`} {
		c, err := Parse([]byte(raw), DomainBluetooth, ParseOptions{})
		if err != nil {
			t.Fatalf("Parse(%s) failed: %v", raw, err)
		}
		if c.Len() != 0 {
			t.Errorf("Parse(%s) should yield empty catalog, got %d profiles", raw, c.Len())
		}
	}
}

func TestParseSortsByPriorityStable(t *testing.T) {
	raw := []byte(`{"profiles": [
		{"codename": "late", "priority": 10},
		{"codename": "first-zero"},
		{"codename": "early", "priority": -5},
		{"codename": "second-zero", "priority": 0}
	]}`)
	c, err := Parse(raw, DomainUSB, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []string{"early", "first-zero", "second-zero", "late"}
	for i, codename := range want {
		if c.Profiles[i].Codename != codename {
			t.Errorf("position %d = %q, want %q", i, c.Profiles[i].Codename, codename)
		}
	}
}

func TestParseDomainFields(t *testing.T) {
	raw := []byte(`{"profiles": [{
		"codename": "mouse",
		"vendor_ids": ["046d"],
		"blacklisted_product_ids": ["*"]
	}]}`)
	c, err := Parse(raw, DomainUSB, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	p := c.Profiles[0]
	if got := p.Match["vendor_ids"]; len(got) != 1 || got[0] != "046d" {
		t.Errorf("vendor_ids = %v", got)
	}
	if got := p.Blacklist["product_ids"]; len(got) != 1 || got[0] != Wildcard {
		t.Errorf("blacklisted product_ids = %v", got)
	}
}

func TestCatalogProfileLookup(t *testing.T) {
	raw := []byte(`{"profiles": [{"codename": "a"}, {"codename": "b"}]}`)
	c, err := Parse(raw, DomainUSB, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := c.Profile("b"); err != nil {
		t.Errorf("lookup of existing profile failed: %v", err)
	}
	if _, err := c.Profile("missing"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}
