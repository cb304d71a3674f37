package output

import (
	"strings"
	"testing"
)

type row struct {
	Codename string `json:"codename"`
	BusID    string `table:"BUS ID"`
	Driver   *string
	hidden   string `table:"SHOULD NOT SHOW"` //nolint:unused
	Skipped  string `table:"-"`
}

func TestNewFormatterSelection(t *testing.T) {
	if _, ok := NewFormatter("json").(*JSONFormatter); !ok {
		t.Error("json format not selected")
	}
	if _, ok := NewFormatter("YAML").(*YAMLFormatter); !ok {
		t.Error("yaml selection must be case-insensitive")
	}
	if _, ok := NewFormatter("table").(*TableFormatter); !ok {
		t.Error("table format not selected")
	}
	if _, ok := NewFormatter("bogus").(*TableFormatter); !ok {
		t.Error("unknown format must fall back to table")
	}
}

func TestTableFormatterSlice(t *testing.T) {
	driver := "usbhid"
	data := []row{
		{Codename: "hid-generic", BusID: "1-1.2", Driver: &driver, Skipped: "x"},
		{Codename: "rtl8821ce", BusID: "2-1"},
	}
	out := (&TableFormatter{}).Format(data)

	if !strings.Contains(out, "CODENAME") || !strings.Contains(out, "BUS ID") {
		t.Errorf("headers missing:\n%s", out)
	}
	if strings.Contains(out, "SKIPPED") || strings.Contains(out, "SHOULD NOT SHOW") {
		t.Errorf("skipped/unexported columns rendered:\n%s", out)
	}
	if !strings.Contains(out, "usbhid") {
		t.Errorf("pointer value not dereferenced:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[2], "-") {
		t.Errorf("nil pointer must render as -:\n%s", out)
	}
}

func TestTableFormatterEmptySlice(t *testing.T) {
	out := (&TableFormatter{}).Format([]row{})
	if out != "No entries found.\n" {
		t.Errorf("empty slice output = %q", out)
	}
}

func TestTableFormatterSingleStruct(t *testing.T) {
	out := (&TableFormatter{}).Format(row{Codename: "x570-fw", BusID: "n/a"})
	if !strings.Contains(out, "CODENAME:") || !strings.Contains(out, "x570-fw") {
		t.Errorf("struct rendering wrong:\n%s", out)
	}
}

func TestJSONFormatter(t *testing.T) {
	out := (&JSONFormatter{}).Format(row{Codename: "a"})
	if !strings.Contains(out, `"codename": "a"`) {
		t.Errorf("json output wrong:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("json output must end with newline")
	}
}

func TestYAMLFormatter(t *testing.T) {
	out := (&YAMLFormatter{}).Format(map[string]int{"profiles": 3})
	if !strings.Contains(out, "profiles: 3") {
		t.Errorf("yaml output wrong:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate(short) = %q", got)
	}
	if got := Truncate("abcdefghij", 4); got != "abcd..." {
		t.Errorf("Truncate = %q", got)
	}
	// Rune-aware, not byte-aware.
	if got := Truncate("привет мир", 6); got != "привет..." {
		t.Errorf("Truncate cyrillic = %q", got)
	}
}
