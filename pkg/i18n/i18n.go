// Package i18n provides the localized string table for user-facing CLI
// output and the locale negotiation used by the catalog parser's
// description fallback.
package i18n

import (
	"embed"
	"fmt"
	"os"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

const fallbackLocale = "en"

// Table resolves message keys for one negotiated locale, falling back to
// English and finally to the key itself.
type Table struct {
	locale   string
	msgs     map[string]string
	fallback map[string]string
}

// Detect returns the active locale: the explicit override if non-empty,
// otherwise the LC_ALL/LANG environment ("ru_RU.UTF-8" -> "ru-RU").
func Detect(override string) string {
	if override != "" {
		return override
	}
	for _, key := range []string{"LC_ALL", "LANG"} {
		if v := os.Getenv(key); v != "" && v != "C" && v != "POSIX" {
			v, _, _ = strings.Cut(v, ".")
			return strings.ReplaceAll(v, "_", "-")
		}
	}
	return fallbackLocale
}

// Load negotiates the best available string table for the requested locale.
func Load(locale string) (*Table, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}

	tables := map[string]map[string]string{}
	var tags []language.Tag
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".yaml")
		data, err := localeFS.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, err
		}
		msgs := map[string]string{}
		if err := yaml.Unmarshal(data, &msgs); err != nil {
			return nil, fmt.Errorf("locale %s: %w", name, err)
		}
		tables[name] = msgs
		tags = append(tags, language.Make(name))
	}

	fallback, ok := tables[fallbackLocale]
	if !ok {
		return nil, fmt.Errorf("embedded %s locale is missing", fallbackLocale)
	}

	matcher := language.NewMatcher(tags)
	desired, _ := language.Parse(locale)
	_, index, _ := matcher.Match(desired)
	base, _ := tags[index].Base()

	return &Table{
		locale:   base.String(),
		msgs:     tables[base.String()],
		fallback: fallback,
	}, nil
}

// Locale returns the negotiated base locale ("en", "ru"), which is also the
// qualifier used for catalog i18n_desc[<locale>] lookups.
func (t *Table) Locale() string { return t.locale }

// T resolves a message key.
func (t *Table) T(key string) string {
	if v, ok := t.msgs[key]; ok {
		return v
	}
	if v, ok := t.fallback[key]; ok {
		return v
	}
	return key
}
