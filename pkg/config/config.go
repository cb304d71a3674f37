// Package config loads hwdbctl configuration from a YAML file with env
// overrides and code-level defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds operator-tunable settings. Every field has a usable default,
// so a missing config file is not an error.
type Config struct {
	// CatalogURLs maps a domain name (usb, bluetooth, dmi) to its remote
	// catalog endpoint.
	CatalogURLs map[string]string `yaml:"catalog_urls"`

	// CacheDir holds the per-domain catalog cache files and materialized
	// profile scripts.
	CacheDir string `yaml:"cache_dir"`

	// Locale overrides locale auto-detection (LANG).
	Locale string `yaml:"locale"`

	PackageManager PackageManager `yaml:"package_manager"`

	// PrivilegeHelper is the script used for privileged sysfs manipulation.
	PrivilegeHelper string `yaml:"privilege_helper"`

	// SysfsRoot is prepended to hardware state paths; used by tests and
	// containerized runs against a fixture tree.
	SysfsRoot string `yaml:"sysfs_root"`
}

// PackageManager carries the distro command prefixes that profile package
// lists are appended to.
type PackageManager struct {
	Install string `yaml:"install"`
	Remove  string `yaml:"remove"`
}

const defaultCatalogBase = "https://profiles.hwdb-project.org"

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hwdb", "config.yaml")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CatalogURLs: map[string]string{
			"usb":       defaultCatalogBase + "/usb.json",
			"bluetooth": defaultCatalogBase + "/bluetooth.json",
			"dmi":       defaultCatalogBase + "/dmi.json",
		},
		CacheDir: "/var/cache/hwdb",
		PackageManager: PackageManager{
			Install: "apt-get install -y",
			Remove:  "apt-get autoremove -y",
		},
		PrivilegeHelper: "/usr/lib/hwdb/scripts/sysfs_helper.sh",
	}
}

// Load reads the config file at path, layering it over the defaults and
// applying HWDBCTL_* env overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := envOr("HWDBCTL_CACHE_DIR", ""); v != "" {
		c.CacheDir = v
	}
	if v := envOr("HWDBCTL_LOCALE", ""); v != "" {
		c.Locale = v
	}
	if v := envOr("HWDBCTL_SYSFS_ROOT", ""); v != "" {
		c.SysfsRoot = v
	}
	for _, domain := range []string{"usb", "bluetooth", "dmi"} {
		if v := envOr("HWDBCTL_CATALOG_URL_"+strings.ToUpper(domain), ""); v != "" {
			c.CatalogURLs[domain] = v
		}
	}
}

func envOr(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
