package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.CatalogURLs["usb"] != "https://profiles.hwdb-project.org/usb.json" {
		t.Errorf("usb catalog url = %q", cfg.CatalogURLs["usb"])
	}
	if cfg.CacheDir != "/var/cache/hwdb" {
		t.Errorf("cache dir = %q", cfg.CacheDir)
	}
	if cfg.PackageManager.Install != "apt-get install -y" {
		t.Errorf("install command = %q", cfg.PackageManager.Install)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.CacheDir != Default().CacheDir {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `cache_dir: /tmp/hwdb-test
locale: ru
catalog_urls:
  usb: http://mirror.local/usb.json
package_manager:
  install: dnf install -y
  remove: dnf remove -y
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CacheDir != "/tmp/hwdb-test" || cfg.Locale != "ru" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.CatalogURLs["usb"] != "http://mirror.local/usb.json" {
		t.Errorf("catalog url override lost: %q", cfg.CatalogURLs["usb"])
	}
	if cfg.PackageManager.Install != "dnf install -y" {
		t.Errorf("package manager override lost: %+v", cfg.PackageManager)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HWDBCTL_CACHE_DIR", "/run/hwdb")
	t.Setenv("HWDBCTL_CATALOG_URL_DMI", "http://env.local/dmi.json")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CacheDir != "/run/hwdb" {
		t.Errorf("env cache dir not applied: %q", cfg.CacheDir)
	}
	if cfg.CatalogURLs["dmi"] != "http://env.local/dmi.json" {
		t.Errorf("env catalog url not applied: %q", cfg.CatalogURLs["dmi"])
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("cache_dir: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml must error")
	}
}
