package hwd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const mouseInfo = `[General]
Name=MX Master 3
Alias=Work Mouse
Class=0x000580
Trusted=true
Blocked=false
Modalias=usb:v046DpB023d0012

[LinkKey]
Key=0123456789ABCDEF
`

func writeBluezFixture(t *testing.T, root, adapter, device, info string) {
	t.Helper()
	dir := filepath.Join(root, "var", "lib", "bluetooth", adapter, device)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "info"), []byte(info), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBluetoothDevicesFromBluez(t *testing.T) {
	root := t.TempDir()
	writeBluezFixture(t, root, "9C:FC:E8:11:22:33", "E4:5F:01:AA:BB:CC", mouseInfo)
	writeBluezFixture(t, root, "9C:FC:E8:11:22:33", "F0:18:98:00:11:22", "[General]\nName=Buds\n")
	// Directories that are not MAC addresses must be skipped.
	if err := os.MkdirAll(filepath.Join(root, "var", "lib", "bluetooth", "settings"), 0o755); err != nil {
		t.Fatal(err)
	}

	e := &SysfsEnumerator{Root: root}
	devices, err := e.BluetoothDevices()
	if err != nil {
		t.Fatalf("BluetoothDevices failed: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(devices))
	}

	mouse := devices[0]
	if mouse.Address != "E4:5F:01:AA:BB:CC" || mouse.Adapter != "9C:FC:E8:11:22:33" {
		t.Errorf("addresses wrong: %+v", mouse)
	}
	if mouse.Name != "MX Master 3" || mouse.Alias != "Work Mouse" {
		t.Errorf("names wrong: %+v", mouse)
	}
	if mouse.ClassID != "000580" {
		t.Errorf("class id = %q, want 000580", mouse.ClassID)
	}
	if mouse.ModaliasVendorID != "046d" || mouse.ModaliasProductID != "b023" || mouse.ModaliasDeviceID != "0012" {
		t.Errorf("modalias wrong: %+v", mouse)
	}
	if !mouse.Paired || !mouse.Trusted || mouse.Blocked {
		t.Errorf("flags wrong: %+v", mouse)
	}

	buds := devices[1]
	if buds.Paired {
		t.Error("device without [LinkKey] must not be paired")
	}
	if buds.Alias != "Buds" {
		t.Errorf("alias must fall back to name, got %q", buds.Alias)
	}
}

func TestBluetoothByAddress(t *testing.T) {
	devices := []*BluetoothDevice{{Address: "E4:5F:01:AA:BB:CC"}}
	d, err := BluetoothByAddress(devices, "e4:5f:01:aa:bb:cc")
	if err != nil || d == nil {
		t.Fatalf("lookup should be case-insensitive: %v", err)
	}
	if _, err := BluetoothByAddress(devices, "00:00:00:00:00:00"); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("expected ErrDeviceNotFound, got %v", err)
	}
}

func TestDMIDeviceFromSysfs(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "sys", "class", "dmi", "id")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	attrs := map[string]string{
		"bios_vendor": "American Megatrends",
		"board_name":  "X570 AORUS ELITE",
		"sys_vendor":  "Gigabyte",
	}
	for name, value := range attrs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	e := &SysfsEnumerator{Root: root}
	d, err := e.DMIDevice()
	if err != nil {
		t.Fatalf("DMIDevice failed: %v", err)
	}
	if d.BIOSVendor != "American Megatrends" || d.BoardName != "X570 AORUS ELITE" || d.SysVendor != "Gigabyte" {
		t.Errorf("attributes not read: %+v", d)
	}
	if d.ProductName != "Unknown" {
		t.Errorf("missing attribute must default to Unknown, got %q", d.ProductName)
	}
}
