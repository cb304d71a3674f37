package hwd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeUSBFixture lays out a minimal /sys/bus/usb/devices tree under root.
func writeUSBFixture(t *testing.T, root, busid string, attrs map[string]string, driver string) {
	t.Helper()
	dir := filepath.Join(root, "sys", "bus", "usb", "devices", busid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, value := range attrs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if driver != "" {
		ifaceDir := filepath.Join(root, "sys", "bus", "usb", "devices", busid+":1.0")
		driverDir := filepath.Join(root, "drivers", driver)
		if err := os.MkdirAll(ifaceDir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.MkdirAll(driverDir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.Symlink(driverDir, filepath.Join(ifaceDir, "driver")); err != nil {
			t.Fatal(err)
		}
	}
}

func TestUSBDevicesFromSysfs(t *testing.T) {
	root := t.TempDir()
	writeUSBFixture(t, root, "1-1.2", map[string]string{
		"manufacturer": "Logitech",
		"product":      "USB Receiver",
		"bDeviceClass": "03",
		"idVendor":     "046d",
		"idProduct":    "c52b",
		"busnum":       "1",
		"devnum":       "4",
		"version":      " 2.00",
		"speed":        "12",
	}, "usbhid")
	writeUSBFixture(t, root, "2-1", map[string]string{
		"bDeviceClass": "ff",
		"idVendor":     "0bda",
		"idProduct":    "b812",
	}, "")
	// Non-device entries must be skipped.
	for _, name := range []string{"usb1", "1-0:1.0"} {
		if err := os.MkdirAll(filepath.Join(root, "sys", "bus", "usb", "devices", name), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	e := &SysfsEnumerator{Root: root}
	devices, err := e.USBDevices()
	if err != nil {
		t.Fatalf("USBDevices failed: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(devices))
	}

	d := devices[0]
	if d.SysfsBusID != "1-1.2" {
		t.Fatalf("devices not sorted by busid: %q first", d.SysfsBusID)
	}
	if d.Manufacturer != "Logitech" || d.Product != "USB Receiver" {
		t.Errorf("strings not read: %+v", d)
	}
	if d.ClassCode != "03" || d.VendorID != "046d" || d.ProductID != "c52b" {
		t.Errorf("ids not read: %+v", d)
	}
	if d.BusNumber != 1 || d.Address != 4 || d.PortNumber != 2 {
		t.Errorf("numbers = bus %d addr %d port %d", d.BusNumber, d.Address, d.PortNumber)
	}
	if d.USBVersion != "2.00" {
		t.Errorf("version not trimmed: %q", d.USBVersion)
	}
	if d.KernelDriver != "usbhid" {
		t.Errorf("driver = %q", d.KernelDriver)
	}
	if d.Started == nil || !*d.Started {
		t.Errorf("device with bound driver must report started")
	}
	if !d.Enabled {
		t.Errorf("device without blacklist entry must be enabled")
	}

	bare := devices[1]
	if bare.Manufacturer != "Unknown" || bare.KernelDriver != "Unknown" {
		t.Errorf("defaults not applied: %+v", bare)
	}
	if bare.ClassCode != "FF" {
		t.Errorf("class code not uppercased: %q", bare.ClassCode)
	}
	if bare.Started != nil {
		t.Errorf("driverless device must have nil Started")
	}
	if bare.PortNumber != 1 {
		t.Errorf("port of 2-1 = %d", bare.PortNumber)
	}
}

func TestUSBEnabledHonorsBlacklistFile(t *testing.T) {
	root := t.TempDir()
	writeUSBFixture(t, root, "1-1", map[string]string{"idVendor": "046d"}, "")
	blacklistDir := filepath.Join(root, "etc", "hwdb")
	if err := os.MkdirAll(blacklistDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(blacklistDir, "usb_blacklist"), []byte("3-4\n1-1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := &SysfsEnumerator{Root: root}
	devices, err := e.USBDevices()
	if err != nil {
		t.Fatal(err)
	}
	if devices[0].Enabled {
		t.Error("blacklisted busid must report disabled")
	}
}

func TestUSBByBusID(t *testing.T) {
	devices := []*USBDevice{{SysfsBusID: "1-2"}, {SysfsBusID: "3-1.4"}}
	d, err := USBByBusID(devices, "3-1.4")
	if err != nil || d.SysfsBusID != "3-1.4" {
		t.Fatalf("lookup failed: %v %v", d, err)
	}
	if _, err := USBByBusID(devices, "9-9"); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("expected ErrDeviceNotFound, got %v", err)
	}
}

func TestGroupUSBByClass(t *testing.T) {
	devices := []*USBDevice{
		{SysfsBusID: "1-1", ClassCode: "03"},
		{SysfsBusID: "1-2", ClassCode: "FF"},
		{SysfsBusID: "1-3", ClassCode: "03"},
	}
	grouped := GroupUSBByClass(devices)
	if len(grouped) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(grouped))
	}
	hid := grouped["03"]
	if len(hid) != 2 || hid[0].SysfsBusID != "1-1" || hid[1].SysfsBusID != "1-3" {
		t.Errorf("class 03 order lost: %+v", hid)
	}
}
