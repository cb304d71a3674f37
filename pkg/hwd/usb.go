package hwd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hwdb-project/hwdbctl/pkg/catalog"
	"github.com/hwdb-project/hwdbctl/pkg/match"
)

// USBDevice is a read-only snapshot of one enumerated USB device plus its
// mutable available-profiles slot.
type USBDevice struct {
	Manufacturer string `json:"manufacturer" yaml:"manufacturer"`
	Product      string `json:"product" yaml:"product"`
	Serial       string `json:"serial" yaml:"serial"`

	ProtocolCode string `json:"protocol_code" yaml:"protocol_code"`
	ClassCode    string `json:"class_code" yaml:"class_code"`
	VendorID     string `json:"vendor_id" yaml:"vendor_id"`
	ProductID    string `json:"product_id" yaml:"product_id"`

	USBVersion   string `json:"usb_version" yaml:"usb_version"`
	BusNumber    int    `json:"bus_number" yaml:"bus_number"`
	PortNumber   int    `json:"port_number" yaml:"port_number"`
	Address      int    `json:"address" yaml:"address"`
	SysfsBusID   string `json:"sysfs_busid" yaml:"sysfs_busid"`
	KernelDriver string `json:"kernel_driver" yaml:"kernel_driver"`
	Speed        string `json:"speed" yaml:"speed"`

	// Started is nil when no kernel driver is known for the device.
	Started *bool `json:"started" yaml:"started"`
	Enabled bool  `json:"enabled" yaml:"enabled"`

	Profiles match.Result `json:"-" yaml:"-"`
}

// Rules adapts the device's identification attributes to the generic match
// engine, keyed by the USB catalog field names.
func (d *USBDevice) Rules(p *catalog.Profile) []match.Rule {
	return []match.Rule{
		{Value: d.ClassCode, Allow: p.Match["class_codes"], Deny: p.Blacklist["class_codes"]},
		{Value: d.VendorID, Allow: p.Match["vendor_ids"], Deny: p.Blacklist["vendor_ids"]},
		{Value: d.ProductID, Allow: p.Match["product_ids"], Deny: p.Blacklist["product_ids"]},
	}
}

// usbDeviceDir matches sysfs USB device directory names like "1-1.4".
// Root-hub ("usb1") and interface ("1-1.4:1.0") entries are excluded.
var usbDeviceDir = regexp.MustCompile(`^\d+-[\d.]+$`)

const usbBlacklistPath = "/etc/hwdb/usb_blacklist"

// USBDevices enumerates USB devices from /sys/bus/usb/devices.
func (e *SysfsEnumerator) USBDevices() ([]*USBDevice, error) {
	base := e.path("/sys/bus/usb/devices")
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("enumerate usb devices: %w", err)
	}

	var devices []*USBDevice
	for _, entry := range entries {
		busid := entry.Name()
		if !usbDeviceDir.MatchString(busid) {
			continue
		}
		devices = append(devices, e.readUSBDevice(base, busid))
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].SysfsBusID < devices[j].SysfsBusID })
	return devices, nil
}

func (e *SysfsEnumerator) readUSBDevice(base, busid string) *USBDevice {
	dir := filepath.Join(base, busid)
	driver := e.usbKernelDriver(base, busid)

	d := &USBDevice{
		Manufacturer: readAttr(filepath.Join(dir, "manufacturer"), "Unknown"),
		Product:      readAttr(filepath.Join(dir, "product"), "Unknown"),
		Serial:       readAttr(filepath.Join(dir, "serial"), "Unknown"),
		ProtocolCode: readAttr(filepath.Join(dir, "bDeviceProtocol"), "00"),
		ClassCode:    strings.ToUpper(readAttr(filepath.Join(dir, "bDeviceClass"), "00")),
		VendorID:     readAttr(filepath.Join(dir, "idVendor"), ""),
		ProductID:    readAttr(filepath.Join(dir, "idProduct"), ""),
		USBVersion:   readAttr(filepath.Join(dir, "version"), "Unknown"),
		BusNumber:    atoi(readAttr(filepath.Join(dir, "busnum"), "0")),
		PortNumber:   usbPortNumber(busid),
		Address:      atoi(readAttr(filepath.Join(dir, "devnum"), "0")),
		SysfsBusID:   busid,
		KernelDriver: driver,
		Speed:        readAttr(filepath.Join(dir, "speed"), "Unknown"),
		Enabled:      e.usbEnabled(busid),
	}
	if driver != "Unknown" {
		started := e.usbStarted(base, busid)
		d.Started = &started
	}
	return d
}

// usbKernelDriver resolves the driver bound to the device's first interface.
func (e *SysfsEnumerator) usbKernelDriver(base, busid string) string {
	link, err := os.Readlink(filepath.Join(base, busid+":1.0", "driver"))
	if err != nil {
		return "Unknown"
	}
	return filepath.Base(link)
}

func (e *SysfsEnumerator) usbStarted(base, busid string) bool {
	_, err := os.Lstat(filepath.Join(base, busid+":1.0", "driver"))
	return err == nil
}

// usbEnabled reports whether the busid is absent from the blacklist file
// consulted by the boot-time device gate.
func (e *SysfsEnumerator) usbEnabled(busid string) bool {
	b, err := os.ReadFile(e.path(usbBlacklistPath))
	if err != nil {
		return true
	}
	for _, line := range strings.Split(string(b), "\n") {
		if strings.TrimSpace(line) == busid {
			return false
		}
	}
	return true
}

// usbPortNumber extracts the final port component of a sysfs busid
// ("3-1.2" -> 2).
func usbPortNumber(busid string) int {
	s := busid
	if i := strings.LastIndexAny(s, ".-"); i >= 0 {
		s = s[i+1:]
	}
	return atoi(s)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// USBByBusID finds an enumerated device by its sysfs busid.
func USBByBusID(devices []*USBDevice, busid string) (*USBDevice, error) {
	for _, d := range devices {
		if d.SysfsBusID == busid {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: usb busid %q", ErrDeviceNotFound, busid)
}

// GroupUSBByClass buckets devices by their class code, preserving the
// enumeration order within each bucket.
func GroupUSBByClass(devices []*USBDevice) map[string][]*USBDevice {
	out := map[string][]*USBDevice{}
	for _, d := range devices {
		out[d.ClassCode] = append(out[d.ClassCode], d)
	}
	return out
}
