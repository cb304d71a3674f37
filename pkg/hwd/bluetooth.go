package hwd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/hwdb-project/hwdbctl/pkg/catalog"
	"github.com/hwdb-project/hwdbctl/pkg/match"
)

// BluetoothDevice is a read-only snapshot of one known Bluetooth device plus
// its mutable available-profiles slot.
type BluetoothDevice struct {
	Address string `json:"address" yaml:"address"`
	Name    string `json:"name" yaml:"name"`
	Alias   string `json:"alias" yaml:"alias"`
	Adapter string `json:"adapter" yaml:"adapter"`

	ClassID           string `json:"class_id" yaml:"class_id"`
	ModaliasVendorID  string `json:"modalias_vendor_id" yaml:"modalias_vendor_id"`
	ModaliasProductID string `json:"modalias_product_id" yaml:"modalias_product_id"`
	ModaliasDeviceID  string `json:"modalias_device_id" yaml:"modalias_device_id"`

	Paired    bool `json:"paired" yaml:"paired"`
	Connected bool `json:"connected" yaml:"connected"`
	Trusted   bool `json:"trusted" yaml:"trusted"`
	Blocked   bool `json:"blocked" yaml:"blocked"`

	Profiles match.Result `json:"-" yaml:"-"`
}

// Rules adapts the device's identification attributes to the generic match
// engine, keyed by the Bluetooth catalog field names.
func (d *BluetoothDevice) Rules(p *catalog.Profile) []match.Rule {
	return []match.Rule{
		{Value: d.ClassID, Allow: p.Match["class_ids"], Deny: p.Blacklist["class_ids"]},
		{Value: d.Name, Allow: p.Match["bt_names"], Deny: p.Blacklist["bt_names"]},
		{Value: d.ModaliasVendorID, Allow: p.Match["modalias_vendor_ids"], Deny: p.Blacklist["modalias_vendor_ids"]},
		{Value: d.ModaliasProductID, Allow: p.Match["modalias_product_ids"], Deny: p.Blacklist["modalias_product_ids"]},
		{Value: d.ModaliasDeviceID, Allow: p.Match["modalias_device_ids"], Deny: p.Blacklist["modalias_device_ids"]},
	}
}

const bluezStateDir = "/var/lib/bluetooth"

var macDir = regexp.MustCompile(`^([0-9A-F]{2}:){5}[0-9A-F]{2}$`)

// modaliasRE captures the vendor/product/device components of a BlueZ
// modalias like "usb:v1D6Bp0246d0537" or "bluetooth:v004Cp0201d0300".
var modaliasRE = regexp.MustCompile(`v([0-9A-Fa-f]{4})p([0-9A-Fa-f]{4})d([0-9A-Fa-f]{4})`)

// BluetoothDevices enumerates devices known to BlueZ from its state
// directory. Each adapter directory holds one directory per remote device
// with an INI-style info file.
func (e *SysfsEnumerator) BluetoothDevices() ([]*BluetoothDevice, error) {
	base := e.path(bluezStateDir)
	adapters, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("enumerate bluetooth devices: %w", err)
	}

	var devices []*BluetoothDevice
	for _, adapter := range adapters {
		if !adapter.IsDir() || !macDir.MatchString(adapter.Name()) {
			continue
		}
		adapterDir := filepath.Join(base, adapter.Name())
		remotes, err := os.ReadDir(adapterDir)
		if err != nil {
			continue
		}
		for _, remote := range remotes {
			if !remote.IsDir() || !macDir.MatchString(remote.Name()) {
				continue
			}
			d, err := readBluezInfo(filepath.Join(adapterDir, remote.Name(), "info"))
			if err != nil {
				continue
			}
			d.Address = remote.Name()
			d.Adapter = adapter.Name()
			devices = append(devices, d)
		}
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].Address < devices[j].Address })
	return devices, nil
}

// readBluezInfo parses a BlueZ per-device info file. The format is INI-like:
// [General] carries Name/Alias/Class/Trusted/Blocked/Modalias, and the
// presence of a [LinkKey] or [IdentityResolvingKey] section marks the device
// as paired. Connection state is runtime-only and not recorded here.
func readBluezInfo(path string) (*BluetoothDevice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := &BluetoothDevice{}
	section := ""
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			section = line[1 : len(line)-1]
			if section == "LinkKey" || section == "IdentityResolvingKey" {
				d.Paired = true
			}
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || section != "General" {
			continue
		}
		switch key {
		case "Name":
			d.Name = value
		case "Alias":
			d.Alias = value
		case "Class":
			d.ClassID = strings.ToUpper(strings.TrimPrefix(value, "0x"))
		case "Trusted":
			d.Trusted = value == "true"
		case "Blocked":
			d.Blocked = value == "true"
		case "Modalias":
			if m := modaliasRE.FindStringSubmatch(value); m != nil {
				d.ModaliasVendorID = strings.ToLower(m[1])
				d.ModaliasProductID = strings.ToLower(m[2])
				d.ModaliasDeviceID = strings.ToLower(m[3])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if d.Alias == "" {
		d.Alias = d.Name
	}
	return d, nil
}

// BluetoothByAddress finds an enumerated device by its MAC address.
func BluetoothByAddress(devices []*BluetoothDevice, address string) (*BluetoothDevice, error) {
	want := strings.ToUpper(address)
	for _, d := range devices {
		if d.Address == want {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: bluetooth address %q", ErrDeviceNotFound, address)
}
