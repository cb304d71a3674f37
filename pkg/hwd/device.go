// Package hwd models the hardware devices hwdbctl operates on and provides
// the enumeration adapters for the three device domains. Enumeration is a
// read-only snapshot: devices are produced fresh on every invocation and
// never persisted.
package hwd

import (
	"errors"
	"os"
	"strings"
)

// ErrDeviceNotFound is returned when a user-supplied device identifier does
// not match any enumerated device.
var ErrDeviceNotFound = errors.New("no device with matching identifier")

// Enumerator produces device snapshots for each domain. The sysfs-backed
// implementation is the production adapter; tests use Mock.
type Enumerator interface {
	USBDevices() ([]*USBDevice, error)
	BluetoothDevices() ([]*BluetoothDevice, error)
	DMIDevice() (*DMIDevice, error)
}

// SysfsEnumerator reads device state from the kernel's sysfs tree and the
// BlueZ state directory. Root is prepended to every absolute path so tests
// can point the enumerator at a fixture tree.
type SysfsEnumerator struct {
	Root string
}

func (e *SysfsEnumerator) path(p string) string {
	return e.Root + p
}

// readAttr reads a single sysfs attribute file, trimming whitespace.
// Missing attributes yield def.
func readAttr(path, def string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return def
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return def
	}
	return s
}
