package hwd

import "fmt"

// CommandRunner executes an external command, applying privilege escalation
// when the calling user is not root. pkg/runner provides the production
// implementation.
type CommandRunner interface {
	Run(name string, args ...string) error
}

// DefaultHelper is the privileged helper script used for USB sysfs
// manipulation.
const DefaultHelper = "/usr/lib/hwdb/scripts/sysfs_helper.sh"

// Control issues domain-specific device actions. These are thin pass-through
// calls into the platform tooling and carry no matching logic.
type Control struct {
	Runner CommandRunner
	Helper string
}

func (c *Control) helper() string {
	if c.Helper != "" {
		return c.Helper
	}
	return DefaultHelper
}

// StartUSB binds the device's kernel driver.
func (c *Control) StartUSB(d *USBDevice) error {
	driver := d.KernelDriver
	if driver == "Unknown" {
		driver = ""
	}
	return c.usb("start_device", d.SysfsBusID, driver)
}

// StopUSB unbinds the device's kernel driver.
func (c *Control) StopUSB(d *USBDevice) error {
	return c.usb("stop_device", d.SysfsBusID)
}

// EnableUSB removes the device from the boot-time blacklist.
func (c *Control) EnableUSB(d *USBDevice) error {
	return c.usb("enable_device", d.SysfsBusID)
}

// DisableUSB adds the device to the boot-time blacklist.
func (c *Control) DisableUSB(d *USBDevice) error {
	return c.usb("disable_device", d.SysfsBusID)
}

func (c *Control) usb(action string, args ...string) error {
	full := append([]string{action, "usb"}, args...)
	if err := c.Runner.Run(c.helper(), full...); err != nil {
		return fmt.Errorf("usb %s: %w", action, err)
	}
	return nil
}

// Bluetooth actions shell out to bluetoothctl, which talks to the running
// BlueZ daemon.

func (c *Control) PairBluetooth(d *BluetoothDevice) error    { return c.bt("pair", d.Address) }
func (c *Control) ConnectBluetooth(d *BluetoothDevice) error { return c.bt("connect", d.Address) }
func (c *Control) DisconnectBluetooth(d *BluetoothDevice) error {
	return c.bt("disconnect", d.Address)
}
func (c *Control) TrustBluetooth(d *BluetoothDevice) error   { return c.bt("trust", d.Address) }
func (c *Control) UntrustBluetooth(d *BluetoothDevice) error { return c.bt("untrust", d.Address) }
func (c *Control) BlockBluetooth(d *BluetoothDevice) error   { return c.bt("block", d.Address) }
func (c *Control) UnblockBluetooth(d *BluetoothDevice) error { return c.bt("unblock", d.Address) }

func (c *Control) bt(action, address string) error {
	if err := c.Runner.Run("bluetoothctl", action, address); err != nil {
		return fmt.Errorf("bluetooth %s %s: %w", action, address, err)
	}
	return nil
}
