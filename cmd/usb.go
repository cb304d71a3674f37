package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hwdb-project/hwdbctl/pkg/catalog"
	"github.com/hwdb-project/hwdbctl/pkg/hwd"
	"github.com/hwdb-project/hwdbctl/pkg/match"
	"github.com/hwdb-project/hwdbctl/pkg/output"
)

var usbCmd = &cobra.Command{
	Use:   "usb",
	Short: "Manage USB devices and their driver profiles",
	Long:  "List USB devices, resolve matching driver profiles, and install, remove, start, or stop them.",
}

// usbRow is the table shape for `usb list`.
type usbRow struct {
	Manufacturer string `json:"manufacturer" yaml:"manufacturer"`
	Product      string `json:"product" yaml:"product"`
	BusID        string `json:"busid" yaml:"busid" table:"BUS ID"`
	Speed        string `json:"speed" yaml:"speed"`
	Driver       string `json:"driver" yaml:"driver"`
	Started      string `json:"started" yaml:"started"`
	Enabled      string `json:"enabled" yaml:"enabled"`
	Profiles     int    `json:"profiles" yaml:"profiles"`
}

var usbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List USB devices grouped by device class",
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := enum.USBDevices()
		if err != nil {
			return err
		}
		cat, err := fetchCatalog(catalog.DomainUSB)
		if err != nil {
			return err
		}
		for _, d := range devices {
			d.Profiles.Set(match.Available(cat.Profiles, d.Rules))
		}

		grouped := map[string][]usbRow{}
		for class, classDevices := range hwd.GroupUSBByClass(devices) {
			for _, d := range classDevices {
				grouped[class] = append(grouped[class], usbDeviceRow(d))
			}
		}

		out := cmd.OutOrStdout()
		if _, table := formatter.(*output.TableFormatter); !table {
			fmt.Fprint(out, formatter.Format(grouped))
			return nil
		}
		classes := make([]string, 0, len(grouped))
		for class := range grouped {
			classes = append(classes, class)
		}
		sort.Strings(classes)
		for _, class := range classes {
			fmt.Fprintf(out, "Class %s\n%s\n", class, formatter.Format(grouped[class]))
		}
		return nil
	},
}

func usbDeviceRow(d *hwd.USBDevice) usbRow {
	started := tr.T("n_a")
	if d.Started != nil {
		started = yesNo(*d.Started)
	}
	matched, _ := d.Profiles.Get()
	return usbRow{
		Manufacturer: output.Truncate(d.Manufacturer, 18),
		Product:      output.Truncate(d.Product, 36),
		BusID:        d.SysfsBusID,
		Speed:        d.Speed,
		Driver:       d.KernelDriver,
		Started:      started,
		Enabled:      yesNo(d.Enabled),
		Profiles:     len(matched),
	}
}

var usbProfilesCmd = &cobra.Command{
	Use:   "profiles <busid>",
	Short: "Show driver profiles matching a USB device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := enum.USBDevices()
		if err != nil {
			return err
		}
		device, err := hwd.USBByBusID(devices, args[0])
		if err != nil {
			return err
		}
		cat, err := fetchCatalog(catalog.DomainUSB)
		if err != nil {
			return err
		}
		device.Profiles.Set(match.Available(cat.Profiles, device.Rules))

		matched, _ := device.Profiles.Get()
		matched = visibleProfiles(matched)
		if len(matched) == 0 {
			return fmt.Errorf("%s", tr.T("no_profiles"))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s", device.SysfsBusID, formatter.Format(profileRows(matched)))
		return nil
	},
}

var usbStatusCmd = &cobra.Command{
	Use:   "status <codename>",
	Short: "Report whether a USB profile is installed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printProfileStatus(cmd.OutOrStdout(), catalog.DomainUSB, args[0])
	},
}

var usbInstallCmd = &cobra.Command{
	Use:   "install <codename>",
	Short: "Install a USB profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return installProfile(cmd.OutOrStdout(), catalog.DomainUSB, args[0])
	},
}

var usbUninstallCmd = &cobra.Command{
	Use:   "uninstall <codename>",
	Short: "Uninstall a USB profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return uninstallProfile(cmd.OutOrStdout(), catalog.DomainUSB, args[0])
	},
}

// usbActionCmd builds one of the pass-through device action commands.
func usbActionCmd(use, short string, action func(*hwd.USBDevice) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <busid>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := enum.USBDevices()
			if err != nil {
				return err
			}
			device, err := hwd.USBByBusID(devices, args[0])
			if err != nil {
				return err
			}
			if err := action(device); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Device %q: %s requested.\n", device.SysfsBusID, use)
			return nil
		},
	}
}

func init() {
	usbCmd.AddCommand(usbListCmd)
	usbCmd.AddCommand(usbProfilesCmd)
	usbCmd.AddCommand(usbStatusCmd)
	usbCmd.AddCommand(usbInstallCmd)
	usbCmd.AddCommand(usbUninstallCmd)
	usbCmd.AddCommand(usbActionCmd("start", "Bind the device's kernel driver", func(d *hwd.USBDevice) error { return control.StartUSB(d) }))
	usbCmd.AddCommand(usbActionCmd("stop", "Unbind the device's kernel driver", func(d *hwd.USBDevice) error { return control.StopUSB(d) }))
	usbCmd.AddCommand(usbActionCmd("enable", "Remove the device from the boot-time blacklist", func(d *hwd.USBDevice) error { return control.EnableUSB(d) }))
	usbCmd.AddCommand(usbActionCmd("disable", "Add the device to the boot-time blacklist", func(d *hwd.USBDevice) error { return control.DisableUSB(d) }))
	rootCmd.AddCommand(usbCmd)
}
