package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hwdb-project/hwdbctl/pkg/catalog"
	"github.com/hwdb-project/hwdbctl/pkg/hwd"
	"github.com/hwdb-project/hwdbctl/pkg/match"
	"github.com/hwdb-project/hwdbctl/pkg/output"
)

var bluetoothCmd = &cobra.Command{
	Use:     "bluetooth",
	Aliases: []string{"bt"},
	Short:   "Manage Bluetooth devices and their driver profiles",
	Long:    "List known Bluetooth devices, resolve matching driver profiles, and control pairing, connection, trust, and blocking.",
}

type bluetoothRow struct {
	Name      string `json:"name" yaml:"name"`
	Address   string `json:"address" yaml:"address"`
	Adapter   string `json:"adapter" yaml:"adapter"`
	Paired    string `json:"paired" yaml:"paired"`
	Connected string `json:"connected" yaml:"connected"`
	Trusted   string `json:"trusted" yaml:"trusted"`
	Blocked   string `json:"blocked" yaml:"blocked"`
	Profiles  int    `json:"profiles" yaml:"profiles"`
}

var bluetoothListCmd = &cobra.Command{
	Use:   "list",
	Short: "List Bluetooth devices known to the system",
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := enum.BluetoothDevices()
		if err != nil {
			return err
		}
		cat, err := fetchCatalog(catalog.DomainBluetooth)
		if err != nil {
			return err
		}
		rows := make([]bluetoothRow, 0, len(devices))
		for _, d := range devices {
			d.Profiles.Set(match.Available(cat.Profiles, d.Rules))
			matched, _ := d.Profiles.Get()
			name := d.Alias
			if name == "" {
				name = d.Name
			}
			rows = append(rows, bluetoothRow{
				Name:      output.Truncate(name, 28),
				Address:   d.Address,
				Adapter:   d.Adapter,
				Paired:    yesNo(d.Paired),
				Connected: yesNo(d.Connected),
				Trusted:   yesNo(d.Trusted),
				Blocked:   yesNo(d.Blocked),
				Profiles:  len(matched),
			})
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(rows))
		return nil
	},
}

var bluetoothProfilesCmd = &cobra.Command{
	Use:   "profiles <address>",
	Short: "Show driver profiles matching a Bluetooth device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := enum.BluetoothDevices()
		if err != nil {
			return err
		}
		device, err := hwd.BluetoothByAddress(devices, args[0])
		if err != nil {
			return err
		}
		cat, err := fetchCatalog(catalog.DomainBluetooth)
		if err != nil {
			return err
		}
		device.Profiles.Set(match.Available(cat.Profiles, device.Rules))

		matched, _ := device.Profiles.Get()
		matched = visibleProfiles(matched)
		if len(matched) == 0 {
			return fmt.Errorf("%s", tr.T("no_profiles"))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s", device.Address, formatter.Format(profileRows(matched)))
		return nil
	},
}

var bluetoothStatusCmd = &cobra.Command{
	Use:   "status <codename>",
	Short: "Report whether a Bluetooth profile is installed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printProfileStatus(cmd.OutOrStdout(), catalog.DomainBluetooth, args[0])
	},
}

var bluetoothInstallCmd = &cobra.Command{
	Use:   "install <codename>",
	Short: "Install a Bluetooth profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return installProfile(cmd.OutOrStdout(), catalog.DomainBluetooth, args[0])
	},
}

var bluetoothUninstallCmd = &cobra.Command{
	Use:   "uninstall <codename>",
	Short: "Uninstall a Bluetooth profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return uninstallProfile(cmd.OutOrStdout(), catalog.DomainBluetooth, args[0])
	},
}

func bluetoothActionCmd(use, short string, action func(*hwd.BluetoothDevice) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <address>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := enum.BluetoothDevices()
			if err != nil {
				return err
			}
			device, err := hwd.BluetoothByAddress(devices, args[0])
			if err != nil {
				return err
			}
			if err := action(device); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Device %q: %s requested.\n", device.Address, use)
			return nil
		},
	}
}

func init() {
	bluetoothCmd.AddCommand(bluetoothListCmd)
	bluetoothCmd.AddCommand(bluetoothProfilesCmd)
	bluetoothCmd.AddCommand(bluetoothStatusCmd)
	bluetoothCmd.AddCommand(bluetoothInstallCmd)
	bluetoothCmd.AddCommand(bluetoothUninstallCmd)
	bluetoothCmd.AddCommand(bluetoothActionCmd("pair", "Pair with the device", func(d *hwd.BluetoothDevice) error { return control.PairBluetooth(d) }))
	bluetoothCmd.AddCommand(bluetoothActionCmd("connect", "Connect to the device", func(d *hwd.BluetoothDevice) error { return control.ConnectBluetooth(d) }))
	bluetoothCmd.AddCommand(bluetoothActionCmd("disconnect", "Disconnect from the device", func(d *hwd.BluetoothDevice) error { return control.DisconnectBluetooth(d) }))
	bluetoothCmd.AddCommand(bluetoothActionCmd("trust", "Mark the device as trusted", func(d *hwd.BluetoothDevice) error { return control.TrustBluetooth(d) }))
	bluetoothCmd.AddCommand(bluetoothActionCmd("untrust", "Revoke the device's trusted mark", func(d *hwd.BluetoothDevice) error { return control.UntrustBluetooth(d) }))
	bluetoothCmd.AddCommand(bluetoothActionCmd("block", "Block the device", func(d *hwd.BluetoothDevice) error { return control.BlockBluetooth(d) }))
	bluetoothCmd.AddCommand(bluetoothActionCmd("unblock", "Unblock the device", func(d *hwd.BluetoothDevice) error { return control.UnblockBluetooth(d) }))
	rootCmd.AddCommand(bluetoothCmd)
}
