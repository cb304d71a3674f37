package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hwdb-project/hwdbctl/pkg/catalog"
	"github.com/hwdb-project/hwdbctl/pkg/match"
	"github.com/hwdb-project/hwdbctl/pkg/tui"
)

// dashboardCmd launches the interactive TUI dashboard.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive TUI dashboard",
	Long: `Launch an interactive terminal dashboard that displays live data
about USB devices, Bluetooth devices, and the machine's DMI identity,
together with the number of driver profiles matching each device.
Data is refreshed every 2 seconds from sysfs and the cached catalogs.

Key bindings:
  Tab / Shift+Tab  Navigate between tabs
  1 / 2 / 3        Jump directly to USB / Bluetooth / DMI
  r                Force an immediate data refresh
  q / Ctrl+C       Quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		src := &dashboardSource{ctx: cmd.Context()}
		p := tea.NewProgram(tui.New(src), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

// dashboardSource adapts the enumerator and catalog source to the dashboard.
type dashboardSource struct {
	ctx context.Context
}

func (s *dashboardSource) USB() ([]tui.USBRow, error) {
	devices, err := enum.USBDevices()
	if err != nil {
		return nil, err
	}
	cat, err := source.Fetch(s.ctx, catalog.DomainUSB)
	if err != nil {
		return nil, err
	}
	rows := make([]tui.USBRow, 0, len(devices))
	for _, d := range devices {
		d.Profiles.Set(match.Available(cat.Profiles, d.Rules))
		matched, _ := d.Profiles.Get()
		rows = append(rows, tui.USBRow{
			BusID:    d.SysfsBusID,
			Product:  d.Product,
			Class:    d.ClassCode,
			Driver:   d.KernelDriver,
			Enabled:  yesNo(d.Enabled),
			Profiles: fmt.Sprintf("%d", len(matched)),
		})
	}
	return rows, nil
}

func (s *dashboardSource) Bluetooth() ([]tui.BluetoothRow, error) {
	devices, err := enum.BluetoothDevices()
	if err != nil {
		return nil, err
	}
	cat, err := source.Fetch(s.ctx, catalog.DomainBluetooth)
	if err != nil {
		return nil, err
	}
	rows := make([]tui.BluetoothRow, 0, len(devices))
	for _, d := range devices {
		d.Profiles.Set(match.Available(cat.Profiles, d.Rules))
		matched, _ := d.Profiles.Get()
		name := d.Alias
		if name == "" {
			name = d.Name
		}
		rows = append(rows, tui.BluetoothRow{
			Name:      name,
			Address:   d.Address,
			Paired:    yesNo(d.Paired),
			Connected: yesNo(d.Connected),
			Profiles:  fmt.Sprintf("%d", len(matched)),
		})
	}
	return rows, nil
}

func (s *dashboardSource) DMI() ([]tui.DMIRow, error) {
	d, err := enum.DMIDevice()
	if err != nil {
		return nil, err
	}
	return []tui.DMIRow{
		{Attribute: "bios_vendor", Value: d.BIOSVendor},
		{Attribute: "bios_version", Value: d.BIOSVersion},
		{Attribute: "bios_date", Value: d.BIOSDate},
		{Attribute: "board_vendor", Value: d.BoardVendor},
		{Attribute: "board_name", Value: d.BoardName},
		{Attribute: "product_name", Value: d.ProductName},
		{Attribute: "product_family", Value: d.ProductFamily},
		{Attribute: "sys_vendor", Value: d.SysVendor},
	}, nil
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
