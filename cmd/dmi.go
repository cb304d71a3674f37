package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hwdb-project/hwdbctl/pkg/catalog"
	"github.com/hwdb-project/hwdbctl/pkg/match"
)

var dmiCmd = &cobra.Command{
	Use:   "dmi",
	Short: "Inspect the machine's DMI identity and firmware profiles",
}

type dmiRow struct {
	BIOSVendor    string `json:"bios_vendor" yaml:"bios_vendor" table:"BIOS VENDOR"`
	BIOSVersion   string `json:"bios_version" yaml:"bios_version" table:"BIOS VERSION"`
	BIOSDate      string `json:"bios_date" yaml:"bios_date" table:"BIOS DATE"`
	BoardVendor   string `json:"board_vendor" yaml:"board_vendor"`
	BoardName     string `json:"board_name" yaml:"board_name"`
	ProductName   string `json:"product_name" yaml:"product_name"`
	ProductFamily string `json:"product_family" yaml:"product_family"`
	SysVendor     string `json:"sys_vendor" yaml:"sys_vendor"`
}

var dmiShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the board identification strings",
	RunE: func(cmd *cobra.Command, args []string) error {
		device, err := enum.DMIDevice()
		if err != nil {
			return err
		}
		row := dmiRow{
			BIOSVendor:    device.BIOSVendor,
			BIOSVersion:   device.BIOSVersion,
			BIOSDate:      device.BIOSDate,
			BoardVendor:   device.BoardVendor,
			BoardName:     device.BoardName,
			ProductName:   device.ProductName,
			ProductFamily: device.ProductFamily,
			SysVendor:     device.SysVendor,
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format([]dmiRow{row}))
		return nil
	},
}

var dmiProfilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Show firmware profiles matching this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		device, err := enum.DMIDevice()
		if err != nil {
			return err
		}
		cat, err := fetchCatalog(catalog.DomainDMI)
		if err != nil {
			return err
		}
		device.Profiles.Set(match.Available(cat.Profiles, device.Rules))

		matched, _ := device.Profiles.Get()
		matched = visibleProfiles(matched)
		if len(matched) == 0 {
			return fmt.Errorf("%s", tr.T("no_profiles"))
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(profileRows(matched)))
		return nil
	},
}

var dmiStatusCmd = &cobra.Command{
	Use:   "status <codename>",
	Short: "Report whether a DMI profile is installed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printProfileStatus(cmd.OutOrStdout(), catalog.DomainDMI, args[0])
	},
}

var dmiInstallCmd = &cobra.Command{
	Use:   "install <codename>",
	Short: "Install a DMI profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return installProfile(cmd.OutOrStdout(), catalog.DomainDMI, args[0])
	},
}

var dmiUninstallCmd = &cobra.Command{
	Use:   "uninstall <codename>",
	Short: "Uninstall a DMI profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return uninstallProfile(cmd.OutOrStdout(), catalog.DomainDMI, args[0])
	},
}

func init() {
	dmiCmd.AddCommand(dmiShowCmd)
	dmiCmd.AddCommand(dmiProfilesCmd)
	dmiCmd.AddCommand(dmiStatusCmd)
	dmiCmd.AddCommand(dmiInstallCmd)
	dmiCmd.AddCommand(dmiUninstallCmd)
	rootCmd.AddCommand(dmiCmd)
}
