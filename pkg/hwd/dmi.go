package hwd

import (
	"path/filepath"

	"github.com/hwdb-project/hwdbctl/pkg/catalog"
	"github.com/hwdb-project/hwdbctl/pkg/match"
)

// DMIDevice is a read-only snapshot of the machine's board-level
// identification strings plus the mutable available-profiles slot. There is
// exactly one DMI device per machine.
type DMIDevice struct {
	BIOSDate    string `json:"bios_date" yaml:"bios_date"`
	BIOSRelease string `json:"bios_release" yaml:"bios_release"`
	BIOSVendor  string `json:"bios_vendor" yaml:"bios_vendor"`
	BIOSVersion string `json:"bios_version" yaml:"bios_version"`

	BoardAssetTag string `json:"board_asset_tag" yaml:"board_asset_tag"`
	BoardName     string `json:"board_name" yaml:"board_name"`
	BoardVendor   string `json:"board_vendor" yaml:"board_vendor"`
	BoardVersion  string `json:"board_version" yaml:"board_version"`

	ProductFamily  string `json:"product_family" yaml:"product_family"`
	ProductName    string `json:"product_name" yaml:"product_name"`
	ProductSKU     string `json:"product_sku" yaml:"product_sku"`
	ProductVersion string `json:"product_version" yaml:"product_version"`

	SysVendor string `json:"sys_vendor" yaml:"sys_vendor"`

	Profiles match.Result `json:"-" yaml:"-"`
}

// Rules adapts the board attributes to the generic match engine, keyed by
// the DMI catalog field names.
func (d *DMIDevice) Rules(p *catalog.Profile) []match.Rule {
	return []match.Rule{
		{Value: d.BIOSVendor, Allow: p.Match["bios_vendors"], Deny: p.Blacklist["bios_vendors"]},
		{Value: d.BoardAssetTag, Allow: p.Match["board_asset_tags"], Deny: p.Blacklist["board_asset_tags"]},
		{Value: d.BoardName, Allow: p.Match["board_names"], Deny: p.Blacklist["board_names"]},
		{Value: d.BoardVendor, Allow: p.Match["board_vendors"], Deny: p.Blacklist["board_vendors"]},
		{Value: d.ProductFamily, Allow: p.Match["product_families"], Deny: p.Blacklist["product_families"]},
		{Value: d.ProductName, Allow: p.Match["product_names"], Deny: p.Blacklist["product_names"]},
		{Value: d.ProductSKU, Allow: p.Match["product_skus"], Deny: p.Blacklist["product_skus"]},
		{Value: d.SysVendor, Allow: p.Match["sys_vendors"], Deny: p.Blacklist["sys_vendors"]},
	}
}

const dmiIDDir = "/sys/class/dmi/id"

// DMIDevice reads the board identification strings from /sys/class/dmi/id.
// Missing attributes read as "Unknown"; the directory itself is expected to
// exist on any DMI-capable machine.
func (e *SysfsEnumerator) DMIDevice() (*DMIDevice, error) {
	dir := e.path(dmiIDDir)
	attr := func(name string) string {
		return readAttr(filepath.Join(dir, name), "Unknown")
	}
	return &DMIDevice{
		BIOSDate:       attr("bios_date"),
		BIOSRelease:    attr("bios_release"),
		BIOSVendor:     attr("bios_vendor"),
		BIOSVersion:    attr("bios_version"),
		BoardAssetTag:  attr("board_asset_tag"),
		BoardName:      attr("board_name"),
		BoardVendor:    attr("board_vendor"),
		BoardVersion:   attr("board_version"),
		ProductFamily:  attr("product_family"),
		ProductName:    attr("product_name"),
		ProductSKU:     attr("product_sku"),
		ProductVersion: attr("product_version"),
		SysVendor:      attr("sys_vendor"),
	}, nil
}
