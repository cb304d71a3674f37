package catalog

import "fmt"

// Domain identifies one of the three device categories that share the
// matching algorithm but differ in identification fields.
type Domain string

const (
	DomainUSB       Domain = "usb"
	DomainBluetooth Domain = "bluetooth"
	DomainDMI       Domain = "dmi"
)

// Domains lists all supported domains in display order.
var Domains = []Domain{DomainUSB, DomainBluetooth, DomainDMI}

// ParseDomain converts a CLI/config word into a Domain.
func ParseDomain(s string) (Domain, error) {
	switch Domain(s) {
	case DomainUSB, DomainBluetooth, DomainDMI:
		return Domain(s), nil
	}
	return "", fmt.Errorf("unknown domain %q (expected usb, bluetooth, or dmi)", s)
}

func (d Domain) String() string { return string(d) }

// matchFields maps each domain to the catalog keys of its whitelist arrays.
// The parallel blacklist arrays use the same keys with a "blacklisted_"
// prefix. The device adapters in pkg/hwd feed the match engine with values
// keyed by these names, so the two sets must stay in sync.
var matchFields = map[Domain][]string{
	DomainUSB: {
		"class_codes",
		"vendor_ids",
		"product_ids",
	},
	DomainBluetooth: {
		"class_ids",
		"bt_names",
		"modalias_vendor_ids",
		"modalias_product_ids",
		"modalias_device_ids",
	},
	DomainDMI: {
		"bios_vendors",
		"board_asset_tags",
		"board_names",
		"board_vendors",
		"product_families",
		"product_names",
		"product_skus",
		"sys_vendors",
	},
}

// MatchFields returns the whitelist field keys defined for a domain.
func MatchFields(d Domain) []string {
	return matchFields[d]
}
