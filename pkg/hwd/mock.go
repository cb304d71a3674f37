package hwd

// Mock implements Enumerator with canned data for development and testing.
type Mock struct{}

var _ Enumerator = (*Mock)(nil)

func (m *Mock) USBDevices() ([]*USBDevice, error) {
	started := true
	return []*USBDevice{
		{
			Manufacturer: "Logitech",
			Product:      "USB Receiver",
			Serial:       "Unknown",
			ProtocolCode: "00",
			ClassCode:    "03",
			VendorID:     "046d",
			ProductID:    "c52b",
			USBVersion:   "2.00",
			BusNumber:    1,
			PortNumber:   2,
			Address:      4,
			SysfsBusID:   "1-1.2",
			KernelDriver: "usbhid",
			Speed:        "12",
			Started:      &started,
			Enabled:      true,
		},
		{
			Manufacturer: "Realtek",
			Product:      "802.11ac WLAN Adapter",
			Serial:       "00e04c000001",
			ProtocolCode: "00",
			ClassCode:    "FF",
			VendorID:     "0bda",
			ProductID:    "b812",
			USBVersion:   "3.00",
			BusNumber:    2,
			PortNumber:   1,
			Address:      2,
			SysfsBusID:   "2-1",
			KernelDriver: "Unknown",
			Speed:        "5000",
			Enabled:      true,
		},
	}, nil
}

func (m *Mock) BluetoothDevices() ([]*BluetoothDevice, error) {
	return []*BluetoothDevice{
		{
			Address:           "E4:5F:01:AA:BB:CC",
			Name:              "MX Master 3",
			Alias:             "MX Master 3",
			Adapter:           "9C:FC:E8:11:22:33",
			ClassID:           "000580",
			ModaliasVendorID:  "046d",
			ModaliasProductID: "b023",
			ModaliasDeviceID:  "0012",
			Paired:            true,
			Trusted:           true,
		},
	}, nil
}

func (m *Mock) DMIDevice() (*DMIDevice, error) {
	return &DMIDevice{
		BIOSDate:       "03/14/2024",
		BIOSRelease:    "1.12",
		BIOSVendor:     "American Megatrends",
		BIOSVersion:    "F.12",
		BoardAssetTag:  "Unknown",
		BoardName:      "X570 AORUS ELITE",
		BoardVendor:    "Gigabyte",
		BoardVersion:   "1.0",
		ProductFamily:  "X570 MB",
		ProductName:    "X570 AORUS ELITE",
		ProductSKU:     "Unknown",
		ProductVersion: "1.0",
		SysVendor:      "Gigabyte",
	}, nil
}
