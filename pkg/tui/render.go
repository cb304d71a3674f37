package tui

import (
	"fmt"
	"strings"
)

// USBRow is one line of the USB tab.
type USBRow struct {
	BusID    string
	Product  string
	Class    string
	Driver   string
	Enabled  string
	Profiles string
}

// BluetoothRow is one line of the Bluetooth tab.
type BluetoothRow struct {
	Name      string
	Address   string
	Paired    string
	Connected string
	Profiles  string
}

// DMIRow is one attribute/value pair of the DMI tab.
type DMIRow struct {
	Attribute string
	Value     string
}

// renderUSB renders the USB device table.
func renderUSB(rows []USBRow, width int) string {
	if len(rows) == 0 {
		return dimStyle.Render("No USB devices found.")
	}
	headers := []string{"BUS ID", "PRODUCT", "CLASS", "DRIVER", "ENABLED", "PROFILES"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.BusID, r.Product, r.Class, r.Driver, r.Enabled, r.Profiles})
	}
	return renderTable(headers, cells, width)
}

// renderBluetooth renders the Bluetooth device table.
func renderBluetooth(rows []BluetoothRow, width int) string {
	if len(rows) == 0 {
		return dimStyle.Render("No Bluetooth devices found.")
	}
	headers := []string{"NAME", "ADDRESS", "PAIRED", "CONNECTED", "PROFILES"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Name, r.Address, r.Paired, r.Connected, r.Profiles})
	}
	return renderTable(headers, cells, width)
}

// renderDMI renders the board identity as an attribute/value table.
func renderDMI(rows []DMIRow, width int) string {
	if len(rows) == 0 {
		return dimStyle.Render("No DMI data available.")
	}
	headers := []string{"ATTRIBUTE", "VALUE"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Attribute, r.Value})
	}
	return renderTable(headers, cells, width)
}

// renderTable lays out a simple fixed-width table with zebra striping.
// Columns are sized to their widest cell; the whole row is clipped to width.
func renderTable(headers []string, rows [][]string, width int) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	var head []string
	for i, h := range headers {
		head = append(head, headerCellStyle.Render(pad(h, widths[i])))
	}
	sb.WriteString(clipWidth(strings.Join(head, " "), width))
	sb.WriteString("\n")

	for n, row := range rows {
		style := rowStyle
		if n%2 == 1 {
			style = altRowStyle
		}
		var line []string
		for i, cell := range row {
			line = append(line, style.Render(pad(cell, widths[i])))
		}
		sb.WriteString(clipWidth(strings.Join(line, " "), width))
		if n < len(rows)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// pad right-pads s with spaces to exactly n display columns.
func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

// clipWidth truncates s to at most width columns, appending an ellipsis
// marker when clipping occurred.
func clipWidth(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return fmt.Sprintf("%s…", s[:width-1])
}
