package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type stubDashSource struct {
	usb []USBRow
	bt  []BluetoothRow
	dmi []DMIRow
	err error
}

func (s *stubDashSource) USB() ([]USBRow, error)             { return s.usb, s.err }
func (s *stubDashSource) Bluetooth() ([]BluetoothRow, error) { return s.bt, s.err }
func (s *stubDashSource) DMI() ([]DMIRow, error)             { return s.dmi, s.err }

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	return tea.KeyMsg{Type: tea.KeyTab}
}

func TestModelTabNavigation(t *testing.T) {
	m := New(&stubDashSource{})
	if m.activeTab != tabUSB {
		t.Fatalf("initial tab = %v", m.activeTab)
	}

	next, _ := m.Update(keyMsg("tab"))
	m = next.(Model)
	if m.activeTab != tabBluetooth {
		t.Errorf("tab key: activeTab = %v", m.activeTab)
	}

	next, _ = m.Update(keyMsg("3"))
	m = next.(Model)
	if m.activeTab != tabDMI {
		t.Errorf("numeric jump: activeTab = %v", m.activeTab)
	}

	// Cycling past the last tab wraps to the first.
	next, _ = m.Update(keyMsg("tab"))
	m = next.(Model)
	if m.activeTab != tabUSB {
		t.Errorf("wrap: activeTab = %v", m.activeTab)
	}
}

func TestModelDataAndErrorMessages(t *testing.T) {
	m := New(&stubDashSource{})
	next, _ := m.Update(dataMsg{
		usb: []USBRow{{BusID: "1-1.2", Product: "USB Receiver"}},
		dmi: []DMIRow{{Attribute: "sys_vendor", Value: "Gigabyte"}},
	})
	m = next.(Model)
	if len(m.usb) != 1 || m.loading {
		t.Fatalf("dataMsg not applied: %+v", m)
	}

	next, _ = m.Update(errMsg(errors.New("sysfs gone")))
	m = next.(Model)
	if m.err == nil {
		t.Fatal("errMsg not recorded")
	}
	m.width, m.height = 80, 24
	if !strings.Contains(m.View(), "sysfs gone") {
		t.Error("error not shown in status bar")
	}
}

func TestCollectPropagatesError(t *testing.T) {
	src := &stubDashSource{err: errors.New("boom")}
	msg := collect(src)()
	if _, ok := msg.(errMsg); !ok {
		t.Fatalf("expected errMsg, got %T", msg)
	}

	msg = collect(&stubDashSource{usb: []USBRow{{BusID: "2-1"}}})()
	data, ok := msg.(dataMsg)
	if !ok || len(data.usb) != 1 {
		t.Fatalf("expected dataMsg with one row, got %#v", msg)
	}
}

func TestViewRendersActiveTab(t *testing.T) {
	m := New(&stubDashSource{})
	m.width, m.height = 100, 30
	m.usb = []USBRow{{BusID: "1-1.2", Product: "USB Receiver", Class: "03"}}

	view := m.View()
	if !strings.Contains(view, "1-1.2") || !strings.Contains(view, "USB Receiver") {
		t.Errorf("usb tab content missing:\n%s", view)
	}
	if !strings.Contains(view, "Hardware Profile Dashboard") {
		t.Errorf("title missing:\n%s", view)
	}
}

func TestRenderTableEmptyAndClipping(t *testing.T) {
	if out := renderUSB(nil, 80); !strings.Contains(out, "No USB devices") {
		t.Errorf("empty message missing: %q", out)
	}
	if got := clipLines("a\nb\nc", 2); got != "a\nb" {
		t.Errorf("clipLines = %q", got)
	}
	if got := clipWidth("abcdef", 4); got != "abc…" {
		t.Errorf("clipWidth = %q", got)
	}
}
