package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/frame/pkg/netlist"
)

func testModel(t *testing.T) inspectModel {
	t.Helper()
	n, err := netlist.Parse([]byte(testNetlist))
	if err != nil {
		t.Fatal(err)
	}
	return newInspectModel("chip.yaml", n.Graph())
}

func press(m inspectModel, keys ...tea.KeyMsg) inspectModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(inspectModel)
	}
	return m
}

var (
	keyDown = tea.KeyMsg{Type: tea.KeyDown}
	keyUp   = tea.KeyMsg{Type: tea.KeyUp}
	keyJ    = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	keyEnd  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}
)

func TestInspectNavigation(t *testing.T) {
	m := testModel(t)
	if len(m.nodes) != 4 {
		t.Fatalf("model has %d nodes, want 4", len(m.nodes))
	}

	m = press(m, keyUp)
	if m.cursor != 0 {
		t.Errorf("cursor moved above the first node: %d", m.cursor)
	}
	m = press(m, keyDown, keyJ)
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
	m = press(m, keyEnd, keyDown)
	if m.cursor != 3 {
		t.Errorf("cursor = %d, want 3 (last node)", m.cursor)
	}
}

func TestInspectScrolls(t *testing.T) {
	m := testModel(t)
	m.height = 2

	m = press(m, keyDown, keyDown, keyDown)
	if m.offset != 2 {
		t.Errorf("offset = %d, want 2", m.offset)
	}
	m = press(m, keyUp, keyUp, keyUp)
	if m.offset != 0 || m.cursor != 0 {
		t.Errorf("offset, cursor = %d, %d; want 0, 0", m.offset, m.cursor)
	}
}

func TestInspectView(t *testing.T) {
	m := press(testModel(t), keyEnd)
	view := m.View()

	for _, want := range []string{"chip.yaml", "_hyper_0", "is connected to", "[4/4]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestInspectQuit(t *testing.T) {
	m := testModel(t)
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		if _, cmd := m.Update(k); cmd == nil {
			t.Errorf("%q should quit", k.String())
		}
	}
	if _, cmd := m.Update(keyDown); cmd != nil {
		t.Error("navigation should not return a command")
	}
}

func TestInspectWindowResize(t *testing.T) {
	next, _ := testModel(t).Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if m := next.(inspectModel); m.height != 5 {
		t.Errorf("height = %d, want the minimum 5", m.height)
	}
}
