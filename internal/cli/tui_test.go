package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/zscene/pkg/presets"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m PresetListModel, keys ...string) (PresetListModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(PresetListModel)
	}
	return m, cmd
}

func TestPresetListNavigation(t *testing.T) {
	infos := presets.Describe()
	m := NewPresetListModel(infos)

	m, _ = press(m, "k")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the top: %d", m.Cursor)
	}
	m, _ = press(m, "j", "j")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}
	m, _ = press(m, "G", "j")
	if m.Cursor != len(infos)-1 {
		t.Errorf("cursor = %d, want last", m.Cursor)
	}
	m, _ = press(m, "g")
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
}

func TestPresetListSelect(t *testing.T) {
	infos := presets.Describe()
	m, cmd := press(NewPresetListModel(infos), "j", "enter")
	if m.Selected == nil || m.Selected.Name != infos[1].Name {
		t.Fatalf("selected = %v, want %s", m.Selected, infos[1].Name)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}

	m, cmd = press(NewPresetListModel(infos), "esc")
	if m.Selected != nil || cmd == nil {
		t.Error("esc should quit without a selection")
	}
}

func TestPresetListView(t *testing.T) {
	view := NewPresetListModel(presets.Describe()).View()
	for _, name := range presets.Names() {
		if !strings.Contains(view, name) {
			t.Errorf("view missing preset %q", name)
		}
	}
}

func TestPresetTable(t *testing.T) {
	out := presetTable(presets.Describe())
	for _, want := range []string{"Preset", "Description", "orbit"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
