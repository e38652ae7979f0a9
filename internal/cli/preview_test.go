package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/hingecut/pkg/errors"
	"github.com/matzehuels/hingecut/pkg/hinge"
)

func newTestPreview() previewModel {
	return newPreviewModel(
		hinge.Panel{Width: 100, Height: 50},
		hinge.Params{CutLength: 30, Gap: 3, Separation: 1.5, IncludeFrame: true},
		hinge.DefaultConfig(),
	)
}

func press(t *testing.T, m previewModel, keys string) (previewModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, r := range keys {
		var next tea.Model
		next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(previewModel)
	}
	return m, cmd
}

func TestPreviewInitialState(t *testing.T) {
	m := newTestPreview()
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	if m.pattern.Stats.Segments != 130 {
		t.Errorf("segments = %d, want 130", m.pattern.Stats.Segments)
	}
	if m.Init() != nil {
		t.Error("Init should not schedule a command")
	}

	view := m.View()
	if !strings.Contains(view, "#") || !strings.Contains(view, "130 segments") {
		t.Errorf("view lacks the grid or stats:\n%s", view)
	}
}

func TestPreviewAdjustsParameters(t *testing.T) {
	m, _ := press(t, newTestPreview(), "LLg")
	if m.params.CutLength != 31 {
		t.Errorf("cut length = %g, want 31", m.params.CutLength)
	}
	if m.params.Gap != 2.5 {
		t.Errorf("gap = %g, want 2.5", m.params.Gap)
	}
	if m.pattern == nil || m.pattern.Params.CutLength != 31 {
		t.Error("pattern was not regenerated")
	}

	m, _ = press(t, m, "vWWWWf")
	if m.params.Variant != hinge.Chevron {
		t.Errorf("variant = %v, want chevron", m.params.Variant)
	}
	if m.params.CutWidth != 0.4 {
		t.Errorf("cut width = %g, want 0.4", m.params.CutWidth)
	}
	if m.params.IncludeFrame {
		t.Error("frame should be toggled off")
	}
	if m.pattern.Frame != nil {
		t.Error("pattern should have no frame")
	}

	m, _ = press(t, m, "r")
	if m.params != m.initial {
		t.Errorf("reset params = %+v, want %+v", m.params, m.initial)
	}
}

func TestPreviewFloorsAtZero(t *testing.T) {
	m, _ := press(t, newTestPreview(), "gggggggggg")
	if m.params.Gap != 0 {
		t.Errorf("gap = %g, want 0", m.params.Gap)
	}
}

func TestPreviewShowsValidationError(t *testing.T) {
	m, _ := press(t, newTestPreview(), strings.Repeat("s", 11))
	if !errors.Is(m.err, errors.ErrCodePitchTooSmall) {
		t.Fatalf("err = %v, want %s", m.err, errors.ErrCodePitchTooSmall)
	}
	if m.pattern != nil {
		t.Error("pattern should be nil while parameters are invalid")
	}
	if view := m.View(); !strings.Contains(view, "separation = 0.4") {
		t.Errorf("view should show the validation message:\n%s", view)
	}
}

func TestPreviewWindowSize(t *testing.T) {
	next, cmd := newTestPreview().Update(tea.WindowSizeMsg{Width: 40, Height: 16})
	m := next.(previewModel)
	if cmd != nil {
		t.Error("resize should not return a command")
	}
	if m.cols != 40 || m.rows != 16 {
		t.Errorf("size = %dx%d, want 40x16", m.cols, m.rows)
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 10, Height: 3})
	if view := next.(previewModel).View(); strings.Contains(view, "#") {
		t.Errorf("a too small window should draw no grid:\n%s", view)
	}
}

func TestPreviewQuitAndAccept(t *testing.T) {
	m, cmd := press(t, newTestPreview(), "q")
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
	if m.accepted {
		t.Error("q should not accept")
	}

	next, cmd := newTestPreview().Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should quit")
	}
	if !next.(previewModel).accepted {
		t.Error("enter should accept")
	}
}

func TestPreviewCommandLine(t *testing.T) {
	m := newTestPreview()
	want := "hingecut generate --width 100 --height 50 --cut-length 30 --gap 3 --separation 1.5"
	if got := m.commandLine(); got != want {
		t.Errorf("commandLine() = %q, want %q", got, want)
	}

	m, _ = press(t, m, "vWWf")
	got := m.commandLine()
	for _, part := range []string{"--variant chevron", "--cut-width 0.2", "--frame=false"} {
		if !strings.Contains(got, part) {
			t.Errorf("commandLine() = %q, missing %q", got, part)
		}
	}
}

func TestNudge(t *testing.T) {
	tests := []struct{ v, d, want float64 }{
		{1.5, 0.1, 1.6},
		{0.3, 0.1, 0.4},
		{0.05, -0.1, 0},
		{30, -0.5, 29.5},
	}
	for _, tt := range tests {
		if got := nudge(tt.v, tt.d); got != tt.want {
			t.Errorf("nudge(%g, %g) = %g, want %g", tt.v, tt.d, got, tt.want)
		}
	}
}
