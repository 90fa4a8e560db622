package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/album-grid/internal/collage"
	"github.com/handiism/album-grid/internal/config"
	"github.com/handiism/album-grid/internal/generate"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel_UsesSettings(t *testing.T) {
	s := config.DefaultSettings()
	s.Pattern = "spiral"
	s.RemoveDuplicates = true

	m := NewModel(s)
	if m.pattern != collage.PatternSpiral {
		t.Errorf("pattern = %v, want spiral", m.pattern)
	}
	if !m.dedupe {
		t.Error("dedupe should follow settings")
	}
	if m.state != StateInput {
		t.Errorf("state = %v, want input", m.state)
	}
}

func TestModel_Options(t *testing.T) {
	m := NewModel(nil)

	var seen []collage.Pattern
	for range collage.Patterns() {
		m = update(t, m, key("tab"))
		seen = append(seen, m.pattern)
	}
	want := []collage.Pattern{collage.PatternDiagonal, collage.PatternCheckerboard, collage.PatternSpiral, collage.PatternRowMajor}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("tab cycle = %v, want %v", seen, want)
		}
	}

	m = update(t, m, key("ctrl+d"))
	if !m.dedupe {
		t.Error("ctrl+d should enable dedupe")
	}
	if !strings.Contains(m.View(), "[×] Remove duplicates") {
		t.Error("view should show dedupe checked")
	}
}

func TestModel_EnterNeedsSource(t *testing.T) {
	m := NewModel(nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateInput {
		t.Errorf("state = %v, want input with empty source", m.state)
	}
}

func TestModel_Completion(t *testing.T) {
	m := NewModel(nil)
	m.state = StateFetching

	grid := collage.NewGridSpec(2, 10)
	result := &collage.Result{
		Canvas:    collage.NewCanvas(grid),
		Pattern:   collage.PatternRowMajor,
		Dimension: 2,
		Placed:    4,
	}
	m = update(t, m, GenerateDoneMsg{Result: result, Path: "Road_Trip_2x2_normal.png"})

	if m.state != StateComplete {
		t.Fatalf("state = %v, want complete", m.state)
	}
	view := m.View()
	for _, want := range []string{"2x2", "Road_Trip_2x2_normal.png", "Covers: 4"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m = update(t, m, key("r"))
	if m.state != StateInput || m.output != "" {
		t.Errorf("reset failed: state=%v output=%q", m.state, m.output)
	}
}

func TestModel_Errors(t *testing.T) {
	m := NewModel(nil)
	m.state = StateReading
	m = update(t, m, InitDoneMsg{Err: errors.New("source has no artwork")})
	if m.state != StateError || !strings.Contains(m.View(), "source has no artwork") {
		t.Errorf("expected error state, got %v", m.state)
	}

	m = NewModel(nil)
	m.state = StateFetching
	m = update(t, m, key("esc"))
	if m.state != StateError || m.ctx.Err() == nil {
		t.Error("esc should cancel a running grid")
	}
}

func TestModel_LogTail(t *testing.T) {
	m := NewModel(nil)
	m.state = StateFetching

	for i := 0; i < 15; i++ {
		m.events <- generate.ProgressEvent{Message: "cover missing", Level: generate.LevelWarning}
	}
	m.events <- generate.ProgressEvent{Message: "hidden", Level: generate.LevelVerbose}
	m = update(t, m, TickMsg{})

	if len(m.logs) != maxLogs {
		t.Errorf("logs = %d, want %d", len(m.logs), maxLogs)
	}
	for _, l := range m.logs {
		if l.Message == "hidden" {
			t.Error("verbose event shown without verbose mode")
		}
	}
}

func TestNextPattern(t *testing.T) {
	if got := nextPattern(collage.PatternSpiral); got != collage.PatternRowMajor {
		t.Errorf("nextPattern(spiral) = %v, want row-major", got)
	}
}
