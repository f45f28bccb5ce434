package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/factoryfloor/pkg/command"
	ferrors "github.com/matzehuels/factoryfloor/pkg/errors"
	"github.com/matzehuels/factoryfloor/pkg/floor"
)

func newTestStepModel(t *testing.T, size int, text string) StepModel {
	t.Helper()
	script, err := command.ParseString(text)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewStepModel(size, script)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func press(m StepModel, keys ...tea.KeyMsg) (StepModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(StepModel)
	}
	return m, cmd
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEnd   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func TestStepModelFrames(t *testing.T) {
	m := newTestStepModel(t, 4, "move 1 onto 2\npile 3 over 2\nmove 9 onto 0\n")

	if len(m.Frames) != 3 {
		t.Fatalf("len(Frames) = %d, want 3", len(m.Frames))
	}
	if !ferrors.Is(m.Err, ferrors.ErrCodeNotFound) {
		t.Errorf("Err = %v, want NOT_FOUND", m.Err)
	}
	got, _ := m.Frames[2].floor.BlocksAt(2)
	if want := []floor.Block{2, 1, 3}; len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Errorf("final BlocksAt(2) = %v, want %v", got, want)
	}
	// frames are independent snapshots
	first, _ := m.Frames[0].floor.BlocksAt(2)
	if len(first) != 1 {
		t.Errorf("initial BlocksAt(2) = %v, want [2]", first)
	}
}

func TestStepModelNavigation(t *testing.T) {
	m := newTestStepModel(t, 4, "move 1 onto 2\npile 3 over 2\n")

	m, _ = press(m, keyLeft)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 (clamped)", m.Cursor)
	}
	m, _ = press(m, keyRight, keyRight, keyRight)
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2 (clamped)", m.Cursor)
	}
	m, _ = press(m, keyLeft)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}
	m, _ = press(m, keyEnd)
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", m.Cursor)
	}
	if _, cmd := press(m, keyQuit); cmd == nil {
		t.Error("q should quit")
	}
}

func TestStepModelMovedBlocks(t *testing.T) {
	m := newTestStepModel(t, 4, "move 1 onto 2\npile 3 over 2\n")

	if moved := m.movedBlocks(); moved != nil {
		t.Errorf("initial frame moved = %v, want none", moved)
	}
	m, _ = press(m, keyRight)
	if moved := m.movedBlocks(); len(moved) != 1 || !moved[1] {
		t.Errorf("step 1 moved = %v, want {1}", moved)
	}
	m, _ = press(m, keyRight)
	if moved := m.movedBlocks(); len(moved) != 1 || !moved[3] {
		t.Errorf("step 2 moved = %v, want {3}", moved)
	}
}

func TestStepModelView(t *testing.T) {
	m := newTestStepModel(t, 3, "move 1 onto 1\nmove 2 onto 0\nmove 5 onto 0\n")

	if v := m.View(); !strings.Contains(v, "initial floor") {
		t.Errorf("View() missing initial label:\n%s", v)
	}
	m, _ = press(m, keyRight)
	if v := m.View(); !strings.Contains(v, "move 1 onto 1 (ignored)") {
		t.Errorf("View() missing ignored command:\n%s", v)
	}
	m, _ = press(m, keyRight)
	v := m.View()
	if !strings.Contains(v, "move 2 onto 0") {
		t.Errorf("View() missing command:\n%s", v)
	}
	if !strings.Contains(v, "no element at 5") {
		t.Errorf("View() missing error on last frame:\n%s", v)
	}
}

func TestNewStepModelNegativeSize(t *testing.T) {
	if _, err := NewStepModel(-1, &command.Script{}); !ferrors.Is(err, ferrors.ErrCodeInvalidArgument) {
		t.Errorf("error = %v, want INVALID_ARGUMENT", err)
	}
}
