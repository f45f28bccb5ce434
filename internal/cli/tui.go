package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/factoryfloor/pkg/command"
	"github.com/matzehuels/factoryfloor/pkg/floor"
)

var (
	stepCommandStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	stepIgnoredStyle = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	stepErrorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	stepHelpStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StepModel - Interactive script stepper
// =============================================================================

// stepFrame is the floor after one command.
type stepFrame struct {
	floor *floor.Floor
	cmd   command.Command
	moved bool
}

// StepModel is the bubbletea model that walks through a script one command
// at a time. Frame 0 is the initial floor.
type StepModel struct {
	Frames []stepFrame
	Cursor int
	Err    error // error of the command after the last frame, if any
}

// NewStepModel runs script on a floor of the given size and records the
// floor after every command. A failing command ends the recording; its
// error is shown once the stepper reaches the last good frame.
func NewStepModel(size int, script *command.Script) (StepModel, error) {
	f, err := floor.New(size)
	if err != nil {
		return StepModel{}, err
	}
	s := floor.NewSynced(f)
	m := StepModel{Frames: []stepFrame{{floor: s.Snapshot()}}}
	_, m.Err = command.RunEach(s, script.Commands, func(c command.Command, moved bool) {
		m.Frames = append(m.Frames, stepFrame{floor: s.Snapshot(), cmd: c, moved: moved})
	})
	return m, nil
}

func (m StepModel) Init() tea.Cmd {
	return nil
}

func (m StepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", " ", "n", "enter":
			if m.Cursor < len(m.Frames)-1 {
				m.Cursor++
			}
		case "left", "h", "p", "backspace":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = len(m.Frames) - 1
		}
	}
	return m, nil
}

func (m StepModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Factory Floor"))
	b.WriteString(StyleHighlight.Render(fmt.Sprintf("  step %d/%d", m.Cursor, len(m.Frames)-1)))
	b.WriteString("\n")
	b.WriteString(stepHelpStyle.Render("→/space next  ← back  g/G first/last  q quit"))
	b.WriteString("\n\n")

	frame := m.Frames[m.Cursor]
	switch {
	case m.Cursor == 0:
		b.WriteString(StyleDim.Render("initial floor"))
	case frame.moved:
		b.WriteString(stepCommandStyle.Render(frame.cmd.String()))
	default:
		b.WriteString(stepIgnoredStyle.Render(frame.cmd.String() + " (ignored)"))
	}
	b.WriteString("\n")

	b.WriteString(floorTable(frame.floor, m.movedBlocks()))
	b.WriteString("\n")

	if m.Err != nil && m.Cursor == len(m.Frames)-1 {
		b.WriteString("\n")
		b.WriteString(stepErrorStyle.Render(iconError + " " + m.Err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

// movedBlocks returns the blocks whose position changed in the current step.
func (m StepModel) movedBlocks() map[floor.Block]bool {
	if m.Cursor == 0 {
		return nil
	}
	prev, cur := m.Frames[m.Cursor-1].floor, m.Frames[m.Cursor].floor
	moved := make(map[floor.Block]bool)
	for b := 0; b < cur.Size(); b++ {
		before, _ := prev.BlockPosition(floor.Block(b))
		after, _ := cur.BlockPosition(floor.Block(b))
		if before != after {
			moved[floor.Block(b)] = true
		}
	}
	return moved
}
