package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/graph"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RootPickerModel - Interactive layout root selection
// =============================================================================

// rootRow is one selectable tree root.
type rootRow struct {
	ID       string
	Label    string
	Children int
	X, Y     float64
}

// RootPickerModel is the bubbletea model for choosing which tree to lay out
// when a snapshot holds several.
type RootPickerModel struct {
	Roots    []rootRow
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewRootPickerModel lists the roots of snap in input order.
func NewRootPickerModel(snap graph.Snapshot) RootPickerModel {
	ix := graph.NewIndex(snap)
	var rows []rootRow
	for _, id := range ix.Roots() {
		n, _ := ix.Node(id)
		rows = append(rows, rootRow{
			ID:       id,
			Label:    n.DisplayLabel(),
			Children: len(ix.Outgoing(id)),
			X:        n.Position.X,
			Y:        n.Position.Y,
		})
	}
	return RootPickerModel{Roots: rows, Height: 15}
}

func (m RootPickerModel) Init() tea.Cmd {
	return nil
}

func (m RootPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Roots)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Roots) > 0 {
				m.Selected = m.Roots[m.Cursor].ID
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m RootPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Root"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Roots))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Roots[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, r.ID, r.Label, fmt.Sprint(r.Children), formatPoint(r.X, r.Y)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Label", "Children", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if m.Offset+row == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			if col >= 3 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Roots))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// interactive reports whether a picker can be shown.
var interactive = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stderr.Fd())
}

// pickRoot runs the picker on stderr. An aborted picker is an error.
func pickRoot(snap graph.Snapshot) (string, error) {
	m := NewRootPickerModel(snap)
	final, err := tea.NewProgram(m, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", err
	}
	sel := final.(RootPickerModel).Selected
	if sel == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "no root selected")
	}
	return sel, nil
}
