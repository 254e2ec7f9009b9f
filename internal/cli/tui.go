package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/portmaint/portmaint/pkg/maint"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// GroupListModel - Interactive proxy maintainer browser
// =============================================================================

// GroupListModel is the bubbletea model for browsing proxy maintainers and
// their packages. The left list holds one row per contact; pressing enter
// toggles the package list for the contact under the cursor.
type GroupListModel struct {
	Groups   maint.Report
	Cursor   int
	Expanded map[int]bool
	Height   int
	Offset   int
}

// NewGroupListModel creates a browser over a grouped proxy report.
func NewGroupListModel(groups maint.Report) GroupListModel {
	return GroupListModel{
		Groups:   groups,
		Expanded: make(map[int]bool),
		Height:   15,
	}
}

func (m GroupListModel) Init() tea.Cmd {
	return nil
}

func (m GroupListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Groups)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Expanded[m.Cursor] = !m.Expanded[m.Cursor]
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m GroupListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Proxy Maintainers"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Groups) {
		end = len(m.Groups)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		g := m.Groups[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		name := g.Contact.Name
		if name == "" {
			name = "—"
		}

		rows = append(rows, []string{
			cursor,
			g.Contact.Email,
			name,
			fmt.Sprintf("%d", len(g.Atoms)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Contact", "Name", "Packages").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Expanded[m.Cursor] && m.Cursor < len(m.Groups) {
		b.WriteString("\n")
		for _, atom := range m.Groups[m.Cursor].Atoms {
			b.WriteString("  " + styleAtom.Render(atom) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Groups))))

	return b.String()
}
