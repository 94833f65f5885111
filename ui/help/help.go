package help

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/noticeboard/ui/common"
)

const (
	dialogBorderAndMargin = 8
	dialogMinWidth        = 44
	dialogMaxWidth        = 72
)

var (
	Style = lipgloss.NewStyle().
		Align(lipgloss.Left, lipgloss.Center).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(common.COLOR_ACCENT)).
		Padding(1, 2).
		Margin(0, 3)

	keyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(common.COLOR_ACCENT)).Width(12)
)

type binding struct {
	keys string
	desc string
}

var bindings = []binding{
	{"↑/k ↓/j", "move the cursor"},
	{"enter/space", "open the announcement"},
	{"←/h →/l", "previous / next page"},
	{"/", "search titles and content"},
	{"esc", "leave the search box"},
	{"f", "cycle priority filter"},
	{"a u g", "show all / urgent / general"},
	{"?", "toggle this help"},
	{"q", "quit"},
}

// Model is the keyboard reference dialog
type Model struct {
	Visible bool
	Host    string
	SshPort int
}

func InitialModel(host string, sshPort int) Model {
	return Model{Host: host, SshPort: sshPort}
}

func (m Model) Toggle() Model {
	m.Visible = !m.Visible
	return m
}

// Update closes the dialog on esc or ?; everything else is swallowed
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "?", "enter":
			m.Visible = false
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("Keyboard shortcuts"))
	s.WriteString("\n\n")
	for _, b := range bindings {
		s.WriteString(keyStyle.Render(b.keys))
		s.WriteString(" ")
		s.WriteString(b.desc)
		s.WriteString("\n")
	}

	if m.Host != "" && m.SshPort > 0 {
		s.WriteString("\n")
		s.WriteString(common.DescriptionStyle.Render("Without a terminal UI:"))
		s.WriteString("\n")
		s.WriteString(fmt.Sprintf("ssh -p %d %s list -p urgent", m.SshPort, m.Host))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(common.HelpStyle.Render("Press [ESC] or [?] to close"))
	return s.String()
}

// ViewWithWidth centers the bordered dialog in the terminal
func (m Model) ViewWithWidth(termWidth, termHeight int) string {
	contentWidth := min(max(termWidth-dialogBorderAndMargin, dialogMinWidth), dialogMaxWidth)

	bordered := Style.Width(contentWidth).Render(m.View())
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, bordered)
}
