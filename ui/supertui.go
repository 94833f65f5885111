package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/noticeboard/board"
	"github.com/deemkeen/noticeboard/ui/announcements"
	"github.com/deemkeen/noticeboard/ui/common"
	"github.com/deemkeen/noticeboard/ui/help"
	"github.com/deemkeen/noticeboard/util"
)

const (
	listHelp   = "↑/↓ move • enter select • ←/→ page • / search • f filter (a/u/g) • ? help • q quit"
	searchHelp = "type to search • esc/enter done • ctrl+c quit"
)

var headerStyle = lipgloss.NewStyle().MarginLeft(1).MarginBottom(1)

type MainModel struct {
	width       int
	height      int
	title       string
	description string
	panel       announcements.Model
	help        help.Model
}

func NewModel(conf *util.AppConfig, width int, height int) MainModel {
	width = common.DefaultWindowWidth(width)
	height = common.DefaultWindowHeight(height)

	title := "School Announcements"
	description := "Important announcements from the school administration"
	pageSize := board.DefaultPageSize
	keys := help.InitialModel("", 0)
	if conf != nil {
		title = conf.Conf.Title
		description = conf.Conf.Description
		pageSize = conf.Conf.PageSize
		keys = help.InitialModel(conf.Conf.Host, conf.Conf.SshPort)
	}

	return MainModel{
		width:       width,
		height:      height,
		title:       title,
		description: description,
		panel:       announcements.InitialModel(width, height, pageSize),
		help:        keys,
	}
}

func (m MainModel) Init() tea.Cmd {
	return m.panel.Init()
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = common.DefaultWindowWidth(msg.Width)
		m.height = common.DefaultWindowHeight(msg.Height)
		m.panel, cmd = m.panel.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.help.Visible {
			m.help, cmd = m.help.Update(msg)
			return m, cmd
		}
		if !m.panel.SearchFocused() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.help = m.help.Toggle()
				return m, nil
			}
		}
	}

	m.panel, cmd = m.panel.Update(msg)
	return m, cmd
}

func (m MainModel) View() string {
	if m.help.Visible {
		return m.help.ViewWithWidth(m.width, m.height)
	}

	var s strings.Builder

	header := common.CaptionStyle.Render("🔔 "+m.title) + "  " +
		common.ListBadgeStyle.Render("v"+util.GetVersion()) + "\n" +
		common.DescriptionStyle.Render(m.description)
	s.WriteString(headerStyle.Render(header))
	s.WriteString("\n")
	s.WriteString(m.panel.View())
	s.WriteString("\n")

	help := listHelp
	if m.panel.SearchFocused() {
		help = searchHelp
	}
	s.WriteString(common.HelpStyle.Render(help))

	return s.String()
}
