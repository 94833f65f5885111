package common

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/noticeboard/domain"
)

const (
	COLOR_ACCENT   = "69"
	COLOR_URGENT   = "196"
	COLOR_GENERAL  = "35"
	COLOR_MUTED    = "245"
	COLOR_SELECTED = "237"
	COLOR_ERROR    = "160"
	COLOR_WHITE    = "255"
)

const (
	ListSelectedPrefix   = "▸ "
	ListUnselectedPrefix = "  "
	HighlightMarker      = "●"
)

const (
	minWindowWidth  = 60
	minWindowHeight = 20
)

var (
	CaptionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(COLOR_ACCENT))

	DescriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(COLOR_MUTED))

	ListItemStyle = lipgloss.NewStyle()

	ListItemSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(COLOR_ACCENT))

	ListItemHighlightedStyle = lipgloss.NewStyle().Background(lipgloss.Color(COLOR_SELECTED))

	ListBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(COLOR_MUTED))

	ListEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(COLOR_MUTED)).Italic(true)

	ListErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(COLOR_ERROR))

	UrgentBadgeStyle = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.Color(COLOR_WHITE)).
				Background(lipgloss.Color(COLOR_URGENT)).
				Padding(0, 1)

	GeneralBadgeStyle = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.Color(COLOR_WHITE)).
				Background(lipgloss.Color(COLOR_GENERAL)).
				Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(COLOR_MUTED))
)

// RenderBadge renders the priority label with its color
func RenderBadge(p domain.Priority) string {
	badge := p.Badge()
	if badge.Urgent {
		return UrgentBadgeStyle.Render(badge.Label)
	}
	return GeneralBadgeStyle.Render(badge.Label)
}

// DefaultWindowWidth guards against zero or tiny sizes reported by some terminals
func DefaultWindowWidth(width int) int {
	if width < minWindowWidth {
		return minWindowWidth
	}
	return width
}

func DefaultWindowHeight(height int) int {
	if height < minWindowHeight {
		return minWindowHeight
	}
	return height
}
