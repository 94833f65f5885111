package announcements

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/noticeboard/board"
	"github.com/deemkeen/noticeboard/domain"
	"github.com/deemkeen/noticeboard/ui/common"
	"github.com/deemkeen/noticeboard/util"
)

const (
	minListWidth = 30
	panelGap     = 2
)

var (
	listPaneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(common.COLOR_MUTED)).
			Padding(0, 1)

	detailPaneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(common.COLOR_ACCENT)).
			Padding(0, 1).
			MarginLeft(panelGap)

	placeholderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(common.COLOR_MUTED)).
				Align(lipgloss.Center, lipgloss.Center).
				MarginLeft(panelGap)

	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(common.COLOR_SELECTED))
)

func (m Model) View() string {
	snap := m.Board.Snapshot()

	left := listPaneStyle.Width(m.listWidth()).Render(m.renderList(snap))
	right := m.renderDetail(snap.Selected)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// listWidth is a third of the window
func (m Model) listWidth() int {
	w := m.Width / 3
	if w < minListWidth {
		w = minListWidth
	}
	return w
}

func (m Model) detailWidth() int {
	w := m.Width - m.listWidth() - panelGap - 6
	if w < minListWidth {
		w = minListWidth
	}
	return w
}

func (m Model) renderList(snap board.Snapshot) string {
	var s strings.Builder

	s.WriteString(m.search.View())
	s.WriteString("\n")
	s.WriteString(renderFilter(snap.Priority))
	s.WriteString("\n\n")

	if m.Error != "" {
		s.WriteString(common.ListErrorStyle.Render(m.Error))
		s.WriteString("\n\n")
	}

	if !m.Loaded {
		s.WriteString(common.ListEmptyStyle.Render("Loading announcements..."))
		return s.String()
	}

	if snap.Empty {
		s.WriteString(common.CaptionStyle.Render("🔔 " + snap.EmptyTitle))
		s.WriteString("\n")
		s.WriteString(common.ListEmptyStyle.Render(snap.EmptyMessage))
		return s.String()
	}

	textWidth := m.listWidth() - 4
	for i, row := range snap.Rows {
		a := row.Announcement
		cursor := i == m.Cursor && m.Focus == FocusList

		prefix := common.ListUnselectedPrefix
		titleStyle := common.ListItemStyle
		if cursor {
			prefix = common.ListSelectedPrefix
			titleStyle = common.ListItemSelectedStyle
		}
		if row.Highlighted {
			titleStyle = titleStyle.Inherit(common.ListItemHighlightedStyle)
		}

		title := titleStyle.Render(util.TruncateToWidth(a.Title, textWidth-10))
		if row.Highlighted {
			title += " " + common.CaptionStyle.Render(common.HighlightMarker)
		}
		s.WriteString(prefix + title + " " + common.RenderBadge(a.Priority))
		s.WriteString("\n")
		s.WriteString("  " + common.ListBadgeStyle.Render(util.TruncateToWidth(a.Content, textWidth)))
		s.WriteString("\n")
		s.WriteString("  " + common.ListBadgeStyle.Render("📅 "+a.Date))
		s.WriteString("\n")
		if i < len(snap.Rows)-1 {
			s.WriteString("\n")
		}
	}

	if snap.ShowPagination {
		s.WriteString("\n")
		s.WriteString(renderPagination(snap))
	}

	return s.String()
}

func renderFilter(active domain.PriorityFilter) string {
	parts := make([]string, 0, 3)
	for _, f := range domain.PriorityFilters() {
		if f == active {
			parts = append(parts, common.ListItemSelectedStyle.Render("["+f.Label()+"]"))
		} else {
			parts = append(parts, common.ListBadgeStyle.Render(f.Label()))
		}
	}
	return common.ListBadgeStyle.Render("Priority: ") + strings.Join(parts, " ")
}

func renderPagination(snap board.Snapshot) string {
	info := common.ListBadgeStyle.Render(fmt.Sprintf("Page %d of %d", snap.CurrentPage, snap.TotalPages))

	prev := "‹ Previous"
	if snap.HasPrev {
		prev = common.ListItemStyle.Render(prev)
	} else {
		prev = disabledStyle.Render(prev)
	}
	next := "Next ›"
	if snap.HasNext {
		next = common.ListItemStyle.Render(next)
	} else {
		next = disabledStyle.Render(next)
	}

	return info + "   " + prev + "  " + next
}

func (m Model) renderDetail(selected *domain.Announcement) string {
	width := m.detailWidth()

	if selected == nil {
		body := common.CaptionStyle.Render("🔔 "+board.NoSelectionTitle) + "\n" +
			common.ListEmptyStyle.Render(board.NoSelectionMessage)
		return placeholderStyle.Width(width).Height(10).Render(body)
	}

	var s strings.Builder
	s.WriteString(common.CaptionStyle.Render(selected.Title))
	s.WriteString("  ")
	s.WriteString(common.RenderBadge(selected.Priority))
	s.WriteString("\n")
	s.WriteString(common.DescriptionStyle.Render("🕑 " + selected.PostedAt()))
	s.WriteString("\n\n")
	s.WriteString(lipgloss.NewStyle().Width(width - 2).Render(selected.Content))
	s.WriteString("\n\n")
	s.WriteString(common.DescriptionStyle.Render("From: " + selected.Author))

	return detailPaneStyle.Width(width).Render(s.String())
}
