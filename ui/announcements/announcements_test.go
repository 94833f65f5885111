package announcements

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/noticeboard/board"
	"github.com/deemkeen/noticeboard/domain"
)

func schoolAnnouncements() []domain.Announcement {
	return []domain.Announcement{
		{Id: 1, Title: "School Closure - Weather Advisory", Content: "Due to the severe weather warning, the school will remain closed tomorrow.", Priority: domain.PriorityUrgent, Date: "May 18, 2025", Time: "2:30 PM", Author: "David Brown"},
		{Id: 2, Title: "Annual Sports Day - Schedule Change", Content: "The Annual Sports Day has been rescheduled to June 15th.", Priority: domain.PriorityGeneral, Date: "May 15, 2025", Time: "10:15 AM", Author: "David Brown"},
		{Id: 4, Title: "Parent-Teacher Conference", Content: "The quarterly parent-teacher conferences will be held on June 5th and 6th.", Priority: domain.PriorityGeneral, Date: "May 8, 2025", Time: "4:45 PM", Author: "David Brown"},
		{Id: 5, Title: "End of Year Ceremony", Content: "The end of year ceremony will be held on June 20th.", Priority: domain.PriorityGeneral, Date: "May 5, 2025", Time: "4:45 PM", Author: "David Brown"},
	}
}

func loadedModel(items []domain.Announcement) Model {
	m := InitialModel(200, 50, board.DefaultPageSize)
	m, _ = m.Update(announcementsLoadedMsg{items: items})
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialModel(t *testing.T) {
	m := InitialModel(120, 40, 5)

	if m.Width != 120 || m.Height != 40 {
		t.Errorf("Expected 120x40, got %dx%d", m.Width, m.Height)
	}
	if m.Focus != FocusList {
		t.Error("Expected list focus initially")
	}
	if m.Loaded {
		t.Error("Expected Loaded false before announcements arrive")
	}
	if m.Board.State.CurrentPage != 1 || m.Board.State.Priority != domain.FilterAll {
		t.Errorf("Unexpected initial board state: %+v", m.Board.State)
	}
	if m.Init() == nil {
		t.Error("Expected Init to return a load command")
	}
}

func TestUpdate_AnnouncementsLoaded(t *testing.T) {
	m := loadedModel(schoolAnnouncements())

	if !m.Loaded {
		t.Error("Expected Loaded after announcementsLoadedMsg")
	}
	if len(m.Board.Page()) != 4 {
		t.Errorf("Expected 4 visible rows, got %d", len(m.Board.Page()))
	}
	if m.Error != "" {
		t.Errorf("Expected no error, got %q", m.Error)
	}
}

func TestUpdate_AnnouncementsLoadError(t *testing.T) {
	m := InitialModel(200, 50, 5)
	m, _ = m.Update(announcementsLoadedMsg{items: []domain.Announcement{}, err: errors.New("boom")})

	if m.Error == "" {
		t.Error("Expected error to be set")
	}
	if !strings.Contains(m.View(), "No announcements found") {
		t.Error("Expected empty state after failed load")
	}
}

func TestUpdate_KeyboardNavigation(t *testing.T) {
	m := loadedModel(schoolAnnouncements())

	m, _ = m.Update(key("j"))
	if m.Cursor != 1 {
		t.Errorf("Expected cursor 1 after 'j', got %d", m.Cursor)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor != 2 {
		t.Errorf("Expected cursor 2 after down arrow, got %d", m.Cursor)
	}
	m, _ = m.Update(key("k"))
	if m.Cursor != 1 {
		t.Errorf("Expected cursor 1 after 'k', got %d", m.Cursor)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor != 0 {
		t.Errorf("Cursor should stay at 0 at the top, got %d", m.Cursor)
	}

	for i := 0; i < 10; i++ {
		m, _ = m.Update(key("j"))
	}
	if m.Cursor != 3 {
		t.Errorf("Cursor should stop at the last row, got %d", m.Cursor)
	}
}

func TestUpdate_SelectRow(t *testing.T) {
	m := loadedModel(schoolAnnouncements())

	m, _ = m.Update(key("j"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.Board.State.Selected == nil || m.Board.State.Selected.Id != 2 {
		t.Fatalf("Expected announcement 2 to be selected, got %+v", m.Board.State.Selected)
	}

	m, _ = m.Update(key("j"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.Board.State.Selected == nil || m.Board.State.Selected.Id != 4 {
		t.Errorf("Expected announcement 4 to be selected with space, got %+v", m.Board.State.Selected)
	}
}

func TestUpdate_SelectOnEmptyList(t *testing.T) {
	m := loadedModel([]domain.Announcement{})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Board.State.Selected != nil {
		t.Error("Nothing should be selected on an empty list")
	}
}

func TestUpdate_SearchTyping(t *testing.T) {
	m := loadedModel(schoolAnnouncements())

	m, cmd := m.Update(key("/"))
	if !m.SearchFocused() {
		t.Fatal("Expected search focus after '/'")
	}
	if cmd == nil {
		t.Error("Expected focus command")
	}

	m, _ = m.Update(key("WEATHER"))
	if m.Board.State.Search != "WEATHER" {
		t.Errorf("Expected search 'WEATHER', got %q", m.Board.State.Search)
	}
	page := m.Board.Page()
	if len(page) != 1 || page[0].Id != 1 {
		t.Errorf("Expected only announcement 1, got %v", page)
	}

	// j is typed into the search box, not used for navigation
	m, _ = m.Update(key("j"))
	if m.Board.State.Search != "WEATHERj" {
		t.Errorf("Expected 'j' to be typed, got %q", m.Board.State.Search)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.Board.State.Search != "WEATHER" {
		t.Errorf("Expected backspace to remove a rune, got %q", m.Board.State.Search)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.SearchFocused() {
		t.Error("Expected list focus after esc")
	}
	if m.Board.State.Search != "WEATHER" {
		t.Error("Leaving the search box must keep the query")
	}
}

func TestUpdate_SelectionSurvivesSearch(t *testing.T) {
	m := loadedModel(schoolAnnouncements())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Board.State.Selected == nil || m.Board.State.Selected.Id != 1 {
		t.Fatal("Expected announcement 1 to be selected")
	}

	m, _ = m.Update(key("/"))
	m, _ = m.Update(key("ceremony"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.Board.State.Selected == nil || m.Board.State.Selected.Id != 1 {
		t.Error("Selection should survive a search change")
	}
	view := m.View()
	if !strings.Contains(view, "From: David Brown") {
		t.Error("Detail pane should still show the selected announcement")
	}
	if !strings.Contains(view, "Posted on May 18, 2025 at 2:30 PM") {
		t.Error("Detail pane should show announcement 1's posting time")
	}
}

func TestUpdate_PriorityKeys(t *testing.T) {
	m := loadedModel(schoolAnnouncements())

	m, _ = m.Update(key("u"))
	if m.Board.State.Priority != domain.FilterUrgent {
		t.Errorf("Expected urgent filter, got %q", m.Board.State.Priority)
	}
	if len(m.Board.Page()) != 1 {
		t.Errorf("Expected 1 urgent announcement, got %d", len(m.Board.Page()))
	}

	m, _ = m.Update(key("g"))
	if m.Board.State.Priority != domain.FilterGeneral || len(m.Board.Page()) != 3 {
		t.Errorf("Expected 3 general announcements, got %d", len(m.Board.Page()))
	}

	m, _ = m.Update(key("f"))
	if m.Board.State.Priority != domain.FilterAll {
		t.Errorf("Expected 'f' to cycle general -> all, got %q", m.Board.State.Priority)
	}

	m, _ = m.Update(key("f"))
	if m.Board.State.Priority != domain.FilterUrgent {
		t.Errorf("Expected 'f' to cycle all -> urgent, got %q", m.Board.State.Priority)
	}

	m, _ = m.Update(key("a"))
	if m.Board.State.Priority != domain.FilterAll {
		t.Errorf("Expected 'a' to reset to all, got %q", m.Board.State.Priority)
	}
}

func TestUpdate_CursorClampedAfterFilter(t *testing.T) {
	m := loadedModel(schoolAnnouncements())

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("u"))

	if m.Cursor != 0 {
		t.Errorf("Expected cursor reset to 0, got %d", m.Cursor)
	}
}

func TestUpdate_Pagination(t *testing.T) {
	items := make([]domain.Announcement, 0, 7)
	for i := 1; i <= 7; i++ {
		items = append(items, domain.Announcement{Id: i, Title: fmt.Sprintf("Notice %d", i), Priority: domain.PriorityGeneral, Date: "June 1, 2025"})
	}
	m := loadedModel(items)

	if !strings.Contains(m.View(), "Page 1 of 2") {
		t.Error("Expected 'Page 1 of 2' in the view")
	}

	m, _ = m.Update(key("j"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.Board.State.CurrentPage != 2 {
		t.Errorf("Expected page 2, got %d", m.Board.State.CurrentPage)
	}
	if m.Cursor != 0 {
		t.Errorf("Expected cursor reset on page change, got %d", m.Cursor)
	}
	if len(m.Board.Page()) != 2 {
		t.Errorf("Expected 2 rows on page 2, got %d", len(m.Board.Page()))
	}

	m, _ = m.Update(key("l"))
	if m.Board.State.CurrentPage != 2 {
		t.Errorf("Next on the last page should stay at 2, got %d", m.Board.State.CurrentPage)
	}

	m, _ = m.Update(key("h"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Board.State.CurrentPage != 1 {
		t.Errorf("Expected page 1, got %d", m.Board.State.CurrentPage)
	}
}

func TestView_NoSelectionPlaceholder(t *testing.T) {
	m := loadedModel(schoolAnnouncements())

	view := m.View()

	if !strings.Contains(view, "Select an announcement") {
		t.Error("Expected 'Select an announcement' placeholder")
	}
	if strings.Contains(view, "Page 1 of 1") {
		t.Error("Pagination should not render with a single page")
	}
	for _, title := range []string{"School Closure", "Parent-Teacher Conference", "End of Year Ceremony"} {
		if !strings.Contains(view, title) {
			t.Errorf("Expected view to contain %q", title)
		}
	}
}

func TestView_EmptyStates(t *testing.T) {
	m := loadedModel([]domain.Announcement{})
	if !strings.Contains(m.View(), "There are no announcements at this time") {
		t.Error("Expected no-announcements message for an empty store")
	}

	m = loadedModel(schoolAnnouncements())
	m, _ = m.Update(key("/"))
	m, _ = m.Update(key("zzz"))
	view := m.View()
	if !strings.Contains(view, "No announcements found") {
		t.Error("Expected 'No announcements found'")
	}
	if !strings.Contains(view, "No announcements match your search criteria") {
		t.Error("Expected no-match message with an active search")
	}
}

func TestView_Loading(t *testing.T) {
	m := InitialModel(200, 50, 5)

	if !strings.Contains(m.View(), "Loading announcements") {
		t.Error("Expected loading message before the first load")
	}
}

func TestView_Badges(t *testing.T) {
	m := loadedModel(schoolAnnouncements())
	view := m.View()

	if !strings.Contains(view, "Urgent") || !strings.Contains(view, "General") {
		t.Error("Expected both Urgent and General badges")
	}
}

func TestUpdate_WindowSize(t *testing.T) {
	m := loadedModel(schoolAnnouncements())

	m, _ = m.Update(tea.WindowSizeMsg{Width: 90, Height: 30})

	if m.Width != 90 || m.Height != 30 {
		t.Errorf("Expected 90x30, got %dx%d", m.Width, m.Height)
	}
	if m.listWidth() != minListWidth {
		t.Errorf("Expected list width %d, got %d", minListWidth, m.listWidth())
	}
}

func TestClampCursor(t *testing.T) {
	tests := []struct {
		cursor, rows, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{-1, 4, 0},
		{2, 4, 2},
		{7, 4, 3},
	}
	for _, tt := range tests {
		if got := clampCursor(tt.cursor, tt.rows); got != tt.want {
			t.Errorf("clampCursor(%d, %d) = %d, want %d", tt.cursor, tt.rows, got, tt.want)
		}
	}
}
