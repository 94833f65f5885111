package announcements

import (
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/noticeboard/board"
	"github.com/deemkeen/noticeboard/db"
	"github.com/deemkeen/noticeboard/domain"
)

// Focus says which part of the panel receives key presses
type Focus int

const (
	FocusList Focus = iota
	FocusSearch
)

type Model struct {
	Board  board.Board
	Cursor int // row under the cursor, relative to the visible page
	Focus  Focus
	Width  int
	Height int
	Loaded bool
	Error  string

	search textinput.Model
}

type announcementsLoadedMsg struct {
	items []domain.Announcement
	err   error
}

func InitialModel(width, height, pageSize int) Model {
	search := textinput.New()
	search.Placeholder = "Search announcements..."
	search.Prompt = "/ "
	search.CharLimit = 100

	m := Model{
		Board:  board.New([]domain.Announcement{}, pageSize),
		Cursor: 0,
		Focus:  FocusList,
		Width:  width,
		Height: height,
		search: search,
	}
	m.search.Width = m.listWidth() - 4
	return m
}

func (m Model) Init() tea.Cmd {
	return loadAnnouncements()
}

// SearchFocused reports whether key presses currently go to the search box
func (m Model) SearchFocused() bool {
	return m.Focus == FocusSearch
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case announcementsLoadedMsg:
		m.Board = m.Board.Replace(msg.items)
		m.Loaded = true
		if msg.err != nil {
			m.Error = "Announcements could not be loaded."
		} else {
			m.Error = ""
		}
		m.Cursor = clampCursor(m.Cursor, len(m.Board.Page()))
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.search.Width = m.listWidth() - 4
		return m, nil

	case tea.KeyMsg:
		if m.Focus == FocusSearch {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	// cursor blink and friends
	if m.Focus == FocusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "tab":
		m.Focus = FocusList
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.Board.State.Search {
		m.Board = m.Board.SetSearch(v)
		m.Cursor = 0
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Board.Page())-1 {
			m.Cursor++
		}
	case "enter", " ":
		var ok bool
		m.Board, ok = m.Board.SelectRow(m.Cursor)
		if ok {
			log.Printf("[Announcements] Selected announcement %d", m.Board.State.Selected.Id)
		}
	case "left", "h":
		m.Board = m.Board.PrevPage()
		m.Cursor = 0
	case "right", "l":
		m.Board = m.Board.NextPage()
		m.Cursor = 0
	case "/":
		m.Focus = FocusSearch
		cmd := m.search.Focus()
		return m, cmd
	case "f":
		m = m.setPriority(m.Board.State.Priority.Next())
	case "a":
		m = m.setPriority(domain.FilterAll)
	case "u":
		m = m.setPriority(domain.FilterUrgent)
	case "g":
		m = m.setPriority(domain.FilterGeneral)
	}
	return m, nil
}

func (m Model) setPriority(f domain.PriorityFilter) Model {
	if f == m.Board.State.Priority {
		return m
	}
	m.Board = m.Board.SetPriority(f)
	m.Cursor = 0
	return m
}

// loadAnnouncements reads the full set from the store
func loadAnnouncements() tea.Cmd {
	return func() tea.Msg {
		items, err := db.GetDB().ReadAnnouncements()
		if err != nil {
			log.Printf("Failed to load announcements: %v", err)
			return announcementsLoadedMsg{items: []domain.Announcement{}, err: err}
		}
		return announcementsLoadedMsg{items: items}
	}
}

func clampCursor(cursor, rows int) int {
	if rows == 0 || cursor < 0 {
		return 0
	}
	if cursor >= rows {
		return rows - 1
	}
	return cursor
}
