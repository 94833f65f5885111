package board

import (
	"github.com/deemkeen/noticeboard/domain"
)

const (
	DefaultPageSize = 5
	MaxPageSize     = 50
)

const (
	EmptyTitle         = "No announcements found"
	EmptyNoMatches     = "No announcements match your search criteria"
	EmptyNoneAtAll     = "There are no announcements at this time"
	NoSelectionTitle   = "Select an announcement"
	NoSelectionMessage = "Choose an announcement from the list to view details"
)

// State is the mutable part of one panel instance
type State struct {
	Search      string
	Priority    domain.PriorityFilter
	CurrentPage int
	// Selected holds a copy of the clicked announcement, nil when nothing is selected
	Selected *domain.Announcement
}

// Board pairs the announcement set with the view state of one panel.
// All methods take and return values, so callers keep the result:
//
//	b = b.SetSearch("weather")
type Board struct {
	items    []domain.Announcement
	pageSize int
	State    State
}

// Row is one entry of the visible page
type Row struct {
	Announcement domain.Announcement
	Highlighted  bool
}

// Snapshot is everything a renderer needs, derived from a Board in one pass
type Snapshot struct {
	Search         string
	Priority       domain.PriorityFilter
	Rows           []Row
	CurrentPage    int
	TotalPages     int
	TotalItems     int
	PageSize       int
	ShowPagination bool
	HasPrev        bool
	HasNext        bool
	Empty          bool
	EmptyTitle     string
	EmptyMessage   string
	Selected       *domain.Announcement
}

func NewState() State {
	return State{
		Search:      "",
		Priority:    domain.FilterAll,
		CurrentPage: 1,
		Selected:    nil,
	}
}

// New creates a board over items. A pageSize outside [1, MaxPageSize]
// falls back to DefaultPageSize.
func New(items []domain.Announcement, pageSize int) Board {
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return Board{
		items:    items,
		pageSize: pageSize,
		State:    NewState(),
	}
}

func (b Board) Items() []domain.Announcement {
	return b.items
}

func (b Board) PageSize() int {
	return b.pageSize
}

// Filtered returns the announcements matching the current search and priority
func (b Board) Filtered() []domain.Announcement {
	return Filter(b.items, b.State.Search, b.State.Priority)
}

func (b Board) TotalPages() int {
	return TotalPages(len(b.Filtered()), b.pageSize)
}

// SetSearch updates the query; runs on every keystroke
func (b Board) SetSearch(search string) Board {
	b.State.Search = search
	return b.clampPage()
}

func (b Board) SetPriority(f domain.PriorityFilter) Board {
	if f == "" {
		f = domain.FilterAll
	}
	b.State.Priority = f
	return b.clampPage()
}

func (b Board) NextPage() Board {
	return b.GoToPage(b.State.CurrentPage + 1)
}

func (b Board) PrevPage() Board {
	return b.GoToPage(b.State.CurrentPage - 1)
}

// GoToPage moves to page n, clamped to [1, max(1, TotalPages)]
func (b Board) GoToPage(n int) Board {
	b.State.CurrentPage = ClampPage(n, b.TotalPages())
	return b
}

// Replace swaps the whole announcement set. The selection is kept even
// if the selected announcement is no longer part of the set.
func (b Board) Replace(items []domain.Announcement) Board {
	b.items = items
	return b.clampPage()
}

// Select marks the announcement with the given id as selected.
// Unknown ids leave the board untouched and report false.
func (b Board) Select(id int) (Board, bool) {
	for _, a := range b.items {
		if a.Id == id {
			selected := a
			b.State.Selected = &selected
			return b, true
		}
	}
	return b, false
}

// SelectRow selects the i-th row of the visible page
func (b Board) SelectRow(i int) (Board, bool) {
	page := b.Page()
	if i < 0 || i >= len(page) {
		return b, false
	}
	selected := page[i]
	b.State.Selected = &selected
	return b, true
}

// Page returns the visible slice of the filtered announcements
func (b Board) Page() []domain.Announcement {
	return Paginate(b.Filtered(), b.State.CurrentPage, b.pageSize)
}

// IsSelected reports whether id is the current selection
func (b Board) IsSelected(id int) bool {
	return b.State.Selected != nil && b.State.Selected.Id == id
}

// Snapshot derives the full render state from scratch
func (b Board) Snapshot() Snapshot {
	filtered := b.Filtered()
	totalPages := TotalPages(len(filtered), b.pageSize)
	page := Paginate(filtered, b.State.CurrentPage, b.pageSize)

	rows := make([]Row, 0, len(page))
	for _, a := range page {
		rows = append(rows, Row{Announcement: a, Highlighted: b.IsSelected(a.Id)})
	}

	s := Snapshot{
		Search:         b.State.Search,
		Priority:       b.State.Priority,
		Rows:           rows,
		CurrentPage:    b.State.CurrentPage,
		TotalPages:     totalPages,
		TotalItems:     len(filtered),
		PageSize:       b.pageSize,
		ShowPagination: totalPages > 1,
		HasPrev:        b.State.CurrentPage > 1,
		HasNext:        b.State.CurrentPage < totalPages,
		Empty:          len(rows) == 0,
		Selected:       b.State.Selected,
	}
	if s.Empty {
		s.EmptyTitle = EmptyTitle
		if b.State.Search != "" || (b.State.Priority != domain.FilterAll && b.State.Priority != "") {
			s.EmptyMessage = EmptyNoMatches
		} else {
			s.EmptyMessage = EmptyNoneAtAll
		}
	}
	return s
}

// clampPage keeps CurrentPage inside the range of the filtered set
func (b Board) clampPage() Board {
	b.State.CurrentPage = ClampPage(b.State.CurrentPage, b.TotalPages())
	return b
}
