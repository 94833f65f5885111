package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Priority classifies how urgent an announcement is
type Priority string

const (
	PriorityUrgent  Priority = "urgent"
	PriorityGeneral Priority = "general"
)

// PriorityFilter is the selector value used to narrow the announcement list.
// FilterAll matches every priority.
type PriorityFilter string

const (
	FilterAll     PriorityFilter = "all"
	FilterUrgent  PriorityFilter = "urgent"
	FilterGeneral PriorityFilter = "general"
)

var ErrUnknownPriority = errors.New("unknown priority")

// Announcement is a single notice posted by the school administration.
// Date and Time are kept as display strings, exactly as they were posted.
type Announcement struct {
	Id       int      `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Content  string   `json:"content" yaml:"content"`
	Priority Priority `json:"priority" yaml:"priority"`
	Date     string   `json:"date" yaml:"date"`
	Time     string   `json:"time" yaml:"time"`
	Author   string   `json:"author" yaml:"author"`
}

// Badge is the label shown next to an announcement title
type Badge struct {
	Label  string
	Urgent bool
}

// Badge maps a priority to its label. Anything that is not urgent
// is shown as General.
func (p Priority) Badge() Badge {
	switch p {
	case PriorityUrgent:
		return Badge{Label: "Urgent", Urgent: true}
	default:
		return Badge{Label: "General", Urgent: false}
	}
}

// PostedAt returns the "Posted on ... at ..." line of the detail pane
func (a Announcement) PostedAt() string {
	return fmt.Sprintf("Posted on %s at %s", a.Date, a.Time)
}

// Matches reports whether a search string (case-insensitive) occurs in
// the title or the content. The empty string matches everything.
func (a Announcement) Matches(search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(a.Title), needle) ||
		strings.Contains(strings.ToLower(a.Content), needle)
}

// ParsePriorityFilter parses user input such as "Urgent" or " all ".
// The empty string is treated as FilterAll.
func ParsePriorityFilter(s string) (PriorityFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "urgent":
		return FilterUrgent, nil
	case "general":
		return FilterGeneral, nil
	}
	return FilterAll, fmt.Errorf("%w: %q", ErrUnknownPriority, s)
}

// Allows reports whether an announcement with priority p passes the filter
func (f PriorityFilter) Allows(p Priority) bool {
	return f == FilterAll || f == "" || string(f) == string(p)
}

// Next cycles all -> urgent -> general -> all
func (f PriorityFilter) Next() PriorityFilter {
	switch f {
	case FilterAll, "":
		return FilterUrgent
	case FilterUrgent:
		return FilterGeneral
	default:
		return FilterAll
	}
}

// Label is the human readable name shown in selectors
func (f PriorityFilter) Label() string {
	switch f {
	case FilterUrgent:
		return "Urgent"
	case FilterGeneral:
		return "General"
	default:
		return "All"
	}
}

// PriorityFilters lists the selector options in display order
func PriorityFilters() []PriorityFilter {
	return []PriorityFilter{FilterAll, FilterUrgent, FilterGeneral}
}
