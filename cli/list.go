package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/deemkeen/noticeboard/board"
	"github.com/deemkeen/noticeboard/domain"
	"github.com/spf13/pflag"
)

// handleList prints one page of the filtered announcements
func (h *Handler) handleList(args []string) error {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	query := fs.StringP("query", "q", "", "search text")
	priority := fs.StringP("priority", "p", "all", "all, urgent or general")
	page := fs.Int("page", 1, "page number")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			h.listUsage(fs)
			return nil
		}
		h.output.Error(err)
		return err
	}

	filter, err := domain.ParsePriorityFilter(*priority)
	if err != nil {
		h.output.Error(err)
		return err
	}

	// positional words are joined into the query: `list sports day`
	if *query == "" && fs.NArg() > 0 {
		*query = strings.Join(fs.Args(), " ")
	}

	items, err := h.db.ReadAnnouncements()
	if err != nil {
		h.output.Error(err)
		return err
	}

	b := board.New(items, h.pageSize()).
		SetSearch(*query).
		SetPriority(filter).
		GoToPage(*page)
	snap := b.Snapshot()

	if h.output.IsJSON() {
		list := make([]AnnouncementItem, 0, len(snap.Rows))
		for _, row := range snap.Rows {
			list = append(list, toItem(row.Announcement))
		}
		h.output.JSON(ListResponse{
			Announcements: list,
			Pagination: Pagination{
				TotalItems:   snap.TotalItems,
				TotalPages:   snap.TotalPages,
				CurrentPage:  snap.CurrentPage,
				ItemsPerPage: snap.PageSize,
			},
		})
		return nil
	}

	if snap.Empty {
		h.output.Println(snap.EmptyTitle + ".")
		h.output.Println(snap.EmptyMessage + ".")
		return nil
	}

	for _, row := range snap.Rows {
		a := row.Announcement
		h.output.Print("#%d [%s] %s\n", a.Id, a.Priority.Badge().Label, a.Title)
		h.output.Print("  %s\n", truncate(a.Content, 80))
		h.output.Print("  %s\n", a.Date)
		h.output.Println("")
	}
	if snap.ShowPagination {
		h.output.Print("Page %d of %d (%d announcements)\n", snap.CurrentPage, snap.TotalPages, snap.TotalItems)
	}
	return nil
}

func (h *Handler) listUsage(fs *pflag.FlagSet) {
	if h.output.IsJSON() {
		h.output.JSON(listHelpCommand())
		return
	}
	h.output.Println("Usage: list [-q <text>] [-p all|urgent|general] [--page <n>] [words...]")
	h.output.Println("")
	fs.SetOutput(h.session)
	fs.PrintDefaults()
}

// handleShow prints a single announcement in full
func (h *Handler) handleShow(args []string) error {
	if len(args) != 1 {
		err := errors.New("usage: show <id>")
		h.output.Error(err)
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		err = fmt.Errorf("invalid announcement id: %s", args[0])
		h.output.Error(err)
		return err
	}

	a, err := h.db.ReadAnnouncementById(id)
	if err != nil {
		h.output.Error(err)
		return err
	}

	if h.output.IsJSON() {
		h.output.JSON(toItem(*a))
		return nil
	}

	h.output.Print("%s [%s]\n", a.Title, a.Priority.Badge().Label)
	h.output.Println(a.PostedAt())
	h.output.Println("")
	h.output.Println(a.Content)
	h.output.Println("")
	h.output.Print("From: %s\n", a.Author)
	return nil
}

func toItem(a domain.Announcement) AnnouncementItem {
	return AnnouncementItem{
		ID:       a.Id,
		Title:    a.Title,
		Content:  a.Content,
		Priority: string(a.Priority),
		Badge:    a.Priority.Badge().Label,
		Date:     a.Date,
		Time:     a.Time,
		Author:   a.Author,
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
