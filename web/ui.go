package web

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/deemkeen/noticeboard/board"
	"github.com/deemkeen/noticeboard/domain"
	"github.com/deemkeen/noticeboard/util"
	"github.com/gin-gonic/gin"
)

const previewWidth = 100

type IndexPageData struct {
	Title       string
	Description string
	Host        string
	SSHPort     int
	Version     string
	Search      string
	Filters     []FilterOption
	Rows        []RowView
	Empty       bool
	EmptyTitle  string
	EmptyMsg    string
	Paginate    bool
	CurrentPage int
	TotalPages  int
	PrevLink    string
	NextLink    string
	Selected    *DetailView
	SelectedId  int
	NoSelTitle  string
	NoSelMsg    string
}

type FilterOption struct {
	Value  string
	Label  string
	Link   string
	Active bool
}

type RowView struct {
	Id          int
	Title       string
	Preview     string
	Date        string
	Badge       string
	Urgent      bool
	Highlighted bool
	Link        string
}

type DetailView struct {
	Title    string
	Badge    string
	Urgent   bool
	PostedAt string
	Content  string
	Author   string
}

// pageQuery is the panel state carried in the query string
type pageQuery struct {
	search   string
	priority domain.PriorityFilter
	page     int
	id       int
}

func parsePageQuery(c *gin.Context) pageQuery {
	q := pageQuery{search: c.Query("q"), priority: domain.FilterAll, page: 1}

	if f, err := domain.ParsePriorityFilter(c.Query("priority")); err == nil {
		q.priority = f
	}
	if p, err := strconv.Atoi(c.Query("page")); err == nil {
		q.page = p
	}
	if id, err := strconv.Atoi(c.Query("id")); err == nil {
		q.id = id
	}
	return q
}

func (q pageQuery) link() string {
	v := url.Values{}
	if q.search != "" {
		v.Set("q", q.search)
	}
	if q.priority != domain.FilterAll {
		v.Set("priority", string(q.priority))
	}
	if q.page > 1 {
		v.Set("page", strconv.Itoa(q.page))
	}
	if q.id > 0 {
		v.Set("id", strconv.Itoa(q.id))
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

// boardFor rebuilds the panel state for one request
func boardFor(items []domain.Announcement, pageSize int, q pageQuery) board.Board {
	b := board.New(items, pageSize).
		SetSearch(q.search).
		SetPriority(q.priority).
		GoToPage(q.page)
	if q.id > 0 {
		b, _ = b.Select(q.id)
	}
	return b
}

func HandleIndex(c *gin.Context, conf *util.AppConfig, store Store) {
	items, err := store.ReadAnnouncements()
	if err != nil {
		log.Printf("[WEB] Failed to read announcements: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Title": conf.Conf.Title,
			"Error": "Announcements could not be loaded.",
		})
		return
	}

	q := parsePageQuery(c)
	snap := boardFor(items, conf.Conf.PageSize, q).Snapshot()
	// state after clamping, so links never point past the last page
	q.page = snap.CurrentPage
	if snap.Selected == nil {
		q.id = 0
	}

	data := IndexPageData{
		Title:       conf.Conf.Title,
		Description: conf.Conf.Description,
		Host:        conf.Conf.Host,
		SSHPort:     conf.Conf.SshPort,
		Version:     util.GetVersion(),
		Search:      q.search,
		Empty:       snap.Empty,
		EmptyTitle:  snap.EmptyTitle,
		EmptyMsg:    snap.EmptyMessage,
		Paginate:    snap.ShowPagination,
		CurrentPage: snap.CurrentPage,
		TotalPages:  snap.TotalPages,
		NoSelTitle:  board.NoSelectionTitle,
		NoSelMsg:    board.NoSelectionMessage,
	}

	for _, f := range domain.PriorityFilters() {
		fq := q
		fq.priority = f
		fq.page = 1
		data.Filters = append(data.Filters, FilterOption{
			Value:  string(f),
			Label:  f.Label(),
			Link:   fq.link(),
			Active: f == q.priority,
		})
	}

	for _, row := range snap.Rows {
		a := row.Announcement
		rq := q
		rq.id = a.Id
		badge := a.Priority.Badge()
		data.Rows = append(data.Rows, RowView{
			Id:          a.Id,
			Title:       a.Title,
			Preview:     util.TruncateToWidth(a.Content, previewWidth),
			Date:        a.Date,
			Badge:       badge.Label,
			Urgent:      badge.Urgent,
			Highlighted: row.Highlighted,
			Link:        rq.link(),
		})
	}

	if snap.HasPrev {
		pq := q
		pq.page--
		data.PrevLink = pq.link()
	}
	if snap.HasNext {
		nq := q
		nq.page++
		data.NextLink = nq.link()
	}

	if a := snap.Selected; a != nil {
		data.SelectedId = a.Id
		badge := a.Priority.Badge()
		data.Selected = &DetailView{
			Title:    a.Title,
			Badge:    badge.Label,
			Urgent:   badge.Urgent,
			PostedAt: a.PostedAt(),
			Content:  a.Content,
			Author:   a.Author,
		}
	}

	c.HTML(http.StatusOK, "index.html", data)
}
