package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/deemkeen/noticeboard/db"
	"github.com/deemkeen/noticeboard/domain"
	"github.com/deemkeen/noticeboard/util"
	"github.com/gin-gonic/gin"
)

// Store is the read side of the announcement store
type Store interface {
	ReadAnnouncements() ([]domain.Announcement, error)
	ReadAnnouncementById(id int) (*domain.Announcement, error)
}

type Pagination struct {
	TotalItems   int `json:"total_items"`
	TotalPages   int `json:"total_pages"`
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
}

type ListResponse struct {
	Items      []domain.Announcement `json:"items"`
	Pagination Pagination            `json:"pagination"`
}

// HandleListAPI serves one page of the filtered set as JSON
func HandleListAPI(c *gin.Context, conf *util.AppConfig, store Store) {
	items, err := store.ReadAnnouncements()
	if err != nil {
		log.Printf("[WEB] Failed to read announcements: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read announcements"})
		return
	}

	priority, err := domain.ParsePriorityFilter(c.Query("priority"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q := pageQuery{search: c.Query("q"), priority: priority, page: 1}
	if p, err := strconv.Atoi(c.Query("page")); err == nil {
		q.page = p
	}

	snap := boardFor(items, conf.Conf.PageSize, q).Snapshot()
	resp := ListResponse{
		Items: make([]domain.Announcement, 0, len(snap.Rows)),
		Pagination: Pagination{
			TotalItems:   snap.TotalItems,
			TotalPages:   snap.TotalPages,
			CurrentPage:  snap.CurrentPage,
			ItemsPerPage: snap.PageSize,
		},
	}
	for _, row := range snap.Rows {
		resp.Items = append(resp.Items, row.Announcement)
	}
	c.JSON(http.StatusOK, resp)
}

// HandleGetAPI serves a single announcement as JSON
func HandleGetAPI(c *gin.Context, store Store) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
		return
	}

	a, err := store.ReadAnnouncementById(id)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
		return
	}
	if err != nil {
		log.Printf("[WEB] Failed to read announcement %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read announcement"})
		return
	}
	c.JSON(http.StatusOK, a)
}

// HandleAnnouncement sends browsers to the panel with the announcement
// selected and everybody else to the JSON representation.
func HandleAnnouncement(c *gin.Context, store Store) {
	if IsHTMLRequest(c.GetHeader("Accept")) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.Redirect(http.StatusFound, "/")
			return
		}
		c.Redirect(http.StatusFound, pageQuery{priority: domain.FilterAll, id: id}.link())
		return
	}
	HandleGetAPI(c, store)
}
