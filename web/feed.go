package web

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/deemkeen/noticeboard/domain"
	"github.com/deemkeen/noticeboard/util"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
)

const postedLayout = "January 2, 2006 3:04 PM"

// postedTime parses the display date and time of an announcement. Zero
// when they are not in the usual "May 18, 2025" / "2:30 PM" form.
func postedTime(a domain.Announcement) time.Time {
	t, err := time.ParseInLocation(postedLayout, a.Date+" "+a.Time, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func baseURL(conf *util.AppConfig) string {
	return fmt.Sprintf("http://%s:%d", conf.Conf.Host, conf.Conf.HttpPort)
}

// BuildFeed turns the whole store into an RSS feed, newest first as stored
func BuildFeed(conf *util.AppConfig, items []domain.Announcement) *feeds.Feed {
	base := baseURL(conf)
	feed := &feeds.Feed{
		Title:       conf.Conf.Title,
		Link:        &feeds.Link{Href: base + "/"},
		Description: conf.Conf.Description,
	}

	for _, a := range items {
		title := a.Title
		if a.Priority.Badge().Urgent {
			title = "[Urgent] " + title
		}
		created := postedTime(a)
		if created.After(feed.Created) {
			feed.Created = created
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/announcements/%d", base, a.Id),
			Title:       title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/?id=%d", base, a.Id)},
			Description: a.Content,
			Author:      &feeds.Author{Name: a.Author},
			Created:     created,
		})
	}
	return feed
}

func HandleFeed(c *gin.Context, conf *util.AppConfig, store Store) {
	items, err := store.ReadAnnouncements()
	if err != nil {
		log.Printf("[WEB] Failed to read announcements for feed: %v", err)
		c.String(http.StatusInternalServerError, "failed to read announcements")
		return
	}

	rss, err := BuildFeed(conf, items).ToRss()
	if err != nil {
		log.Printf("[WEB] Failed to render feed: %v", err)
		c.String(http.StatusInternalServerError, "failed to render feed")
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
