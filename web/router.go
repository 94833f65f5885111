package web

import (
	"embed"
	"html/template"
	"log"

	"github.com/deemkeen/noticeboard/util"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	requestsPerSecond = 10
	requestBurst      = 20
	maxBodyBytes      = 64 << 10
)

func Router(conf *util.AppConfig, store Store) (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	g.Use(RequestIdMiddleware())
	g.Use(gzip.Gzip(gzip.DefaultCompression))
	g.Use(MaxBytesMiddleware(maxBodyBytes))
	g.Use(RateLimitMiddleware(NewRateLimiter(rate.Limit(requestsPerSecond), requestBurst)))
	g.SetHTMLTemplate(tmpl)

	g.GET("/", func(c *gin.Context) {
		HandleIndex(c, conf, store)
	})

	g.GET("/announcements/:id", func(c *gin.Context) {
		HandleAnnouncement(c, store)
	})

	g.GET("/api/announcements", func(c *gin.Context) {
		HandleListAPI(c, conf, store)
	})

	g.GET("/api/announcements/:id", func(c *gin.Context) {
		HandleGetAPI(c, store)
	})

	g.GET("/feed.rss", func(c *gin.Context) {
		HandleFeed(c, conf, store)
	})

	log.Printf("[WEB] Routes registered, serving on %s:%d", conf.Conf.Host, conf.Conf.HttpPort)
	return g, nil
}
