package main

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/logging"
	"github.com/Zachkp/folio/internal/metrics"
	"github.com/Zachkp/folio/internal/page"
	"github.com/Zachkp/folio/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// server holds what the route handlers share.
type server struct {
	cfg     config.Config
	logger  *zap.Logger
	page    *page.Page
	store   *store.Store
	visits  *store.Recorder
	contact *contact.Service
	metrics *metrics.Metrics
	admin   *adminAuth
}

func newRouter(s *server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(s.logger), s.metrics.Middleware(), s.visitorTracking())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.StaticFS("/static", http.FS(page.Static()))

	// Home page route
	r.GET("/", s.home)

	// HTMX contact form endpoint - answers with a toast fragment
	r.POST("/contact", s.submitContact)

	r.GET("/healthz", s.healthz)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	s.setupAdminRoutes(r)
	return r
}

func (s *server) home(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.page.Render(c.Writer); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}
	s.metrics.PageRenders.Inc()
}

func (s *server) healthz(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.logger.Warn("health check", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Paths that are never counted as page views.
var untrackedPrefixes = []string{
	"/static/",
	"/admin",
	"/favicon",
	"/privacy",
	"/metrics",
	"/healthz",
}

// visitorTracking records page views with hashed IPs. Static files, admin
// pages, unrouted paths and visitors sending Do Not Track are skipped.
func (s *server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" || c.FullPath() == "" {
			return
		}
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				return
			}
		}

		if !s.visits.Record(store.Visit{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent"), Path: path}) {
			s.logger.Debug("visitor dropped, recorder busy")
		}
	}
}
