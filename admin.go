// admin.go - privacy-conscious admin system
package main

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/store"
)

const adminCookie = "admin_token"

// adminAuth holds the session token issued on login. The token is random
// per process, so restarting the server logs the admin out.
type adminAuth struct {
	token    string
	username string
	password string
}

func newAdminAuth(cfg config.Config) (*adminAuth, error) {
	token, err := store.RandomToken()
	if err != nil {
		return nil, err
	}
	return &adminAuth{token: token, username: cfg.AdminUsername, password: cfg.AdminPassword}, nil
}

func (a *adminAuth) validCredentials(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

// Middleware to check admin authentication
func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Setup all admin routes
func (s *server) setupAdminRoutes(r *gin.Engine) {
	// Privacy policy route
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":     "Privacy Policy",
			"retention": s.cfg.VisitorRetention.String(),
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if !s.admin.validCredentials(c.PostForm("username"), c.PostForm("password")) {
			s.logger.Warn("failed admin login", zap.String("client", s.store.HashIP(c.ClientIP())))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}

		// Secure cookie, 24 hours
		c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", gin.Mode() == gin.ReleaseMode, true)
		s.logger.Info("admin login", zap.String("client", s.store.HashIP(c.ClientIP())))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", gin.Mode() == gin.ReleaseMode, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	admin := r.Group("/admin")
	admin.Use(s.admin.middleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			s.adminError(c, "Failed to load statistics", err)
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"title": "Dashboard",
			"stats": stats,
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			s.logger.Error("loading stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.store.RecentVisits(c.Request.Context(), 200)
		if err != nil {
			s.adminError(c, "Failed to load visitors", err)
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"title":    "Visitors",
			"visitors": visitors,
		})
	})

	admin.GET("/messages", func(c *gin.Context) {
		messages, err := s.store.Messages(c.Request.Context(), 200)
		if err != nil {
			s.adminError(c, "Failed to load messages", err)
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{
			"title":    "Messages",
			"messages": messages,
		})
	})

	admin.DELETE("/messages/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
			return
		}

		err = s.store.DeleteMessage(c.Request.Context(), id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		case err != nil:
			s.logger.Error("deleting message", zap.Int64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
		default:
			s.logger.Info("message deleted", zap.Int64("id", id))
			c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
		}
	})

	// Drop visitor rows past the retention window now instead of waiting
	// for the daily sweep.
	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := s.store.PruneVisits(c.Request.Context(), s.cfg.VisitorRetention)
		if err != nil {
			s.logger.Error("privacy cleanup", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": n})
	})

	// Statistics export for backups or analysis
	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			s.logger.Error("exporting stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		c.JSON(http.StatusOK, stats)
	})
}

func (s *server) adminError(c *gin.Context, msg string, err error) {
	s.logger.Error(msg, zap.Error(err))
	c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
		"title": "Error",
		"error": msg,
	})
}
