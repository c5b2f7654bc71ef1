package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/page"
)

const (
	contactThanks = "Thank you for your message! I'll get back to you soon."
	contactFailed = "Sorry, there was an error sending your message. Please try again later."
)

// submitContact handles the contact form. Every outcome is a 200 with a
// toast so htmx swaps it into the toaster; X-Contact-Sent tells the form to
// reset itself.
func (s *server) submitContact(c *gin.Context) {
	msg := contact.Message{
		Name:  c.PostForm("fullName"),
		Email: c.PostForm("email"),
		Body:  c.PostForm("message"),
	}

	var toast page.Toast
	err := s.contact.Submit(c.Request.Context(), msg)
	switch {
	case err == nil:
		s.metrics.ContactResult.WithLabelValues("sent").Inc()
		c.Header("X-Contact-Sent", "1")
		toast = page.NewToast(page.ToastSuccess, contactThanks)
	case errors.Is(err, contact.ErrInvalid):
		s.metrics.ContactResult.WithLabelValues("invalid").Inc()
		toast = page.NewToast(page.ToastError, contact.Reason(err))
	default:
		s.metrics.ContactResult.WithLabelValues("failed").Inc()
		s.logger.Error("contact submission", zap.Error(err))
		toast = page.NewToast(page.ToastError, contactFailed)
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.page.RenderToast(c.Writer, toast); err != nil {
		s.logger.Error("rendering toast", zap.Error(err))
	}
}
