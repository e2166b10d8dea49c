package web

import (
	"context"
	"errors"
	"net/http"

	"go-portfolio-site/internal/delivery/http/middleware"
	"go-portfolio-site/internal/delivery/http/response"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/apperror"
	"go-portfolio-site/pkg/metrics"

	"github.com/gin-gonic/gin"
)

const contactAnchor = "/#contact"

type ContactHandler struct {
	contactUC domain.ContactUsecase
	sessions  *middleware.SessionManager
	page      *pageRenderer
	metrics   *metrics.Metrics
}

// ContactStatus is the JSON view of the visitor's contact form.
type ContactStatus struct {
	Submitted bool           `json:"submitted"`
	Delivered bool           `json:"delivered"`
	Notice    *domain.Notice `json:"notice,omitempty"`
	CSRFToken string         `json:"csrf_token,omitempty"`
}

// NewContactHandler registers the form routes on site and the JSON routes on api.
// siteLimit and apiLimit guard the two submit endpoints.
func NewContactHandler(site, api gin.IRoutes, siteLimit, apiLimit gin.HandlerFunc, contactUC domain.ContactUsecase, sessions *middleware.SessionManager, page *pageRenderer, m *metrics.Metrics) {
	handler := &ContactHandler{
		contactUC: contactUC,
		sessions:  sessions,
		page:      page,
		metrics:   m,
	}

	site.POST("/contact", siteLimit, handler.SubmitForm)
	site.POST("/contact/reset", handler.ResetForm)

	api.GET("/contact/status", handler.Status)
	api.POST("/contact", apiLimit, handler.SubmitContact)
	api.POST("/contact/reset", handler.ResetContact)
}

// SubmitForm handles the HTML form. A valid post is stored and redirected so a
// reload never resubmits; an invalid one re-renders the page with the draft.
func (h *ContactHandler) SubmitForm(c *gin.Context) {
	var req domain.ContactSubmission
	if err := c.ShouldBind(&req); err != nil {
		h.page.render(c, http.StatusBadRequest, ContactForm{ErrorMessage: "Invalid form submission"})
		return
	}

	next, err := h.contactUC.Submit(detached(c), middleware.CurrentSession(c), &req)
	if err != nil {
		h.observeRejection(err)
		var appErr *apperror.AppError
		switch {
		case errors.Is(err, domain.ErrValidation) && errors.As(err, &appErr):
			h.page.render(c, appErr.Code, ContactForm{
				Draft:        req,
				ErrorMessage: appErr.Message,
				Errors:       appErr.Details,
			})
		case errors.Is(err, domain.ErrAlreadySubmitted) && errors.As(err, &appErr):
			h.page.render(c, appErr.Code, ContactForm{ErrorMessage: appErr.Message})
		default:
			c.Error(err)
		}
		return
	}

	h.sessions.Commit(c, next)
	c.Redirect(http.StatusSeeOther, contactAnchor)
}

// ResetForm is the "Send another message" button.
func (h *ContactHandler) ResetForm(c *gin.Context) {
	next := h.contactUC.Reset(detached(c), middleware.CurrentSession(c))
	h.sessions.Commit(c, next)
	c.Redirect(http.StatusSeeOther, contactAnchor)
}

// SubmitContact is the JSON variant of SubmitForm for the same session.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	next, err := h.contactUC.Submit(detached(c), middleware.CurrentSession(c), &req)
	if err != nil {
		h.observeRejection(err)
		c.Error(err)
		return
	}

	h.sessions.Commit(c, next)
	response.Success(c, http.StatusOK, next.Notice.Text, statusOf(next, ""))
}

func (h *ContactHandler) ResetContact(c *gin.Context) {
	next := h.contactUC.Reset(detached(c), middleware.CurrentSession(c))
	h.sessions.Commit(c, next)
	response.Success(c, http.StatusOK, "Contact form is ready", statusOf(next, ""))
}

// Status also hands out the CSRF token JSON clients must echo in X-CSRF-Token.
func (h *ContactHandler) Status(c *gin.Context) {
	response.Success(c, http.StatusOK, "Contact form status", statusOf(middleware.CurrentSession(c), middleware.CSRFToken(c)))
}

// detached keeps request values but outlives a dropped connection, so a
// message that reaches the mail server is always recorded in the session.
func detached(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func (h *ContactHandler) observeRejection(err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.metrics.ObserveRejected("invalid")
	case errors.Is(err, domain.ErrAlreadySubmitted):
		h.metrics.ObserveRejected("duplicate")
	}
}

func statusOf(session domain.VisitorSession, csrfToken string) ContactStatus {
	return ContactStatus{
		Submitted: session.State.Submitted,
		Delivered: session.State.Delivered,
		Notice:    session.Notice,
		CSRFToken: csrfToken,
	}
}
