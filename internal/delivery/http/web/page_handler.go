package web

import (
	"net/http"
	"strconv"

	"go-portfolio-site/pkg/avatar"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	page   *pageRenderer
	avatar *avatar.Avatar
}

// NewPageHandler registers the page and the avatar image.
func NewPageHandler(r gin.IRoutes, page *pageRenderer, img *avatar.Avatar) {
	handler := &PageHandler{
		page:   page,
		avatar: img,
	}

	r.GET("/", handler.ShowPage)
	r.GET("/avatar.png", handler.ServeAvatar)
}

func (h *PageHandler) ShowPage(c *gin.Context) {
	h.page.render(c, http.StatusOK, ContactForm{})
}

// ServeAvatar writes the PNG generated at startup.
func (h *PageHandler) ServeAvatar(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.Header("Content-Length", strconv.Itoa(len(h.avatar.PNG)))
	c.Data(http.StatusOK, "image/png", h.avatar.PNG)
}
