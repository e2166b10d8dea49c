package web

import (
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"go-portfolio-site/internal/delivery/http/middleware"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/apperror"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const pageTemplate = "page"

// ParseTemplates loads the embedded page templates.
func ParseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"noticeClass": noticeClass,
	}).ParseFS(templateFS, "templates/*.html")
}

// ContactForm is what the form section needs besides the session state.
type ContactForm struct {
	Draft        domain.ContactSubmission
	ErrorMessage string
	Errors       []string
}

// PageData is everything the page template reads. The page is a pure function of it.
type PageData struct {
	Portfolio     *domain.Portfolio
	Session       domain.VisitorSession
	AvatarDataURI template.URL
	Form          ContactForm
	Subjects      []domain.ContactSubject
	CSRFToken     string
	Year          int
}

// ShowForm reports whether the editable form is rendered instead of the
// "send another message" control.
func (d PageData) ShowForm() bool {
	return !d.Session.State.Submitted
}

type pageRenderer struct {
	portfolioUC domain.PortfolioUsecase
	avatarURI   template.URL
	now         func() time.Time
}

func newPageRenderer(portfolioUC domain.PortfolioUsecase, avatarURI string) *pageRenderer {
	return &pageRenderer{
		portfolioUC: portfolioUC,
		// Generated in-process, never from request input.
		avatarURI: template.URL(avatarURI),
		now:       time.Now,
	}
}

func (p *pageRenderer) render(c *gin.Context, status int, form ContactForm) {
	portfolio, err := p.portfolioUC.GetPortfolio(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.HTML(status, pageTemplate, PageData{
		Portfolio:     portfolio,
		Session:       middleware.CurrentSession(c),
		AvatarDataURI: p.avatarURI,
		Form:          form,
		Subjects:      domain.ContactSubjects,
		CSRFToken:     middleware.CSRFToken(c),
		Year:          p.now().Year(),
	})
}

func noticeClass(level domain.NoticeLevel) string {
	switch level {
	case domain.NoticeSuccess:
		return "notice notice-success"
	case domain.NoticeWarning:
		return "notice notice-warning"
	case domain.NoticeError:
		return "notice notice-error"
	}
	return "notice notice-info"
}

// htmlRateLimited answers a throttled form post with the page itself.
func htmlRateLimited(p *pageRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		p.render(c, http.StatusTooManyRequests, ContactForm{
			ErrorMessage: "Too many messages from your connection. Please wait a minute and try again.",
		})
	}
}

// msgSessionExpired replaces the raw 403 envelope on form posts that fail the CSRF check.
const msgSessionExpired = "Your session expired. Please submit the form again."

// htmlCSRFRejected re-renders the page with the visitor's draft when a form post
// fails the CSRF check. API paths keep the JSON envelope.
func htmlCSRFRejected(p *pageRenderer) func(*gin.Context, *apperror.AppError) {
	return func(c *gin.Context, err *apperror.AppError) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Error(err)
			return
		}

		var draft domain.ContactSubmission
		_ = c.ShouldBind(&draft)
		p.render(c, err.Code, ContactForm{
			Draft:        draft,
			ErrorMessage: msgSessionExpired,
		})
	}
}
