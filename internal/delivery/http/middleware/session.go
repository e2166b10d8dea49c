package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionCookieName = "portfolio_session"

// SessionManager loads the visitor session before the handler runs and
// persists the state the handler hands back through Commit.
type SessionManager struct {
	repo   domain.SessionRepository
	ttl    time.Duration
	secure bool
}

func NewSessionManager(repo domain.SessionRepository, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{repo: repo, ttl: ttl, secure: secure}
}

// Middleware never blocks the request: a storage failure starts a fresh session.
func (m *SessionManager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := m.load(c)
		c.Set(domain.KeySession, session)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookieName, session.ID, int(m.ttl.Seconds()), "/", "", m.secure, true)
		c.Next()
	}
}

func (m *SessionManager) load(c *gin.Context) domain.VisitorSession {
	id, err := c.Cookie(SessionCookieName)
	if err != nil {
		return domain.NewVisitorSession(uuid.NewString())
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.NewVisitorSession(uuid.NewString())
	}

	stored, err := m.repo.Get(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			logger.Log.Warn("Session lookup failed, starting fresh", "request_id", requestIDFrom(c), "error", err)
		}
		return domain.NewVisitorSession(id)
	}
	return *stored
}

// Commit stores the next session state and makes it current for this request.
// The save ignores request cancellation. A storage failure is logged; the
// visitor still sees the new state on this response.
func (m *SessionManager) Commit(c *gin.Context, session domain.VisitorSession) {
	c.Set(domain.KeySession, session)
	if err := m.repo.Save(context.WithoutCancel(c.Request.Context()), &session, m.ttl); err != nil {
		logger.Log.Error("Failed to save session", "request_id", requestIDFrom(c), "session_id", session.ID, "error", err)
	}
}

// CurrentSession returns the session loaded by Middleware.
func CurrentSession(c *gin.Context) domain.VisitorSession {
	if v, ok := c.Get(domain.KeySession); ok {
		if session, ok := v.(domain.VisitorSession); ok {
			return session
		}
	}
	return domain.NewVisitorSession(uuid.NewString())
}
