package domain

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// SubmissionState tracks the contact form for one visitor session.
type SubmissionState struct {
	Submitted bool `json:"submitted"`
	Delivered bool `json:"delivered"`
}

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a visitor-facing banner.
type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}

type VisitorSession struct {
	ID     string          `json:"id"`
	State  SubmissionState `json:"state"`
	Notice *Notice         `json:"notice,omitempty"`
}

// NewVisitorSession returns a session with an untouched contact form.
func NewVisitorSession(id string) VisitorSession {
	return VisitorSession{ID: id}
}

type SessionRepository interface {
	Get(ctx context.Context, id string) (*VisitorSession, error)
	Save(ctx context.Context, session *VisitorSession, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
