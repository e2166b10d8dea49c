package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() *Message {
	return &Message{
		From:    "owner@example.com",
		To:      []string{"owner@example.com"},
		Subject: "Portfolio Contact: Internship - Ana",
		Body:    "Hello from the test\n",
		Date:    time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func newTestTransport(port string) *SMTPTransport {
	return NewSMTPTransport(SMTPConfig{
		Host:      "127.0.0.1",
		Port:      port,
		Username:  "owner@example.com",
		Password:  "app-password",
		Timeout:   5 * time.Second,
		TLSConfig: &tls.Config{InsecureSkipVerify: true},
	})
}

func TestSMTPTransportSendsOverStartTLS(t *testing.T) {
	server := startFakeSMTP(t, fakeSMTPOptions{advertiseStartTLS: true})

	err := newTestTransport(server.port()).Send(context.Background(), testMessage())
	require.NoError(t, err)
	server.wait(t)

	server.mu.Lock()
	defer server.mu.Unlock()

	assert.True(t, server.usedTLS)
	assert.Equal(t, "MAIL FROM:<owner@example.com>", server.mailFrom)
	assert.Equal(t, []string{"RCPT TO:<owner@example.com>"}, server.rcpts)

	fields := strings.Fields(server.authLine)
	require.Len(t, fields, 3)
	assert.Equal(t, "PLAIN", fields[1])
	creds, err := base64.StdEncoding.DecodeString(fields[2])
	require.NoError(t, err)
	assert.Equal(t, "\x00owner@example.com\x00app-password", string(creds))

	mr, err := mail.CreateReader(bytes.NewReader(server.data))
	require.NoError(t, err)
	subject, err := mr.Header.Subject()
	require.NoError(t, err)
	assert.Equal(t, "Portfolio Contact: Internship - Ana", subject)

	part, err := mr.NextPart()
	require.NoError(t, err)
	body, err := io.ReadAll(part.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Hello from the test")
}

func TestSMTPTransportRequiresStartTLS(t *testing.T) {
	server := startFakeSMTP(t, fakeSMTPOptions{advertiseStartTLS: false})

	err := newTestTransport(server.port()).Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrStartTLSUnsupported)
	server.wait(t)

	server.mu.Lock()
	defer server.mu.Unlock()
	assert.Empty(t, server.authLine, "credentials must never be sent before TLS")
}

func TestSMTPTransportAuthFailure(t *testing.T) {
	server := startFakeSMTP(t, fakeSMTPOptions{advertiseStartTLS: true, rejectAuth: true})

	err := newTestTransport(server.port()).Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp auth")
	server.wait(t)

	server.mu.Lock()
	defer server.mu.Unlock()
	assert.Empty(t, server.mailFrom)
	assert.Nil(t, server.data)
}

func TestSMTPTransportDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, _ := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, ln.Close())

	err = newTestTransport(port).Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial")
}

func TestNewSMTPTransportDefaultsToRelay(t *testing.T) {
	tr := NewSMTPTransport(SMTPConfig{Username: "u", Password: "p"})
	assert.Equal(t, RelayHost, tr.cfg.Host)
	assert.Equal(t, RelayPort, tr.cfg.Port)
	assert.Equal(t, RelayHost, tr.tlsConfig().ServerName)
	assert.Equal(t, uint16(tls.VersionTLS12), tr.tlsConfig().MinVersion)
}
