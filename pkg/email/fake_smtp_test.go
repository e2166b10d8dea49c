package email

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeSMTPServer accepts one session and records what the client sent.
type fakeSMTPServer struct {
	ln                net.Listener
	tlsConfig         *tls.Config
	advertiseStartTLS bool
	rejectAuth        bool
	done              chan struct{}

	mu       sync.Mutex
	usedTLS  bool
	authLine string
	mailFrom string
	rcpts    []string
	data     []byte
}

type fakeSMTPOptions struct {
	advertiseStartTLS bool
	rejectAuth        bool
}

func startFakeSMTP(t *testing.T, opts fakeSMTPOptions) *fakeSMTPServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeSMTPServer{
		ln:                ln,
		tlsConfig:         selfSignedTLSConfig(t),
		advertiseStartTLS: opts.advertiseStartTLS,
		rejectAuth:        opts.rejectAuth,
		done:              make(chan struct{}),
	}
	go s.serve()
	t.Cleanup(func() { ln.Close() })
	return s
}

func (s *fakeSMTPServer) port() string {
	_, port, _ := net.SplitHostPort(s.ln.Addr().String())
	return port
}

func (s *fakeSMTPServer) wait(t *testing.T) {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(5 * time.Second):
		t.Fatal("fake smtp server did not finish")
	}
}

func (s *fakeSMTPServer) serve() {
	defer close(s.done)

	conn, err := s.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 fake.local ESMTP")

	tlsOn := false
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			_ = tp.PrintfLine("500 empty command")
			continue
		}

		switch strings.ToUpper(fields[0]) {
		case "EHLO", "HELO":
			switch {
			case tlsOn:
				_ = tp.PrintfLine("250-fake.local")
				_ = tp.PrintfLine("250 AUTH PLAIN")
			case s.advertiseStartTLS:
				_ = tp.PrintfLine("250-fake.local")
				_ = tp.PrintfLine("250 STARTTLS")
			default:
				_ = tp.PrintfLine("250 fake.local")
			}
		case "STARTTLS":
			_ = tp.PrintfLine("220 Ready to start TLS")
			tlsConn := tls.Server(conn, s.tlsConfig)
			if err := tlsConn.Handshake(); err != nil {
				return
			}
			tp = textproto.NewConn(tlsConn)
			tlsOn = true
			s.mu.Lock()
			s.usedTLS = true
			s.mu.Unlock()
		case "AUTH":
			s.mu.Lock()
			s.authLine = line
			s.mu.Unlock()
			if s.rejectAuth {
				_ = tp.PrintfLine("535 5.7.8 Username and Password not accepted")
			} else {
				_ = tp.PrintfLine("235 2.7.0 Accepted")
			}
		case "MAIL":
			s.mu.Lock()
			s.mailFrom = line
			s.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case "RCPT":
			s.mu.Lock()
			s.rcpts = append(s.rcpts, line)
			s.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case "DATA":
			_ = tp.PrintfLine("354 Go ahead")
			data, err := tp.ReadDotBytes()
			if err != nil {
				return
			}
			s.mu.Lock()
			s.data = data
			s.mu.Unlock()
			_ = tp.PrintfLine("250 OK queued")
		case "QUIT":
			_ = tp.PrintfLine("221 Bye")
			return
		default:
			_ = tp.PrintfLine("502 Command not implemented")
		}
	}
}

func selfSignedTLSConfig(t *testing.T) *tls.Config {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "127.0.0.1"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	return &tls.Config{
		Certificates: []tls.Certificate{{Certificate: [][]byte{der}, PrivateKey: key}},
		MinVersion:   tls.VersionTLS12,
	}
}
