package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go-portfolio-site/config"
	"go-portfolio-site/internal/delivery/http/middleware"
	"go-portfolio-site/internal/delivery/http/response"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/internal/repository/memory"
	"go-portfolio-site/internal/repository/static"
	"go-portfolio-site/internal/usecase"
	"go-portfolio-site/pkg/avatar"
	"go-portfolio-site/pkg/email"
	"go-portfolio-site/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, msg *email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		SessionTTL:                time.Hour,
		RateLimitWindowSeconds:    60,
		RateLimitContactThreshold: 100,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, password string, transport email.Transport) *gin.Engine {
	t.Helper()
	return buildRouter(t, cfg, password, transport, nil)
}

func buildRouter(t *testing.T, cfg *config.Config, password string, transport email.Transport, m *metrics.Metrics) *gin.Engine {
	t.Helper()

	mailer := email.NewEmailService(static.OwnerEmail, password, transport)
	var dispatcher domain.MessageDispatcher = usecase.NewMessageDispatcher(mailer)
	if m != nil {
		dispatcher = usecase.NewObservedDispatcher(dispatcher, m)
	}
	contactUC := usecase.NewContactUsecase(dispatcher, validator.New())
	portfolioUC := usecase.NewPortfolioUsecase(static.NewContentRepository())

	img, err := avatar.NewGenerator(avatar.DefaultText, []avatar.FontSource{avatar.BuiltinFont()}).Generate()
	require.NoError(t, err)

	router, err := NewRouter(RouterDeps{
		PortfolioUC: portfolioUC,
		ContactUC:   contactUC,
		HealthUC:    usecase.NewHealthUsecase(nil),
		Sessions:    middleware.NewSessionManager(memory.NewSessionRepository(), cfg.SessionTTL, false),
		Avatar:      img,
		Metrics:     m,
		Config:      cfg,
	})
	require.NoError(t, err)
	return router
}

// visitor is a browser stand-in that keeps cookies between requests.
type visitor struct {
	t       *testing.T
	router  http.Handler
	cookies map[string]*http.Cookie
}

func newVisitor(t *testing.T, router http.Handler) *visitor {
	v := &visitor{t: t, router: router, cookies: map[string]*http.Cookie{}}
	w := v.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, v.cookies, middleware.CSRFTokenCookieName)
	require.Contains(t, v.cookies, middleware.SessionCookieName)
	return v
}

func (v *visitor) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range v.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	v.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		v.cookies[c.Name] = c
	}
	return w
}

func (v *visitor) csrf() string {
	return v.cookies[middleware.CSRFTokenCookieName].Value
}

func (v *visitor) get(path string) *httptest.ResponseRecorder {
	return v.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (v *visitor) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	form.Set(middleware.CSRFTokenFormField, v.csrf())
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return v.do(req)
}

func (v *visitor) postJSON(path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.CSRFTokenHeaderName, v.csrf())
	return v.do(req)
}

func anaForm() url.Values {
	return url.Values{
		"name":    {"Ana"},
		"email":   {"ana@x.com"},
		"company": {""},
		"subject": {"Internship"},
		"message": {"Hello"},
	}
}

const (
	contactFormMarker = `id="contact-form"`
	resetFormMarker   = `id="reset-form"`
)

func TestShowPage(t *testing.T) {
	v := newVisitor(t, newTestRouter(t, testConfig(), "", nil))

	w := v.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Kean Ocliaso")
	assert.Contains(t, body, "AquaSense-AI: Pool Safety System")
	assert.Contains(t, body, "data:image/png;base64,")
	assert.Contains(t, body, contactFormMarker)
	assert.NotContains(t, body, resetFormMarker)
	assert.Contains(t, body, `value="`+v.csrf()+`"`)
	assert.Contains(t, body, "width: 85%")
	assert.Contains(t, body, "Last Updated: February 2026")
}

func TestShowPageIsDeterministic(t *testing.T) {
	v := newVisitor(t, newTestRouter(t, testConfig(), "", nil))

	first := v.get("/").Body.String()
	second := v.get("/").Body.String()
	assert.Equal(t, first, second)
}

func TestSubmitFormWithoutCredential(t *testing.T) {
	v := newVisitor(t, newTestRouter(t, testConfig(), "", nil))

	w := v.postForm("/contact", anaForm())
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/#contact", w.Header().Get("Location"))

	body := v.get("/").Body.String()
	assert.Contains(t, body, usecase.MsgDeliveryInactive)
	assert.Contains(t, body, "notice-info")
	assert.NotContains(t, body, contactFormMarker)
	assert.Contains(t, body, resetFormMarker)
	assert.Contains(t, body, "Send another message")
}

func TestSubmitFormDelivered(t *testing.T) {
	transport := new(MockTransport)
	var sent *email.Message
	transport.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*email.Message) }).
		Return(nil).Once()

	v := newVisitor(t, newTestRouter(t, testConfig(), "app-password", transport))

	w := v.postForm("/contact", anaForm())
	require.Equal(t, http.StatusSeeOther, w.Code)

	body := v.get("/").Body.String()
	assert.Contains(t, body, "Thank you for your message!")
	assert.Contains(t, body, "notice-success")

	require.NotNil(t, sent)
	assert.Equal(t, static.OwnerEmail, sent.From)
	assert.Equal(t, []string{static.OwnerEmail}, sent.To)
	assert.Equal(t, "Portfolio Contact: Internship - Ana", sent.Subject)
	assert.Contains(t, sent.Body, "Company: Not provided")
	transport.AssertExpectations(t)
}

func TestSubmitFormDeliveryFailure(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.Anything).
		Return(errors.New("smtp auth: 535 Username and Password not accepted")).Once()

	v := newVisitor(t, newTestRouter(t, testConfig(), "wrong-password", transport))

	w := v.postForm("/contact", anaForm())
	require.Equal(t, http.StatusSeeOther, w.Code)

	body := v.get("/").Body.String()
	assert.Contains(t, body, usecase.MsgDeliveryFailed)
	assert.Contains(t, body, "notice-warning")
	assert.NotContains(t, body, "535")
	assert.Contains(t, body, resetFormMarker)
	transport.AssertNumberOfCalls(t, "Send", 1)
}

func TestSubmitFormValidation(t *testing.T) {
	transport := new(MockTransport)
	v := newVisitor(t, newTestRouter(t, testConfig(), "app-password", transport))

	form := anaForm()
	form.Set("name", "")
	form.Set("message", "Hello there")

	w := v.postForm("/contact", form)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, usecase.MsgRequiredFields)
	assert.Contains(t, body, "Your Name is required")
	assert.Contains(t, body, "Hello there")
	assert.Contains(t, body, `value="ana@x.com"`)
	assert.Contains(t, body, contactFormMarker)

	after := v.get("/").Body.String()
	assert.Contains(t, after, contactFormMarker)
	assert.NotContains(t, after, usecase.MsgRequiredFields)
	transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmitFormTwiceWithoutReset(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.Anything).Return(nil)
	v := newVisitor(t, newTestRouter(t, testConfig(), "app-password", transport))

	require.Equal(t, http.StatusSeeOther, v.postForm("/contact", anaForm()).Code)

	w := v.postForm("/contact", anaForm())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), resetFormMarker)
	transport.AssertNumberOfCalls(t, "Send", 1)
}

func TestResetForm(t *testing.T) {
	v := newVisitor(t, newTestRouter(t, testConfig(), "", nil))
	require.Equal(t, http.StatusSeeOther, v.postForm("/contact", anaForm()).Code)

	w := v.postForm("/contact/reset", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/#contact", w.Header().Get("Location"))

	body := v.get("/").Body.String()
	assert.Contains(t, body, contactFormMarker)
	assert.NotContains(t, body, usecase.MsgDeliveryInactive)

	require.Equal(t, http.StatusSeeOther, v.postForm("/contact", anaForm()).Code)
}

func TestSubmitFormRequiresCSRFToken(t *testing.T) {
	v := newVisitor(t, newTestRouter(t, testConfig(), "", nil))

	form := anaForm()
	form.Set("message", "Hello there")
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := v.do(req)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, msgSessionExpired)
	assert.Contains(t, body, "Hello there")
	assert.Contains(t, body, contactFormMarker)

	assert.Contains(t, v.get("/").Body.String(), contactFormMarker)
}

func TestSubmitFormWithExpiredCSRFCookie(t *testing.T) {
	v := newVisitor(t, newTestRouter(t, testConfig(), "", nil))
	stale := v.csrf()
	delete(v.cookies, middleware.CSRFTokenCookieName)

	form := anaForm()
	form.Set(middleware.CSRFTokenFormField, stale)
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := v.do(req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, v.cookies, middleware.CSRFTokenCookieName)
	assert.NotEqual(t, stale, v.csrf())
	assert.Contains(t, w.Body.String(), msgSessionExpired)
	assert.Contains(t, w.Body.String(), `value="`+v.csrf()+`"`)

	require.Equal(t, http.StatusSeeOther, v.postForm("/contact", anaForm()).Code)
}

func TestContactAPIRequiresCSRFToken(t *testing.T) {
	v := newVisitor(t, newTestRouter(t, testConfig(), "", nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(`{"name":"Ana"}`))
	req.Header.Set("Content-Type", "application/json")
	w := v.do(req)

	require.Equal(t, http.StatusForbidden, w.Code)
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Missing CSRF token", body.Message)
}

func TestSubmitFormSurvivesDroppedConnection(t *testing.T) {
	transport := new(MockTransport)
	var sendErr error
	transport.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sendErr = args.Get(0).(context.Context).Err() }).
		Return(nil).Once()
	v := newVisitor(t, newTestRouter(t, testConfig(), "app-password", transport))

	form := anaForm()
	form.Set(middleware.CSRFTokenFormField, v.csrf())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode())).WithContext(ctx)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusSeeOther, v.do(req).Code)

	assert.NoError(t, sendErr)
	body := v.get("/").Body.String()
	assert.Contains(t, body, "Thank you for your message!")
	assert.Contains(t, body, resetFormMarker)
	transport.AssertExpectations(t)
}

func TestSubmitFormRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitContactThreshold = 1
	v := newVisitor(t, newTestRouter(t, cfg, "", nil))

	require.Equal(t, http.StatusSeeOther, v.postForm("/contact", anaForm()).Code)
	require.Equal(t, http.StatusSeeOther, v.postForm("/contact/reset", url.Values{}).Code)

	w := v.postForm("/contact", anaForm())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Too many messages")
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func decodeStatus(t *testing.T, w *httptest.ResponseRecorder) (response.Response, ContactStatus) {
	t.Helper()
	var envelope struct {
		response.Response
		Data ContactStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Response, envelope.Data
}

func TestContactAPI(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
	v := newVisitor(t, newTestRouter(t, testConfig(), "app-password", transport))

	w := v.get("/api/v1/contact/status")
	require.Equal(t, http.StatusOK, w.Code)
	_, status := decodeStatus(t, w)
	assert.False(t, status.Submitted)
	assert.Equal(t, v.csrf(), status.CSRFToken)

	w = v.postJSON("/api/v1/contact", `{"name":"Ana","email":"ana@x.com","subject":"Internship","message":"Hello"}`)
	require.Equal(t, http.StatusOK, w.Code)
	envelope, status := decodeStatus(t, w)
	assert.True(t, envelope.Success)
	assert.True(t, status.Submitted)
	assert.True(t, status.Delivered)
	require.NotNil(t, status.Notice)
	assert.Equal(t, usecase.MsgDelivered, status.Notice.Text)

	// The HTML page shares the session.
	assert.Contains(t, v.get("/").Body.String(), resetFormMarker)

	w = v.postJSON("/api/v1/contact", `{"name":"Ana","email":"ana@x.com","subject":"Internship","message":"Hello"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = v.postJSON("/api/v1/contact/reset", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	_, status = decodeStatus(t, w)
	assert.False(t, status.Submitted)
	assert.Nil(t, status.Notice)
	transport.AssertExpectations(t)
}

func TestContactAPIErrors(t *testing.T) {
	v := newVisitor(t, newTestRouter(t, testConfig(), "", nil))

	t.Run("Should reject malformed JSON", func(t *testing.T) {
		w := v.postJSON("/api/v1/contact", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should list missing fields", func(t *testing.T) {
		w := v.postJSON("/api/v1/contact", `{"subject":"Internship"}`)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var body response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, usecase.MsgRequiredFields, body.Message)
		assert.ElementsMatch(t, []interface{}{
			"Your Name is required", "Your Email is required", "Your Message is required",
		}, body.Error)
	})

	t.Run("Should reject an unknown subject", func(t *testing.T) {
		w := v.postJSON("/api/v1/contact", `{"name":"Ana","email":"ana@x.com","subject":"Spam","message":"Hello"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Subject must be one of")
	})
}

func TestServeAvatar(t *testing.T) {
	router := newTestRouter(t, testConfig(), "", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/avatar.png", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, avatar.Size, img.Bounds().Dx())
	assert.Equal(t, avatar.Size, img.Bounds().Dy())
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, testConfig(), "", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sessions":"memory"`)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitContactThreshold = 2
	v := newVisitor(t, buildRouter(t, cfg, "", nil, metrics.New()))

	invalid := anaForm()
	invalid.Set("message", "")
	require.Equal(t, http.StatusUnprocessableEntity, v.postForm("/contact", invalid).Code)
	require.Equal(t, http.StatusSeeOther, v.postForm("/contact", anaForm()).Code)
	require.Equal(t, http.StatusTooManyRequests, v.postForm("/contact", anaForm()).Code)

	body := v.get("/metrics").Body.String()
	assert.Contains(t, body, `portfolio_contact_deliveries_total{status="not_configured"} 1`)
	assert.Contains(t, body, `portfolio_contact_rejected_total{reason="invalid"} 1`)
	assert.Contains(t, body, `portfolio_rate_limited_total{limiter="rl:contact:"} 1`)
}

func TestMetricsNotMountedByDefault(t *testing.T) {
	router := newTestRouter(t, testConfig(), "", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
