package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is used by JSON clients
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenFormField is the hidden input the HTML form posts back
	CSRFTokenFormField = "csrf_token"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour
)

// generateCSRFToken creates a cryptographically secure random token
func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFConfig holds the CSRF middleware configuration
type CSRFConfig struct {
	Secure bool
	// OnReject writes the rejection; defaults to the JSON error envelope
	OnReject func(c *gin.Context, err *apperror.AppError)
}

// CSRFMiddleware implements the double-submit cookie pattern.
//
// Every request gets a csrf_token cookie and the token is exposed to templates
// under domain.KeyCSRFToken. Unsafe methods must echo the cookie value either in
// the X-CSRF-Token header or in the csrf_token form field. A request that arrives
// without the cookie is issued one before it is rejected, so the rejection page
// can carry a usable token.
func CSRFMiddleware(config CSRFConfig) gin.HandlerFunc {
	if config.OnReject == nil {
		config.OnReject = func(c *gin.Context, err *apperror.AppError) {
			c.Error(err)
		}
	}

	return func(c *gin.Context) {
		reject := func(err *apperror.AppError) {
			config.OnReject(c, err)
			c.Abort()
		}

		csrfCookie, err := c.Cookie(CSRFTokenCookieName)
		issued := false
		if err != nil || csrfCookie == "" {
			newToken, err := generateCSRFToken()
			if err != nil {
				c.Error(apperror.Internal(err))
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFTokenCookieName, newToken, int(CSRFTokenExpiry.Seconds()), "/", "", config.Secure, true)
			csrfCookie = newToken
			issued = true
		}
		c.Set(domain.KeyCSRFToken, csrfCookie)

		if !isUnsafeMethod(c.Request.Method) {
			c.Next()
			return
		}
		if issued {
			reject(apperror.Forbidden("Missing CSRF token"))
			return
		}

		submitted := c.GetHeader(CSRFTokenHeaderName)
		if submitted == "" {
			submitted = c.PostForm(CSRFTokenFormField)
		}
		if submitted == "" {
			reject(apperror.Forbidden("Missing CSRF token"))
			return
		}
		if subtle.ConstantTimeCompare([]byte(submitted), []byte(csrfCookie)) != 1 {
			reject(apperror.Forbidden("Invalid CSRF token"))
			return
		}

		c.Next()
	}
}

// CSRFToken returns the token for the current request.
func CSRFToken(c *gin.Context) string {
	token, _ := c.Get(domain.KeyCSRFToken)
	s, _ := token.(string)
	return s
}

func isUnsafeMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
