package web

import (
	"net/http"
	"time"

	"go-portfolio-site/config"
	"go-portfolio-site/internal/delivery/http/middleware"
	"go-portfolio-site/internal/delivery/http/response"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/internal/usecase"
	"go-portfolio-site/pkg/apperror"
	"go-portfolio-site/pkg/avatar"
	"go-portfolio-site/pkg/metrics"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	PortfolioUC domain.PortfolioUsecase
	ContactUC   domain.ContactUsecase
	HealthUC    usecase.HealthUsecase
	Sessions    *middleware.SessionManager
	Avatar      *avatar.Avatar
	Redis       *goredis.Client  // optional; rate limits fall back to memory
	Metrics     *metrics.Metrics // optional; /metrics is only mounted when set
	Config      *config.Config
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	page := newPageRenderer(deps.PortfolioUC, deps.Avatar.DataURI())
	csrfRejected := htmlCSRFRejected(page)

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.SessionCookieSecure))
	r.Use(middleware.ErrorHandler())
	r.Use(deps.Sessions.Middleware())
	r.Use(middleware.CSRFMiddleware(middleware.CSRFConfig{
		Secure: deps.Config.SessionCookieSecure,
		OnReject: func(c *gin.Context, err *apperror.AppError) {
			deps.Metrics.ObserveRejected("csrf")
			csrfRejected(c, err)
		},
	}))

	r.GET("/health", healthCheck(deps.HealthUC))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	siteCfg := middleware.ContactRateLimitConfig(deps.Config.RateLimitContactThreshold, window)
	siteCfg.OnLimit = observeLimit(deps.Metrics, siteCfg.KeyPrefix, htmlRateLimited(page))
	apiCfg := middleware.ContactRateLimitConfig(deps.Config.RateLimitContactThreshold, window)
	apiCfg.KeyPrefix = "rl:api:contact:"
	apiCfg.OnLimit = observeLimit(deps.Metrics, apiCfg.KeyPrefix, func(c *gin.Context) {
		c.Error(apperror.TooManyRequests("Rate limit exceeded. Please try again later."))
	})

	api := r.Group("/api/v1")

	NewPageHandler(r, page, deps.Avatar)
	NewContactHandler(r, api,
		middleware.NewRateLimiter(siteCfg, deps.Redis).Middleware(),
		middleware.NewRateLimiter(apiCfg, deps.Redis).Middleware(),
		deps.ContactUC, deps.Sessions, page, deps.Metrics)

	return r, nil
}

func healthCheck(healthUC usecase.HealthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", healthUC.Check(c.Request.Context()))
	}
}

func observeLimit(m *metrics.Metrics, limiter string, next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.ObserveRateLimited(limiter)
		next(c)
	}
}
