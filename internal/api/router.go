package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"hostel-food-backend/config"
	"hostel-food-backend/internal/logging"
	"hostel-food-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestID(), logging.RequestLogger())
	if h.metrics != nil {
		r.Use(h.metrics.Middleware())
	}

	var onLimit func()
	if h.metrics != nil {
		onLimit = h.metrics.RecordRateLimitHit
	}
	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst, onLimit)

	// Only the static options payload is cached; review reads always hit the store.
	ttl := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	caching := mw.Cache(cache.New(ttl, 2*ttl), ttl)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/reviews", h.ListReviews)
		api.POST("/reviews", h.CreateReview)
		api.GET("/options", caching, h.GetOptions)
		api.GET("/healthz", h.Healthz)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	if cfg.Metrics.Enabled && h.metrics != nil {
		r.GET(cfg.Metrics.Path, h.metrics.GinHandler())
	}

	return r
}
