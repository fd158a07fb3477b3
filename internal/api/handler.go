package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog"

	"hostel-food-backend/internal/monitoring"
	"hostel-food-backend/internal/store"
)

// Dispatcher queues a new-review alert without blocking.
type Dispatcher interface {
	Dispatch(reviewID string) bool
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	alerts  Dispatcher
	webpush *webpush.Options
	metrics *monitoring.Metrics
	logger  zerolog.Logger
}

// NewHandler creates a new API handler. alerts, webpushOptions and metrics
// may be nil.
func NewHandler(s store.Store, alerts Dispatcher, webpushOptions *webpush.Options, metrics *monitoring.Metrics, logger zerolog.Logger) *Handler {
	return &Handler{
		store:   s,
		alerts:  alerts,
		webpush: webpushOptions,
		metrics: metrics,
		logger:  logger,
	}
}
