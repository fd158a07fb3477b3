package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog"

	"hostel-food-backend/internal/model"
	"hostel-food-backend/internal/monitoring"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Source is the part of the store the workers read and prune.
type Source interface {
	Review(ctx context.Context, id string) (model.Review, error)
	SubscriptionsForHostel(ctx context.Context, hostel string) ([]model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
}

// Payload is the JSON body delivered to the browser.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewReviewPayload describes r for subscribers.
func NewReviewPayload(r model.Review) Payload {
	return Payload{
		Title: fmt.Sprintf("New review for %s", r.HostelName),
		Body:  fmt.Sprintf("%s rated %s %d/5", r.ReviewerName, r.MealType, r.OverallRating),
	}
}

// WorkerPool sends new-review alerts from a bounded queue.
type WorkerPool struct {
	size    int
	jobs    chan string
	source  Source
	webpush *webpush.Options
	sender  NotificationSender
	metrics *monitoring.Metrics
	logger  zerolog.Logger
	wg      sync.WaitGroup
}

// NewWorkerPool creates a new worker pool. metrics may be nil.
func NewWorkerPool(size, queue int, source Source, webpushOptions *webpush.Options, metrics *monitoring.Metrics, logger zerolog.Logger) *WorkerPool {
	if size < 1 {
		size = 1
	}
	if queue < 1 {
		queue = size
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, queue),
		source:  source,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		metrics: metrics,
		logger:  logger,
	}
}

// SetSender replaces the push transport. Call it before Start.
func (wp *WorkerPool) SetSender(sender NotificationSender) {
	wp.sender = sender
}

// Start launches the worker goroutines. They exit when ctx is done.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

// Wait blocks until every worker has exited.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()
	log := wp.logger.With().Int("worker", id).Logger()
	log.Debug().Msg("Worker started")
	for {
		select {
		case reviewID := <-wp.jobs:
			wp.sendNotificationsForReview(ctx, reviewID)
		case <-ctx.Done():
			log.Debug().Msg("Worker shutting down")
			return
		}
	}
}

// Dispatch queues an alert for reviewID without blocking. It reports false
// when the queue is full and the alert was dropped.
func (wp *WorkerPool) Dispatch(reviewID string) bool {
	select {
	case wp.jobs <- reviewID:
		return true
	default:
		wp.logger.Warn().Str("review_id", reviewID).Msg("Alert queue full, dropping new-review alert")
		wp.metrics.RecordPush(monitoring.PushDropped)
		return false
	}
}

func (wp *WorkerPool) sendNotificationsForReview(ctx context.Context, reviewID string) {
	review, err := wp.source.Review(ctx, reviewID)
	if err != nil {
		wp.logger.Error().Err(err).Str("review_id", reviewID).Msg("Error loading review for alert")
		return
	}

	subscriptions, err := wp.source.SubscriptionsForHostel(ctx, review.HostelName)
	if err != nil {
		wp.logger.Error().Err(err).Str("hostel", review.HostelName).Msg("Error fetching subscriptions")
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(NewReviewPayload(review))
	if err != nil {
		wp.logger.Error().Err(err).Msg("Error encoding alert payload")
		return
	}

	wp.logger.Info().Int("subscriptions", len(subscriptions)).Str("hostel", review.HostelName).Msg("Sending new-review alerts")
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.logger.Error().Err(err).Str("endpoint", sub.Endpoint).Msg("Error sending notification")
		wp.metrics.RecordPush(monitoring.PushFailed)
		return
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusGone:
		wp.logger.Info().Str("endpoint", sub.Endpoint).Msg("Subscription expired, deleting")
		wp.metrics.RecordPush(monitoring.PushGone)
		if err := wp.source.DeleteSubscription(ctx, sub.Endpoint); err != nil {
			wp.logger.Error().Err(err).Str("endpoint", sub.Endpoint).Msg("Failed to delete expired subscription")
		}
	case resp.StatusCode >= 400:
		wp.logger.Warn().Int("status", resp.StatusCode).Str("endpoint", sub.Endpoint).Msg("Push service rejected notification")
		wp.metrics.RecordPush(monitoring.PushFailed)
	default:
		wp.metrics.RecordPush(monitoring.PushSent)
	}
}
