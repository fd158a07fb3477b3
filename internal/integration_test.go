package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-food-backend/config"
	"hostel-food-backend/internal/api"
	"hostel-food-backend/internal/browse"
	"hostel-food-backend/internal/client"
	"hostel-food-backend/internal/model"
	"hostel-food-backend/internal/monitoring"
	"hostel-food-backend/internal/notification"
	"hostel-food-backend/internal/notify"
	"hostel-food-backend/internal/review"
	"hostel-food-backend/internal/store"
	"hostel-food-backend/internal/submission"
	"hostel-food-backend/internal/testutil"
)

type captureSender struct {
	payloads chan notification.Payload
}

func (s *captureSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	var p notification.Payload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, err
	}
	s.payloads <- p
	return &http.Response{StatusCode: http.StatusCreated, Body: io.NopCloser(bytes.NewReader(nil))}, nil
}

type toastLog struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (l *toastLog) Notify(msg notify.Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *toastLog) last() notify.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.messages[len(l.messages)-1]
}

// TestReviewLifecycle drives the submission and list workflows through the
// HTTP client against a real router and an in-memory database.
func TestReviewLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Service ---
	appStore := store.NewGormStore(testutil.SQLite(t))
	require.NoError(t, appStore.PutSubscription(ctx, &model.PushSubscription{
		Endpoint: "https://push.example.com/oak", P256DH: "k", Auth: "a", HostelName: "oak hall",
	}))

	metrics := monitoring.New()
	sender := &captureSender{payloads: make(chan notification.Payload, 4)}
	pool := notification.NewWorkerPool(2, 8, appStore, &webpush.Options{}, metrics, zerolog.Nop())
	pool.SetSender(sender)
	pool.Start(ctx)

	cfg := &config.Config{
		Server:  config.ServerConfig{RateLimitPerSec: 1000, RateLimitBurst: 1000, CacheTTLSeconds: 60},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	handler := api.NewHandler(appStore, pool, &webpush.Options{}, metrics, zerolog.Nop())
	server := httptest.NewServer(api.NewRouter(handler, cfg))

	remote := client.New(server.URL, 5*time.Second)
	toasts := &toastLog{}

	// Missing overall rating: nothing reaches the service.
	form := submission.New(remote, toasts, nil)
	require.NoError(t, form.Update(func(d *review.Draft) {
		d.ReviewerName = "Alex"
		d.HostelName = "Oak Hall"
		d.HostelType = model.HostelBoys
		d.MealType = model.MealLunch
	}))
	assert.ErrorIs(t, form.Submit(ctx), review.ErrMissingOverallRating)
	all, err := remote.SelectAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// A complete review.
	var navigatedTo model.Review
	form = submission.New(remote, toasts, func(_ context.Context, created model.Review) {
		navigatedTo = created
	})
	require.NoError(t, form.Update(func(d *review.Draft) {
		d.ReviewerName = "Alex"
		d.HostelName = "Oak Hall"
		d.HostelType = model.HostelBoys
		d.MealType = model.MealLunch
		d.OverallRating = 4
	}))
	require.NoError(t, form.Submit(ctx))
	assert.Equal(t, submission.Succeeded, form.State())
	assert.Equal(t, "Success!", toasts.last().Title)
	assert.Len(t, navigatedTo.ID, 36)

	select {
	case p := <-sender.payloads:
		assert.Equal(t, notification.Payload{Title: "New review for Oak Hall", Body: "Alex rated Lunch 4/5"}, p)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the new-review alert")
	}

	// A second hostel, posted later so it lists first.
	time.Sleep(5 * time.Millisecond)
	second := submission.New(remote, toasts, nil)
	require.NoError(t, second.Update(func(d *review.Draft) {
		d.ReviewerName = "Sam"
		d.HostelName = "Green Hostel"
		d.HostelType = model.HostelGirls
		d.MealType = model.MealDinner
		d.OverallRating = 2
		d.City = "Pune"
	}))
	require.NoError(t, second.Submit(ctx))

	// Filtering through the list page.
	page := browse.NewPage(remote, zerolog.Nop())
	page.Activate(ctx)
	require.Equal(t, browse.Loaded, page.State())
	fetched := page.All()
	require.Len(t, fetched, 2)
	assert.Equal(t, "Green Hostel", fetched[0].HostelName)
	assert.False(t, fetched[0].CreatedAt.Before(fetched[1].CreatedAt))
	require.NotNil(t, fetched[0].City)
	assert.Nil(t, fetched[1].City)

	page.SetQuery("oak")
	visible := page.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, navigatedTo.ID, visible[0].ID)

	// Green Hostel has no subscriber.
	select {
	case p := <-sender.payloads:
		t.Fatalf("unexpected alert %+v", p)
	case <-time.After(100 * time.Millisecond):
	}

	// The service goes away.
	server.Close()
	offline := browse.NewPage(remote, zerolog.Nop())
	offline.Activate(ctx)
	assert.Equal(t, browse.LoadFailed, offline.State())
	assert.Empty(t, offline.Visible())
	assert.Equal(t, "No reviews yet. Be the first to add one!", offline.EmptyMessage())

	failing := submission.New(remote, toasts, nil)
	require.NoError(t, failing.Update(func(d *review.Draft) {
		d.ReviewerName = "Kim"
		d.HostelName = "Elm House"
		d.HostelType = model.HostelCoEd
		d.MealType = model.MealBreakfast
		d.OverallRating = 5
	}))
	assert.ErrorIs(t, failing.Submit(ctx), submission.ErrStoreWrite)
	assert.Equal(t, submission.Editing, failing.State())
	assert.Equal(t, "Kim", failing.Draft().ReviewerName)
	assert.Equal(t, notify.VariantDestructive, toasts.last().Variant)

	cancel()
	pool.Wait()
}
