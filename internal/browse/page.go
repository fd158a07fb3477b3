// Package browse holds the review list page: one fetch on activation, then
// local hostel-name filtering over the fetched collection.
package browse

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"hostel-food-backend/internal/model"
)

// State is the load state of a Page.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	LoadFailed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadFailed:
		return "load_failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrStoreRead wraps a failed select.
var ErrStoreRead = errors.New("store read failed")

const (
	emptyFilteredMessage = "No reviews found matching your search."
	emptyMessage         = "No reviews yet. Be the first to add one!"
)

// Selector returns every review, most recent first.
type Selector interface {
	SelectAll(ctx context.Context) ([]model.Review, error)
}

// Page is private to one activation of the list view.
type Page struct {
	mu      sync.Mutex
	store   Selector
	logger  zerolog.Logger
	state   State
	reviews []model.Review
	query   string
	lastErr error
}

// NewPage creates an idle page. Nothing is fetched until Activate.
func NewPage(store Selector, logger zerolog.Logger) *Page {
	return &Page{store: store, logger: logger}
}

// Activate loads the collection on first call and is a no-op afterwards.
func (p *Page) Activate(ctx context.Context) {
	p.mu.Lock()
	if p.state != Idle {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	p.Load(ctx)
}

// Load fetches the collection and replaces the held one wholesale. A read
// failure leaves the page with an empty collection and is only logged.
func (p *Page) Load(ctx context.Context) {
	p.mu.Lock()
	if p.state == Loading {
		p.mu.Unlock()
		return
	}
	p.state = Loading
	p.reviews = nil
	p.lastErr = nil
	p.mu.Unlock()

	reviews, err := p.store.SelectAll(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = LoadFailed
		p.reviews = nil
		p.lastErr = fmt.Errorf("%w: %w", ErrStoreRead, err)
		p.logger.Error().Err(err).Msg("Error fetching reviews")
		return
	}
	p.state = Loaded
	p.reviews = reviews
}

// State returns the current load state.
func (p *Page) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Loading reports whether a fetch is in progress.
func (p *Page) Loading() bool {
	return p.State() == Loading
}

// Err returns the last read failure for diagnostics.
func (p *Page) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// SetQuery changes the filter text. It never triggers a fetch.
func (p *Page) SetQuery(q string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query = q
}

// Query returns the current filter text.
func (p *Page) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// All returns a copy of the fetched collection.
func (p *Page) All() []model.Review {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.Review(nil), p.reviews...)
}

// Visible returns the fetched reviews matching the current query.
func (p *Page) Visible() []model.Review {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Filter(p.reviews, p.query)
}

// Count is the number of fetched reviews, before filtering.
func (p *Page) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.reviews)
}

// CountLabel is the header shown above the list.
func (p *Page) CountLabel() string {
	return fmt.Sprintf("%d reviews from students", p.Count())
}

// EmptyMessage is shown when Visible is empty.
func (p *Page) EmptyMessage() string {
	if p.Query() != "" {
		return emptyFilteredMessage
	}
	return emptyMessage
}

// Filter returns the reviews whose hostel name contains query, ignoring case,
// in their original order. reviews is not modified.
func Filter(reviews []model.Review, query string) []model.Review {
	needle := strings.ToLower(query)
	out := make([]model.Review, 0, len(reviews))
	for _, r := range reviews {
		if strings.Contains(strings.ToLower(r.HostelName), needle) {
			out = append(out, r)
		}
	}
	return out
}
