// Package submission drives a review form from editing to a single insert.
package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"hostel-food-backend/internal/model"
	"hostel-food-backend/internal/notify"
	"hostel-food-backend/internal/review"
)

// State is the position of a form in its lifecycle.
type State int

const (
	Editing State = iota
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	// ErrStoreWrite wraps any insert failure.
	ErrStoreWrite = errors.New("store write failed")
	// ErrInFlight is returned when a submit or edit arrives while Submitting.
	ErrInFlight = errors.New("submission already in progress")
	// ErrSubmitted is returned when the form has already succeeded.
	ErrSubmitted = errors.New("review already submitted")
)

// Toast texts.
const (
	successTitle       = "Success!"
	successDescription = "Your review has been submitted successfully."
	errorTitle         = "Error"
	failureDescription = "Failed to submit review. Please try again."
)

// Inserter creates a review. The store assigns ID and CreatedAt.
type Inserter interface {
	Insert(ctx context.Context, r *model.Review) error
}

// Navigator is called once after a successful submit to leave the form.
type Navigator func(ctx context.Context, created model.Review)

// Option configures a Form.
type Option func(*Form)

// WithObserver registers fn to receive every state transition. fn runs with
// the form locked and must not call back into it.
func WithObserver(fn func(from, to State)) Option {
	return func(f *Form) { f.observer = fn }
}

// WithLogger sets the logger used for store failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Form) { f.logger = logger }
}

// Form is one instance of the review form. It allows at most one submission
// in flight.
type Form struct {
	mu       sync.Mutex
	draft    review.Draft
	state    State
	lastErr  error
	store    Inserter
	notifier notify.Notifier
	navigate Navigator
	observer func(from, to State)
	logger   zerolog.Logger
}

// New creates a form in the Editing state with a fresh draft.
func New(store Inserter, notifier notify.Notifier, navigate Navigator, opts ...Option) *Form {
	f := &Form{
		draft:    review.NewDraft(),
		state:    Editing,
		store:    store,
		notifier: notifier,
		navigate: navigate,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Draft returns a copy of the current field values.
func (f *Form) Draft() review.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// State returns the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// CanSubmit reports whether the submit control should be enabled.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == Editing
}

// Err returns the error from the last submit attempt, if any.
func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Update applies fn to the draft. Intermediate values are not checked, but
// review text is always kept within review.MaxTextLength.
func (f *Form) Update(fn func(d *review.Draft)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case Submitting:
		return ErrInFlight
	case Succeeded:
		return ErrSubmitted
	}
	fn(&f.draft)
	f.draft.SetReviewText(f.draft.ReviewText)
	return nil
}

// Submit validates the draft and, if it passes, inserts it exactly once.
// Validation failures leave the form in Editing with no store access. Store
// failures return the form to Editing with every field preserved.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch f.state {
	case Submitting:
		f.mu.Unlock()
		return ErrInFlight
	case Succeeded:
		f.mu.Unlock()
		return ErrSubmitted
	}

	rec, err := review.Validate(f.draft)
	if err != nil {
		f.lastErr = err
		f.mu.Unlock()
		f.notifier.Notify(notify.Failure(errorTitle, err.Error()))
		return err
	}
	f.lastErr = nil
	f.transition(Submitting)
	f.mu.Unlock()

	insertErr := f.store.Insert(ctx, &rec)

	f.mu.Lock()
	if insertErr != nil {
		f.lastErr = fmt.Errorf("%w: %w", ErrStoreWrite, insertErr)
		f.transition(Failed)
		f.transition(Editing)
		err := f.lastErr
		f.mu.Unlock()
		f.logger.Error().Err(insertErr).Str("hostel", rec.HostelName).Msg("Error submitting review")
		f.notifier.Notify(notify.Failure(errorTitle, failureDescription))
		return err
	}
	f.transition(Succeeded)
	f.mu.Unlock()

	f.notifier.Notify(notify.Success(successTitle, successDescription))
	if f.navigate != nil {
		f.navigate(ctx, rec)
	}
	return nil
}

// transition must be called with f.mu held.
func (f *Form) transition(to State) {
	from := f.state
	f.state = to
	if f.observer != nil {
		f.observer(from, to)
	}
}
