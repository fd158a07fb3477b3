// Package client talks to the review service over HTTP. Client satisfies
// the same insert and select contract as the database store.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"hostel-food-backend/internal/model"
	"hostel-food-backend/internal/review"
)

// DefaultServer is used when no base URL is configured.
const DefaultServer = "http://localhost:8080"

// APIError is a non-2xx reply from the service.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Unwrap exposes the matching review validation error, so callers can use
// errors.Is with the review sentinels.
func (e *APIError) Unwrap() error {
	if verr, ok := review.Lookup(review.Code(e.Code)); ok {
		return verr
	}
	return nil
}

// Client is a remote review store.
type Client struct {
	http *resty.Client
}

// New creates a client for baseURL. A zero timeout leaves the transport
// default in place.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultServer
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{http: c}
}

// Insert posts r and copies the server-assigned ID and CreatedAt back into it.
func (c *Client) Insert(ctx context.Context, r *model.Review) error {
	var created model.Review
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(r).
		SetResult(&created).
		SetError(&APIError{}).
		Post("/api/reviews")
	if err != nil {
		return fmt.Errorf("post review: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return apiError(resp)
	}
	r.ID = created.ID
	r.CreatedAt = created.CreatedAt
	return nil
}

// SelectAll fetches every review, most recent first.
func (c *Client) SelectAll(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&reviews).
		SetError(&APIError{}).
		Get("/api/reviews")
	if err != nil {
		return nil, fmt.Errorf("get reviews: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, apiError(resp)
	}
	return reviews, nil
}

func apiError(resp *resty.Response) error {
	apiErr, ok := resp.Error().(*APIError)
	if !ok || apiErr == nil {
		apiErr = &APIError{}
	}
	apiErr.Status = resp.StatusCode()
	return apiErr
}
