// Package review builds validated review records from in-progress drafts.
package review

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"hostel-food-backend/internal/model"
	"hostel-food-backend/internal/rating"
)

// MaxTextLength caps ReviewText, in characters.
const MaxTextLength = 500

// Default sub-rating for a fresh draft. The overall rating starts unset (0).
const DefaultSubRating = 3

// Draft is the editable, possibly incomplete state of a review form.
type Draft struct {
	ReviewerName   string           `json:"reviewer_name"`
	HostelName     string           `json:"hostel_name"`
	HostelType     model.HostelType `json:"hostel_type"`
	City           string           `json:"city"`
	MealType       model.MealType   `json:"meal_type"`
	DishName       string           `json:"dish_name"`
	OverallRating  int              `json:"overall_rating"`
	TasteRating    int              `json:"taste_rating"`
	HygieneRating  int              `json:"hygiene_rating"`
	QuantityRating int              `json:"quantity_rating"`
	ReviewText     string           `json:"review_text"`
	IsRecommended  bool             `json:"is_recommended"`
}

// NewDraft returns an empty draft with the form defaults.
func NewDraft() Draft {
	return Draft{
		TasteRating:    DefaultSubRating,
		HygieneRating:  DefaultSubRating,
		QuantityRating: DefaultSubRating,
	}
}

// SetReviewText stores s cut to MaxTextLength characters.
func (d *Draft) SetReviewText(s string) {
	d.ReviewText = TruncateText(s)
}

// TextCounter formats the review text length as "(n/500 characters)".
func (d Draft) TextCounter() string {
	return fmt.Sprintf("(%d/%d characters)", utf8.RuneCountInString(d.ReviewText), MaxTextLength)
}

// TruncateText returns the first MaxTextLength characters of s.
func TruncateText(s string) string {
	if utf8.RuneCountInString(s) <= MaxTextLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxTextLength])
}

// Optional trims s and maps the empty result to nil.
func Optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Validate checks d and returns the normalized record ready for insertion.
// The first failing check wins, in this order: reviewer name, hostel name,
// hostel type, meal type, overall rating set, then the range of each rating.
// ID and CreatedAt are left for the store.
func Validate(d Draft) (model.Review, error) {
	reviewer := strings.TrimSpace(d.ReviewerName)
	if reviewer == "" {
		return model.Review{}, ErrMissingReviewerName
	}
	hostel := strings.TrimSpace(d.HostelName)
	if hostel == "" {
		return model.Review{}, ErrMissingHostelName
	}
	if !d.HostelType.Valid() {
		return model.Review{}, ErrMissingHostelType
	}
	if !d.MealType.Valid() {
		return model.Review{}, ErrMissingMealType
	}
	if d.OverallRating == 0 {
		return model.Review{}, ErrMissingOverallRating
	}

	ratings := []struct {
		value int
		err   *ValidationError
	}{
		{d.OverallRating, ErrOverallRatingOutOfRange},
		{d.TasteRating, ErrTasteRatingOutOfRange},
		{d.HygieneRating, ErrHygieneRatingOutOfRange},
		{d.QuantityRating, ErrQuantityRatingOutOfRange},
	}
	for _, r := range ratings {
		if !rating.Default.Contains(r.value) {
			return model.Review{}, r.err
		}
	}

	return model.Review{
		ReviewerName:   reviewer,
		HostelName:     hostel,
		HostelType:     d.HostelType,
		City:           Optional(d.City),
		MealType:       d.MealType,
		DishName:       Optional(d.DishName),
		OverallRating:  d.OverallRating,
		TasteRating:    d.TasteRating,
		HygieneRating:  d.HygieneRating,
		QuantityRating: d.QuantityRating,
		ReviewText:     Optional(TruncateText(d.ReviewText)),
		IsRecommended:  d.IsRecommended,
	}, nil
}
