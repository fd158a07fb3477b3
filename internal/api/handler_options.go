package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-food-backend/internal/model"
	"hostel-food-backend/internal/rating"
	"hostel-food-backend/internal/review"
)

// RatingOptions describes the rating scale.
type RatingOptions struct {
	Min              int       `json:"min"`
	Max              int       `json:"max"`
	Anchors          [3]string `json:"anchors"`
	SubRatingDefault int       `json:"sub_rating_default"`
}

// OptionsResponse lists the choices a review form offers.
type OptionsResponse struct {
	HostelTypes   []model.HostelType `json:"hostel_types"`
	MealTypes     []model.MealType   `json:"meal_types"`
	Rating        RatingOptions      `json:"rating"`
	ReviewTextMax int                `json:"review_text_max"`
}

// Options is the static payload served by GetOptions.
func Options() OptionsResponse {
	return OptionsResponse{
		HostelTypes: model.HostelTypes,
		MealTypes:   model.MealTypes,
		Rating: RatingOptions{
			Min:              rating.DefaultMin,
			Max:              rating.DefaultMax,
			Anchors:          [3]string{rating.AnchorLow, rating.AnchorMid, rating.AnchorHigh},
			SubRatingDefault: review.DefaultSubRating,
		},
		ReviewTextMax: review.MaxTextLength,
	}
}

// GetOptions handles GET /api/options.
func (h *Handler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, Options())
}

// Healthz handles GET /api/healthz.
func (h *Handler) Healthz(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("Health check failed")
		abortWithError(c, http.StatusServiceUnavailable, CodeUnavailable, "store unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
