package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-food-backend/internal/logging"
	"hostel-food-backend/internal/model"
	"hostel-food-backend/internal/review"
)

type createReviewRequest struct {
	ReviewerName   string `json:"reviewer_name"`
	HostelName     string `json:"hostel_name"`
	HostelType     string `json:"hostel_type"`
	City           string `json:"city"`
	MealType       string `json:"meal_type"`
	DishName       string `json:"dish_name"`
	OverallRating  int    `json:"overall_rating"`
	TasteRating    *int   `json:"taste_rating"`
	HygieneRating  *int   `json:"hygiene_rating"`
	QuantityRating *int   `json:"quantity_rating"`
	ReviewText     string `json:"review_text"`
	IsRecommended  bool   `json:"is_recommended"`
}

func (req createReviewRequest) draft() review.Draft {
	d := review.NewDraft()
	d.ReviewerName = req.ReviewerName
	d.HostelName = req.HostelName
	d.HostelType = model.HostelType(req.HostelType)
	d.City = req.City
	d.MealType = model.MealType(req.MealType)
	d.DishName = req.DishName
	d.OverallRating = req.OverallRating
	if req.TasteRating != nil {
		d.TasteRating = *req.TasteRating
	}
	if req.HygieneRating != nil {
		d.HygieneRating = *req.HygieneRating
	}
	if req.QuantityRating != nil {
		d.QuantityRating = *req.QuantityRating
	}
	d.SetReviewText(req.ReviewText)
	d.IsRecommended = req.IsRecommended
	return d
}

// CreateReview handles POST /api/reviews.
func (h *Handler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordSubmission("invalid")
		abortWithError(c, http.StatusBadRequest, CodeInvalidRequest, "invalid request")
		return
	}

	rec, err := review.Validate(req.draft())
	if err != nil {
		var verr *review.ValidationError
		if errors.As(err, &verr) {
			h.metrics.RecordSubmission("invalid")
			h.metrics.RecordValidationFailure(string(verr.Code))
			abortWithError(c, http.StatusBadRequest, string(verr.Code), verr.Message)
			return
		}
		abortWithError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	if err := h.store.Insert(c.Request.Context(), &rec); err != nil {
		h.metrics.RecordSubmission("error")
		h.logger.Error().Err(err).Str("request_id", logging.GetRequestID(c)).Msg("Error inserting review")
		abortWithError(c, http.StatusInternalServerError, CodeInternal, "failed to submit review")
		return
	}

	h.metrics.RecordSubmission("created")
	if h.alerts != nil {
		h.alerts.Dispatch(rec.ID)
	}
	c.JSON(http.StatusCreated, rec)
}

// ListReviews handles GET /api/reviews. Query parameters are ignored: every
// review is returned, most recent first.
func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.store.SelectAll(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", logging.GetRequestID(c)).Msg("Error fetching reviews")
		abortWithError(c, http.StatusInternalServerError, CodeInternal, "failed to fetch reviews")
		return
	}
	h.metrics.RecordList()
	c.JSON(http.StatusOK, reviews)
}
