package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-food-backend/internal/model"
	"hostel-food-backend/internal/store"
)

type putSubscriptionRequest struct {
	Endpoint   string `json:"endpoint" binding:"required"`
	P256DH     string `json:"p256dh" binding:"required"`
	Auth       string `json:"auth" binding:"required"`
	HostelName string `json:"hostel_name"`
}

// PutSubscription handles the creation or replacement of a subscription.
func (h *Handler) PutSubscription(c *gin.Context) {
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, CodeInvalidRequest, "invalid request")
		return
	}

	subscription := model.PushSubscription{
		Endpoint:   req.Endpoint,
		P256DH:     req.P256DH,
		Auth:       req.Auth,
		HostelName: req.HostelName,
	}
	if err := h.store.PutSubscription(c.Request.Context(), &subscription); err != nil {
		h.logger.Error().Err(err).Msg("Error saving subscription")
		abortWithError(c, http.StatusInternalServerError, CodeInternal, "failed to save subscription")
		return
	}

	c.Status(http.StatusCreated)
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription handles the deletion of a subscription.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, CodeInvalidRequest, "invalid request")
		return
	}

	if err := h.store.DeleteSubscription(c.Request.Context(), req.Endpoint); err != nil {
		h.logger.Error().Err(err).Msg("Error deleting subscription")
		abortWithError(c, http.StatusInternalServerError, CodeInternal, "failed to delete subscription")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSubscription handles the retrieval of a subscription.
func (h *Handler) GetSubscription(c *gin.Context) {
	endpoint := c.Query("endpoint")
	if endpoint == "" {
		abortWithError(c, http.StatusBadRequest, CodeInvalidRequest, "endpoint is required")
		return
	}

	subscription, err := h.store.Subscription(c.Request.Context(), endpoint)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, CodeNotFound, "subscription not found")
		} else {
			h.logger.Error().Err(err).Msg("Error loading subscription")
			abortWithError(c, http.StatusInternalServerError, CodeInternal, "failed to load subscription")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"hostel_name": subscription.HostelName})
}
