package entitlement

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hireflow/internal/api"
	"hireflow/internal/auth"
	"hireflow/internal/logger"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Resolved entitlement for the current recruiter
// @Tags         entitlement
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} entitlement.EffectivePlan
// @Failure      401 {object} api.ErrorResponse
// @Router       /entitlement [get]
func (h *Handler) GetEntitlement(c *gin.Context) {
	recruiterID, ok := auth.GetRecruiterID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	ep, err := h.service.Snapshot(c.Request.Context(), recruiterID, time.Now())
	if err != nil {
		logger.Errorf("failed to resolve entitlement for recruiter %d: %v", recruiterID, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to resolve entitlement"})
		return
	}

	c.JSON(http.StatusOK, ep)
}

// @Summary      Available plans
// @Tags         entitlement
// @Produce      json
// @Success      200 {array} plan.Definition
// @Router       /plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Catalog().List())
}

// @Summary      Subscription history for the current recruiter
// @Tags         entitlement
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} subscription.Record
// @Failure      401 {object} api.ErrorResponse
// @Router       /subscription [get]
func (h *Handler) ListRecords(c *gin.Context) {
	recruiterID, ok := auth.GetRecruiterID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	records, err := h.service.Records(c.Request.Context(), recruiterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load subscriptions"})
		return
	}

	c.JSON(http.StatusOK, records)
}
