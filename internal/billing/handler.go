package billing

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hireflow/internal/api"
	"hireflow/internal/plan"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// InternalAuth guards the internal billing surface with a shared token.
func InternalAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" || c.GetHeader("X-Internal-Token") != token {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid internal token"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ApplyEvent godoc
// @Summary      Apply billing event
// @Description  Applies a processed billing event (purchase, status change, renewal, bonus grant) to the recruiter's subscription records. Internal surface.
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        X-Internal-Token  header    string  true  "Shared internal token"
// @Param        request           body      Event   true  "Billing event"
// @Success      200               {object}  api.MessageResponse
// @Failure      400               {object}  api.ErrorResponse
// @Failure      401               {object}  api.ErrorResponse
// @Failure      404               {object}  api.ErrorResponse
// @Failure      500               {object}  api.ErrorResponse
// @Router       /internal/billing/events [post]
func (h *Handler) ApplyEvent(c *gin.Context) {
	var event Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.Apply(c.Request.Context(), event); err != nil {
		switch {
		case errors.Is(err, plan.ErrUnknownPlan), errors.Is(err, ErrUnknownEventType), errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrNoRecord):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to apply billing event"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Event applied"})
}
