package job

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hireflow/internal/api"
	"hireflow/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateJob godoc
// @Summary      Create job posting
// @Description  Creates a job posting if the recruiter's plan still has job slots available.
// @Tags         jobs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateJobRequest  true  "Job posting data"
// @Success      201      {object}  Job
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      402      {object}  api.DeniedResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /jobs [post]
func (h *Handler) CreateJob(c *gin.Context) {
	recruiterID, exists := auth.GetRecruiterID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	j, decision, err := h.service.Create(c.Request.Context(), recruiterID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create job posting"})
		return
	}
	if !decision.Allowed {
		c.JSON(http.StatusPaymentRequired, api.DeniedResponse{
			Error:    "Job posting not allowed",
			Reason:   string(decision.Reason),
			Resource: string(decision.Resource),
		})
		return
	}

	c.JSON(http.StatusCreated, j)
}

// ListJobs godoc
// @Summary      List job postings
// @Description  Returns the authenticated recruiter's job postings, newest first.
// @Tags         jobs
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Job
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /jobs [get]
func (h *Handler) ListJobs(c *gin.Context) {
	recruiterID, exists := auth.GetRecruiterID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	jobs, err := h.service.List(c.Request.Context(), recruiterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list job postings"})
		return
	}
	if jobs == nil {
		jobs = []Job{}
	}

	c.JSON(http.StatusOK, jobs)
}

// ArchiveJob godoc
// @Summary      Archive job posting
// @Description  Archives an open job posting, freeing a job slot.
// @Tags         jobs
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Job posting ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /jobs/{id}/archive [post]
func (h *Handler) ArchiveJob(c *gin.Context) {
	recruiterID, exists := auth.GetRecruiterID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid job ID"})
		return
	}

	if err := h.service.Archive(c.Request.Context(), id, recruiterID); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Job posting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to archive job posting"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Job posting archived"})
}
