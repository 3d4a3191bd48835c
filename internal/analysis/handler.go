package analysis

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hireflow/internal/api"
	"hireflow/internal/auth"
	"hireflow/internal/job"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// AnalyzeCV godoc
// @Summary      Analyze a CV
// @Description  Scores a candidate CV, optionally against one of the recruiter's job postings. Consumes one CV analysis unit.
// @Tags         analyses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      AnalyzeCVRequest  true  "CV analysis request"
// @Success      201      {object}  CVAnalysis
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      402      {object}  api.DeniedResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /analyses [post]
func (h *Handler) AnalyzeCV(c *gin.Context) {
	recruiterID, exists := auth.GetRecruiterID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	var req AnalyzeCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	result, decision, err := h.service.AnalyzeCV(c.Request.Context(), recruiterID, req)
	if err != nil {
		h.writeServiceError(c, err, "Failed to analyze CV")
		return
	}
	if !decision.Allowed {
		c.JSON(http.StatusPaymentRequired, api.DeniedResponse{
			Error:    "CV analysis not allowed",
			Reason:   string(decision.Reason),
			Resource: string(decision.Resource),
		})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListAnalyses godoc
// @Summary      List CV analyses
// @Description  Returns the recruiter's CV analyses, newest first.
// @Tags         analyses
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   CVAnalysis
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /analyses [get]
func (h *Handler) ListAnalyses(c *gin.Context) {
	recruiterID, exists := auth.GetRecruiterID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	analyses, err := h.service.List(c.Request.Context(), recruiterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list analyses"})
		return
	}
	if analyses == nil {
		analyses = []CVAnalysis{}
	}

	c.JSON(http.StatusOK, analyses)
}

// MatchCandidates godoc
// @Summary      Match candidates to a job posting
// @Description  Ranks the job's analyzed CVs. Consumes one match execution unit per run.
// @Tags         matches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      MatchRequest  true  "Match request"
// @Success      200      {array}   CandidateMatch
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      402      {object}  api.DeniedResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /matches [post]
func (h *Handler) MatchCandidates(c *gin.Context) {
	recruiterID, exists := auth.GetRecruiterID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	matches, decision, err := h.service.MatchCandidates(c.Request.Context(), recruiterID, req)
	if err != nil {
		h.writeServiceError(c, err, "Failed to match candidates")
		return
	}
	if !decision.Allowed {
		c.JSON(http.StatusPaymentRequired, api.DeniedResponse{
			Error:    "Match execution not allowed",
			Reason:   string(decision.Reason),
			Resource: string(decision.Resource),
		})
		return
	}
	if matches == nil {
		matches = []CandidateMatch{}
	}

	c.JSON(http.StatusOK, matches)
}

func (h *Handler) writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, job.ErrJobNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Job posting not found"})
	case errors.Is(err, ErrUnreadableCV):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "CV text could not be analyzed"})
	case errors.Is(err, ErrProviderUnavailable):
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "Analysis provider unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}
