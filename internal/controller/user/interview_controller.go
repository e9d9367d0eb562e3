package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/middleware"
	"github.com/prepwise/prepwise/internal/service"
	"github.com/rs/zerolog/log"
)

type InterviewController struct {
	interviewService service.InterviewService
}

func NewInterviewController(is service.InterviewService) *InterviewController {
	return &InterviewController{interviewService: is}
}

// CreateInterview godoc
// @Summary Create a new interview session
// @Description Creates an interview session in preparation status from the caller's preparation details. Questions are generated later via the bulk-questions endpoint.
// @Tags Interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param interview body dto.CreateInterviewRequest true "Preparation details for the interview"
// @Success 201 {object} dto.CreateInterviewResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /interview [post]
func (c *InterviewController) CreateInterview(ctx *gin.Context) {
	var req dto.CreateInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	ownerID := middleware.CallerID(ctx)
	resp, err := c.interviewService.CreateSession(ownerID, req)
	if err != nil {
		log.Error().Err(err).Uint("ownerID", ownerID).Msg("CreateInterview: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListInterviews godoc
// @Summary List the caller's interview sessions
// @Description Returns summaries of the caller's interview sessions, newest first. Optionally filtered by status.
// @Tags Interviews
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (preparation, in-progress, completed, paused)"
// @Success 200 {array} dto.InterviewSummaryDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /interview [get]
func (c *InterviewController) ListInterviews(ctx *gin.Context) {
	ownerID := middleware.CallerID(ctx)
	summaries, err := c.interviewService.ListSessions(ownerID, ctx.Query("status"))
	if err != nil {
		log.Error().Err(err).Uint("ownerID", ownerID).Msg("ListInterviews: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}

// GetInterview godoc
// @Summary Get one interview session
// @Description Returns the full session with its levels, questions, feedback and the derived phase.
// @Tags Interviews
// @Produce json
// @Security BearerAuth
// @Param interview_id path string true "Public interview ID"
// @Success 200 {object} dto.InterviewSessionDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /interview/{interview_id} [get]
func (c *InterviewController) GetInterview(ctx *gin.Context) {
	ownerID := middleware.CallerID(ctx)
	session, err := c.interviewService.GetSession(ownerID, ctx.Param("interview_id"))
	if err != nil {
		log.Warn().Err(err).Uint("ownerID", ownerID).Str("interviewID", ctx.Param("interview_id")).Msg("GetInterview: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// BulkQuestions godoc
// @Summary Get or generate the current level's questions
// @Description Returns the question batch for the session's current level, generating it through the AI provider when the level is still empty. Safe to retry: an already-populated level is returned as-is.
// @Tags Interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkQuestionsRequest true "Target interview"
// @Success 200 {object} dto.BulkQuestionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request or interview already finished"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent update, retry the request"
// @Failure 429 {object} dto.ErrorResponse "AI provider rate limited"
// @Failure 502 {object} dto.ErrorResponse "AI provider unavailable"
// @Router /interview/bulk-questions [post]
func (c *InterviewController) BulkQuestions(ctx *gin.Context) {
	var req dto.BulkQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	ownerID := middleware.CallerID(ctx)
	resp, err := c.interviewService.EnsureQuestions(ctx.Request.Context(), ownerID, req)
	if err != nil {
		log.Error().Err(err).Uint("ownerID", ownerID).Str("interviewID", req.InterviewID).Msg("BulkQuestions: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// BatchFeedback godoc
// @Summary Submit a level's answers for grading
// @Description Persists the submitted answers, grades the whole level in one AI call and advances or finishes the interview according to the level average. Retrying after a graded level returns the stored feedback.
// @Tags Interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchFeedbackRequest true "Answers for every question of the level"
// @Success 200 {object} dto.BatchFeedbackResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request, wrong level or incomplete answers"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent update, retry the request"
// @Failure 429 {object} dto.ErrorResponse "AI provider rate limited"
// @Failure 502 {object} dto.ErrorResponse "AI provider unavailable"
// @Router /interview/batch-feedback [post]
func (c *InterviewController) BatchFeedback(ctx *gin.Context) {
	var req dto.BatchFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	ownerID := middleware.CallerID(ctx)
	resp, err := c.interviewService.SubmitBatchFeedback(ctx.Request.Context(), ownerID, req)
	if err != nil {
		log.Error().Err(err).Uint("ownerID", ownerID).Str("interviewID", req.InterviewID).Int("level", req.LevelNumber).Msg("BatchFeedback: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
