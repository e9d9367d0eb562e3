package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	courseService    service.CourseService
	interviewService service.InterviewService
}

func NewAdminController(cs service.CourseService, is service.InterviewService) *AdminController {
	return &AdminController{courseService: cs, interviewService: is}
}

func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrConflict):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}

// CreateCourse godoc
// @Summary (Admin) Create a course
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course body dto.CourseCreateDTO true "Course details"
// @Success 201 {object} dto.CourseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/courses [post]
func (c *AdminController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	course, err := c.courseService.CreateCourse(req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateCourse: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// UpdateCourse godoc
// @Summary (Admin) Update a course
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param course body dto.CourseCreateDTO true "New course details"
// @Success 200 {object} dto.CourseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{course_id} [put]
func (c *AdminController) UpdateCourse(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("course_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid course ID"})
		return
	}

	var req dto.CourseCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	course, err := c.courseService.UpdateCourse(uint(courseID), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// DeleteCourse godoc
// @Summary (Admin) Delete a course
// @Tags Admin
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 204 "Deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{course_id} [delete]
func (c *AdminController) DeleteCourse(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("course_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid course ID"})
		return
	}
	if err := c.courseService.DeleteCourse(uint(courseID)); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListAllInterviews godoc
// @Summary (Admin) List every interview session
// @Description Returns summaries of all interview sessions across users, newest first. Optionally filtered by status.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {array} dto.InterviewSummaryDTO
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/interviews [get]
func (c *AdminController) ListAllInterviews(ctx *gin.Context) {
	summaries, err := c.interviewService.ListAllSessions(ctx.Query("status"))
	if err != nil {
		log.Error().Err(err).Msg("Admin ListAllInterviews: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}
