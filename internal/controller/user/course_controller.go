package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/middleware"
	"github.com/prepwise/prepwise/internal/service"
	"github.com/rs/zerolog/log"
)

type CourseController struct {
	courseService service.CourseService
}

func NewCourseController(cs service.CourseService) *CourseController {
	return &CourseController{courseService: cs}
}

// ListCourses godoc
// @Summary List published courses
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Success 200 {array} dto.CourseDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Query("category"))
	if err != nil {
		log.Error().Err(err).Msg("ListCourses: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// GetCourse godoc
// @Summary Get one course
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CourseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{course_id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("course_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid course ID"})
		return
	}
	course, err := c.courseService.GetCourse(uint(courseID))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// Enroll godoc
// @Summary Enroll the caller in a course
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 201 {object} dto.EnrollmentDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /courses/{course_id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("course_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid course ID"})
		return
	}

	userID := middleware.CallerID(ctx)
	enrollment, err := c.courseService.Enroll(uint(courseID), userID)
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint64("courseID", courseID).Msg("Enroll: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, enrollment)
}

// ListEnrollments godoc
// @Summary List the caller's enrollments
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.EnrollmentDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/enrollments [get]
func (c *CourseController) ListEnrollments(ctx *gin.Context) {
	enrollments, err := c.courseService.ListEnrollments(middleware.CallerID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, enrollments)
}
