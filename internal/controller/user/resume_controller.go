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

type ResumeController struct {
	resumeService service.ResumeService
}

func NewResumeController(rs service.ResumeService) *ResumeController {
	return &ResumeController{resumeService: rs}
}

// CreateResume godoc
// @Summary Create a resume
// @Tags Resumes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resume body dto.ResumeRequest true "Resume content"
// @Success 201 {object} dto.ResumeDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /resumes [post]
func (c *ResumeController) CreateResume(ctx *gin.Context) {
	var req dto.ResumeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	ownerID := middleware.CallerID(ctx)
	resume, err := c.resumeService.CreateResume(ownerID, req)
	if err != nil {
		log.Error().Err(err).Uint("ownerID", ownerID).Msg("CreateResume: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resume)
}

// ListResumes godoc
// @Summary List the caller's resumes
// @Tags Resumes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ResumeDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /resumes [get]
func (c *ResumeController) ListResumes(ctx *gin.Context) {
	resumes, err := c.resumeService.ListResumes(middleware.CallerID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resumes)
}

// GetResume godoc
// @Summary Get one resume
// @Tags Resumes
// @Produce json
// @Security BearerAuth
// @Param resume_id path int true "Resume ID"
// @Success 200 {object} dto.ResumeDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid resume ID"
// @Failure 404 {object} dto.ErrorResponse "Resume not found"
// @Router /resumes/{resume_id} [get]
func (c *ResumeController) GetResume(ctx *gin.Context) {
	resumeID, err := strconv.ParseUint(ctx.Param("resume_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid resume ID"})
		return
	}
	resume, err := c.resumeService.GetResume(middleware.CallerID(ctx), uint(resumeID))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resume)
}

// UpdateResume godoc
// @Summary Update a resume
// @Tags Resumes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resume_id path int true "Resume ID"
// @Param resume body dto.ResumeRequest true "New resume content"
// @Success 200 {object} dto.ResumeDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Resume not found"
// @Router /resumes/{resume_id} [put]
func (c *ResumeController) UpdateResume(ctx *gin.Context) {
	resumeID, err := strconv.ParseUint(ctx.Param("resume_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid resume ID"})
		return
	}

	var req dto.ResumeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resume, err := c.resumeService.UpdateResume(middleware.CallerID(ctx), uint(resumeID), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resume)
}

// DeleteResume godoc
// @Summary Delete a resume
// @Tags Resumes
// @Security BearerAuth
// @Param resume_id path int true "Resume ID"
// @Success 204 "Deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid resume ID"
// @Failure 404 {object} dto.ErrorResponse "Resume not found"
// @Router /resumes/{resume_id} [delete]
func (c *ResumeController) DeleteResume(ctx *gin.Context) {
	resumeID, err := strconv.ParseUint(ctx.Param("resume_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid resume ID"})
		return
	}
	if err := c.resumeService.DeleteResume(middleware.CallerID(ctx), uint(resumeID)); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
