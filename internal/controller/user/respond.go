package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/service"
)

// respondError maps service errors to HTTP responses. Upstream failure detail
// is only exposed outside release mode.
func respondError(ctx *gin.Context, err error) {
	var upstream *service.UpstreamError
	switch {
	case errors.Is(err, service.ErrValidation):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrConflict):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &upstream):
		respondUpstreamError(ctx, upstream)
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}

func respondUpstreamError(ctx *gin.Context, upstream *service.UpstreamError) {
	if upstream.Code == service.UpstreamCodeRateLimited {
		seconds := int(upstream.RetryAfter.Seconds())
		if seconds <= 0 {
			seconds = 30
		}
		ctx.Header("Retry-After", strconv.Itoa(seconds))
		ctx.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
			Message:           "The AI service is rate limited, please retry shortly",
			RetryAfterSeconds: seconds,
		})
		return
	}

	resp := dto.ErrorResponse{Message: "The AI service is temporarily unavailable"}
	if gin.Mode() != gin.ReleaseMode {
		resp.Details = []string{upstream.Error()}
	}
	ctx.JSON(http.StatusBadGateway, resp)
}
