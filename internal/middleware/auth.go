package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prepwise/prepwise/config"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/model"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

var (
	ErrMissingAuthHeader = errors.New("missing or malformed Authorization header")
	ErrInvalidToken      = errors.New("invalid token")
)

// VerifyToken validates the Bearer token of a request and returns its claims.
func VerifyToken(r *http.Request, secret string) (jwt.MapClaims, error) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return nil, ErrMissingAuthHeader
	}
	tokenStr := strings.TrimPrefix(authz, "Bearer ")

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// AuthRequired rejects unauthenticated requests and stores the caller's ID
// and role on the gin context.
func AuthRequired(cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := VerifyToken(ctx.Request, cfg.Auth.JWTSecret)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
			return
		}

		sub, ok := claims["sub"].(float64)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
			return
		}
		ctx.Set(ContextUserID, uint(sub))
		if role, ok := claims["role"].(string); ok {
			ctx.Set(ContextUserRole, role)
		}
		ctx.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetString(ContextUserRole) != model.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Admin access required"})
			return
		}
		ctx.Next()
	}
}

// CallerID returns the authenticated user ID set by AuthRequired.
func CallerID(ctx *gin.Context) uint {
	return ctx.GetUint(ContextUserID)
}
