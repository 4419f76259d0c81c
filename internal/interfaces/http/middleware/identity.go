package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/infrastructure/logger"
	"github.com/schoolstore/backend/internal/interfaces/http/dto"
)

// Identity headers accepted when no bearer token is presented
const (
	TenantIDHeader = "X-Tenant-ID"
	UserIDHeader   = "X-User-ID"

	TenantIDKey = "tenant_id"
	UserIDKey   = "user_id"
)

// Identity resolves the school (tenant) and acting user for the request.
// JWT claims win over headers. A missing or malformed tenant aborts the
// request; the user is optional.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantRaw, userRaw := c.GetHeader(TenantIDHeader), c.GetHeader(UserIDHeader)
		if claims := GetJWTClaims(c); claims != nil {
			tenantRaw, userRaw = claims.TenantID, claims.UserID
		}

		if tenantRaw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Tenant could not be determined", GetRequestID(c)))
			return
		}
		tenantID, err := uuid.Parse(tenantRaw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest, "Invalid tenant id", GetRequestID(c)))
			return
		}
		c.Set(TenantIDKey, tenantID)

		if userRaw != "" {
			userID, err := uuid.Parse(userRaw)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
					dto.ErrCodeBadRequest, "Invalid user id", GetRequestID(c)))
				return
			}
			c.Set(UserIDKey, userID)
		}

		c.Request = c.Request.WithContext(logger.WithIdentity(c.Request.Context(), tenantRaw, userRaw))
		c.Next()
	}
}

// GetTenantID returns the tenant resolved by Identity
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(TenantIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetUserID returns the acting user resolved by Identity, or nil
func GetUserID(c *gin.Context) *uuid.UUID {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
