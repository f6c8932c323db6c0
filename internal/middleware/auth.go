package middleware

import (
	"strings"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/logger"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/services"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// AuthMiddleware resolves the opaque bearer key to its user on every
// request. There is no caching layer on purpose: a reissued or deleted
// token stops working on the next request, and role changes are picked
// up immediately.
func AuthMiddleware(tokenSvc services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			return
		}

		key := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := tokenSvc.Resolve(key)
		if err != nil {
			appErrors.HandleError(c, appErrors.ErrInvalidToken)
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}

// RequireUserTypes limits a route to the given account types.
func RequireUserTypes(types ...models.UserType) gin.HandlerFunc {
	allowed := make(map[models.UserType]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			return
		}
		if !allowed[user.UserType] {
			appErrors.HandleError(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
