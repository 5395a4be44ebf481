package middleware

import (
	"net/http"
	"strings"

	"campbook/internal/model"
	"campbook/internal/service"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is the gin context key the authenticated user is stored
// under.
const ContextUserKey = "currentUser"

// Authenticate verifies the Authorization bearer token against the identity
// provider, resolves it to a local user (provisioning one on first sight)
// and attaches the user to the request context.
func Authenticate(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("No token provided"))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := auth.AuthenticateToken(c.Request.Context(), token)
		if err != nil {
			if service.KindOf(err) == service.KindUnauthenticated {
				c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse(err.Error()))
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, model.NewErrorResponse("Unable to authenticate request"))
			}
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// Authorize restricts a route to the given roles. Requires Authenticate to
// have run first.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Not authenticated"))
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			model.NewErrorResponse("User role "+user.Role+" is not authorized to access this route"))
	}
}

// CurrentUser returns the authenticated user from the context, or nil.
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*model.User)
	return user
}
