package utils

import (
	"github.com/gin-gonic/gin"

	model "auction-house/internal/models"
)

const currentUserKey = "current_user"

// SetCurrentUser stores the authenticated user on the request context.
// Called by the auth middleware only.
func SetCurrentUser(c *gin.Context, user model.User) {
	c.Set(currentUserKey, user)
}

// CurrentUser returns the authenticated user set by the auth middleware.
func CurrentUser(c *gin.Context) (model.User, bool) {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := value.(model.User)
	return user, ok
}
