package handler

import (
	"github.com/debjitbis08/portfolio-mind-sub004/internal/models"

	"github.com/gin-gonic/gin"
)

// CurrentSession returns the session placed in the context by the auth
// middleware, or nil on unauthenticated routes.
func CurrentSession(c *gin.Context) *models.Session {
	v, ok := c.Get("currentSession")
	if !ok {
		return nil
	}
	sess, ok := v.(*models.Session)
	if !ok {
		return nil
	}
	return sess
}
