package middleware

import (
	"github.com/debjitbis08/portfolio-mind-sub004/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditMiddleware records authenticated API requests after they complete.
// Failures to write the log never fail the request.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		var sessionID string
		if v, ok := c.Get("currentSession"); ok {
			if sess, ok := v.(*models.Session); ok && sess != nil {
				sessionID = sess.ID
			}
		}
		// only record requests that passed the auth middleware
		if sessionID == "" {
			return
		}

		entry := models.AuditLog{
			SessionID: sessionID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		_ = db.Create(&entry).Error
	}
}
