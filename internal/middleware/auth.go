package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/debjitbis08/portfolio-mind-sub004/internal/session"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token against the sessions table and
// puts the session row into the context as "currentSession".
func AuthMiddleware(sessions *session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.TokenFromRequest(c, cookieName)
		if token == "" {
			util.Error(c, http.StatusUnauthorized, "not logged in")
			c.Abort()
			return
		}

		sess, err := sessions.Validate(token)
		if err != nil {
			if errors.Is(err, session.ErrInvalidSession) {
				util.Error(c, http.StatusUnauthorized, "session expired, please log in again")
			} else {
				log.Printf("validate session: %v", err)
				util.Error(c, http.StatusInternalServerError, "could not validate session")
			}
			c.Abort()
			return
		}

		c.Set("currentSession", sess)
		c.Next()
	}
}
