package handler

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/debjitbis08/portfolio-mind-sub004/internal/session"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves login/logout for the single shared-password account.
type AuthHandler struct {
	Sessions   *session.Store
	Password   string // bcrypt hash or plaintext
	CookieName string
	TTL        time.Duration
}

func NewAuthHandler(sessions *session.Store, password, cookieName string, ttl time.Duration) *AuthHandler {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &AuthHandler{
		Sessions:   sessions,
		Password:   password,
		CookieName: cookieName,
		TTL:        ttl,
	}
}

type loginReq struct {
	Password string `json:"password"`
}

// checkPassword compares the submitted password against the configured one.
// A "$2..." configured value is treated as a bcrypt hash, anything else as a
// plaintext secret compared in constant time.
func (h *AuthHandler) checkPassword(submitted string) bool {
	if strings.HasPrefix(h.Password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(h.Password), []byte(submitted)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(h.Password), []byte(submitted)) == 1
}

// Login checks the shared password and issues a session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	if h.Password == "" {
		log.Println("login rejected: no application password configured")
		util.Error(c, http.StatusInternalServerError, "server not configured")
		return
	}

	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		util.Error(c, http.StatusBadRequest, "password is required")
		return
	}

	if !h.checkPassword(req.Password) {
		util.Error(c, http.StatusUnauthorized, "invalid password")
		return
	}

	sess, err := h.Sessions.Create()
	if err != nil {
		log.Printf("create session: %v", err)
		util.Error(c, http.StatusInternalServerError, "could not create session")
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.CookieName, sess.Token, int(h.TTL/time.Second), "/", "", false, true)

	util.Success(c, nil)
}

// Logout deletes the current session and clears the cookie. It sits behind
// the auth middleware, so a token is always present here.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := util.TokenFromRequest(c, h.CookieName)
	if err := h.Sessions.Delete(token); err != nil {
		log.Printf("delete session: %v", err)
		util.Error(c, http.StatusInternalServerError, "could not delete session")
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.CookieName, "", -1, "/", "", false, true)

	util.Success(c, nil)
}

// Me reports the current session's expiry, mostly for the frontend to decide
// when to re-prompt for the password.
func (h *AuthHandler) Me(c *gin.Context) {
	sess := CurrentSession(c)
	if sess == nil {
		util.Error(c, http.StatusUnauthorized, "not logged in")
		return
	}
	util.Success(c, util.Response{
		"session": gin.H{
			"created_at": sess.CreatedAt,
			"expires_at": sess.ExpiresAt,
		},
	})
}
