package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/debjitbis08/portfolio-mind-sub004/internal/config"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/models"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/router"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "open-sesame"

func newTestRouter(t *testing.T, svc *stubScraper) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Session{}, &models.StockIntel{}, &models.AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Auth.Password = testPassword

	sessions := session.NewStore(db, cfg.SessionTTL())
	r := router.SetupRouter(cfg, db, sessions, svc, nil)
	return r, db
}

func doLogin(t *testing.T, r *gin.Engine) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"password":"`+testPassword+`"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "investor_session" {
			return c
		}
	}
	t.Fatal("login did not set investor_session cookie")
	return nil
}

func TestLogin_Success(t *testing.T) {
	r, _ := newTestRouter(t, &stubScraper{})

	cookie := doLogin(t, r)

	if cookie.Path != "/" {
		t.Errorf("cookie path = %q, want /", cookie.Path)
	}
	if !cookie.HttpOnly {
		t.Error("cookie is not HttpOnly")
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Errorf("cookie SameSite = %v, want Strict", cookie.SameSite)
	}
	wantMaxAge := int((30 * 24 * time.Hour) / time.Second)
	if cookie.MaxAge != wantMaxAge {
		t.Errorf("cookie MaxAge = %d, want %d", cookie.MaxAge, wantMaxAge)
	}
	if len(cookie.Value) != 64 {
		t.Errorf("token length = %d, want 64", len(cookie.Value))
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	r, _ := newTestRouter(t, &stubScraper{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("failed login must not set a cookie")
	}
}

func TestLogin_MissingPassword(t *testing.T) {
	r, _ := newTestRouter(t, &stubScraper{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestProtectedRoute_NoToken(t *testing.T) {
	r, _ := newTestRouter(t, &stubScraper{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestProtectedRoute_WithCookie(t *testing.T) {
	r, _ := newTestRouter(t, &stubScraper{})
	cookie := doLogin(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
}

func TestProtectedRoute_BearerHeader(t *testing.T) {
	r, _ := newTestRouter(t, &stubScraper{})
	cookie := doLogin(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+cookie.Value)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
}

func TestLogout_InvalidatesToken(t *testing.T) {
	r, _ := newTestRouter(t, &stubScraper{})
	cookie := doLogin(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("me after logout status = %d, want 401", w.Code)
	}
}

func TestExpiredSession_Rejected(t *testing.T) {
	r, db := newTestRouter(t, &stubScraper{})
	cookie := doLogin(t, r)

	if err := db.Model(&models.Session{}).
		Where("token = ?", cookie.Value).
		Update("expires_at", time.Now().Add(-time.Second)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
