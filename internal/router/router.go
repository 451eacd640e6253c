package router

import (
	"github.com/debjitbis08/portfolio-mind-sub004/internal/cache"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/config"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/handler"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/intel"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/middleware"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/scraper"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB, sessions *session.Store,
	svc scraper.Service, rc *cache.Client) *gin.Engine {

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	intelStore := intel.NewStore(db)
	cookieName := cfg.CookieName()

	// ====== API ======
	api := r.Group("/api")

	// login does not require a session
	authHandler := handler.NewAuthHandler(sessions, cfg.Auth.Password, cookieName, cfg.SessionTTL())
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(sessions, cookieName),
		middleware.AuditMiddleware(db),
	)

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/me", authHandler.Me)

	intelHandler := handler.NewIntelHandler(intelStore, rc)
	protected.GET("/intel", intelHandler.List)
	protected.GET("/intel/:symbol", intelHandler.Get)
	protected.PUT("/intel/:symbol/fundamentals", intelHandler.PutFundamentals)
	protected.PUT("/intel/:symbol/news", intelHandler.PutNewsSentiment)

	vpHandler := handler.NewValuePickrHandler(intelStore, svc, rc)
	protected.POST("/intel/valuepickr/:symbol", vpHandler.Refresh)
	protected.DELETE("/intel/valuepickr/:symbol", vpHandler.Clear)

	exportHandler := handler.NewExportHandler(intelStore)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
