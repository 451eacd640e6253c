package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/debjitbis08/portfolio-mind-sub004/internal/cache"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/config"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/database"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/router"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/scraper"
	"github.com/debjitbis08/portfolio-mind-sub004/internal/session"

	"github.com/joho/godotenv"
)

func main() {
	// optional .env for local development, before viper reads the environment
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Auth.Password == "" {
		log.Println("warning: INVESTOR_APP_PASSWORD not set, logins will fail")
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	rc := cache.New(cfg.Redis.Addr, cfg.Redis.Password,
		time.Duration(cfg.Redis.CacheTTLMinutes)*time.Minute)
	defer rc.Close()

	svc := scraper.NewClient(cfg.Scraper.BaseURL,
		time.Duration(cfg.Scraper.TimeoutSeconds)*time.Second)

	sessions := session.NewStore(db, cfg.SessionTTL())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sessions.StartSweeper(ctx, time.Hour)

	r := router.SetupRouter(cfg, db, sessions, svc, rc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
