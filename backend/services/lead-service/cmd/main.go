package main

import (
	"context"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	_ "time/tzdata"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/app"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/config"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/controllers"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-middleware"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

const (
	sweepTimeout    = 5 * time.Minute
	limiterIdleTime = time.Hour
)

func main() {
	utils.InitLogger(config.AppName)

	// 1) Config
	cfg := config.LoadConfig()

	// 2) Core application (store, backend client, services)
	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize app")
	}
	defer application.Close()

	// 3) Router
	submitLimiter := middleware.NewRateLimiter(cfg.SubmitRatePerMinute, cfg.SubmitRatePerMinute)
	router := controllers.NewRouter(application, submitLimiter)

	// 4) Hourly retention sweep
	c := cron.New()
	_, sweepErr := c.AddFunc("@every 1h", func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		if e := application.RetentionCleanupService.CleanupHourly(ctx); e != nil {
			utils.Logger.WithError(e).Error("Scheduled retention sweep failed")
		}
		if n := submitLimiter.Cleanup(limiterIdleTime); n > 0 {
			utils.Logger.Debugf("Dropped %d idle rate limiter(s)", n)
		}
	})
	if sweepErr != nil {
		utils.Logger.WithError(sweepErr).Fatal("Failed to schedule retention sweep")
	}
	c.Start()
	defer c.Stop()

	// 5) CORS
	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}
	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", utils.HeaderClientID},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("lead-service failed to start:", err)
	}
}
