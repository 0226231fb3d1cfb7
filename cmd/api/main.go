package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"humusgarden-backend/config"
	_ "humusgarden-backend/docs" // Important for Swagger
	v1 "humusgarden-backend/internal/delivery/http/v1"
	"humusgarden-backend/internal/usecase"
	"humusgarden-backend/pkg/email"
	"humusgarden-backend/pkg/logger"
	"humusgarden-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           HumusGarden Contact API
// @version         1.0
// @description     Relays the humusgarden.cl contact form to the business inbox.
// @host            localhost:4000
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	// 3. SMTP credentials are checked once; the result gates every submission
	if !cfg.SMTPConfigured() {
		logger.Log.Error("Missing required SMTP variables", "missing", strings.Join(cfg.MissingSMTP, ", "))
	} else {
		logger.Log.Info("SMTP config OK",
			"user", "set",
			"host", cfg.SMTPHost,
			"port", cfg.SMTPPort,
			"secure", cfg.SMTPSecure,
			"pass_length", cfg.SMTPPassRawLength,
			"spaces_in_pass", cfg.SMTPPassSpaceCount,
		)
	}

	// 4. Setup Email Service
	sender := email.NewSMTPSender(cfg)

	// 5. Setup UseCases
	contactUC := usecase.NewContactUsecase(sender, email.NewEnvelope(cfg), cfg.SMTPConfigured(), validation.New())
	healthUC := usecase.NewHealthUsecase()

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Config:    cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("HumusGarden API listening", "addr", "http://localhost:"+cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// In-flight sends are not bounded; give them the full window
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
