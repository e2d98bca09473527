package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pradeepgv/gita-attendance-tracker/internal/auth"
	"github.com/pradeepgv/gita-attendance-tracker/internal/config"
	"github.com/pradeepgv/gita-attendance-tracker/internal/database"
	"github.com/pradeepgv/gita-attendance-tracker/internal/handlers"
	"github.com/pradeepgv/gita-attendance-tracker/internal/middleware"
	"github.com/pradeepgv/gita-attendance-tracker/internal/models"
	"github.com/pradeepgv/gita-attendance-tracker/internal/store"
	"github.com/pradeepgv/gita-attendance-tracker/internal/timeutil"
)

var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	clock, err := timeutil.NewLocationClock(cfg.Timezone)
	if err != nil {
		slog.Error("Failed to load timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("Failed to apply schema", "error", err)
		os.Exit(1)
	}

	families := store.NewFamilyStore(db.Pool())
	attendance := store.NewAttendanceStore(db.Pool())
	verifier := auth.NewSecretVerifier(cfg.AdminPassword)

	models.RegisterValidations()

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if cfg.FrontendURL == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, middleware.AdminPasswordHeader)
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		if err := db.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": Version})
	})

	api.POST("/attendance", handlers.SubmitAttendance(families, attendance, clock))

	api.GET("/families/search", handlers.SearchFamilies(families))
	api.GET("/families/:id", handlers.GetFamily(families))
	api.POST("/families", handlers.CreateFamily(families))

	reports := api.Group("/reports", middleware.RequireAdmin(verifier))
	reports.GET("/weekly", handlers.GetWeeklyReport(attendance, clock))
	reports.GET("/family/:id", handlers.GetFamilyReport(families, attendance, clock))
	reports.GET("/export", handlers.ExportAttendanceCSV(attendance))

	alerts := api.Group("/alerts", middleware.RequireAdmin(verifier))
	alerts.GET("/absent", handlers.GetAbsentFamilies(attendance, clock))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		slog.Info("Server starting", "port", cfg.Port, "timezone", cfg.Timezone)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}
