package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/ledger"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/services"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/turn"
	"github.com/Garvkhullar/cashflow4.0-official/internal/dto"
	"github.com/Garvkhullar/cashflow4.0-official/internal/handlers"
	"github.com/Garvkhullar/cashflow4.0-official/internal/middleware"
	"github.com/Garvkhullar/cashflow4.0-official/internal/platform/config"
	"github.com/Garvkhullar/cashflow4.0-official/internal/platform/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// @title Cashflow Game API
// @version 1.0
// @description Backend for the Cashflow board game: tables, teams, paydays, deals and loans.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rules, err := cfg.Rules()
	if err != nil {
		logger.Error("Invalid game balance settings", slog.String("error", err.Error()))
		os.Exit(1)
	}
	engine := ledger.NewEngine(rules)

	source := turn.NewRandomSource()
	if cfg.DiceSeed != 0 {
		logger.Warn("Using a fixed dice seed", slog.Uint64("seed", cfg.DiceSeed))
		source = turn.NewSeededSource(cfg.DiceSeed)
	}
	sequencer := turn.NewSequencer(engine, source)

	ctx := context.Background()
	st, err := store.Open(ctx, logger, cfg, store.Options{Migrate: true})
	if err != nil {
		logger.Error("Failed to open store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer st.Close(context.Background())
	logger.Info("Store ready", slog.String("driver", cfg.StoreDriver))

	serviceContainer := services.NewServiceContainer(cfg, st.Repos, engine, sequencer)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			logger.Error("Failed to register validators", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	loginLimiter, err := middleware.NewLoginLimiter(cfg.LoginRateLimit)
	if err != nil {
		logger.Error("Invalid LOGIN_RATE_LIMIT", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, loginLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shut down", slog.String("error", err.Error()))
	}
}
