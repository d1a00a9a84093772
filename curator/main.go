package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"curator/curator/bot"
	"curator/curator/config"
	"curator/curator/controllers"
	"curator/curator/routes"
	"curator/curator/services/gemini"
	"curator/curator/sources/psql"
	"curator/curator/sources/psql/dao"
	"curator/curator/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	userDAO := dao.NewUserDAO(db.DB)
	analysisDAO := dao.NewAnalysisDAO(db.DB)
	sessionDAO := dao.NewTelegramSessionDAO(db.DB)

	// Missing AI credential is fatal here, not per-request.
	geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logging.ErrorLogger.Error("gemini client error", zap.Error(err))
		os.Exit(1)
	}
	defer geminiClient.Close()
	geminiService := gemini.NewService(geminiClient, gemini.LoadPrompts(cfg.PromptsFile), cfg.GeminiTimeout)

	authCtrl := controllers.NewAuthController(userDAO, cfg)
	analysisCtrl := controllers.NewAnalysisController(analysisDAO, geminiService)
	healthCtrl := controllers.NewHealthController()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Mount("/auth", routes.AuthRoutes(authCtrl, userDAO, cfg))
	r.Mount("/analysis", routes.AnalysisRoutes(analysisCtrl, userDAO, cfg))
	r.Mount("/health", routes.HealthRoutes(healthCtrl))

	// The bot is wired at startup; without a token the webhook surface is
	// simply not mounted.
	botService, err := bot.NewService(cfg, userDAO, sessionDAO, analysisDAO, geminiService)
	if err != nil {
		logging.AppLogger.Warn("telegram bot disabled", zap.Error(err))
	} else {
		r.Mount("/webhook/telegram", routes.TelegramRoutes(botService))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
