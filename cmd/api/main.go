package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	"github.com/playtone/prizeplay-backend/api/routes"
	"github.com/playtone/prizeplay-backend/internal/config"
	"github.com/playtone/prizeplay-backend/internal/handlers"
	"github.com/playtone/prizeplay-backend/internal/repositories"
	mongorepo "github.com/playtone/prizeplay-backend/internal/repositories/mongodb"
	"github.com/playtone/prizeplay-backend/internal/services"
	"github.com/playtone/prizeplay-backend/pkg/mongodb"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	if cfg.JWT.Secret == "" {
		slog.Error("JWT.Secret is not configured")
		os.Exit(1)
	}

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)
	var gameRepo repositories.GameRepository = mongorepo.NewGameRepository(db)
	var outcomeRepo repositories.OutcomeRepository = mongorepo.NewOutcomeRepository(db)
	var playRepo repositories.PlayRepository = mongorepo.NewPlayRepository(db)
	var winRecordRepo repositories.WinRecordRepository = mongorepo.NewWinRecordRepository(db)
	var discountRepo repositories.DiscountRepository = mongorepo.NewDiscountRepository(db)
	var transactionRepo repositories.TransactionRepository = mongorepo.NewTransactionRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, cfg)
	gameService := services.NewGameService(gameRepo, outcomeRepo)
	discountService := services.NewDiscountService(discountRepo)
	userService := services.NewUserService(userRepo, winRecordRepo, transactionRepo)
	winService := services.NewWinService(winRecordRepo)
	paymentService := services.NewPaymentService(cfg.Points.PerCurrencyUnit)
	resolver := services.NewPrizeResolver(outcomeRepo, winRecordRepo, services.CryptoSource{})
	playService := services.NewPlayService(gameRepo, outcomeRepo, userRepo, playRepo, discountRepo, transactionRepo, paymentService, resolver)

	// Handlers
	deps := routes.HandlerDependencies{
		AuthHandler:     handlers.NewAuthHandler(authService),
		GameHandler:     handlers.NewGameHandler(gameService),
		PlayHandler:     handlers.NewPlayHandler(playService),
		UserHandler:     handlers.NewUserHandler(userService),
		DiscountHandler: handlers.NewDiscountHandler(discountService),
		WinHandler:      handlers.NewWinHandler(winService),
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
