package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/expense-report/backend/docs"
	"github.com/expense-report/backend/internal/config"
	"github.com/expense-report/backend/internal/db"
	"github.com/expense-report/backend/internal/handler"
	"github.com/expense-report/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Expense Report Backend API
// @version 1.0.0
// @description Signup/signin, JWT sessions with token blacklisting, and per-user expense records.
// @BasePath /expense/backend/api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

func run() error {
	// .env 파일은 선택 사항 (없으면 환경변수만 사용)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := config.Load()
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Println("Successfully connected to database")

	repo := db.NewPostgres(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	tokens, err := service.NewTokenService(cfg.Auth)
	if err != nil {
		return err
	}
	blacklist, err := service.NewBlacklistService(repo, cfg.Auth)
	if err != nil {
		return err
	}
	users := service.NewUserService(repo, tokens)
	svcs := handler.Services{
		Tokens:    tokens,
		Blacklist: blacklist,
		Users:     users,
		Expenses:  service.NewExpenseService(repo),
		Access:    service.NewAccessService(users),
	}

	go blacklist.Run(ctx)

	docs.SwaggerInfo.BasePath = cfg.Server.APIPrefix
	router := handler.NewRouter(cfg.Server.APIPrefix, cfg.Server.AllowedOrigins, svcs)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Expense backend listening on %s (prefix %s)", srv.Addr, cfg.Server.APIPrefix)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
