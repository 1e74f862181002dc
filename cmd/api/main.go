package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carzilla/auth-api/internal/config"
	"github.com/carzilla/auth-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/carzilla/auth-api/internal/infrastructure/jwt"
	"github.com/carzilla/auth-api/internal/infrastructure/smtp"
	"github.com/carzilla/auth-api/internal/infrastructure/sns"
	transporthttp "github.com/carzilla/auth-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Storage and signing keys are hard requirements: refuse to start
	// without them rather than serve requests that can only fail.
	dynamoClient, err := dynamo.NewClient(cfg)
	if err != nil {
		log.Fatalf("configuration error: AWS config: %v", err)
	}
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("configuration error: JWT keys: %v", err)
	}

	mailer := smtp.NewMailer(cfg)

	// SNS is best-effort: without it the profile confirmation SMS is skipped.
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	deps := &transporthttp.Deps{
		OtpRepo:     dynamo.NewOtpRepo(dynamoClient, cfg.DynamoTables.Otps),
		UserRepo:    dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		Mailer:      mailer,
		SMSSender:   smsSender,
		JWTProvider: jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
