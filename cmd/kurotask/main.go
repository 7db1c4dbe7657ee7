package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/auth"
	"github.com/goldenhorse8610-droid/KuroTask/internal/config"
	"github.com/goldenhorse8610-droid/KuroTask/internal/db"
	"github.com/goldenhorse8610-droid/KuroTask/internal/scheduler"
	"github.com/goldenhorse8610-droid/KuroTask/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	log.Println("Starting KuroTask backend...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	codec := auth.NewTokenCodec(cfg.Auth.Secret)
	authSvc := auth.NewService(database, auth.NewMemoryPendingStore(), codec, cfg.Auth.TokenTTL)
	srv := server.New(database, codec, authSvc)

	sched := scheduler.New(srv.Recurring(), time.Local)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		s := <-signals
		log.Printf("Received signal: %v", s)
		cancel()
	}()

	go func() {
		log.Printf("Listening on %s", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Error running server: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received")

	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Application shutdown complete")
}
