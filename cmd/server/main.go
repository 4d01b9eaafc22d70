package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mZeeDevv/flight-trend-service/internal/analysis"
	"github.com/mZeeDevv/flight-trend-service/internal/api"
	"github.com/mZeeDevv/flight-trend-service/internal/cache"
	"github.com/mZeeDevv/flight-trend-service/internal/config"
	"github.com/mZeeDevv/flight-trend-service/internal/database"
	"github.com/mZeeDevv/flight-trend-service/internal/fares"
	"github.com/mZeeDevv/flight-trend-service/internal/kafka"
	"github.com/mZeeDevv/flight-trend-service/internal/notifier"
	"github.com/mZeeDevv/flight-trend-service/internal/pipeline"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] flight-trend-service starting...")

	// .env is optional; real deployments set variables directly
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] no .env file found, using environment variables")
	}

	cfg := config.Load()

	// Database
	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("[FATAL] connect to database: %v", err)
	}
	defer db.Close()
	log.Println("[INFO] connected to database")

	// Series cache
	redisStore := cache.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisStore.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisStore.Ping(pingCtx); err != nil {
		log.Printf("[WARN] redis unavailable, every query will rebuild its series: %v", err)
	}
	pingCancel()
	gateway := cache.NewGateway(redisStore)

	// Fares API client
	faresClient := fares.NewClient(cfg.FaresAPI.BaseURL, cfg.FaresAPI.ClientID, cfg.FaresAPI.ClientSecret)

	// Analysis pipeline
	analyzer := pipeline.NewAnalyzer(faresClient, faresClient, gateway, analysis.NewRand(time.Now().UnixNano()))
	analyzer.Repo = db
	analyzer.HistoryDays = cfg.Analysis.HistoryDays
	analyzer.StaggerDelay = cfg.Analysis.StaggerDelay
	analyzer.Currency = cfg.Analysis.Currency

	// Kafka producer
	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer producer.Close()
	log.Printf("[INFO] kafka producer ready on topic %s", cfg.Kafka.Topic)

	// Alert dispatcher
	dispatcher := notifier.NewSMTPDispatcher(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)

	// HTTP server
	handler := api.NewHandler(analyzer, db, dispatcher, producer)
	router := api.SetupRoutes(handler)

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[INFO] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	log.Println("[INFO] flight-trend-service stopped")
}
