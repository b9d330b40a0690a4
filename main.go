package main

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"time"

	"payment-webhook-service/internal/config"
	"payment-webhook-service/internal/db"
	"payment-webhook-service/internal/logging"
	"payment-webhook-service/internal/metrics"
	"payment-webhook-service/internal/page"
	"payment-webhook-service/internal/server"
	"payment-webhook-service/internal/webhook"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoadConfig(".")
	logger := logging.GetLogger(cfg.Logs)
	metrics.Setup(cfg.Metrics)

	connStr := db.GetConnStr(cfg.Database)
	db.RunMigrations(connStr, "migrations")

	dbpool, err := db.GetPool(connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer dbpool.Close()

	repo := db.NewInvoiceRepository(dbpool)

	processor := webhook.NewProcessor(repo, cfg.Webhook.Secret, logger)
	webhookHandler := webhook.NewHandler(processor, logger)

	resolver := page.NewResolver(repo)
	tmpl := template.Must(template.ParseFiles("templates/success.html"))
	payHandler := page.NewHandler(resolver, cfg.Redirect, tmpl, logger)

	mux := http.NewServeMux()
	mux.Handle("POST /webhook/sellauth", webhookHandler)
	mux.Handle("GET /pay", payHandler)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":   true,
			"time": time.Now().UTC().Format(time.RFC3339),
		})
	})

	logger.Info("Starting server", "port", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, server.RequestID(mux)))
}
