package main

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"freight-insights-go/internal/aggregator"
	"freight-insights-go/internal/dataset"
	"freight-insights-go/internal/insights"
	"freight-insights-go/internal/logger"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "freight-insights-go").Info("starting service")

	dataPath := envOr("DATASET_PATH", "freight_master.xlsx")
	costPerDelayDay := costPerDelayDayFromEnv()
	log.WithField("dataset_path", dataPath).
		WithField("cost_per_delay_day", costPerDelayDay).
		Info("configuration resolved")

	// load once at startup to fail fast on a broken dataset
	rows, err := dataset.Load(dataPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load dataset")
	}
	log.WithField("total_rows", len(rows)).Info("dataset loaded")

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// dashboard bundle: recomputed fresh from the current dataset on every
	// request; clients treat the result as read-only
	mux.HandleFunc("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "dashboard")
		reqLog.Info("dashboard request received")

		rows, err := dataset.Load(dataPath)
		if err != nil {
			reqLog.WithError(err).Error("dataset load error")
			http.Error(w, "dataset load error", http.StatusInternalServerError)
			return
		}

		start := time.Now()
		bundle := aggregator.Aggregate(rows, costPerDelayDay)
		bundle.Insights = insights.Generate(bundle, costPerDelayDay)
		reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("total_shipments", bundle.TotalShipments).
			Info("bundle computed")

		w.Header().Set("Content-Type", "application/json")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(bundle); err != nil {
			reqLog.WithError(err).Error("failed to write response")
		}
	})

	// row preview for the table widget
	mux.HandleFunc("/rows", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "rows")
		reqLog.Info("row preview requested")

		limit := 20
		if v := r.URL.Query().Get("limit"); v != "" {
			fmt.Sscanf(v, "%d", &limit)
		}
		rows, err := dataset.Load(dataPath)
		if err != nil {
			reqLog.WithError(err).Error("dataset load error")
			http.Error(w, "dataset load error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(dataset.Preview(rows, limit))
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

// costPerDelayDayFromEnv reads COST_PER_DELAY_DAY; anything that does not
// parse to a finite number falls back to the default.
func costPerDelayDayFromEnv() float64 {
	v := os.Getenv("COST_PER_DELAY_DAY")
	if v == "" {
		return aggregator.DefaultCostPerDelayDay
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return aggregator.DefaultCostPerDelayDay
	}
	return f
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
