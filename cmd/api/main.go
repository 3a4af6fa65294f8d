package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/ksomisetty/scm-analytics/internal/cache"
	"github.com/ksomisetty/scm-analytics/internal/config"
	"github.com/ksomisetty/scm-analytics/internal/repository/postgres"
	"github.com/ksomisetty/scm-analytics/internal/service"
)

// Operational sidecar: cache management and on-demand recomputation,
// kept off the public analytics API.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to initialize report cache: %v", err)
	}

	repo := postgres.NewAnalyticsRepository(db)
	analyticsService := service.NewAnalyticsService(repo, reportCache)
	baseParams := service.ParamsFromConfig(cfg.Analytics)

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/ops/cache/invalidate", func(w http.ResponseWriter, r *http.Request) {
		if err := analyticsService.Invalidate(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("POST")

	r.HandleFunc("/ops/recompute", func(w http.ResponseWriter, r *http.Request) {
		if err := analyticsService.Invalidate(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		report, err := analyticsService.Report(r.Context(), baseParams)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"abc_products":     len(report.ABC),
			"turnover_records": len(report.Turnover),
			"suppliers_scored": len(report.Suppliers),
		})
	}).Methods("POST")

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Ops server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
