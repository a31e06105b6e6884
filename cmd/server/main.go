package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flightlens/internal/api"
	"flightlens/internal/config"
	"flightlens/internal/logging"
	"flightlens/internal/metrics"
	"flightlens/internal/routes"
)

func main() {
	// Optional .env for local development; the environment wins otherwise.
	_ = godotenv.Load()

	cfg := config.Load()

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("flightlens starting up",
		"environment", cfg.AppEnv,
		"upstream", cfg.UpstreamBaseURL,
	)

	metricsReg := metrics.NewMetricsRegistry()

	deps, err := api.InitDependencies(cfg, metricsReg)
	if err != nil {
		logging.Error("failed to initialize dependencies", "error", err.Error())
		log.Fatalf("failed to initialize dependencies: %v", err)
	}
	defer deps.Limiter.Close()

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, upSince)

	// Metrics endpoint lives outside the chi router so it skips the request
	// middleware chain.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logging.Info("server starting", "port", cfg.Port, "environment", cfg.AppEnv)
	if err := server.ListenAndServe(); err != nil {
		logging.Error("server stopped", "error", err.Error())
		log.Fatal(err)
	}
}
