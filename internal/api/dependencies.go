package api

import (
	"fmt"

	"flightlens/internal/common"
	"flightlens/internal/config"
	"flightlens/internal/ident"
	"flightlens/internal/metrics"
	"flightlens/internal/providers"
	"flightlens/internal/ratelimit"
	"flightlens/internal/services"
)

// Dependencies wires every component once per process; handlers receive it
// by reference so tests can build isolated instances.
type Dependencies struct {
	Config   *config.Config
	Metrics  *metrics.MetricsRegistry
	Airlines *common.AirlineTable
	Airports *common.AirportTable
	Cache    *common.ResultCache
	Limiter  *ratelimit.Limiter
	Resolver *ident.Resolver
	Provider *providers.FlightDataProvider
	Lookup   *services.LookupService
	Progress *services.ProgressService
}

func InitDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	airlines := common.NewAirlineTable()

	airports, err := common.NewAirportTable(cfg.AirportDataPath)
	if err != nil {
		return nil, fmt.Errorf("load airport table: %w", err)
	}

	resolver := ident.NewResolver(airlines)
	provider := providers.NewFlightDataProvider(cfg, metricsReg)

	return &Dependencies{
		Config:   cfg,
		Metrics:  metricsReg,
		Airlines: airlines,
		Airports: airports,
		Cache:    common.NewResultCache(cfg.CacheSweep),
		Limiter:  ratelimit.New(cfg.GeneralWindow, cfg.PerTargetWindow),
		Resolver: resolver,
		Provider: provider,
		Lookup:   services.NewLookupService(provider, resolver, airlines, airports, metricsReg),
		Progress: services.NewProgressService(airports),
	}, nil
}
