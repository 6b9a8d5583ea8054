package insightsservice

import (
	"log/slog"

	httpadapter "pricesaver/contexts/price-intelligence/insights-service/adapters/http"
	"pricesaver/contexts/price-intelligence/insights-service/adapters/memory"
	"pricesaver/contexts/price-intelligence/insights-service/application"
	"pricesaver/contexts/price-intelligence/insights-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Observations       ports.ObservationSource
	Catalog            ports.Catalog
	Snapshots          ports.SnapshotStore
	Clock              ports.Clock
	LegacyCatalogMatch bool
	Logger             *slog.Logger
}

func NewModule(deps Dependencies) Module {
	resolver := application.ResolverService{
		Observations:       deps.Observations,
		Catalog:            deps.Catalog,
		Clock:              deps.Clock,
		LegacyCatalogMatch: deps.LegacyCatalogMatch,
		Logger:             deps.Logger,
	}
	heatmap := application.HeatmapService{
		Observations:       deps.Observations,
		Catalog:            deps.Catalog,
		Snapshots:          deps.Snapshots,
		Clock:              deps.Clock,
		LegacyCatalogMatch: deps.LegacyCatalogMatch,
		Logger:             deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Resolver: resolver,
			Heatmap:  heatmap,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(legacyCatalogMatch bool, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Observations:       store,
		Catalog:            store,
		Snapshots:          store,
		Clock:              store,
		LegacyCatalogMatch: legacyCatalogMatch,
		Logger:             logger,
	})
	module.Store = store
	return module
}
