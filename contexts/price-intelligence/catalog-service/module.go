package catalogservice

import (
	"log/slog"

	httpadapter "pricesaver/contexts/price-intelligence/catalog-service/adapters/http"
	"pricesaver/contexts/price-intelligence/catalog-service/adapters/memory"
	"pricesaver/contexts/price-intelligence/catalog-service/application"
	"pricesaver/contexts/price-intelligence/catalog-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service *application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.NewService(deps.Repository, deps.Clock, deps.IDGen, deps.Logger)
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
