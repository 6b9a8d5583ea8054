package rewardservice

import (
	"log/slog"

	httpadapter "pricesaver/contexts/community-experience/reward-service/adapters/http"
	"pricesaver/contexts/community-experience/reward-service/adapters/memory"
	"pricesaver/contexts/community-experience/reward-service/application/queries"
	"pricesaver/contexts/community-experience/reward-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	queryUseCase := queries.WalletQueryUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Queries: queryUseCase,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{Repository: store, Logger: logger})
	module.Store = store
	return module
}
