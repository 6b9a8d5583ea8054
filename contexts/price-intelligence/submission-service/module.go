package submissionservice

import (
	"log/slog"

	httpadapter "pricesaver/contexts/price-intelligence/submission-service/adapters/http"
	"pricesaver/contexts/price-intelligence/submission-service/adapters/memory"
	"pricesaver/contexts/price-intelligence/submission-service/application/commands"
	"pricesaver/contexts/price-intelligence/submission-service/application/queries"
	"pricesaver/contexts/price-intelligence/submission-service/domain/entities"
	"pricesaver/contexts/price-intelligence/submission-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository   ports.Repository
	Stores       ports.StoreResolver
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	RewardAmount float64
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	submitDraft := commands.SubmitDraftUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	moderateDraft := commands.ModerateDraftUseCase{
		Repository:   deps.Repository,
		Stores:       deps.Stores,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		RewardAmount: deps.RewardAmount,
		Logger:       deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			SubmitDraft:   submitDraft,
			ModerateDraft: moderateDraft,
			Queries:       queryUseCase,
			Logger:        deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Draft, rewardAmount float64, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository:   store,
		Stores:       store,
		Clock:        store,
		IDGen:        store,
		RewardAmount: rewardAmount,
		Logger:       logger,
	})
	module.Store = store
	return module
}
