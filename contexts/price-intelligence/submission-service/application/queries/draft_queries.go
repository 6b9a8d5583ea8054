package queries

import (
	"context"
	"log/slog"
	"strings"

	"pricesaver/contexts/price-intelligence/submission-service/domain/entities"
	"pricesaver/contexts/price-intelligence/submission-service/ports"
)

type ListDraftsQuery struct {
	Status string
	Limit  int
}

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc QueryUseCase) GetDraft(ctx context.Context, draftID string) (entities.Draft, error) {
	return uc.Repository.GetDraft(ctx, strings.TrimSpace(draftID))
}

func (uc QueryUseCase) ListDrafts(ctx context.Context, query ListDraftsQuery) ([]entities.Draft, error) {
	return uc.Repository.ListDrafts(ctx, ports.DraftFilter{
		Status: entities.ReviewStatus(strings.TrimSpace(query.Status)),
		Limit:  query.Limit,
	})
}

func (uc QueryUseCase) ListApprovedObservations(ctx context.Context, limit int) ([]entities.Observation, error) {
	return uc.Repository.ListObservations(ctx, ports.ObservationFilter{
		Status: entities.ReviewStatusApproved,
		Limit:  limit,
	})
}
