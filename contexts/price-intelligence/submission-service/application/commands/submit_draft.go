package commands

import (
	"context"
	"log/slog"
	"strings"

	application "pricesaver/contexts/price-intelligence/submission-service/application"
	"pricesaver/contexts/price-intelligence/submission-service/domain/entities"
	domainerrors "pricesaver/contexts/price-intelligence/submission-service/domain/errors"
	"pricesaver/contexts/price-intelligence/submission-service/ports"
)

type SubmitDraftCommand struct {
	ItemName     string
	ParsedPrice  *float64
	LocationText string
	SubmitterID  string
	ProofRef     string
}

type SubmitDraftUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc SubmitDraftUseCase) Execute(ctx context.Context, cmd SubmitDraftCommand) (entities.Draft, error) {
	logger := application.ResolveLogger(uc.Logger)
	draftID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Draft{}, err
	}
	now := uc.Clock.Now().UTC()
	draft := entities.Draft{
		DraftID:      draftID,
		ItemName:     strings.TrimSpace(cmd.ItemName),
		ParsedPrice:  cmd.ParsedPrice,
		ProofRef:     strings.TrimSpace(cmd.ProofRef),
		SubmitterID:  strings.TrimSpace(cmd.SubmitterID),
		LocationText: strings.TrimSpace(cmd.LocationText),
		Status:       entities.ReviewStatusPending,
		CreatedAt:    now,
	}
	if !draft.ValidateCreate() {
		return entities.Draft{}, domainerrors.ErrInvalidDraftInput
	}
	if err := uc.Repository.CreateDraft(ctx, draft); err != nil {
		return entities.Draft{}, err
	}
	logger.Info("price draft submitted",
		"event", "price_draft_submitted",
		"module", "price-intelligence/submission-service",
		"layer", "application",
		"draft_id", draft.DraftID,
		"item_name", draft.ItemName,
		"submitter_id", draft.SubmitterID,
	)
	return draft, nil
}
