package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "pricesaver/contexts/price-intelligence/submission-service/application"
	"pricesaver/contexts/price-intelligence/submission-service/domain/entities"
	domainerrors "pricesaver/contexts/price-intelligence/submission-service/domain/errors"
	"pricesaver/contexts/price-intelligence/submission-service/ports"
	"pricesaver/internal/shared/events"
)

const defaultRejectionNotes = "Rejected by moderator"

type ApproveDraftCommand struct {
	DraftID string
	StoreID string
	Notes   string
}

type RejectDraftCommand struct {
	DraftID string
	Reason  string
}

// ModerateDraftUseCase advances a draft through its one-way state machine.
// RewardAmount is moderation policy, injected from configuration.
type ModerateDraftUseCase struct {
	Repository   ports.Repository
	Stores       ports.StoreResolver
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	RewardAmount float64
	Logger       *slog.Logger
}

func (uc ModerateDraftUseCase) Approve(ctx context.Context, cmd ApproveDraftCommand) (entities.Observation, error) {
	logger := application.ResolveLogger(uc.Logger)
	draft, err := uc.Repository.GetDraft(ctx, strings.TrimSpace(cmd.DraftID))
	if err != nil {
		return entities.Observation{}, err
	}
	if draft.Finalized() {
		return entities.Observation{}, domainerrors.ErrDraftFinalized
	}

	storeID := strings.TrimSpace(cmd.StoreID)
	if storeID != "" && uc.Stores != nil {
		exists, err := uc.Stores.StoreExists(ctx, storeID)
		if err != nil {
			return entities.Observation{}, err
		}
		if !exists {
			return entities.Observation{}, domainerrors.ErrStoreNotFound
		}
	}

	observationID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Observation{}, err
	}

	now := uc.Clock.Now().UTC()

	// A draft without a parsed price is approved at amount 0. This is the
	// documented moderation policy, not a fallback.
	amount := 0.0
	if draft.ParsedPrice != nil {
		amount = *draft.ParsedPrice
	}

	observation := entities.Observation{
		ObservationID: observationID,
		ItemName:      draft.ItemName,
		StoreID:       storeID,
		LocationText:  draft.LocationText,
		Amount:        amount,
		SubmitterID:   draft.SubmitterID,
		Status:        entities.ReviewStatusApproved,
		SubmittedAt:   now,
	}

	draft.Status = entities.ReviewStatusApproved
	draft.ModeratorNotes = strings.TrimSpace(cmd.Notes)
	draft.ObservationID = observationID
	draft.ReviewedAt = &now

	var reward *entities.LedgerEntry
	if draft.SubmitterID != "" {
		entryID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.Observation{}, err
		}
		reward = &entities.LedgerEntry{
			EntryID:   entryID,
			UserID:    draft.SubmitterID,
			Amount:    uc.RewardAmount,
			Reason:    fmt.Sprintf("Cashback for price approval of %s", draft.ItemName),
			CreatedAt: now,
		}
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Observation{}, err
	}
	approval := ports.Approval{
		Draft:       draft,
		Observation: observation,
		Reward:      reward,
		Event: ports.EventEnvelope{
			EventID:    eventID,
			EventType:  events.TypePriceApproved,
			EntityType: "observation",
			EntityID:   observationID,
			OccurredAt: now,
			Payload: events.PriceApprovedPayload{
				ObservationID: observationID,
				DraftID:       draft.DraftID,
				ItemName:      draft.ItemName,
				Location:      draft.LocationText,
				Amount:        amount,
				SubmitterID:   draft.SubmitterID,
			},
		},
	}
	if err := uc.Repository.FinalizeApproval(ctx, approval); err != nil {
		return entities.Observation{}, err
	}

	logger.Info("price draft approved",
		"event", "price_draft_approved",
		"module", "price-intelligence/submission-service",
		"layer", "application",
		"draft_id", draft.DraftID,
		"observation_id", observationID,
		"amount", amount,
		"rewarded", reward != nil,
	)
	return observation, nil
}

func (uc ModerateDraftUseCase) Reject(ctx context.Context, cmd RejectDraftCommand) (entities.Draft, error) {
	logger := application.ResolveLogger(uc.Logger)
	draft, err := uc.Repository.GetDraft(ctx, strings.TrimSpace(cmd.DraftID))
	if err != nil {
		return entities.Draft{}, err
	}
	if draft.Finalized() {
		return entities.Draft{}, domainerrors.ErrDraftFinalized
	}

	now := uc.Clock.Now().UTC()
	notes := strings.TrimSpace(cmd.Reason)
	if notes == "" {
		notes = defaultRejectionNotes
	}
	draft.Status = entities.ReviewStatusRejected
	draft.ModeratorNotes = notes
	draft.ReviewedAt = &now

	if err := uc.Repository.FinalizeRejection(ctx, draft); err != nil {
		return entities.Draft{}, err
	}

	logger.Info("price draft rejected",
		"event", "price_draft_rejected",
		"module", "price-intelligence/submission-service",
		"layer", "application",
		"draft_id", draft.DraftID,
	)
	return draft, nil
}
