package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"pricesaver/contexts/price-intelligence/submission-service/application/commands"
	"pricesaver/contexts/price-intelligence/submission-service/application/queries"
	"pricesaver/contexts/price-intelligence/submission-service/domain/entities"
	httptransport "pricesaver/contexts/price-intelligence/submission-service/transport/http"
)

type Handler struct {
	SubmitDraft   commands.SubmitDraftUseCase
	ModerateDraft commands.ModerateDraftUseCase
	Queries       queries.QueryUseCase
	Logger        *slog.Logger
}

func (h Handler) SubmitDraftHandler(ctx context.Context, req httptransport.SubmitDraftRequest) (httptransport.SubmitDraftResponse, error) {
	draft, err := h.SubmitDraft.Execute(ctx, commands.SubmitDraftCommand{
		ItemName:     req.Item,
		ParsedPrice:  req.ParsedPrice,
		LocationText: req.LocationText,
		SubmitterID:  req.SubmitterID,
		ProofRef:     req.ProofRef,
	})
	if err != nil {
		return httptransport.SubmitDraftResponse{}, err
	}
	return httptransport.SubmitDraftResponse{Draft: mapDraft(draft)}, nil
}

func (h Handler) GetDraftHandler(ctx context.Context, draftID string) (httptransport.GetDraftResponse, error) {
	draft, err := h.Queries.GetDraft(ctx, draftID)
	if err != nil {
		return httptransport.GetDraftResponse{}, err
	}
	return httptransport.GetDraftResponse{Draft: mapDraft(draft)}, nil
}

func (h Handler) ListDraftsHandler(ctx context.Context, status string, limit int) (httptransport.ListDraftsResponse, error) {
	items, err := h.Queries.ListDrafts(ctx, queries.ListDraftsQuery{Status: status, Limit: limit})
	if err != nil {
		return httptransport.ListDraftsResponse{}, err
	}
	result := make([]httptransport.DraftDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapDraft(item))
	}
	return httptransport.ListDraftsResponse{Items: result}, nil
}

func (h Handler) ApproveDraftHandler(ctx context.Context, draftID string, req httptransport.ApproveDraftRequest) (httptransport.ApproveDraftResponse, error) {
	observation, err := h.ModerateDraft.Approve(ctx, commands.ApproveDraftCommand{
		DraftID: draftID,
		StoreID: req.StoreID,
		Notes:   req.Notes,
	})
	if err != nil {
		return httptransport.ApproveDraftResponse{}, err
	}
	return httptransport.ApproveDraftResponse{
		Status:      "approved",
		Observation: mapObservation(observation),
	}, nil
}

func (h Handler) RejectDraftHandler(ctx context.Context, draftID string, req httptransport.RejectDraftRequest) (httptransport.RejectDraftResponse, error) {
	draft, err := h.ModerateDraft.Reject(ctx, commands.RejectDraftCommand{
		DraftID: draftID,
		Reason:  req.Reason,
	})
	if err != nil {
		return httptransport.RejectDraftResponse{}, err
	}
	return httptransport.RejectDraftResponse{
		Status: "rejected",
		Draft:  mapDraft(draft),
	}, nil
}

func (h Handler) ListObservationsHandler(ctx context.Context, limit int) (httptransport.ListObservationsResponse, error) {
	items, err := h.Queries.ListApprovedObservations(ctx, limit)
	if err != nil {
		return httptransport.ListObservationsResponse{}, err
	}
	result := make([]httptransport.ObservationDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapObservation(item))
	}
	return httptransport.ListObservationsResponse{Items: result}, nil
}

func mapDraft(item entities.Draft) httptransport.DraftDTO {
	return httptransport.DraftDTO{
		DraftID:        item.DraftID,
		Item:           item.ItemName,
		ParsedPrice:    item.ParsedPrice,
		ProofRef:       item.ProofRef,
		SubmitterID:    item.SubmitterID,
		LocationText:   item.LocationText,
		Status:         string(item.Status),
		ModeratorNotes: item.ModeratorNotes,
		ObservationID:  item.ObservationID,
		CreatedAt:      formatTime(item.CreatedAt),
		ReviewedAt:     formatOptionalTime(item.ReviewedAt),
	}
}

func mapObservation(item entities.Observation) httptransport.ObservationDTO {
	return httptransport.ObservationDTO{
		ObservationID: item.ObservationID,
		ItemID:        item.ItemID,
		Item:          item.ItemName,
		StoreID:       item.StoreID,
		LocationText:  item.LocationText,
		Amount:        item.Amount,
		SubmitterID:   item.SubmitterID,
		Status:        string(item.Status),
		SubmittedAt:   formatTime(item.SubmittedAt),
	}
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

func formatOptionalTime(value *time.Time) string {
	if value == nil {
		return ""
	}
	return formatTime(*value)
}
