package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"pricesaver/contexts/community-experience/reward-service/application/queries"
	httptransport "pricesaver/contexts/community-experience/reward-service/transport/http"
)

type Handler struct {
	Queries queries.WalletQueryUseCase
	Logger  *slog.Logger
}

func (h Handler) BalanceHandler(ctx context.Context, userID string) (httptransport.BalanceResponse, error) {
	wallet, err := h.Queries.Balance(ctx, userID)
	if err != nil {
		return httptransport.BalanceResponse{}, err
	}
	return httptransport.BalanceResponse{
		UserID:  wallet.UserID,
		Balance: wallet.Balance,
	}, nil
}

func (h Handler) LedgerHandler(ctx context.Context, userID string, limit int) (httptransport.LedgerResponse, error) {
	entries, err := h.Queries.Ledger(ctx, userID, limit)
	if err != nil {
		return httptransport.LedgerResponse{}, err
	}
	result := make([]httptransport.LedgerEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, httptransport.LedgerEntryDTO{
			EntryID:   entry.EntryID,
			Amount:    entry.Amount,
			Reason:    entry.Reason,
			CreatedAt: entry.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.LedgerResponse{UserID: userID, Entries: result}, nil
}
