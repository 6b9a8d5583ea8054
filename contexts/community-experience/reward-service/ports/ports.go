package ports

import (
	"context"

	"pricesaver/contexts/community-experience/reward-service/domain/entities"
)

type Repository interface {
	// GetWallet returns a zero-balance wallet for users with no credits yet.
	GetWallet(ctx context.Context, userID string) (entities.Wallet, error)
	ListLedger(ctx context.Context, userID string, limit int) ([]entities.LedgerEntry, error)
}
