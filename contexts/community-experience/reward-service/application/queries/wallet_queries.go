package queries

import (
	"context"
	"log/slog"
	"strings"

	"pricesaver/contexts/community-experience/reward-service/domain/entities"
	domainerrors "pricesaver/contexts/community-experience/reward-service/domain/errors"
	"pricesaver/contexts/community-experience/reward-service/ports"
)

const defaultLedgerLimit = 50

type WalletQueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u WalletQueryUseCase) Balance(ctx context.Context, userID string) (entities.Wallet, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Wallet{}, domainerrors.ErrInvalidUserID
	}
	return u.Repository.GetWallet(ctx, userID)
}

func (u WalletQueryUseCase) Ledger(ctx context.Context, userID string, limit int) ([]entities.LedgerEntry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domainerrors.ErrInvalidUserID
	}
	if limit <= 0 || limit > defaultLedgerLimit {
		limit = defaultLedgerLimit
	}
	entries, err := u.Repository.ListLedger(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	u.resolveLogger().Debug("ledger queried",
		slog.String("event", "reward_ledger_queried"),
		slog.String("module", "reward-service"),
		slog.String("layer", "application"),
		slog.Int("entries", len(entries)),
	)

	return entries, nil
}

func (u WalletQueryUseCase) resolveLogger() *slog.Logger {
	if u.Logger != nil {
		return u.Logger
	}
	return slog.Default()
}
