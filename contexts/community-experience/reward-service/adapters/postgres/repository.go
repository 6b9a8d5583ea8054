package postgresadapter

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"pricesaver/contexts/community-experience/reward-service/domain/entities"
)

type walletModel struct {
	UserID  string `gorm:"primaryKey"`
	Balance float64
}

func (walletModel) TableName() string { return "reward_wallets" }

type ledgerModel struct {
	EntryID   string `gorm:"primaryKey"`
	UserID    string
	Amount    float64
	Reason    string
	CreatedAt time.Time
}

func (ledgerModel) TableName() string { return "reward_ledger" }

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetWallet(ctx context.Context, userID string) (entities.Wallet, error) {
	var model walletModel
	err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Never-credited users read as a zero balance.
		return entities.Wallet{UserID: userID, Balance: 0}, nil
	}
	if err != nil {
		return entities.Wallet{}, err
	}
	return entities.Wallet{UserID: model.UserID, Balance: model.Balance}, nil
}

func (r *Repository) ListLedger(ctx context.Context, userID string, limit int) ([]entities.LedgerEntry, error) {
	var models []ledgerModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entries := make([]entities.LedgerEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, entities.LedgerEntry{
			EntryID:   model.EntryID,
			UserID:    model.UserID,
			Amount:    model.Amount,
			Reason:    model.Reason,
			CreatedAt: model.CreatedAt,
		})
	}
	return entries, nil
}
