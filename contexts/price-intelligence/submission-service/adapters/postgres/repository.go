package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"pricesaver/contexts/price-intelligence/submission-service/domain/entities"
	domainerrors "pricesaver/contexts/price-intelligence/submission-service/domain/errors"
	"pricesaver/contexts/price-intelligence/submission-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateDraft(ctx context.Context, draft entities.Draft) error {
	row := draftModelFromEntity(draft)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidDraftInput
		}
		return err
	}
	return nil
}

func (r *Repository) GetDraft(ctx context.Context, draftID string) (entities.Draft, error) {
	var row draftModel
	err := r.db.WithContext(ctx).
		Where("draft_id = ?", strings.TrimSpace(draftID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Draft{}, domainerrors.ErrDraftNotFound
		}
		return entities.Draft{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListDrafts(ctx context.Context, filter ports.DraftFilter) ([]entities.Draft, error) {
	tx := r.db.WithContext(ctx).Model(&draftModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var rows []draftModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Draft, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// FinalizeApproval applies the full approval fan-out in one transaction: the
// observation insert, the draft status flip, the reward credit, and the
// outbox row. The draft row is locked first so concurrent approvals of the
// same draft serialize and the loser sees the terminal status.
func (r *Repository) FinalizeApproval(ctx context.Context, approval ports.Approval) error {
	payload, err := json.Marshal(approval.Event)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current draftModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("draft_id = ?", approval.Draft.DraftID).
			First(&current).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrDraftNotFound
			}
			return err
		}
		if current.Status != string(entities.ReviewStatusPending) {
			return domainerrors.ErrDraftFinalized
		}

		observationRow := observationModelFromEntity(approval.Observation)
		if err := tx.Create(&observationRow).Error; err != nil {
			return err
		}

		if err := tx.Model(&draftModel{}).
			Where("draft_id = ?", approval.Draft.DraftID).
			Updates(draftUpdatesFromEntity(approval.Draft)).
			Error; err != nil {
			return err
		}

		if approval.Reward != nil {
			wallet := walletModel{
				UserID:    approval.Reward.UserID,
				Balance:   approval.Reward.Amount,
				UpdatedAt: approval.Reward.CreatedAt.UTC(),
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"balance":    gorm.Expr("reward_wallets.balance + ?", approval.Reward.Amount),
					"updated_at": approval.Reward.CreatedAt.UTC(),
				}),
			}).Create(&wallet).Error; err != nil {
				return err
			}

			ledgerRow := ledgerModelFromEntity(*approval.Reward)
			if err := tx.Create(&ledgerRow).Error; err != nil {
				return err
			}
		}

		outboxRow := outboxModel{
			OutboxID:  approval.Event.EventID,
			EventType: approval.Event.EventType,
			Payload:   payload,
			Status:    outboxStatusPending,
			CreatedAt: approval.Event.OccurredAt.UTC(),
		}
		return tx.Create(&outboxRow).Error
	})
}

func (r *Repository) FinalizeRejection(ctx context.Context, draft entities.Draft) error {
	result := r.db.WithContext(ctx).
		Model(&draftModel{}).
		Where("draft_id = ?", draft.DraftID).
		Where("status = ?", string(entities.ReviewStatusPending)).
		Updates(draftUpdatesFromEntity(draft))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing draft from one already finalized.
		if _, err := r.GetDraft(ctx, draft.DraftID); err != nil {
			return err
		}
		return domainerrors.ErrDraftFinalized
	}
	return nil
}

func (r *Repository) ListObservations(ctx context.Context, filter ports.ObservationFilter) ([]entities.Observation, error) {
	tx := r.db.WithContext(ctx).Model(&observationModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var rows []observationModel
	if err := tx.Order("submitted_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Observation, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   append([]byte(nil), row.Payload...),
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrDraftNotFound
	}
	return nil
}

type draftModel struct {
	DraftID        string     `gorm:"column:draft_id;primaryKey"`
	ItemName       string     `gorm:"column:item_name"`
	ParsedPrice    *float64   `gorm:"column:parsed_price"`
	ProofRef       string     `gorm:"column:proof_ref"`
	SubmitterID    string     `gorm:"column:submitter_id"`
	LocationText   string     `gorm:"column:location_text"`
	Status         string     `gorm:"column:status"`
	ModeratorNotes string     `gorm:"column:moderator_notes"`
	ObservationID  string     `gorm:"column:observation_id"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	ReviewedAt     *time.Time `gorm:"column:reviewed_at"`
}

func (draftModel) TableName() string {
	return "price_drafts"
}

func draftModelFromEntity(item entities.Draft) draftModel {
	return draftModel{
		DraftID:        strings.TrimSpace(item.DraftID),
		ItemName:       strings.TrimSpace(item.ItemName),
		ParsedPrice:    item.ParsedPrice,
		ProofRef:       strings.TrimSpace(item.ProofRef),
		SubmitterID:    strings.TrimSpace(item.SubmitterID),
		LocationText:   strings.TrimSpace(item.LocationText),
		Status:         string(item.Status),
		ModeratorNotes: strings.TrimSpace(item.ModeratorNotes),
		ObservationID:  strings.TrimSpace(item.ObservationID),
		CreatedAt:      item.CreatedAt.UTC(),
		ReviewedAt:     normalizeOptionalTime(item.ReviewedAt),
	}
}

func draftUpdatesFromEntity(item entities.Draft) map[string]any {
	row := draftModelFromEntity(item)
	return map[string]any{
		"status":          row.Status,
		"moderator_notes": row.ModeratorNotes,
		"observation_id":  row.ObservationID,
		"reviewed_at":     row.ReviewedAt,
	}
}

func (m draftModel) toEntity() entities.Draft {
	return entities.Draft{
		DraftID:        m.DraftID,
		ItemName:       m.ItemName,
		ParsedPrice:    m.ParsedPrice,
		ProofRef:       m.ProofRef,
		SubmitterID:    m.SubmitterID,
		LocationText:   m.LocationText,
		Status:         entities.ReviewStatus(m.Status),
		ModeratorNotes: m.ModeratorNotes,
		ObservationID:  m.ObservationID,
		CreatedAt:      m.CreatedAt.UTC(),
		ReviewedAt:     normalizeOptionalTime(m.ReviewedAt),
	}
}

type observationModel struct {
	ObservationID string    `gorm:"column:observation_id;primaryKey"`
	ItemID        string    `gorm:"column:item_id"`
	ItemName      string    `gorm:"column:item_name"`
	StoreID       string    `gorm:"column:store_id"`
	LocationText  string    `gorm:"column:location_text"`
	Amount        float64   `gorm:"column:amount"`
	SubmitterID   string    `gorm:"column:submitter_id"`
	Status        string    `gorm:"column:status"`
	SubmittedAt   time.Time `gorm:"column:submitted_at"`
}

func (observationModel) TableName() string {
	return "price_observations"
}

func observationModelFromEntity(item entities.Observation) observationModel {
	return observationModel{
		ObservationID: strings.TrimSpace(item.ObservationID),
		ItemID:        strings.TrimSpace(item.ItemID),
		ItemName:      strings.TrimSpace(item.ItemName),
		StoreID:       strings.TrimSpace(item.StoreID),
		LocationText:  strings.TrimSpace(item.LocationText),
		Amount:        item.Amount,
		SubmitterID:   strings.TrimSpace(item.SubmitterID),
		Status:        string(item.Status),
		SubmittedAt:   item.SubmittedAt.UTC(),
	}
}

func (m observationModel) toEntity() entities.Observation {
	return entities.Observation{
		ObservationID: m.ObservationID,
		ItemID:        m.ItemID,
		ItemName:      m.ItemName,
		StoreID:       m.StoreID,
		LocationText:  m.LocationText,
		Amount:        m.Amount,
		SubmitterID:   m.SubmitterID,
		Status:        entities.ReviewStatus(m.Status),
		SubmittedAt:   m.SubmittedAt.UTC(),
	}
}

type walletModel struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Balance   float64   `gorm:"column:balance"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (walletModel) TableName() string {
	return "reward_wallets"
}

type ledgerModel struct {
	EntryID   string    `gorm:"column:entry_id;primaryKey"`
	UserID    string    `gorm:"column:user_id"`
	Amount    float64   `gorm:"column:amount"`
	Reason    string    `gorm:"column:reason"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (ledgerModel) TableName() string {
	return "reward_ledger"
}

func ledgerModelFromEntity(item entities.LedgerEntry) ledgerModel {
	return ledgerModel{
		EntryID:   strings.TrimSpace(item.EntryID),
		UserID:    strings.TrimSpace(item.UserID),
		Amount:    item.Amount,
		Reason:    strings.TrimSpace(item.Reason),
		CreatedAt: item.CreatedAt.UTC(),
	}
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "price_outbox"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
