package postgresadapter

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"pricesaver/contexts/price-intelligence/catalog-service/domain/entities"
	domainerrors "pricesaver/contexts/price-intelligence/catalog-service/domain/errors"
)

type itemModel struct {
	ItemID      string `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex"`
	Category    string
	Description string
	CreatedAt   time.Time
}

func (itemModel) TableName() string { return "catalog_items" }

type storeModel struct {
	StoreID   string `gorm:"primaryKey"`
	Name      string
	Address   string
	Lat       *float64
	Lng       *float64
	CreatedAt time.Time
}

func (storeModel) TableName() string { return "stores" }

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateItem(ctx context.Context, item entities.Item) error {
	model := itemModel{
		ItemID:      item.ItemID,
		Name:        item.Name,
		Category:    item.Category,
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateItem
		}
		return err
	}
	return nil
}

func (r *Repository) GetItem(ctx context.Context, itemID string) (entities.Item, error) {
	var model itemModel
	err := r.db.WithContext(ctx).First(&model, "item_id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Item{}, domainerrors.ErrItemNotFound
	}
	if err != nil {
		return entities.Item{}, err
	}
	return mapItem(model), nil
}

func (r *Repository) ListItems(ctx context.Context) ([]entities.Item, error) {
	var models []itemModel
	if err := r.db.WithContext(ctx).Order("name asc").Find(&models).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Item, 0, len(models))
	for _, model := range models {
		items = append(items, mapItem(model))
	}
	return items, nil
}

func (r *Repository) CountItems(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&itemModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) FindItemIDByName(ctx context.Context, name string) (string, bool, error) {
	var model itemModel
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return model.ItemID, true, nil
}

func (r *Repository) CreateStore(ctx context.Context, store entities.Store) error {
	model := storeModel{
		StoreID:   store.StoreID,
		Name:      store.Name,
		Address:   store.Address,
		Lat:       store.Lat,
		Lng:       store.Lng,
		CreatedAt: store.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *Repository) GetStore(ctx context.Context, storeID string) (entities.Store, error) {
	var model storeModel
	err := r.db.WithContext(ctx).First(&model, "store_id = ?", storeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Store{}, domainerrors.ErrStoreNotFound
	}
	if err != nil {
		return entities.Store{}, err
	}
	return mapStore(model), nil
}

func (r *Repository) ListStores(ctx context.Context) ([]entities.Store, error) {
	var models []storeModel
	if err := r.db.WithContext(ctx).Order("name asc").Find(&models).Error; err != nil {
		return nil, err
	}
	stores := make([]entities.Store, 0, len(models))
	for _, model := range models {
		stores = append(stores, mapStore(model))
	}
	return stores, nil
}

func (r *Repository) StoreExists(ctx context.Context, storeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&storeModel{}).
		Where("store_id = ?", storeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func mapItem(model itemModel) entities.Item {
	return entities.Item{
		ItemID:      model.ItemID,
		Name:        model.Name,
		Category:    model.Category,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
	}
}

func mapStore(model storeModel) entities.Store {
	return entities.Store{
		StoreID:   model.StoreID,
		Name:      model.Name,
		Address:   model.Address,
		Lat:       model.Lat,
		Lng:       model.Lng,
		CreatedAt: model.CreatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
