package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"pricesaver/contexts/price-intelligence/catalog-service/application"
	"pricesaver/contexts/price-intelligence/catalog-service/domain/entities"
	httptransport "pricesaver/contexts/price-intelligence/catalog-service/transport/http"
)

type Handler struct {
	Service *application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateItemHandler(ctx context.Context, req httptransport.CreateItemRequest) (httptransport.CreateItemResponse, error) {
	item, err := h.Service.CreateItem(ctx, application.CreateItemInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		return httptransport.CreateItemResponse{}, err
	}
	return httptransport.CreateItemResponse{Item: mapItem(item)}, nil
}

func (h Handler) ListItemsHandler(ctx context.Context) (httptransport.ListItemsResponse, error) {
	items, err := h.Service.ListItems(ctx)
	if err != nil {
		return httptransport.ListItemsResponse{}, err
	}
	result := make([]httptransport.ItemDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapItem(item))
	}
	return httptransport.ListItemsResponse{Items: result}, nil
}

func (h Handler) CreateStoreHandler(ctx context.Context, req httptransport.CreateStoreRequest) (httptransport.CreateStoreResponse, error) {
	store, err := h.Service.CreateStore(ctx, application.CreateStoreInput{
		Name:    req.Name,
		Address: req.Address,
		Lat:     req.Lat,
		Lng:     req.Lng,
	})
	if err != nil {
		return httptransport.CreateStoreResponse{}, err
	}
	return httptransport.CreateStoreResponse{Store: mapStore(store)}, nil
}

func (h Handler) ListStoresHandler(ctx context.Context) (httptransport.ListStoresResponse, error) {
	stores, err := h.Service.ListStores(ctx)
	if err != nil {
		return httptransport.ListStoresResponse{}, err
	}
	result := make([]httptransport.StoreDTO, 0, len(stores))
	for _, store := range stores {
		result = append(result, mapStore(store))
	}
	return httptransport.ListStoresResponse{Items: result}, nil
}

func mapItem(item entities.Item) httptransport.ItemDTO {
	return httptransport.ItemDTO{
		ItemID:      item.ItemID,
		Name:        item.Name,
		Category:    item.Category,
		Description: item.Description,
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapStore(store entities.Store) httptransport.StoreDTO {
	return httptransport.StoreDTO{
		StoreID:   store.StoreID,
		Name:      store.Name,
		Address:   store.Address,
		Lat:       store.Lat,
		Lng:       store.Lng,
		CreatedAt: store.CreatedAt.UTC().Format(time.RFC3339),
	}
}
