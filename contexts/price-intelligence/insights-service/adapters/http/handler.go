package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"pricesaver/contexts/price-intelligence/insights-service/application"
	"pricesaver/contexts/price-intelligence/insights-service/ports"
	httptransport "pricesaver/contexts/price-intelligence/insights-service/transport/http"
)

const noDataMessage = "No recent prices found"

type Handler struct {
	Resolver application.ResolverService
	Heatmap  application.HeatmapService
	Logger   *slog.Logger
}

func (h Handler) SearchHandler(ctx context.Context, item string, windowDays int) (httptransport.SearchResponse, error) {
	result, err := h.Resolver.Cheapest(ctx, item, windowDays)
	if err != nil {
		return httptransport.SearchResponse{}, err
	}

	resp := httptransport.SearchResponse{
		Item:       result.Item,
		WindowDays: result.WindowDays,
	}
	if result.NoData {
		resp.Message = noDataMessage
		return resp, nil
	}

	cheapest := mapPriceEntry(*result.Cheapest)
	resp.Cheapest = &cheapest
	resp.Top5 = make([]httptransport.PriceEntryDTO, 0, len(result.Top5))
	for _, entry := range result.Top5 {
		resp.Top5 = append(resp.Top5, mapPriceEntry(entry))
	}
	return resp, nil
}

func (h Handler) HeatmapHandler(ctx context.Context, item string, windowDays int) (httptransport.HeatmapResponse, error) {
	snapshot, err := h.Heatmap.Generate(ctx, item, windowDays)
	if err != nil {
		return httptransport.HeatmapResponse{}, err
	}
	return mapSnapshot(snapshot), nil
}

func (h Handler) SnapshotHandler(ctx context.Context, item string) (httptransport.HeatmapResponse, error) {
	snapshot, err := h.Heatmap.Latest(ctx, item)
	if err != nil {
		return httptransport.HeatmapResponse{}, err
	}
	return mapSnapshot(snapshot), nil
}

func mapPriceEntry(entry application.PriceEntry) httptransport.PriceEntryDTO {
	dto := httptransport.PriceEntryDTO{
		LocationKey:  entry.LocationKey,
		LocationName: entry.LocationName,
		Price:        entry.Price,
		SubmittedAt:  entry.SubmittedAt.UTC().Format(time.RFC3339),
	}
	if entry.Store != nil {
		dto.Store = &httptransport.StoreDTO{
			StoreID: entry.Store.StoreID,
			Name:    entry.Store.Name,
			Lat:     entry.Store.Lat,
			Lng:     entry.Store.Lng,
		}
	}
	return dto
}

func mapSnapshot(snapshot ports.HeatmapSnapshot) httptransport.HeatmapResponse {
	locations := make([]httptransport.LocationStatDTO, 0, len(snapshot.Locations))
	for _, stat := range snapshot.Locations {
		locations = append(locations, httptransport.LocationStatDTO{
			Key:       stat.Key,
			Name:      stat.Name,
			StoreID:   stat.StoreID,
			Lat:       stat.Lat,
			Lng:       stat.Lng,
			Count:     stat.Count,
			AvgPrice:  stat.AvgPrice,
			MinPrice:  stat.MinPrice,
			MaxPrice:  stat.MaxPrice,
			Intensity: stat.Intensity,
		})
	}
	return httptransport.HeatmapResponse{
		Item:        snapshot.ItemName,
		WindowDays:  snapshot.WindowDays,
		GeneratedAt: snapshot.GeneratedAt.UTC().Format(time.RFC3339),
		Heatmap:     locations,
	}
}
