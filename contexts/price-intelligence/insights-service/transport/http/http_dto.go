package http

type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Status    string    `json:"status"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

type StoreDTO struct {
	StoreID string   `json:"id"`
	Name    string   `json:"name"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

type PriceEntryDTO struct {
	LocationKey  string    `json:"location_key"`
	LocationName string    `json:"location_name"`
	Price        float64   `json:"price"`
	Store        *StoreDTO `json:"store,omitempty"`
	SubmittedAt  string    `json:"submitted_at"`
}

type SearchResponse struct {
	Item       string          `json:"item"`
	WindowDays int             `json:"window_days"`
	Cheapest   *PriceEntryDTO  `json:"cheapest"`
	Top5       []PriceEntryDTO `json:"top5,omitempty"`
	Message    string          `json:"message,omitempty"`
}

type LocationStatDTO struct {
	Key       string   `json:"key"`
	Name      string   `json:"name"`
	StoreID   string   `json:"store_id,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	Count     int      `json:"count"`
	AvgPrice  float64  `json:"avg_price"`
	MinPrice  float64  `json:"min_price"`
	MaxPrice  float64  `json:"max_price"`
	Intensity float64  `json:"intensity"`
}

type HeatmapResponse struct {
	Item        string            `json:"item"`
	WindowDays  int               `json:"window_days"`
	GeneratedAt string            `json:"generated_at"`
	Heatmap     []LocationStatDTO `json:"heatmap"`
}
