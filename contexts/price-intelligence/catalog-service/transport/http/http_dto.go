package http

type CreateItemRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

type CreateStoreRequest struct {
	Name    string   `json:"name"`
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

type ItemDTO struct {
	ItemID      string `json:"item_id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type StoreDTO struct {
	StoreID   string   `json:"store_id"`
	Name      string   `json:"name"`
	Address   string   `json:"address,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	CreatedAt string   `json:"created_at"`
}

type CreateItemResponse struct {
	Item ItemDTO `json:"item"`
}

type ListItemsResponse struct {
	Items []ItemDTO `json:"items"`
}

type CreateStoreResponse struct {
	Store StoreDTO `json:"store"`
}

type ListStoresResponse struct {
	Items []StoreDTO `json:"items"`
}
