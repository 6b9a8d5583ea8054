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

type SubmitDraftRequest struct {
	Item         string   `json:"item"`
	ParsedPrice  *float64 `json:"parsed_price,omitempty"`
	LocationText string   `json:"location_text,omitempty"`
	SubmitterID  string   `json:"submitter_id,omitempty"`
	ProofRef     string   `json:"proof_ref,omitempty"`
}

type ApproveDraftRequest struct {
	StoreID string `json:"store_id,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

type RejectDraftRequest struct {
	Reason string `json:"reason,omitempty"`
}

type DraftDTO struct {
	DraftID        string   `json:"draft_id"`
	Item           string   `json:"item"`
	ParsedPrice    *float64 `json:"parsed_price,omitempty"`
	ProofRef       string   `json:"proof_ref,omitempty"`
	SubmitterID    string   `json:"submitter_id,omitempty"`
	LocationText   string   `json:"location_text,omitempty"`
	Status         string   `json:"status"`
	ModeratorNotes string   `json:"moderator_notes,omitempty"`
	ObservationID  string   `json:"observation_id,omitempty"`
	CreatedAt      string   `json:"created_at"`
	ReviewedAt     string   `json:"reviewed_at,omitempty"`
}

type ObservationDTO struct {
	ObservationID string  `json:"observation_id"`
	ItemID        string  `json:"item_id,omitempty"`
	Item          string  `json:"item"`
	StoreID       string  `json:"store_id,omitempty"`
	LocationText  string  `json:"location_text,omitempty"`
	Amount        float64 `json:"amount"`
	SubmitterID   string  `json:"submitter_id,omitempty"`
	Status        string  `json:"status"`
	SubmittedAt   string  `json:"submitted_at"`
}

type SubmitDraftResponse struct {
	Draft DraftDTO `json:"draft"`
}

type GetDraftResponse struct {
	Draft DraftDTO `json:"draft"`
}

type ListDraftsResponse struct {
	Items []DraftDTO `json:"items"`
}

type ApproveDraftResponse struct {
	Status      string         `json:"status"`
	Observation ObservationDTO `json:"observation"`
}

type RejectDraftResponse struct {
	Status string   `json:"status"`
	Draft  DraftDTO `json:"draft"`
}

type ListObservationsResponse struct {
	Items []ObservationDTO `json:"items"`
}
