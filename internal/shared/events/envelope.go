package events

// Event types double as broker topics; the relay publishes each envelope on
// the topic named by its type.
const TypePriceApproved = "price.approved"

// PriceApprovedPayload is the payload carried by price.approved envelopes.
// Downstream consumers decode this, so field changes need a version bump on
// the producing side.
type PriceApprovedPayload struct {
	ObservationID string  `json:"observation_id"`
	DraftID       string  `json:"draft_id"`
	ItemName      string  `json:"item_name"`
	Location      string  `json:"location"`
	Amount        float64 `json:"amount"`
	SubmitterID   string  `json:"submitter_id,omitempty"`
}
