package entities

import (
	"strings"
	"time"
)

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Draft is a pending, unmoderated price submission. It stays owned by the
// submitter until moderation flips it to a terminal status; after that it is
// retained as an audit record and never mutated again.
type Draft struct {
	DraftID        string
	ItemName       string
	ParsedPrice    *float64
	ProofRef       string // opaque handle to the uploaded proof artifact
	SubmitterID    string
	LocationText   string
	Status         ReviewStatus
	ModeratorNotes string
	ObservationID  string
	CreatedAt      time.Time
	ReviewedAt     *time.Time
}

func (d Draft) ValidateCreate() bool {
	if strings.TrimSpace(d.ItemName) == "" {
		return false
	}
	if d.ParsedPrice != nil && *d.ParsedPrice <= 0 {
		return false
	}
	return true
}

// Finalized reports whether the draft has left pending. The transition is
// one-way: a finalized draft never returns to pending.
func (d Draft) Finalized() bool {
	return d.Status != ReviewStatusPending
}

// Observation is a moderated, approved price record. Resolvers and the
// heatmap only ever read approved observations.
type Observation struct {
	ObservationID string
	ItemID        string // optional catalog link
	ItemName      string
	StoreID       string // optional registered store
	LocationText  string
	Amount        float64
	SubmitterID   string
	Status        ReviewStatus
	SubmittedAt   time.Time
}

// LedgerEntry records a reward credit. Entries are created only inside the
// approval transaction and are immutable once written.
type LedgerEntry struct {
	EntryID   string
	UserID    string
	Amount    float64
	Reason    string
	CreatedAt time.Time
}
