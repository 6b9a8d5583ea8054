package entities

import "time"

// Wallet is the running cashback balance for one community member. Credits
// are written by the moderation approval flow; this service only reads.
type Wallet struct {
	UserID  string
	Balance float64
}

type LedgerEntry struct {
	EntryID   string
	UserID    string
	Amount    float64
	Reason    string
	CreatedAt time.Time
}
