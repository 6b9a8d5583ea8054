package http

type BalanceResponse struct {
	UserID  string  `json:"user_id"`
	Balance float64 `json:"balance"`
}

type LedgerEntryDTO struct {
	EntryID   string  `json:"entry_id"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
	CreatedAt string  `json:"created_at"`
}

type LedgerResponse struct {
	UserID  string           `json:"user_id"`
	Entries []LedgerEntryDTO `json:"entries"`
}
