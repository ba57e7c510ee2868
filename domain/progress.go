package domain

import "time"

// Completion records that a user finished a lesson. At most one completion
// exists per user and lesson.
type Completion struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	LessonID       string    `json:"lesson_id"`
	CreditsAwarded int       `json:"credits_awarded"`
	CompletedAt    time.Time `json:"completed_at"`
}

// CreditEntry is a single ledger line. Entries are append-only.
type CreditEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	LessonID  string    `json:"lesson_id,omitempty"`
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// CreditSummary is the derived view of a user's ledger.
type CreditSummary struct {
	UserID  string        `json:"user_id"`
	Balance int           `json:"balance"`
	Entries []CreditEntry `json:"entries"`
}
