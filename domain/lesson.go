package domain

import "time"

// Lesson is the atomic unit of progression. Completing it accrues
// CreditValue to the learner's ledger.
type Lesson struct {
	ID          string    `json:"id"`
	TopicID     string    `json:"topic_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content,omitempty"`
	Position    int       `json:"position"`
	CreditValue int       `json:"credit_value"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
