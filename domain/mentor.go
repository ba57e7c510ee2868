package domain

import "time"

// Mentor application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// MentorApplication tracks a learner's request to become a mentor.
type MentorApplication struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Statement  string    `json:"statement"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	ReviewedBy string    `json:"reviewed_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (a *MentorApplication) IsOpen() bool {
	return a != nil && a.Status == ApplicationPending
}
