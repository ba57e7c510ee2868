package transport

// Claims administration actions.
const (
	ClaimsActionSet    = "set"
	ClaimsActionRemove = "remove"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ClaimsRequest struct {
	UID          string `json:"uid" validate:"required"`
	Action       string `json:"action" validate:"required,oneof=set remove"`
	IsAdmin      bool   `json:"isAdmin"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
	// Revoke additionally records a revocation event so tokens already held
	// by the target stop verifying.
	Revoke bool `json:"revoke"`
}

type CourseRequest struct {
	Slug        string `json:"slug" validate:"omitempty,lowercase"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}

type TopicRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	Title    string `json:"title" validate:"required,max=200"`
	Position int    `json:"position" validate:"gte=0"`
}

type LessonRequest struct {
	TopicID     string `json:"topic_id" validate:"required"`
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content"`
	Position    int    `json:"position" validate:"gte=0"`
	CreditValue int    `json:"credit_value" validate:"gte=0,lte=100"`
}

type MentorApplyRequest struct {
	Statement string `json:"statement" validate:"required,min=40,max=4000"`
}

type MentorReviewRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
	Note   string `json:"note" validate:"max=2000"`
}

type UserRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,oneof=learner mentor admin"`
}
