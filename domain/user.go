package domain

import "time"

// Persisted user roles. These drive feature-level authorization and are kept
// deliberately separate from the identity's provider claims.
const (
	RoleLearner = "learner"
	RoleMentor  = "mentor"
	RoleAdmin   = "admin"
)

// AllRoles lists every role a persisted user record may carry.
var AllRoles = []string{RoleLearner, RoleMentor, RoleAdmin}

// ValidRole reports whether role is a known role value.
func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is the application's own record of a member, keyed by the identity id.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsActive() bool {
	return u != nil && u.Status == "active"
}

func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user's role set intersects the given set.
// An empty set means any authenticated user qualifies.
func (u *User) HasAnyRole(roles ...string) bool {
	if len(roles) == 0 {
		return u != nil
	}
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}
