package domain

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ClaimsVersion is the current shape of the Claims record. Tokens carrying a
// different version are rejected during verification.
const ClaimsVersion = 1

// Claims are the provider-level privilege flags bound into session tokens.
// They are distinct from the persisted User roles and are mutated only
// through claims administration.
type Claims struct {
	Admin      bool `json:"admin"`
	SuperAdmin bool `json:"super_admin"`
	Version    int  `json:"ver"`
}

// Identity is the principal record held by the claims store. Applications
// authenticate against it; the persisted User record is a separate entity.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Claims       Claims    `json:"claims"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (i *Identity) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	i.PasswordHash = hash
	return nil
}

func (i *Identity) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(i.PasswordHash, []byte(pwd))
}
