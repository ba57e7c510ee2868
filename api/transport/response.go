package transport

import "encoding/json"

// Envelope is the standard API response wrapper used for both success and
// error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// SessionResponse is returned by login and refresh.
type SessionResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// MeResponse mirrors the verified session claims.
type MeResponse struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"isAdmin"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
}
