package entity

import "time"

// Session is the server-held cache of an authenticated caller's profile,
// distinct from the persisted User record. It is created at login, mutated in
// place when the profile changes, and destroyed at logout. At most one Session
// exists per caller key.
type Session struct {
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewSession builds a session from a profile snapshot.
func NewSession(profile *Profile) *Session {
	return &Session{
		Profile:   *profile,
		CreatedAt: time.Now(),
	}
}
