// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Gender encodes the user's declared gender using the wire values
// 1=male, 2=female, 3=undisclosed.
type Gender int

const (
	GenderMale        Gender = 1
	GenderFemale      Gender = 2
	GenderUndisclosed Gender = 3
)

// Valid reports whether the value is one of the known gender codes.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderUndisclosed
}

// User is the persisted account record. UserName is globally unique and
// immutable after creation. Password always holds the hashed representation,
// never the plaintext secret.
type User struct {
	ID        int64     // Surrogate key assigned by the store.
	UserName  string    // Unique login identifier, immutable after creation.
	Password  string    // Hashed credential. Never exposed outside the repository and service layers.
	NickName  string    // Display name, defaults to UserName at registration.
	Gender    Gender    // Declared gender, defaults to GenderUndisclosed.
	City      string    // Optional city field.
	Avatar    string    // Optional avatar URI.
	CreatedAt time.Time // Timestamp of when this account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this account.
}

// Profile is the public view of a User and doubles as the per-caller session
// snapshot. It deliberately has no credential field.
type Profile struct {
	UserName string `json:"userName"`
	NickName string `json:"nickName"`
	Gender   Gender `json:"gender"`
	City     string `json:"city,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// ToProfile strips the credential and returns the public snapshot of the user.
func (u *User) ToProfile() *Profile {
	return &Profile{
		UserName: u.UserName,
		NickName: u.NickName,
		Gender:   u.Gender,
		City:     u.City,
		Avatar:   u.Avatar,
	}
}
