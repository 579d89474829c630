// Package models defines client-side data models used by the gophchat CLI.
package models

import "encoding/json"

// UserProfile is the snapshot of the signed-in account returned by the
// backend profile endpoint. It is always replaced as a whole.
type UserProfile struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	IsEmailVerified bool   `json:"isEmailVerified"`
}

// UnmarshalJSON accepts the field spellings used by different backend
// versions: "_id"/"userId" for the id and "isAccountVerified" for the
// verification flag.
func (u *UserProfile) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID                string `json:"id"`
		MongoID           string `json:"_id"`
		UserID            string `json:"userId"`
		Name              string `json:"name"`
		Email             string `json:"email"`
		IsEmailVerified   *bool  `json:"isEmailVerified"`
		IsAccountVerified *bool  `json:"isAccountVerified"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*u = UserProfile{Name: raw.Name, Email: raw.Email}
	switch {
	case raw.ID != "":
		u.ID = raw.ID
	case raw.MongoID != "":
		u.ID = raw.MongoID
	default:
		u.ID = raw.UserID
	}
	switch {
	case raw.IsEmailVerified != nil:
		u.IsEmailVerified = *raw.IsEmailVerified
	case raw.IsAccountVerified != nil:
		u.IsEmailVerified = *raw.IsAccountVerified
	}
	return nil
}

// Clone returns an independent copy, nil-safe.
func (u *UserProfile) Clone() *UserProfile {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (u *UserProfile) String() string {
	if u == nil {
		return "<anonymous>"
	}
	if u.Name == "" {
		return u.Email
	}
	return u.Name + " <" + u.Email + ">"
}
