package models

import "time"

type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	PasswordSalt  string    `json:"-"`
	PictureURL    string    `json:"pictureUrl"`
	IsAdmin       bool      `json:"isAdmin"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// PublicUser is the shape returned by user creation and login, with the
// credential columns stripped.
type PublicUser struct {
	Email      string `json:"email"`
	PictureURL string `json:"pictureUrl"`
	IsAdmin    bool   `json:"isAdmin"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		Email:      u.Email,
		PictureURL: u.PictureURL,
		IsAdmin:    u.IsAdmin,
	}
}
