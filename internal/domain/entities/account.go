package entities

import "time"

// Profile is the backend account identity returned on login and register.
type Profile struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Account binds a Telegram user to a KeyCards credential.
type Account struct {
	UserID     int64
	ChatID     int64
	Email      string
	Name       string
	Token      string
	LoggedInAt time.Time
}
