package domain

import "time"

// User is an account that owns a public link page.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	DisplayName  string    `json:"display_name"`
	Bio          string    `json:"bio"`
	AvatarURL    string    `json:"avatar_url"`
	Theme        string    `json:"theme"`
	CreatedAt    time.Time `json:"created_at"`
}

// DisplayLabel is what the public page shows as the headline name.
func (u *User) DisplayLabel() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return "@" + u.Username
}

// ReservedUsernames collide with application routes and are never
// resolvable as public profiles.
var ReservedUsernames = []string{
	"api", "dashboard", "login", "register", "settings",
	"about", "contact", "help", "pricing", "blog",
}

// IsReservedUsername reports whether name is routed by the application
// itself. forRegistration additionally blocks "admin", which is kept out
// of registration but is not a route.
func IsReservedUsername(name string, forRegistration bool) bool {
	if forRegistration && name == "admin" {
		return true
	}
	for _, r := range ReservedUsernames {
		if name == r {
			return true
		}
	}
	return false
}
