package models

import "strconv"

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don’t expose hash
}

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// Name is the identity recorded on transactions.
func (p Principal) Name() string {
	if p.Username != "" {
		return p.Username
	}
	return "user:" + strconv.Itoa(p.UserID)
}
