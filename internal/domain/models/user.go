package model

// User is the identity resolved from a request credential.
type User struct {
	ID       int64  `json:"userId"`
	Nickname string `json:"nickname"`
	Interest string `json:"interest"`
}
