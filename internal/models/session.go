package models

import "time"

// Session is an authenticated admin session held in the in-memory table.
type Session struct {
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}
