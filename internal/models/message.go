// Package models contains the data models for the Guestbook API
package models

import "time"

// Message is a single guestbook entry as persisted on disk. The submitter
// token is a write capability, it exists only in storage and must never
// appear on any read path.
type Message struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Body           string `json:"message"`
	Date           string `json:"date"`
	Timestamp      int64  `json:"timestamp"`
	SubmitterToken string `json:"submitterToken,omitempty"`
	Edited         bool   `json:"edited,omitempty"`
	EditedDate     string `json:"editedDate,omitempty"`
}

// Public returns a copy of the message safe for API responses, with the
// submitter token stripped.
func (m Message) Public() Message {
	m.SubmitterToken = ""
	return m
}

// CreatedAt returns the creation time derived from the millisecond timestamp.
func (m Message) CreatedAt() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// Pagination describes one page of the message collection.
type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalMessages int  `json:"totalMessages"`
	HasNext       bool `json:"hasNext"`
	HasPrev       bool `json:"hasPrev"`
}
