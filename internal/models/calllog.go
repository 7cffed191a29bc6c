package models

import "time"

// CallLogEntry records one handled request. Entries are written to an
// append-only external store and never read back by this service.
type CallLogEntry struct {
	UserID    string      `json:"user-id"`
	RequestID string      `json:"request-id"`
	Type      RequestType `json:"type"`
	Body      string      `json:"body"`
	Msg       string      `json:"msg"`
	CreatedAt time.Time   `json:"created_at"`
}
