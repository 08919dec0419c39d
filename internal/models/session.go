package models

import (
	"time"
)

// Session holds one upload and the filter state its owner has selected.
// Dataset contents are immutable; only Filter and LastSeenAt change.
type Session struct {
	ID         string      `json:"session_id"`
	Filename   string      `json:"filename,omitempty"`
	Accounts   []Account   `json:"-"`
	Anomalies  []Anomaly   `json:"-"`
	Filter     FilterState `json:"filter"`
	CreatedAt  time.Time   `json:"created_at"`
	LastSeenAt time.Time   `json:"last_seen_at"`
}
