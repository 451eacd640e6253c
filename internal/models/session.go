package models

import "time"

// Session stores issued login sessions (for logout, invalidation, cleanup).
// The token is an opaque random 256-bit value, hex encoded, carried by the
// client as a cookie. A session is never mutated after creation.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"` // UUID
	Token     string    `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index;not null"`
}

// Valid reports whether the session is still usable at the given time.
// Expiry is strict: a session whose ExpiresAt equals now is already expired.
func (s *Session) Valid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
