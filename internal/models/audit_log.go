package models

import "time"

// AuditLog records authenticated API requests.
type AuditLog struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"size:64;index"`
	Method    string `gorm:"size:8"`
	Path      string `gorm:"size:255"`
	Status    int
	IP        string `gorm:"size:64"`
	UserAgent string `gorm:"size:255"`
	CreatedAt time.Time
}
