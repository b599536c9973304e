package models

import (
	"time"

	"github.com/google/uuid"
)

// Contest is a single programming contest pulled from one of the
// supported platforms. (Title, Platform) is the natural key: re-ingesting
// the same contest updates the existing row instead of inserting a new one.
type Contest struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"_id"`
	Title        string    `gorm:"not null;uniqueIndex:idx_contests_title_platform" json:"title"`
	Platform     string    `gorm:"not null;uniqueIndex:idx_contests_title_platform" json:"platform"`
	StartTime    time.Time `gorm:"not null;index" json:"start_time"`
	Duration     int       `gorm:"not null" json:"duration"`
	URL          string    `gorm:"not null" json:"url"`
	Past         bool      `gorm:"default:false" json:"past"`
	SolutionLink string    `json:"solution_link,omitempty"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
