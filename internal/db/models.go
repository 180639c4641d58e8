package db

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Account is a pseudonymous identity: the hash column is a sha256 hex digest
// of a normalized nickname. The nickname itself is never stored.
type Account struct {
	Hash      string     `gorm:"primaryKey;size:64"`
	CreatedAt time.Time  `gorm:"not null"`
	Bookmarks []Bookmark `gorm:"foreignKey:AccountHash;references:Hash"`
}

type Bookmark struct {
	AccountHash string    `gorm:"primaryKey;size:64"`
	Slug        string    `gorm:"primaryKey;size:128"`
	CreatedAt   time.Time `gorm:"not null"`
}

type Submission struct {
	ID          uint           `gorm:"primaryKey"`
	Status      string         `gorm:"size:16;not null;default:pending;check:status IN ('pending','approved','rejected')"`
	CsnadesURL  string         `gorm:"size:512"`
	Slug        string         `gorm:"size:128"`
	MapName     string         `gorm:"size:32"`
	Side        string         `gorm:"size:4"`
	Data        datatypes.JSON `gorm:"type:text"`
	SubmittedAt time.Time      `gorm:"not null"`
	ReviewedAt  *time.Time
}

// FrameReport is a "displayed frame is offset" flag from a visitor.
type FrameReport struct {
	ID        uint      `gorm:"primaryKey"`
	Slug      string    `gorm:"size:128;not null"`
	FrameType string    `gorm:"size:16;not null;check:frame_type IN ('position','aim','result')"`
	Direction string    `gorm:"size:16;not null;check:direction IN ('earlier','later')"`
	CreatedAt time.Time `gorm:"not null"`
}

func (FrameReport) TableName() string {
	return "reports"
}

// LineupReport is a "this lineup is broken" flag from a visitor.
type LineupReport struct {
	ID        uint      `gorm:"primaryKey"`
	Slug      string    `gorm:"size:128;not null"`
	Reason    string    `gorm:"size:16;not null;check:reason IN ('outdated','doesnt_work','wrong_map','other')"`
	CreatedAt time.Time `gorm:"not null"`
}
