package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence. Table names follow the original schema.

type UserModel struct {
	ID           int64      `gorm:"primaryKey"`
	UUID         string     `gorm:"type:uuid;uniqueIndex;not null"`
	Email        *string    `gorm:"uniqueIndex"`
	PasswordHash *string    `gorm:"column:password"`
	IsAnonymous  bool       `gorm:"not null;default:true"`
	DisplayName  string     `gorm:"size:100"`
	IsActive     bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
	LastLoginAt  *time.Time
}

func (UserModel) TableName() string { return "users" }

type JournalModel struct {
	ID        int64          `gorm:"primaryKey"`
	UserID    int64          `gorm:"not null;index"`
	Title     string         `gorm:"size:200"`
	Content   string         `gorm:"type:text;not null"`
	Mood      string         `gorm:"size:50"`
	MoodScore *int
	Tags      datatypes.JSON
	IsPrivate bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (JournalModel) TableName() string { return "journals" }

type ProgressModel struct {
	ID              int64  `gorm:"primaryKey"`
	UserID          int64  `gorm:"not null;index"`
	GoalType        string `gorm:"size:100;not null"`
	GoalTitle       string `gorm:"size:200;not null"`
	GoalDescription string `gorm:"type:text"`
	TargetValue     *float64
	CurrentValue    float64   `gorm:"not null;default:0"`
	Unit            string    `gorm:"size:50"`
	Status          string    `gorm:"size:20;not null;default:'active'"`
	StartDate       time.Time `gorm:"not null"`
	TargetDate      *time.Time
	CompletedAt     *time.Time
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (ProgressModel) TableName() string { return "progress" }

type MediaFileModel struct {
	ID               int64  `gorm:"primaryKey"`
	UserID           int64  `gorm:"not null;index"`
	Filename         string `gorm:"size:255;uniqueIndex;not null"`
	OriginalName     string `gorm:"size:255;not null"`
	MimeType         string `gorm:"size:100;not null"`
	FileSize         int64  `gorm:"not null"`
	FilePath         string `gorm:"size:500;not null"`
	FileType         string `gorm:"size:20;not null"`
	Duration         *float64
	IsPublic         bool `gorm:"not null;default:false"`
	RelatedJournalID *int64
	CreatedAt        time.Time `gorm:"not null"`
}

func (MediaFileModel) TableName() string { return "media_files" }

type ChatSessionModel struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"not null;index"`
	SessionTitle string    `gorm:"size:200"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (ChatSessionModel) TableName() string { return "chat_sessions" }

type ChatMessageModel struct {
	ID        int64          `gorm:"primaryKey"`
	SessionID int64          `gorm:"not null;index"`
	Role      string         `gorm:"size:20;not null"`
	Content   string         `gorm:"type:text;not null"`
	Metadata  datatypes.JSON
	CreatedAt time.Time      `gorm:"not null;index"`
}

func (ChatMessageModel) TableName() string { return "chat_messages" }
