package domain

import "time"

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
)

type MediaType string

const (
	MediaAudio MediaType = "audio"
	MediaVideo MediaType = "video"
)

// Message roles within a chat session.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// User supports both anonymous and email-based accounts. Anonymous users carry
// no email or password hash and can later be converted in place.
type User struct {
	ID           int64      `json:"id"`
	UUID         string     `json:"uuid"`
	Email        string     `json:"email,omitempty"`
	PasswordHash string     `json:"-"`
	DisplayName  string     `json:"displayName,omitempty"`
	IsAnonymous  bool       `json:"isAnonymous"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

type Journal struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	MoodScore *int      `json:"moodScore,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	IsPrivate bool      `json:"isPrivate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProgressGoal struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"-"`
	GoalType        string     `json:"goalType"`
	GoalTitle       string     `json:"goalTitle"`
	GoalDescription string     `json:"goalDescription,omitempty"`
	TargetValue     *float64   `json:"targetValue,omitempty"`
	CurrentValue    float64    `json:"currentValue"`
	Unit            string     `json:"unit,omitempty"`
	Status          GoalStatus `json:"status"`
	StartDate       time.Time  `json:"startDate"`
	TargetDate      *time.Time `json:"targetDate,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// MediaFile is the metadata row for an uploaded blob. Filename is the
// generated storage name and the only externally addressable identifier for
// streaming; FilePath records where the backing blob lives.
type MediaFile struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"-"`
	Filename         string    `json:"filename"`
	OriginalName     string    `json:"originalName"`
	MimeType         string    `json:"mimeType"`
	FileSize         int64     `json:"fileSize"`
	FilePath         string    `json:"-"`
	FileType         MediaType `json:"fileType"`
	Duration         *float64  `json:"duration,omitempty"`
	IsPublic         bool      `json:"isPublic"`
	RelatedJournalID *int64    `json:"relatedJournalId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type ChatSession struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"-"`
	SessionTitle string    `json:"sessionTitle,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ChatMessage struct {
	ID        int64          `json:"id"`
	SessionID int64          `json:"-"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}
