package store

import (
	"errors"
	"time"

	"youthwell/pkg/domain"
)

// ErrNotFound is returned when a row does not exist or belongs to another
// user. Callers must not be able to tell the two cases apart.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when a unique email constraint is violated.
var ErrEmailTaken = errors.New("email already exists")

// UserUpdate carries partial user mutations; nil fields are left untouched.
type UserUpdate struct {
	Email        *string
	PasswordHash *string
	DisplayName  *string
	IsAnonymous  *bool
	IsActive     *bool
	LastLoginAt  *time.Time
}

type JournalUpdate struct {
	Title     *string
	Content   *string
	Mood      *string
	MoodScore *int
	Tags      *[]string
	IsPrivate *bool
}

type ProgressUpdate struct {
	GoalTitle       *string
	GoalDescription *string
	TargetValue     *float64
	CurrentValue    *float64
	Unit            *string
	Status          *domain.GoalStatus
	TargetDate      *time.Time
	CompletedAt     *time.Time
}

type ChatSessionUpdate struct {
	SessionTitle *string
	IsActive     *bool
}

// UserStore persists accounts. Create stamps ID, UUID and timestamps.
type UserStore interface {
	CreateUser(u *domain.User) error
	GetUser(id int64) (domain.User, error)
	GetUserByEmail(email string) (domain.User, error)
	GetUserByUUID(uuid string) (domain.User, error)
	UpdateUser(id int64, upd UserUpdate) (domain.User, error)
}

// JournalStore persists journal entries scoped to their owner.
type JournalStore interface {
	CreateJournal(j *domain.Journal) error
	ListJournalsByUser(userID int64, limit int) ([]domain.Journal, error)
	GetJournal(id, userID int64) (domain.Journal, error)
	UpdateJournal(id, userID int64, upd JournalUpdate) (domain.Journal, error)
	DeleteJournal(id, userID int64) error
}

// ProgressStore persists wellness goals scoped to their owner.
type ProgressStore interface {
	CreateGoal(g *domain.ProgressGoal) error
	ListGoalsByUser(userID int64) ([]domain.ProgressGoal, error)
	GetGoal(id, userID int64) (domain.ProgressGoal, error)
	UpdateGoal(id, userID int64, upd ProgressUpdate) (domain.ProgressGoal, error)
	DeleteGoal(id, userID int64) error
}

// MediaStore persists upload metadata. Lookup by filename is unscoped because
// streaming is public; everything else is owner-scoped.
type MediaStore interface {
	CreateMediaFile(f *domain.MediaFile) error
	ListMediaByUser(userID int64) ([]domain.MediaFile, error)
	GetMediaFile(id, userID int64) (domain.MediaFile, error)
	GetMediaFileByFilename(filename string) (domain.MediaFile, error)
	DeleteMediaFile(id, userID int64) error
}

// ChatStore persists sessions and their messages. Messages are returned in
// creation order.
type ChatStore interface {
	CreateSession(s *domain.ChatSession) error
	ListSessionsByUser(userID int64) ([]domain.ChatSession, error)
	GetSession(id, userID int64) (domain.ChatSession, error)
	UpdateSession(id, userID int64, upd ChatSessionUpdate) (domain.ChatSession, error)
	CreateMessage(m *domain.ChatMessage) error
	ListMessages(sessionID int64) ([]domain.ChatMessage, error)
}

// Store is the full persistence surface used by the application core.
type Store interface {
	UserStore
	JournalStore
	ProgressStore
	MediaStore
	ChatStore
}
