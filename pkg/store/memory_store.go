package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"youthwell/pkg/domain"
)

// MemoryStore keeps all records in-process. It is used by tests and mirrors
// the ownership-scoping behavior of the SQL store exactly.
type MemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	users    map[int64]domain.User
	email    map[string]int64
	journals map[int64]domain.Journal
	goals    map[int64]domain.ProgressGoal
	media    map[int64]domain.MediaFile
	sessions map[int64]domain.ChatSession
	messages map[int64][]domain.ChatMessage // session ID -> ordered messages
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[int64]domain.User),
		email:    make(map[string]int64),
		journals: make(map[int64]domain.Journal),
		goals:    make(map[int64]domain.ProgressGoal),
		media:    make(map[int64]domain.MediaFile),
		sessions: make(map[int64]domain.ChatSession),
		messages: make(map[int64][]domain.ChatMessage),
	}
}

func (m *MemoryStore) nextIDLocked() int64 {
	m.nextID++
	return m.nextID
}

// users

func (m *MemoryStore) CreateUser(u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.Email != "" {
		if _, taken := m.email[u.Email]; taken {
			return ErrEmailTaken
		}
	}
	now := time.Now().UTC()
	u.ID = m.nextIDLocked()
	u.UUID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.users[u.ID] = *u
	if u.Email != "" {
		m.email[u.Email] = u.ID
	}
	return nil
}

func (m *MemoryStore) GetUser(id int64) (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return u, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.email[email]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return m.users[id], nil
}

func (m *MemoryStore) GetUserByUUID(id string) (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.UUID == id {
			return u, nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (m *MemoryStore) UpdateUser(id int64, upd UserUpdate) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	if upd.Email != nil && *upd.Email != u.Email {
		if _, taken := m.email[*upd.Email]; taken {
			return domain.User{}, ErrEmailTaken
		}
		if u.Email != "" {
			delete(m.email, u.Email)
		}
		u.Email = *upd.Email
		m.email[u.Email] = id
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.DisplayName != nil {
		u.DisplayName = *upd.DisplayName
	}
	if upd.IsAnonymous != nil {
		u.IsAnonymous = *upd.IsAnonymous
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}
	if upd.LastLoginAt != nil {
		t := *upd.LastLoginAt
		u.LastLoginAt = &t
	}
	u.UpdatedAt = time.Now().UTC()
	m.users[id] = u
	return u, nil
}

// journals

func (m *MemoryStore) CreateJournal(j *domain.Journal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	j.ID = m.nextIDLocked()
	j.CreatedAt = now
	j.UpdatedAt = now
	m.journals[j.ID] = *j
	return nil
}

func (m *MemoryStore) ListJournalsByUser(userID int64, limit int) ([]domain.Journal, error) {
	if limit <= 0 {
		limit = 50
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Journal, 0)
	// newest first; IDs are monotonic
	for id := m.nextID; id > 0 && len(out) < limit; id-- {
		if j, ok := m.journals[id]; ok && j.UserID == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *MemoryStore) GetJournal(id, userID int64) (domain.Journal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.journals[id]
	if !ok || j.UserID != userID {
		return domain.Journal{}, ErrNotFound
	}
	return j, nil
}

func (m *MemoryStore) UpdateJournal(id, userID int64, upd JournalUpdate) (domain.Journal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.journals[id]
	if !ok || j.UserID != userID {
		return domain.Journal{}, ErrNotFound
	}
	if upd.Title != nil {
		j.Title = *upd.Title
	}
	if upd.Content != nil {
		j.Content = *upd.Content
	}
	if upd.Mood != nil {
		j.Mood = *upd.Mood
	}
	if upd.MoodScore != nil {
		score := *upd.MoodScore
		j.MoodScore = &score
	}
	if upd.Tags != nil {
		j.Tags = append([]string(nil), (*upd.Tags)...)
	}
	if upd.IsPrivate != nil {
		j.IsPrivate = *upd.IsPrivate
	}
	j.UpdatedAt = time.Now().UTC()
	m.journals[id] = j
	return j, nil
}

func (m *MemoryStore) DeleteJournal(id, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.journals[id]
	if !ok || j.UserID != userID {
		return ErrNotFound
	}
	delete(m.journals, id)
	return nil
}

// progress goals

func (m *MemoryStore) CreateGoal(g *domain.ProgressGoal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	g.ID = m.nextIDLocked()
	if g.StartDate.IsZero() {
		g.StartDate = now
	}
	if g.Status == "" {
		g.Status = domain.GoalActive
	}
	g.CreatedAt = now
	g.UpdatedAt = now
	m.goals[g.ID] = *g
	return nil
}

func (m *MemoryStore) ListGoalsByUser(userID int64) ([]domain.ProgressGoal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.ProgressGoal, 0)
	for id := m.nextID; id > 0; id-- {
		if g, ok := m.goals[id]; ok && g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *MemoryStore) GetGoal(id, userID int64) (domain.ProgressGoal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.goals[id]
	if !ok || g.UserID != userID {
		return domain.ProgressGoal{}, ErrNotFound
	}
	return g, nil
}

func (m *MemoryStore) UpdateGoal(id, userID int64, upd ProgressUpdate) (domain.ProgressGoal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok || g.UserID != userID {
		return domain.ProgressGoal{}, ErrNotFound
	}
	if upd.GoalTitle != nil {
		g.GoalTitle = *upd.GoalTitle
	}
	if upd.GoalDescription != nil {
		g.GoalDescription = *upd.GoalDescription
	}
	if upd.TargetValue != nil {
		v := *upd.TargetValue
		g.TargetValue = &v
	}
	if upd.CurrentValue != nil {
		g.CurrentValue = *upd.CurrentValue
	}
	if upd.Unit != nil {
		g.Unit = *upd.Unit
	}
	if upd.Status != nil {
		g.Status = *upd.Status
	}
	if upd.TargetDate != nil {
		t := *upd.TargetDate
		g.TargetDate = &t
	}
	if upd.CompletedAt != nil {
		t := *upd.CompletedAt
		g.CompletedAt = &t
	}
	g.UpdatedAt = time.Now().UTC()
	m.goals[id] = g
	return g, nil
}

func (m *MemoryStore) DeleteGoal(id, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok || g.UserID != userID {
		return ErrNotFound
	}
	delete(m.goals, id)
	return nil
}

// media files

func (m *MemoryStore) CreateMediaFile(f *domain.MediaFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.ID = m.nextIDLocked()
	f.CreatedAt = time.Now().UTC()
	m.media[f.ID] = *f
	return nil
}

func (m *MemoryStore) ListMediaByUser(userID int64) ([]domain.MediaFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.MediaFile, 0)
	for id := m.nextID; id > 0; id-- {
		if f, ok := m.media[id]; ok && f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *MemoryStore) GetMediaFile(id, userID int64) (domain.MediaFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.media[id]
	if !ok || f.UserID != userID {
		return domain.MediaFile{}, ErrNotFound
	}
	return f, nil
}

func (m *MemoryStore) GetMediaFileByFilename(filename string) (domain.MediaFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.media {
		if f.Filename == filename {
			return f, nil
		}
	}
	return domain.MediaFile{}, ErrNotFound
}

func (m *MemoryStore) DeleteMediaFile(id, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.media[id]
	if !ok || f.UserID != userID {
		return ErrNotFound
	}
	delete(m.media, id)
	return nil
}

// chat sessions and messages

func (m *MemoryStore) CreateSession(s *domain.ChatSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	s.ID = m.nextIDLocked()
	s.CreatedAt = now
	s.UpdatedAt = now
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemoryStore) ListSessionsByUser(userID int64) ([]domain.ChatSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.ChatSession, 0)
	for id := m.nextID; id > 0; id-- {
		if s, ok := m.sessions[id]; ok && s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemoryStore) GetSession(id, userID int64) (domain.ChatSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok || s.UserID != userID {
		return domain.ChatSession{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) UpdateSession(id, userID int64, upd ChatSessionUpdate) (domain.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.UserID != userID {
		return domain.ChatSession{}, ErrNotFound
	}
	if upd.SessionTitle != nil {
		s.SessionTitle = *upd.SessionTitle
	}
	if upd.IsActive != nil {
		s.IsActive = *upd.IsActive
	}
	s.UpdatedAt = time.Now().UTC()
	m.sessions[id] = s
	return s, nil
}

func (m *MemoryStore) CreateMessage(msg *domain.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = m.nextIDLocked()
	msg.CreatedAt = time.Now().UTC()
	m.messages[msg.SessionID] = append(m.messages[msg.SessionID], *msg)
	return nil
}

func (m *MemoryStore) ListMessages(sessionID int64) ([]domain.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := m.messages[sessionID]
	return append([]domain.ChatMessage(nil), msgs...), nil
}
