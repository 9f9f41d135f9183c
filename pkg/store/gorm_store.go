package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"youthwell/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(
		&UserModel{},
		&JournalModel{},
		&ProgressModel{},
		&MediaFileModel{},
		&ChatSessionModel{},
		&ChatMessageModel{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// users

func (s *GormStore) CreateUser(u *domain.User) error {
	now := time.Now().UTC()
	model := UserModel{
		UUID:        uuid.NewString(),
		IsAnonymous: u.IsAnonymous,
		DisplayName: u.DisplayName,
		IsActive:    u.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if u.Email != "" {
		email := u.Email
		model.Email = &email
	}
	if u.PasswordHash != "" {
		hash := u.PasswordHash
		model.PasswordHash = &hash
	}
	if err := s.db.Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	*u = userFromModel(model)
	return nil
}

func (s *GormStore) GetUser(id int64) (domain.User, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		return domain.User{}, mapRecordErr(err, "get user")
	}
	return userFromModel(model), nil
}

func (s *GormStore) GetUserByEmail(email string) (domain.User, error) {
	var model UserModel
	if err := s.db.First(&model, "email = ?", email).Error; err != nil {
		return domain.User{}, mapRecordErr(err, "get user by email")
	}
	return userFromModel(model), nil
}

func (s *GormStore) GetUserByUUID(id string) (domain.User, error) {
	var model UserModel
	if err := s.db.First(&model, "uuid = ?", id).Error; err != nil {
		return domain.User{}, mapRecordErr(err, "get user by uuid")
	}
	return userFromModel(model), nil
}

func (s *GormStore) UpdateUser(id int64, upd UserUpdate) (domain.User, error) {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if upd.Email != nil {
		updates["email"] = *upd.Email
	}
	if upd.PasswordHash != nil {
		updates["password"] = *upd.PasswordHash
	}
	if upd.DisplayName != nil {
		updates["display_name"] = *upd.DisplayName
	}
	if upd.IsAnonymous != nil {
		updates["is_anonymous"] = *upd.IsAnonymous
	}
	if upd.IsActive != nil {
		updates["is_active"] = *upd.IsActive
	}
	if upd.LastLoginAt != nil {
		updates["last_login_at"] = *upd.LastLoginAt
	}
	res := s.db.Model(&UserModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.User{}, ErrNotFound
	}
	return s.GetUser(id)
}

// journals

func (s *GormStore) CreateJournal(j *domain.Journal) error {
	now := time.Now().UTC()
	model := JournalModel{
		UserID:    j.UserID,
		Title:     j.Title,
		Content:   j.Content,
		Mood:      j.Mood,
		MoodScore: j.MoodScore,
		Tags:      toJSON(j.Tags),
		IsPrivate: j.IsPrivate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Create(&model).Error; err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	*j = journalFromModel(model)
	return nil
}

func (s *GormStore) ListJournalsByUser(userID int64, limit int) ([]domain.Journal, error) {
	if limit <= 0 {
		limit = 50
	}
	var models []JournalModel
	err := s.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}
	out := make([]domain.Journal, 0, len(models))
	for _, m := range models {
		out = append(out, journalFromModel(m))
	}
	return out, nil
}

func (s *GormStore) GetJournal(id, userID int64) (domain.Journal, error) {
	var model JournalModel
	if err := s.db.First(&model, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return domain.Journal{}, mapRecordErr(err, "get journal")
	}
	return journalFromModel(model), nil
}

func (s *GormStore) UpdateJournal(id, userID int64, upd JournalUpdate) (domain.Journal, error) {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		updates["title"] = *upd.Title
	}
	if upd.Content != nil {
		updates["content"] = *upd.Content
	}
	if upd.Mood != nil {
		updates["mood"] = *upd.Mood
	}
	if upd.MoodScore != nil {
		updates["mood_score"] = *upd.MoodScore
	}
	if upd.Tags != nil {
		updates["tags"] = toJSON(*upd.Tags)
	}
	if upd.IsPrivate != nil {
		updates["is_private"] = *upd.IsPrivate
	}
	res := s.db.Model(&JournalModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return domain.Journal{}, fmt.Errorf("update journal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Journal{}, ErrNotFound
	}
	return s.GetJournal(id, userID)
}

func (s *GormStore) DeleteJournal(id, userID int64) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&JournalModel{})
	if res.Error != nil {
		return fmt.Errorf("delete journal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// progress goals

func (s *GormStore) CreateGoal(g *domain.ProgressGoal) error {
	now := time.Now().UTC()
	start := g.StartDate
	if start.IsZero() {
		start = now
	}
	model := ProgressModel{
		UserID:          g.UserID,
		GoalType:        g.GoalType,
		GoalTitle:       g.GoalTitle,
		GoalDescription: g.GoalDescription,
		TargetValue:     g.TargetValue,
		CurrentValue:    g.CurrentValue,
		Unit:            g.Unit,
		Status:          string(g.Status),
		StartDate:       start,
		TargetDate:      g.TargetDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if model.Status == "" {
		model.Status = string(domain.GoalActive)
	}
	if err := s.db.Create(&model).Error; err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	*g = goalFromModel(model)
	return nil
}

func (s *GormStore) ListGoalsByUser(userID int64) ([]domain.ProgressGoal, error) {
	var models []ProgressModel
	err := s.db.Where("user_id = ?", userID).Order("created_at desc").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	out := make([]domain.ProgressGoal, 0, len(models))
	for _, m := range models {
		out = append(out, goalFromModel(m))
	}
	return out, nil
}

func (s *GormStore) GetGoal(id, userID int64) (domain.ProgressGoal, error) {
	var model ProgressModel
	if err := s.db.First(&model, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return domain.ProgressGoal{}, mapRecordErr(err, "get goal")
	}
	return goalFromModel(model), nil
}

func (s *GormStore) UpdateGoal(id, userID int64, upd ProgressUpdate) (domain.ProgressGoal, error) {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if upd.GoalTitle != nil {
		updates["goal_title"] = *upd.GoalTitle
	}
	if upd.GoalDescription != nil {
		updates["goal_description"] = *upd.GoalDescription
	}
	if upd.TargetValue != nil {
		updates["target_value"] = *upd.TargetValue
	}
	if upd.CurrentValue != nil {
		updates["current_value"] = *upd.CurrentValue
	}
	if upd.Unit != nil {
		updates["unit"] = *upd.Unit
	}
	if upd.Status != nil {
		updates["status"] = string(*upd.Status)
	}
	if upd.TargetDate != nil {
		updates["target_date"] = *upd.TargetDate
	}
	if upd.CompletedAt != nil {
		updates["completed_at"] = *upd.CompletedAt
	}
	res := s.db.Model(&ProgressModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return domain.ProgressGoal{}, fmt.Errorf("update goal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ProgressGoal{}, ErrNotFound
	}
	return s.GetGoal(id, userID)
}

func (s *GormStore) DeleteGoal(id, userID int64) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&ProgressModel{})
	if res.Error != nil {
		return fmt.Errorf("delete goal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// media files

func (s *GormStore) CreateMediaFile(f *domain.MediaFile) error {
	model := MediaFileModel{
		UserID:           f.UserID,
		Filename:         f.Filename,
		OriginalName:     f.OriginalName,
		MimeType:         f.MimeType,
		FileSize:         f.FileSize,
		FilePath:         f.FilePath,
		FileType:         string(f.FileType),
		Duration:         f.Duration,
		IsPublic:         f.IsPublic,
		RelatedJournalID: f.RelatedJournalID,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.db.Create(&model).Error; err != nil {
		return fmt.Errorf("create media file: %w", err)
	}
	*f = mediaFromModel(model)
	return nil
}

func (s *GormStore) ListMediaByUser(userID int64) ([]domain.MediaFile, error) {
	var models []MediaFileModel
	err := s.db.Where("user_id = ?", userID).Order("created_at desc").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	out := make([]domain.MediaFile, 0, len(models))
	for _, m := range models {
		out = append(out, mediaFromModel(m))
	}
	return out, nil
}

func (s *GormStore) GetMediaFile(id, userID int64) (domain.MediaFile, error) {
	var model MediaFileModel
	if err := s.db.First(&model, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return domain.MediaFile{}, mapRecordErr(err, "get media file")
	}
	return mediaFromModel(model), nil
}

func (s *GormStore) GetMediaFileByFilename(filename string) (domain.MediaFile, error) {
	var model MediaFileModel
	if err := s.db.First(&model, "filename = ?", filename).Error; err != nil {
		return domain.MediaFile{}, mapRecordErr(err, "get media file by filename")
	}
	return mediaFromModel(model), nil
}

func (s *GormStore) DeleteMediaFile(id, userID int64) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&MediaFileModel{})
	if res.Error != nil {
		return fmt.Errorf("delete media file: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// chat sessions and messages

func (s *GormStore) CreateSession(sess *domain.ChatSession) error {
	now := time.Now().UTC()
	model := ChatSessionModel{
		UserID:       sess.UserID,
		SessionTitle: sess.SessionTitle,
		IsActive:     sess.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.Create(&model).Error; err != nil {
		return fmt.Errorf("create chat session: %w", err)
	}
	*sess = sessionFromModel(model)
	return nil
}

func (s *GormStore) ListSessionsByUser(userID int64) ([]domain.ChatSession, error) {
	var models []ChatSessionModel
	err := s.db.Where("user_id = ?", userID).Order("updated_at desc").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list chat sessions: %w", err)
	}
	out := make([]domain.ChatSession, 0, len(models))
	for _, m := range models {
		out = append(out, sessionFromModel(m))
	}
	return out, nil
}

func (s *GormStore) GetSession(id, userID int64) (domain.ChatSession, error) {
	var model ChatSessionModel
	if err := s.db.First(&model, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return domain.ChatSession{}, mapRecordErr(err, "get chat session")
	}
	return sessionFromModel(model), nil
}

func (s *GormStore) UpdateSession(id, userID int64, upd ChatSessionUpdate) (domain.ChatSession, error) {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if upd.SessionTitle != nil {
		updates["session_title"] = *upd.SessionTitle
	}
	if upd.IsActive != nil {
		updates["is_active"] = *upd.IsActive
	}
	res := s.db.Model(&ChatSessionModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return domain.ChatSession{}, fmt.Errorf("update chat session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ChatSession{}, ErrNotFound
	}
	return s.GetSession(id, userID)
}

func (s *GormStore) CreateMessage(m *domain.ChatMessage) error {
	model := ChatMessageModel{
		SessionID: m.SessionID,
		Role:      m.Role,
		Content:   m.Content,
		Metadata:  toJSON(m.Metadata),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&model).Error; err != nil {
		return fmt.Errorf("create chat message: %w", err)
	}
	*m = messageFromModel(model)
	return nil
}

func (s *GormStore) ListMessages(sessionID int64) ([]domain.ChatMessage, error) {
	var models []ChatMessageModel
	err := s.db.Where("session_id = ?", sessionID).Order("created_at asc, id asc").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	out := make([]domain.ChatMessage, 0, len(models))
	for _, m := range models {
		out = append(out, messageFromModel(m))
	}
	return out, nil
}

// conversions

func userFromModel(m UserModel) domain.User {
	u := domain.User{
		ID:          m.ID,
		UUID:        m.UUID,
		IsAnonymous: m.IsAnonymous,
		DisplayName: m.DisplayName,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		LastLoginAt: m.LastLoginAt,
	}
	if m.Email != nil {
		u.Email = *m.Email
	}
	if m.PasswordHash != nil {
		u.PasswordHash = *m.PasswordHash
	}
	return u
}

func journalFromModel(m JournalModel) domain.Journal {
	j := domain.Journal{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Content:   m.Content,
		Mood:      m.Mood,
		MoodScore: m.MoodScore,
		IsPrivate: m.IsPrivate,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if len(m.Tags) > 0 {
		_ = json.Unmarshal(m.Tags, &j.Tags)
	}
	return j
}

func goalFromModel(m ProgressModel) domain.ProgressGoal {
	return domain.ProgressGoal{
		ID:              m.ID,
		UserID:          m.UserID,
		GoalType:        m.GoalType,
		GoalTitle:       m.GoalTitle,
		GoalDescription: m.GoalDescription,
		TargetValue:     m.TargetValue,
		CurrentValue:    m.CurrentValue,
		Unit:            m.Unit,
		Status:          domain.GoalStatus(m.Status),
		StartDate:       m.StartDate,
		TargetDate:      m.TargetDate,
		CompletedAt:     m.CompletedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func mediaFromModel(m MediaFileModel) domain.MediaFile {
	return domain.MediaFile{
		ID:               m.ID,
		UserID:           m.UserID,
		Filename:         m.Filename,
		OriginalName:     m.OriginalName,
		MimeType:         m.MimeType,
		FileSize:         m.FileSize,
		FilePath:         m.FilePath,
		FileType:         domain.MediaType(m.FileType),
		Duration:         m.Duration,
		IsPublic:         m.IsPublic,
		RelatedJournalID: m.RelatedJournalID,
		CreatedAt:        m.CreatedAt,
	}
}

func sessionFromModel(m ChatSessionModel) domain.ChatSession {
	return domain.ChatSession{
		ID:           m.ID,
		UserID:       m.UserID,
		SessionTitle: m.SessionTitle,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func messageFromModel(m ChatMessageModel) domain.ChatMessage {
	msg := domain.ChatMessage{
		ID:        m.ID,
		SessionID: m.SessionID,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
	if len(m.Metadata) > 0 {
		_ = json.Unmarshal(m.Metadata, &msg.Metadata)
	}
	return msg
}

func toJSON(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func mapRecordErr(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
