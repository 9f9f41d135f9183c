package app

import (
	"fmt"
	"time"

	"youthwell/pkg/domain"
	"youthwell/pkg/store"
)

// JournalInput carries fields for a new journal entry.
type JournalInput struct {
	Title     string
	Content   string
	Mood      string
	MoodScore *int
	Tags      []string
	IsPrivate *bool
}

// MoodAnalytics summarizes mood-scored entries within a period.
type MoodAnalytics struct {
	PeriodDays       int            `json:"periodDays"`
	TotalEntries     int            `json:"totalEntries"`
	AverageMoodScore *float64       `json:"averageMoodScore"`
	MoodDistribution map[string]int `json:"moodDistribution"`
	DailyMoods       []DailyMood    `json:"dailyMoods"`
}

// DailyMood is one scored entry in the analytics window.
type DailyMood struct {
	Date  string `json:"date"`
	Mood  string `json:"mood,omitempty"`
	Score int    `json:"score"`
}

// CreateJournal stores a new entry. Entries are private unless stated
// otherwise.
func (a *App) CreateJournal(userID int64, in JournalInput) (domain.Journal, error) {
	private := true
	if in.IsPrivate != nil {
		private = *in.IsPrivate
	}
	journal := domain.Journal{
		UserID:    userID,
		Title:     in.Title,
		Content:   in.Content,
		Mood:      in.Mood,
		MoodScore: in.MoodScore,
		Tags:      in.Tags,
		IsPrivate: private,
	}
	if err := a.store.CreateJournal(&journal); err != nil {
		return domain.Journal{}, fmt.Errorf("create journal: %w", err)
	}
	return journal, nil
}

func (a *App) ListJournals(userID int64, limit int) ([]domain.Journal, error) {
	return a.store.ListJournalsByUser(userID, limit)
}

func (a *App) GetJournal(id, userID int64) (domain.Journal, error) {
	return a.store.GetJournal(id, userID)
}

func (a *App) UpdateJournal(id, userID int64, upd store.JournalUpdate) (domain.Journal, error) {
	return a.store.UpdateJournal(id, userID, upd)
}

func (a *App) DeleteJournal(id, userID int64) error {
	return a.store.DeleteJournal(id, userID)
}

// journalScanLimit bounds how many entries analytics and insights read.
const journalScanLimit = 1000

// JournalMoodAnalytics aggregates mood-scored entries from the last N days.
// Entries without a mood score are ignored.
func (a *App) JournalMoodAnalytics(userID int64, days int) (MoodAnalytics, error) {
	if days <= 0 {
		days = 30
	}
	journals, err := a.store.ListJournalsByUser(userID, journalScanLimit)
	if err != nil {
		return MoodAnalytics{}, fmt.Errorf("list journals: %w", err)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	analytics := MoodAnalytics{
		PeriodDays:       days,
		MoodDistribution: map[string]int{},
		DailyMoods:       []DailyMood{},
	}
	sum := 0
	for _, j := range journals {
		if j.MoodScore == nil || j.CreatedAt.Before(cutoff) {
			continue
		}
		analytics.DailyMoods = append(analytics.DailyMoods, DailyMood{
			Date:  j.CreatedAt.UTC().Format("2006-01-02"),
			Mood:  j.Mood,
			Score: *j.MoodScore,
		})
		if j.Mood != "" {
			analytics.MoodDistribution[j.Mood]++
		}
		sum += *j.MoodScore
	}
	analytics.TotalEntries = len(analytics.DailyMoods)
	if analytics.TotalEntries > 0 {
		avg := float64(sum) / float64(analytics.TotalEntries)
		analytics.AverageMoodScore = &avg
	}
	return analytics, nil
}
