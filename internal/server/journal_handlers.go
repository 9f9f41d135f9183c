package server

import (
	"net/http"
	"strconv"

	"youthwell/internal/app"
	"youthwell/pkg/domain"
	"youthwell/pkg/store"
)

func (s *Server) handleListJournals(w http.ResponseWriter, r *http.Request, user domain.User) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	journals, err := s.app.ListJournals(user.ID, limit)
	if err != nil {
		writeStoreError(w, r, err, "Journal not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"journals": journals})
}

func (s *Server) handleGetJournal(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid journal id")
		return
	}
	journal, err := s.app.GetJournal(id, user.ID)
	if err != nil {
		writeStoreError(w, r, err, "Journal not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"journal": journal})
}

func (s *Server) handleCreateJournal(w http.ResponseWriter, r *http.Request, user domain.User) {
	var req journalRequest
	if !decodeValid(w, r, &req) {
		return
	}
	journal, err := s.app.CreateJournal(user.ID, app.JournalInput{
		Title:     req.Title,
		Content:   req.Content,
		Mood:      req.Mood,
		MoodScore: req.MoodScore,
		Tags:      req.Tags,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		writeStoreError(w, r, err, "Journal not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Journal entry created successfully",
		"journal": journal,
	})
}

func (s *Server) handleUpdateJournal(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid journal id")
		return
	}
	var req journalUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	journal, err := s.app.UpdateJournal(id, user.ID, store.JournalUpdate{
		Title:     req.Title,
		Content:   req.Content,
		Mood:      req.Mood,
		MoodScore: req.MoodScore,
		Tags:      req.Tags,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		writeStoreError(w, r, err, "Journal not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Journal entry updated successfully",
		"journal": journal,
	})
}

func (s *Server) handleDeleteJournal(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid journal id")
		return
	}
	if err := s.app.DeleteJournal(id, user.ID); err != nil {
		writeStoreError(w, r, err, "Journal not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Journal entry deleted successfully"})
}

func (s *Server) handleMoodAnalytics(w http.ResponseWriter, r *http.Request, user domain.User) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	analytics, err := s.app.JournalMoodAnalytics(user.ID, days)
	if err != nil {
		writeStoreError(w, r, err, "Journal not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analytics": analytics})
}

type journalRequest struct {
	Title     string   `json:"title" validate:"omitempty,max=200"`
	Content   string   `json:"content" validate:"required"`
	Mood      string   `json:"mood" validate:"omitempty,max=50"`
	MoodScore *int     `json:"moodScore" validate:"omitempty,gte=1,lte=10"`
	Tags      []string `json:"tags" validate:"omitempty,dive,max=50"`
	IsPrivate *bool    `json:"isPrivate"`
}

type journalUpdateRequest struct {
	Title     *string   `json:"title" validate:"omitempty,max=200"`
	Content   *string   `json:"content"`
	Mood      *string   `json:"mood" validate:"omitempty,max=50"`
	MoodScore *int      `json:"moodScore" validate:"omitempty,gte=1,lte=10"`
	Tags      *[]string `json:"tags" validate:"omitempty,dive,max=50"`
	IsPrivate *bool     `json:"isPrivate"`
}
