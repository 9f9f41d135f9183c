package server

import (
	"net/http"

	"youthwell/pkg/ai"
	"youthwell/pkg/domain"
	"youthwell/pkg/store"
)

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request, user domain.User) {
	sessions, err := s.app.ListSessions(user.ID)
	if err != nil {
		writeStoreError(w, r, err, "Chat session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request, user domain.User) {
	var req sessionRequest
	if !decodeValid(w, r, &req) {
		return
	}
	session, err := s.app.CreateSession(user.ID, req.SessionTitle)
	if err != nil {
		writeStoreError(w, r, err, "Chat session not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Chat session created successfully",
		"session": session,
	})
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	var req sessionUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	session, err := s.app.UpdateSession(id, user.ID, store.ChatSessionUpdate{
		SessionTitle: req.SessionTitle,
		IsActive:     req.IsActive,
	})
	if err != nil {
		writeStoreError(w, r, err, "Chat session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Chat session updated successfully",
		"session": session,
	})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	messages, err := s.app.ListMessages(id, user.ID)
	if err != nil {
		writeStoreError(w, r, err, "Chat session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId": id,
		"messages":  messages,
	})
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	var req messageRequest
	if !decodeValid(w, r, &req) {
		return
	}
	userMsg, assistantMsg, err := s.app.PostMessage(r.Context(), id, user.ID, req.Content)
	if err != nil {
		writeStoreError(w, r, err, "Chat session not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":          "Messages sent successfully",
		"userMessage":      userMsg,
		"assistantMessage": assistantMsg,
	})
}

func (s *Server) handleAIChat(w http.ResponseWriter, r *http.Request) {
	var req aiChatRequest
	if !decodeValid(w, r, &req) {
		return
	}
	reply, err := s.app.AIChat(r.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		writeStoreError(w, r, err, "Chat session not found")
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleJournalInsights(w http.ResponseWriter, r *http.Request) {
	var req insightsRequest
	if !decodeValid(w, r, &req) {
		return
	}
	entries := make([]ai.JournalEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, ai.JournalEntry{Content: e.Content, Mood: e.Mood, Date: e.Date})
	}
	insight, err := s.app.JournalInsights(r.Context(), entries)
	if err != nil {
		writeStoreError(w, r, err, "Chat session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"insight": insight})
}

type sessionRequest struct {
	SessionTitle string `json:"sessionTitle" validate:"omitempty,max=200"`
}

type sessionUpdateRequest struct {
	SessionTitle *string `json:"sessionTitle" validate:"omitempty,max=200"`
	IsActive     *bool   `json:"isActive"`
}

type messageRequest struct {
	Content string `json:"content" validate:"required"`
}

type aiChatRequest struct {
	Message             string   `json:"message" validate:"required"`
	ConversationHistory []string `json:"conversationHistory"`
}

type insightsRequest struct {
	Entries []insightEntry `json:"entries" validate:"required,min=1,dive"`
}

type insightEntry struct {
	Content string `json:"content" validate:"required"`
	Mood    string `json:"mood"`
	Date    string `json:"date"`
}
