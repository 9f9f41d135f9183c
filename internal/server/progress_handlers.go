package server

import (
	"errors"
	"net/http"
	"time"

	"youthwell/internal/app"
	"youthwell/pkg/domain"
	"youthwell/pkg/store"
)

// goalResponse decorates a goal with its computed completion percentage.
type goalResponse struct {
	domain.ProgressGoal
	ProgressPercentage *int `json:"progressPercentage"`
}

func goalView(g domain.ProgressGoal) goalResponse {
	return goalResponse{ProgressGoal: g, ProgressPercentage: app.ProgressPercentage(g)}
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request, user domain.User) {
	goals, err := s.app.ListGoals(user.ID)
	if err != nil {
		writeStoreError(w, r, err, "Progress goal not found")
		return
	}
	views := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		views = append(views, goalView(g))
	}
	writeJSON(w, http.StatusOK, map[string]any{"progress": views})
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	goal, err := s.app.GetGoal(id, user.ID)
	if err != nil {
		writeStoreError(w, r, err, "Progress goal not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"progress": goalView(goal)})
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request, user domain.User) {
	var req goalRequest
	if !decodeValid(w, r, &req) {
		return
	}
	goal, err := s.app.CreateGoal(user.ID, app.GoalInput{
		GoalType:        req.GoalType,
		GoalTitle:       req.GoalTitle,
		GoalDescription: req.GoalDescription,
		TargetValue:     req.TargetValue,
		Unit:            req.Unit,
		TargetDate:      req.TargetDate,
	})
	if err != nil {
		writeStoreError(w, r, err, "Progress goal not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Progress goal created successfully",
		"progress": goalView(goal),
	})
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	var req goalUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	var status *domain.GoalStatus
	if req.Status != nil {
		st := domain.GoalStatus(*req.Status)
		status = &st
	}
	goal, err := s.app.UpdateGoal(id, user.ID, store.ProgressUpdate{
		GoalTitle:       req.GoalTitle,
		GoalDescription: req.GoalDescription,
		TargetValue:     req.TargetValue,
		CurrentValue:    req.CurrentValue,
		Unit:            req.Unit,
		Status:          status,
		TargetDate:      req.TargetDate,
	})
	if err != nil {
		writeStoreError(w, r, err, "Progress goal not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Progress goal updated successfully",
		"progress": goalView(goal),
	})
}

func (s *Server) handleAdjustGoalValue(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	var req valueAdjustRequest
	if !decodeValid(w, r, &req) {
		return
	}
	goal, err := s.app.AdjustGoalValue(id, user.ID, app.ValueAdjustment{
		Value:     req.Value,
		Increment: req.Increment,
	})
	if err != nil {
		if errors.Is(err, app.ErrValueRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeStoreError(w, r, err, "Progress goal not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Progress value updated successfully",
		"progress": goalView(goal),
	})
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	if err := s.app.DeleteGoal(id, user.ID); err != nil {
		writeStoreError(w, r, err, "Progress goal not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Progress goal deleted successfully"})
}

func (s *Server) handleGoalSummary(w http.ResponseWriter, r *http.Request, user domain.User) {
	summary, err := s.app.GoalSummary(user.ID)
	if err != nil {
		writeStoreError(w, r, err, "Progress goal not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analytics": summary})
}

type goalRequest struct {
	GoalType        string     `json:"goalType" validate:"required,max=100"`
	GoalTitle       string     `json:"goalTitle" validate:"required,max=200"`
	GoalDescription string     `json:"goalDescription"`
	TargetValue     *float64   `json:"targetValue" validate:"omitempty,gt=0"`
	Unit            string     `json:"unit" validate:"omitempty,max=50"`
	TargetDate      *time.Time `json:"targetDate"`
}

type goalUpdateRequest struct {
	GoalTitle       *string    `json:"goalTitle" validate:"omitempty,max=200"`
	GoalDescription *string    `json:"goalDescription"`
	TargetValue     *float64   `json:"targetValue" validate:"omitempty,gt=0"`
	CurrentValue    *float64   `json:"currentValue" validate:"omitempty,gte=0"`
	Unit            *string    `json:"unit" validate:"omitempty,max=50"`
	Status          *string    `json:"status" validate:"omitempty,oneof=active completed paused"`
	TargetDate      *time.Time `json:"targetDate"`
}

type valueAdjustRequest struct {
	Value     *float64 `json:"value"`
	Increment *float64 `json:"increment"`
}
