package app

import (
	"fmt"
	"math"
	"time"

	"youthwell/pkg/domain"
	"youthwell/pkg/store"
)

// GoalInput carries fields for a new progress goal.
type GoalInput struct {
	GoalType        string
	GoalTitle       string
	GoalDescription string
	TargetValue     *float64
	Unit            string
	TargetDate      *time.Time
}

// ValueAdjustment moves a goal's current value, either by an absolute value
// or a signed increment. Exactly one must be set.
type ValueAdjustment struct {
	Value     *float64
	Increment *float64
}

// ProgressSummary aggregates a user's goals per status and type.
type ProgressSummary struct {
	Summary struct {
		TotalGoals     int `json:"totalGoals"`
		CompletedGoals int `json:"completedGoals"`
		ActiveGoals    int `json:"activeGoals"`
		PausedGoals    int `json:"pausedGoals"`
		CompletionRate int `json:"completionRate"`
	} `json:"summary"`
	GoalsByType map[string]*GoalTypeCounts `json:"goalsByType"`
}

// GoalTypeCounts breaks one goal type down by status.
type GoalTypeCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
	Paused    int `json:"paused"`
}

// ProgressPercentage reports how far along a goal is, capped at 100. Goals
// without a positive target have no percentage.
func ProgressPercentage(g domain.ProgressGoal) *int {
	if g.TargetValue == nil || *g.TargetValue <= 0 {
		return nil
	}
	pct := int(math.Round(g.CurrentValue / *g.TargetValue * 100))
	if pct > 100 {
		pct = 100
	}
	return &pct
}

// CreateGoal stores a new goal starting at zero progress.
func (a *App) CreateGoal(userID int64, in GoalInput) (domain.ProgressGoal, error) {
	goal := domain.ProgressGoal{
		UserID:          userID,
		GoalType:        in.GoalType,
		GoalTitle:       in.GoalTitle,
		GoalDescription: in.GoalDescription,
		TargetValue:     in.TargetValue,
		CurrentValue:    0,
		Unit:            in.Unit,
		Status:          domain.GoalActive,
		StartDate:       time.Now().UTC(),
		TargetDate:      in.TargetDate,
	}
	if err := a.store.CreateGoal(&goal); err != nil {
		return domain.ProgressGoal{}, fmt.Errorf("create goal: %w", err)
	}
	return goal, nil
}

func (a *App) ListGoals(userID int64) ([]domain.ProgressGoal, error) {
	return a.store.ListGoalsByUser(userID)
}

func (a *App) GetGoal(id, userID int64) (domain.ProgressGoal, error) {
	return a.store.GetGoal(id, userID)
}

// UpdateGoal applies a partial update. Setting status to completed stamps
// completedAt.
func (a *App) UpdateGoal(id, userID int64, upd store.ProgressUpdate) (domain.ProgressGoal, error) {
	if upd.Status != nil && *upd.Status == domain.GoalCompleted && upd.CompletedAt == nil {
		now := time.Now().UTC()
		upd.CompletedAt = &now
	}
	return a.store.UpdateGoal(id, userID, upd)
}

func (a *App) DeleteGoal(id, userID int64) error {
	return a.store.DeleteGoal(id, userID)
}

// AdjustGoalValue moves the current value and completes the goal when it
// first reaches its target. Reaching the target on a non-active goal leaves
// the status alone; a completed goal never reverts.
func (a *App) AdjustGoalValue(id, userID int64, adj ValueAdjustment) (domain.ProgressGoal, error) {
	goal, err := a.store.GetGoal(id, userID)
	if err != nil {
		return domain.ProgressGoal{}, err
	}

	var newValue float64
	switch {
	case adj.Value != nil:
		newValue = math.Max(0, *adj.Value)
	case adj.Increment != nil:
		newValue = math.Max(0, goal.CurrentValue+*adj.Increment)
	default:
		return domain.ProgressGoal{}, ErrValueRequired
	}

	upd := store.ProgressUpdate{CurrentValue: &newValue}
	if goal.TargetValue != nil && newValue >= *goal.TargetValue && goal.Status == domain.GoalActive {
		completed := domain.GoalCompleted
		now := time.Now().UTC()
		upd.Status = &completed
		upd.CompletedAt = &now
	}
	return a.store.UpdateGoal(id, userID, upd)
}

// GoalSummary aggregates the caller's goals.
func (a *App) GoalSummary(userID int64) (ProgressSummary, error) {
	goals, err := a.store.ListGoalsByUser(userID)
	if err != nil {
		return ProgressSummary{}, fmt.Errorf("list goals: %w", err)
	}

	summary := ProgressSummary{GoalsByType: map[string]*GoalTypeCounts{}}
	for _, g := range goals {
		summary.Summary.TotalGoals++
		counts := summary.GoalsByType[g.GoalType]
		if counts == nil {
			counts = &GoalTypeCounts{}
			summary.GoalsByType[g.GoalType] = counts
		}
		counts.Total++
		switch g.Status {
		case domain.GoalCompleted:
			summary.Summary.CompletedGoals++
			counts.Completed++
		case domain.GoalActive:
			summary.Summary.ActiveGoals++
			counts.Active++
		case domain.GoalPaused:
			summary.Summary.PausedGoals++
			counts.Paused++
		}
	}
	if summary.Summary.TotalGoals > 0 {
		summary.Summary.CompletionRate = int(math.Round(
			float64(summary.Summary.CompletedGoals) / float64(summary.Summary.TotalGoals) * 100))
	}
	return summary, nil
}
