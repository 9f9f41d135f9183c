package server

import (
	"net/http"
	"strconv"
	"testing"
)

func goalPath(id int64) string {
	return "/api/progress/" + strconv.FormatInt(id, 10)
}

func (e *testEnv) createGoal(t *testing.T, token string, target float64) int64 {
	t.Helper()
	status, body := e.doJSON(t, http.MethodPost, "/api/progress", token, map[string]any{
		"goalType":    "exercise",
		"goalTitle":   "Daily walks",
		"targetValue": target,
		"unit":        "days",
	})
	if status != http.StatusCreated {
		t.Fatalf("create goal = %d %v", status, body)
	}
	return int64(body["progress"].(map[string]any)["id"].(float64))
}

func TestGoalAutoCompletion(t *testing.T) {
	e := newTestServer(t)
	token := e.anonymousToken(t)
	id := e.createGoal(t, token, 10)

	status, body := e.doJSON(t, http.MethodPatch, goalPath(id)+"/value", token, map[string]any{
		"increment": 6,
	})
	if status != http.StatusOK {
		t.Fatalf("first increment = %d %v", status, body)
	}
	goal := body["progress"].(map[string]any)
	if goal["status"] != "active" || goal["currentValue"].(float64) != 6 {
		t.Fatalf("after first increment: %v", goal)
	}
	if goal["progressPercentage"].(float64) != 60 {
		t.Fatalf("progressPercentage = %v, want 60", goal["progressPercentage"])
	}

	// crossing the target flips the goal to completed and stamps completedAt
	status, body = e.doJSON(t, http.MethodPatch, goalPath(id)+"/value", token, map[string]any{
		"increment": 6,
	})
	if status != http.StatusOK {
		t.Fatalf("second increment = %d %v", status, body)
	}
	goal = body["progress"].(map[string]any)
	if goal["status"] != "completed" {
		t.Fatalf("status = %v, want completed", goal["status"])
	}
	if goal["completedAt"] == nil {
		t.Fatal("completedAt not stamped")
	}
	if goal["progressPercentage"].(float64) != 100 {
		t.Fatalf("progressPercentage = %v, want capped 100", goal["progressPercentage"])
	}

	// dropping below the target later never un-completes the goal
	status, body = e.doJSON(t, http.MethodPatch, goalPath(id)+"/value", token, map[string]any{
		"value": 3,
	})
	if status != http.StatusOK {
		t.Fatalf("absolute set = %d %v", status, body)
	}
	goal = body["progress"].(map[string]any)
	if goal["status"] != "completed" {
		t.Fatalf("status after regression = %v, want completed", goal["status"])
	}
	if goal["currentValue"].(float64) != 3 {
		t.Fatalf("currentValue = %v, want 3", goal["currentValue"])
	}
}

func TestGoalValueAdjustmentValidation(t *testing.T) {
	e := newTestServer(t)
	token := e.anonymousToken(t)
	id := e.createGoal(t, token, 10)

	status, body := e.doJSON(t, http.MethodPatch, goalPath(id)+"/value", token, map[string]any{})
	if status != http.StatusBadRequest {
		t.Fatalf("empty adjustment = %d %v", status, body)
	}

	// negative results clamp to zero
	status, body = e.doJSON(t, http.MethodPatch, goalPath(id)+"/value", token, map[string]any{
		"increment": -5,
	})
	if status != http.StatusOK {
		t.Fatalf("negative increment = %d %v", status, body)
	}
	if v := body["progress"].(map[string]any)["currentValue"].(float64); v != 0 {
		t.Fatalf("currentValue = %v, want 0", v)
	}
}

func TestGoalWithoutTargetHasNoPercentage(t *testing.T) {
	e := newTestServer(t)
	token := e.anonymousToken(t)

	status, body := e.doJSON(t, http.MethodPost, "/api/progress", token, map[string]any{
		"goalType":  "habit",
		"goalTitle": "Open-ended journaling",
	})
	if status != http.StatusCreated {
		t.Fatalf("create = %d %v", status, body)
	}
	if pct := body["progress"].(map[string]any)["progressPercentage"]; pct != nil {
		t.Fatalf("progressPercentage = %v, want null", pct)
	}
}

func TestGoalSummary(t *testing.T) {
	e := newTestServer(t)
	token := e.anonymousToken(t)

	completed := e.createGoal(t, token, 5)
	e.createGoal(t, token, 10)
	status, body := e.doJSON(t, http.MethodPatch, goalPath(completed)+"/value", token, map[string]any{
		"value": 5,
	})
	if status != http.StatusOK {
		t.Fatalf("complete goal = %d %v", status, body)
	}

	status, body = e.doJSON(t, http.MethodGet, "/api/progress/analytics/summary", token, nil)
	if status != http.StatusOK {
		t.Fatalf("summary = %d %v", status, body)
	}
	analytics := body["analytics"].(map[string]any)
	summary := analytics["summary"].(map[string]any)
	if summary["totalGoals"].(float64) != 2 || summary["completedGoals"].(float64) != 1 {
		t.Fatalf("summary = %v", summary)
	}
	if summary["completionRate"].(float64) != 50 {
		t.Fatalf("completionRate = %v, want 50", summary["completionRate"])
	}
	byType := analytics["goalsByType"].(map[string]any)
	exercise := byType["exercise"].(map[string]any)
	if exercise["total"].(float64) != 2 || exercise["completed"].(float64) != 1 {
		t.Fatalf("goalsByType = %v", byType)
	}
}

func TestGoalUpdateStatusStampsCompletion(t *testing.T) {
	e := newTestServer(t)
	token := e.anonymousToken(t)
	id := e.createGoal(t, token, 10)

	status, body := e.doJSON(t, http.MethodPut, goalPath(id), token, map[string]any{
		"status": "completed",
	})
	if status != http.StatusOK {
		t.Fatalf("update = %d %v", status, body)
	}
	goal := body["progress"].(map[string]any)
	if goal["status"] != "completed" || goal["completedAt"] == nil {
		t.Fatalf("goal = %v", goal)
	}
}
