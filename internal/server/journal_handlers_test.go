package server

import (
	"net/http"
	"strconv"
	"testing"
)

func TestJournalCRUD(t *testing.T) {
	e := newTestServer(t)
	token := e.anonymousToken(t)

	status, body := e.doJSON(t, http.MethodPost, "/api/journal", token, map[string]any{
		"title":     "First entry",
		"content":   "Today was okay.",
		"mood":      "neutral",
		"moodScore": 6,
		"tags":      []string{"school"},
	})
	if status != http.StatusCreated {
		t.Fatalf("create = %d %v", status, body)
	}
	journal := body["journal"].(map[string]any)
	id := int64(journal["id"].(float64))
	if journal["isPrivate"] != true {
		t.Fatal("journal should default to private")
	}

	status, body = e.doJSON(t, http.MethodGet, "/api/journal", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list = %d %v", status, body)
	}
	if n := len(body["journals"].([]any)); n != 1 {
		t.Fatalf("list length = %d, want 1", n)
	}

	status, body = e.doJSON(t, http.MethodPut, journalPath(id), token, map[string]any{
		"content":   "Actually it was great.",
		"mood":      "happy",
		"moodScore": 9,
	})
	if status != http.StatusOK {
		t.Fatalf("update = %d %v", status, body)
	}
	updated := body["journal"].(map[string]any)
	if updated["content"] != "Actually it was great." || updated["title"] != "First entry" {
		t.Fatalf("partial update wrong: %v", updated)
	}

	status, _ = e.doJSON(t, http.MethodDelete, journalPath(id), token, nil)
	if status != http.StatusOK {
		t.Fatalf("delete = %d", status)
	}
	status, _ = e.doJSON(t, http.MethodGet, journalPath(id), token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want 404", status)
	}
}

func journalPath(id int64) string {
	return "/api/journal/" + strconv.FormatInt(id, 10)
}

func TestJournalOwnershipHiddenAs404(t *testing.T) {
	e := newTestServer(t)
	owner := e.anonymousToken(t)
	other := e.anonymousToken(t)

	status, body := e.doJSON(t, http.MethodPost, "/api/journal", owner, map[string]any{
		"content": "private thoughts",
	})
	if status != http.StatusCreated {
		t.Fatalf("create = %d %v", status, body)
	}
	id := int64(body["journal"].(map[string]any)["id"].(float64))

	statusOther, bodyOther := e.doJSON(t, http.MethodGet, journalPath(id), other, nil)
	statusMissing, bodyMissing := e.doJSON(t, http.MethodGet, journalPath(99999), other, nil)
	if statusOther != http.StatusNotFound || statusMissing != http.StatusNotFound {
		t.Fatalf("statuses = %d, %d, want 404 for both", statusOther, statusMissing)
	}
	// a cross-user probe is indistinguishable from a missing row
	if bodyOther["error"] != bodyMissing["error"] {
		t.Fatalf("bodies differ: %v vs %v", bodyOther, bodyMissing)
	}
}

func TestJournalMoodAnalytics(t *testing.T) {
	e := newTestServer(t)
	token := e.anonymousToken(t)

	status, body := e.doJSON(t, http.MethodPost, "/api/journal", token, map[string]any{
		"content":   "great day",
		"mood":      "happy",
		"moodScore": 8,
	})
	if status != http.StatusCreated {
		t.Fatalf("create = %d %v", status, body)
	}
	// entry without a mood score is excluded from analytics
	status, _ = e.doJSON(t, http.MethodPost, "/api/journal", token, map[string]any{
		"content": "unscored note",
	})
	if status != http.StatusCreated {
		t.Fatalf("create unscored = %d", status)
	}

	status, body = e.doJSON(t, http.MethodGet, "/api/journal/analytics/mood?days=7", token, nil)
	if status != http.StatusOK {
		t.Fatalf("analytics = %d %v", status, body)
	}
	analytics := body["analytics"].(map[string]any)
	if analytics["periodDays"].(float64) != 7 {
		t.Fatalf("periodDays = %v", analytics["periodDays"])
	}
	if analytics["totalEntries"].(float64) != 1 {
		t.Fatalf("totalEntries = %v, want 1", analytics["totalEntries"])
	}
	if analytics["averageMoodScore"].(float64) != 8 {
		t.Fatalf("averageMoodScore = %v, want 8", analytics["averageMoodScore"])
	}
	dist := analytics["moodDistribution"].(map[string]any)
	if len(dist) != 1 || dist["happy"].(float64) != 1 {
		t.Fatalf("moodDistribution = %v", dist)
	}
}

func TestJournalRequiresContent(t *testing.T) {
	e := newTestServer(t)
	token := e.anonymousToken(t)

	status, body := e.doJSON(t, http.MethodPost, "/api/journal", token, map[string]any{
		"title": "no content",
	})
	if status != http.StatusBadRequest || body["error"] != "Validation failed" {
		t.Fatalf("create without content = %d %v", status, body)
	}
}
