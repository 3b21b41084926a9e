package control_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/RodCaba/fp-orchestrator/wire"
)

// controlStub mimics the orchestrator's REST API, including its plain-text
// command responses.
type controlStub struct {
	*httptest.Server

	mu         sync.Mutex
	activities []wire.Activity
	recording  string
	predicting bool
	users      int
	requests   int
}

func newControlStub(t *testing.T) *controlStub {
	s := &controlStub{users: 1}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/activities", s.listActivities)
	mux.HandleFunc("POST /api/activities", s.createActivity)
	mux.HandleFunc("POST /api/start_activity", s.startActivity)
	mux.HandleFunc("POST /api/stop_activity", s.stopActivity)
	mux.HandleFunc("POST /api/start_prediction", s.startPrediction)
	mux.HandleFunc("POST /api/stop_prediction", s.stopPrediction)
	mux.HandleFunc("GET /api/metrics/latest", s.latestMetrics)
	mux.HandleFunc("GET /api/metrics/summary", s.metricsSummary)

	s.Server = httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			s.requests++
			s.mu.Unlock()
			mux.ServeHTTP(w, r)
		},
	))
	t.Cleanup(s.Close)
	return s
}

func (s *controlStub) seed(activities ...wire.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, activities...)
}

func (s *controlStub) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *controlStub) listActivities(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.activities)
}

func (s *controlStub) createActivity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		fail(w, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.activities {
		if strings.EqualFold(a.Name, body.Name) {
			fail(w, fmt.Sprintf("Activity '%s' already exists.", body.Name))
			return
		}
	}

	created := wire.Activity{
		ID:          fmt.Sprintf("act-%d", len(s.activities)+1),
		Name:        body.Name,
		Description: body.Description,
		CreatedAt:   wire.Timestamp{Time: time.Now().UTC()},
	}
	s.activities = append(s.activities, created)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(created)
}

func (s *controlStub) startActivity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ActivityName string `json:"activity_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		fail(w, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.activities {
		if strings.EqualFold(a.Name, body.ActivityName) {
			s.recording = a.Name
			fmt.Fprintf(w, "Activity '%s' started successfully", a.Name)
			return
		}
	}
	fail(w, fmt.Sprintf("Activity '%s' not found.", body.ActivityName))
}

func (s *controlStub) stopActivity(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recording == "" {
		fail(w, "No activity is currently running.")
		return
	}
	name := s.recording
	s.recording = ""
	fmt.Fprintf(w, "Activity '%s' stopped successfully", name)
}

func (s *controlStub) startPrediction(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.predicting {
		fail(w, "Prediction mode is already active.")
		return
	}
	if s.users == 0 {
		fail(w, "No users detected. At least 1 user must be present to start prediction mode.")
		return
	}
	s.predicting = true
	fmt.Fprint(w, "Prediction mode started successfully")
}

func (s *controlStub) stopPrediction(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.predicting {
		fail(w, "Prediction mode is not active.")
		return
	}
	s.predicting = false
	fmt.Fprint(w, "Prediction mode stopped successfully")
}

func (s *controlStub) latestMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"recent_inferences": []any{},
		"recent_system":     []any{},
		"summary": map[string]any{
			"total_inferences": 42,
		},
	})
}

func (s *controlStub) metricsSummary(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"total_inferences": 42,
		"avg_latency_ms":   12.5,
	})
}

func fail(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprint(w, message)
}
