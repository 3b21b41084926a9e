package console_test

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
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

// orchestratorStub serves both halves of the orchestrator's surface: the
// REST command API, with the orchestrator's plain-text responses, and the
// push endpoint, with test-driven broadcasts.
type orchestratorStub struct {
	*httptest.Server

	mu                sync.Mutex
	activities        []wire.Activity
	recording         string
	predicting        bool
	users             int
	nextID            int
	failStops         bool
	createHits        int
	startActivityHits int
	stopActivityHits  int
	stopPredictHits   int

	conns    []*websocket.Conn
	accepted chan *websocket.Conn
}

func newOrchestratorStub(t *testing.T) *orchestratorStub {
	s := &orchestratorStub{
		users:    1,
		accepted: make(chan *websocket.Conn, 8),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/activities", s.listActivities)
	mux.HandleFunc("POST /api/activities", s.createActivity)
	mux.HandleFunc("POST /api/start_activity", s.startActivity)
	mux.HandleFunc("POST /api/stop_activity", s.stopActivity)
	mux.HandleFunc("POST /api/start_prediction", s.startPrediction)
	mux.HandleFunc("POST /api/stop_prediction", s.stopPrediction)
	mux.HandleFunc("GET /api/metrics/latest", s.latestMetrics)
	mux.HandleFunc("GET /ws", s.ws)

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.close)
	return s
}

func (s *orchestratorStub) seed(activities ...wire.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, activities...)
}

func (s *orchestratorStub) setFailStops(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStops = fail
}

func (s *orchestratorStub) counts() (create, start, stopActivity, stopPrediction int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createHits, s.startActivityHits, s.stopActivityHits, s.stopPredictHits
}

// waitConn blocks until the console's push channel is accepted.
func (s *orchestratorStub) waitConn(t *testing.T) *websocket.Conn {
	t.Helper()
	select {
	case conn := <-s.accepted:
		return conn
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for push connection")
		panic("unreachable")
	}
}

// broadcast encodes an event and writes it to every push connection.
func (s *orchestratorStub) broadcast(t *testing.T, event wire.Event) {
	t.Helper()
	frame, err := wire.Encode(event)
	require.NoError(t, err)
	s.broadcastRaw(t, frame)
}

func (s *orchestratorStub) broadcastRaw(t *testing.T, frame []byte) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.conns)
	for _, conn := range s.conns {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, frame))
	}
}

func (s *orchestratorStub) ws(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.conns = append(s.conns, conn)
	s.mu.Unlock()
	s.accepted <- conn
}

func (s *orchestratorStub) listActivities(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.activities)
}

func (s *orchestratorStub) createActivity(w http.ResponseWriter, r *http.Request) {
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
	s.createHits++
	for _, a := range s.activities {
		if strings.EqualFold(a.Name, body.Name) {
			fail(w, fmt.Sprintf("Activity '%s' already exists.", body.Name))
			return
		}
	}

	s.nextID++
	created := wire.Activity{
		ID:          fmt.Sprintf("act-%d", s.nextID),
		Name:        body.Name,
		Description: body.Description,
		CreatedAt:   wire.Timestamp{Time: time.Now().UTC()},
	}
	s.activities = append(s.activities, created)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(created)
}

func (s *orchestratorStub) startActivity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ActivityName string `json:"activity_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		fail(w, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.startActivityHits++
	for _, a := range s.activities {
		if strings.EqualFold(a.Name, body.ActivityName) {
			s.recording = a.Name
			fmt.Fprintf(w, "Activity '%s' started successfully", a.Name)
			return
		}
	}
	fail(w, fmt.Sprintf("Activity '%s' not found.", body.ActivityName))
}

func (s *orchestratorStub) stopActivity(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopActivityHits++
	if s.failStops || s.recording == "" {
		fail(w, "No activity is currently running.")
		return
	}
	name := s.recording
	s.recording = ""
	fmt.Fprintf(w, "Activity '%s' stopped successfully", name)
}

func (s *orchestratorStub) startPrediction(w http.ResponseWriter, _ *http.Request) {
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

func (s *orchestratorStub) stopPrediction(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopPredictHits++
	if s.failStops || !s.predicting {
		fail(w, "Prediction mode is not active.")
		return
	}
	s.predicting = false
	fmt.Fprint(w, "Prediction mode stopped successfully")
}

func (s *orchestratorStub) latestMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"recent_inferences": []any{},
		"summary": map[string]any{
			"total_inferences": 42,
		},
	})
}

// dropConns severs every live push connection.
func (s *orchestratorStub) dropConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conn := range s.conns {
		_ = conn.Close()
	}
	s.conns = nil
}

func (s *orchestratorStub) close() {
	s.mu.Lock()
	for _, conn := range s.conns {
		_ = conn.Close()
	}
	s.conns = nil
	s.mu.Unlock()
	s.Server.Close()
}

func fail(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprint(w, message)
}
