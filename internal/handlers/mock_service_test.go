package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"firing_curve/internal/builder"
	"firing_curve/internal/chart"
	"firing_curve/internal/curve"
	"firing_curve/internal/glass"
	"firing_curve/internal/models"
	"firing_curve/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

// mockPrograms answers every call with view/err and records its inputs.
type mockPrograms struct {
	view  models.ProgramView
	list  []models.ProgramSummary
	phase curve.PhaseValues
	chart chart.Chart
	glass []glass.Type
	err   error
	calls []string

	lastID     string
	lastName   string
	lastRoom   int
	lastBuild  builder.Params
	lastIndex  int
	lastInsert service.PhaseParams
	lastUpdate service.PhaseUpdate
}

func (m *mockPrograms) Create(ctx context.Context, name string, roomTemp int) (models.ProgramView, error) {
	m.calls = append(m.calls, "Create")
	m.lastName, m.lastRoom = name, roomTemp
	return m.view, m.err
}
func (m *mockPrograms) Build(ctx context.Context, name string, p builder.Params) (models.ProgramView, error) {
	m.calls = append(m.calls, "Build")
	m.lastName, m.lastBuild = name, p
	return m.view, m.err
}
func (m *mockPrograms) Get(ctx context.Context, id string) (models.ProgramView, error) {
	m.calls = append(m.calls, "Get")
	m.lastID = id
	return m.view, m.err
}
func (m *mockPrograms) List(ctx context.Context) ([]models.ProgramSummary, error) {
	m.calls = append(m.calls, "List")
	return m.list, m.err
}
func (m *mockPrograms) Delete(ctx context.Context, id string) error {
	m.calls = append(m.calls, "Delete")
	m.lastID = id
	return m.err
}
func (m *mockPrograms) InsertPhase(ctx context.Context, id string, p service.PhaseParams) (models.ProgramView, error) {
	m.calls = append(m.calls, "InsertPhase")
	m.lastID, m.lastInsert = id, p
	return m.view, m.err
}
func (m *mockPrograms) RemovePhase(ctx context.Context, id string, index int) (models.ProgramView, error) {
	m.calls = append(m.calls, "RemovePhase")
	m.lastID, m.lastIndex = id, index
	return m.view, m.err
}
func (m *mockPrograms) FindPhase(ctx context.Context, id string, index int) (curve.PhaseValues, error) {
	m.calls = append(m.calls, "FindPhase")
	m.lastID, m.lastIndex = id, index
	return m.phase, m.err
}
func (m *mockPrograms) UpdatePhase(ctx context.Context, id string, index int, u service.PhaseUpdate) (models.ProgramView, error) {
	m.calls = append(m.calls, "UpdatePhase")
	m.lastID, m.lastIndex, m.lastUpdate = id, index, u
	return m.view, m.err
}
func (m *mockPrograms) Chart(ctx context.Context, id string) (chart.Chart, error) {
	m.calls = append(m.calls, "Chart")
	m.lastID = id
	return m.chart, m.err
}
func (m *mockPrograms) GlassTypes() []glass.Type { return m.glass }

type mockKiln struct {
	startErr    error
	stopErr     error
	lastProgram string
	startCalled int
	stopCalled  int
}

func (m *mockKiln) Start(ctx context.Context, programID string) error {
	m.startCalled++
	m.lastProgram = programID
	return m.startErr
}
func (m *mockKiln) Stop(ctx context.Context) error {
	m.stopCalled++
	return m.stopErr
}

type mockMonitoring struct {
	mu    sync.Mutex
	state models.KilnState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.KilnState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.err
}

func (m *mockMonitoring) set(st models.KilnState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = st
}

type mockEventLog struct {
	resp       []models.ProgramEvent
	err        error
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ProgramEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// serve sends an authenticated request with an optional JSON body.
func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeError returns the "error" field of a JSON error response.
func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return out.Error
}
