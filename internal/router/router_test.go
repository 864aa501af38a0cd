package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pausepad/internal/db"
	"pausepad/internal/handler"
	"pausepad/internal/metrics"
	"pausepad/internal/model"
	"pausepad/internal/repository"
	"pausepad/internal/router"
	"pausepad/internal/service"
	"pausepad/internal/timer"
)

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type timerView struct {
	State    model.TimerState  `json:"state"`
	Config   model.TimerConfig `json:"config"`
	Progress float64           `json:"progress"`
	Display  string            `json:"display"`
	Title    string            `json:"title"`
}

type historyEnvelope struct {
	Sessions []model.SessionRecord `json:"sessions"`
}

type apiErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTimerFlowAndIsolation(t *testing.T) {
	engine := setupTestEngine(t, time.Hour)

	user1 := registerUser(t, engine, "user1@example.com", "123456")
	user2 := registerUser(t, engine, "user2@example.com", "123456")

	view := getTimer(t, engine, user1.Token)
	assert.Equal(t, model.StatusIdle, view.State.Status)
	assert.Equal(t, "25:00", view.Display)
	assert.Equal(t, model.DefaultTimerConfig(), view.Config)

	view = postTimer(t, engine, user1.Token, "/api/timer/start", nil)
	assert.Equal(t, model.StatusRunning, view.State.Status)

	status, raw := requestJSON(t, engine, http.MethodPost, "/api/timer/mode", user1.Token, map[string]string{"mode": "shortBreak"})
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "timer_busy", decodeError(t, raw).Error.Code)

	view = postTimer(t, engine, user1.Token, "/api/timer/pause", nil)
	assert.Equal(t, model.StatusPaused, view.State.Status)
	assert.Contains(t, view.Title, "(Paused)")

	view = postTimer(t, engine, user1.Token, "/api/timer/resume", nil)
	assert.Equal(t, model.StatusRunning, view.State.Status)

	view = postTimer(t, engine, user1.Token, "/api/timer/stop", nil)
	assert.Equal(t, model.StatusIdle, view.State.Status)
	assert.Equal(t, 1500, view.State.TimeRemaining)

	view = postTimer(t, engine, user1.Token, "/api/timer/skip", nil)
	assert.Equal(t, model.ModeShortBreak, view.State.Mode)
	assert.Equal(t, 0, view.State.CompletedSessions)

	require.Eventually(t, func() bool {
		return len(getHistory(t, engine, user1.Token).Sessions) == 1
	}, time.Second, 5*time.Millisecond)
	history := getHistory(t, engine, user1.Token)
	assert.True(t, history.Sessions[0].Interrupted)
	assert.Equal(t, model.ModeFocus, history.Sessions[0].Mode)

	assert.Empty(t, getHistory(t, engine, user2.Token).Sessions)
	assert.Equal(t, model.ModeFocus, getTimer(t, engine, user2.Token).State.Mode)

	view = postTimer(t, engine, user1.Token, "/api/timer/reset", nil)
	assert.Equal(t, model.ModeFocus, view.State.Mode)
	assert.Equal(t, 1, view.State.CurrentSession)
}

func TestTimerConfigAndMode(t *testing.T) {
	engine := setupTestEngine(t, time.Hour)
	user := registerUser(t, engine, "config@example.com", "123456")

	status, raw := requestJSON(t, engine, http.MethodPut, "/api/timer/config", user.Token, map[string]int{"focusTime": 50})
	require.Equal(t, http.StatusOK, status, string(raw))
	view := decodeView(t, raw)
	assert.Equal(t, 50, view.Config.FocusTime)
	assert.Equal(t, "50:00", view.Display)

	status, raw = requestJSON(t, engine, http.MethodPut, "/api/timer/config", user.Token, map[string]int{"sessionsUntilLongBreak": 0})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_config", decodeError(t, raw).Error.Code)

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/timer/mode", user.Token, map[string]string{"mode": "siesta"})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_mode", decodeError(t, raw).Error.Code)

	view = postTimer(t, engine, user.Token, "/api/timer/mode", map[string]string{"mode": "longFocus"})
	assert.Equal(t, model.ModeLongFocus, view.State.Mode)
	assert.Equal(t, 45*60, view.State.TotalTime)
}

func TestTasksAndStats(t *testing.T) {
	engine := setupTestEngine(t, time.Millisecond)
	user := registerUser(t, engine, "tasks@example.com", "123456")

	status, raw := requestJSON(t, engine, http.MethodPost, "/api/tasks", user.Token, map[string]string{"text": "  read chapter 3 "})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var task model.Task
	require.NoError(t, json.Unmarshal(raw, &task))
	assert.Equal(t, "read chapter 3", task.Text)

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/tasks", user.Token, map[string]string{})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_request", decodeError(t, raw).Error.Code)

	status, raw = requestJSON(t, engine, http.MethodPost, "/api/tasks/"+task.ID+"/toggle", user.Token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &task))
	assert.True(t, task.Completed)

	status, _ = requestJSON(t, engine, http.MethodPut, "/api/timer/task", user.Token, map[string]string{"taskId": task.ID})
	require.Equal(t, http.StatusOK, status)
	status, _ = requestJSON(t, engine, http.MethodPut, "/api/timer/config", user.Token, map[string]int{"focusTime": 1})
	require.Equal(t, http.StatusOK, status)

	postTimer(t, engine, user.Token, "/api/timer/start", nil)
	require.Eventually(t, func() bool {
		return len(getHistory(t, engine, user.Token).Sessions) == 1
	}, 5*time.Second, 10*time.Millisecond)

	history := getHistory(t, engine, user.Token)
	assert.True(t, history.Sessions[0].Completed)
	assert.Equal(t, task.ID, history.Sessions[0].TaskID)
	assert.Equal(t, 60, history.Sessions[0].DurationSeconds)

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/stats/today", user.Token, nil)
	require.Equal(t, http.StatusOK, status)
	var today model.DailyStats
	require.NoError(t, json.Unmarshal(raw, &today))
	assert.Equal(t, 1, today.PomodoroCount)
	assert.Equal(t, 1, today.CompletedTasksCount)
	assert.Equal(t, 1, today.TotalMinutes)

	status, raw = requestJSON(t, engine, http.MethodGet, "/api/stats/summary", user.Token, nil)
	require.Equal(t, http.StatusOK, status)
	var summary model.TimerStats
	require.NoError(t, json.Unmarshal(raw, &summary))
	assert.Equal(t, 1, summary.SessionsCompleted)
	assert.Equal(t, 100, summary.Productivity)

	status, _ = requestJSON(t, engine, http.MethodDelete, "/api/tasks/"+task.ID, user.Token, nil)
	require.Equal(t, http.StatusNoContent, status)
	status, _ = requestJSON(t, engine, http.MethodDelete, "/api/tasks/"+task.ID, user.Token, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestAuthRequired(t *testing.T) {
	engine := setupTestEngine(t, time.Hour)

	status, raw := requestJSON(t, engine, http.MethodGet, "/api/timer", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "unauthorized", decodeError(t, raw).Error.Code)

	status, _ = requestJSON(t, engine, http.MethodGet, "/api/timer", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	registerUser(t, engine, "dup@example.com", "123456")
	status, raw = requestJSON(t, engine, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "dup@example.com", "password": "123456",
	})
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "email_exists", decodeError(t, raw).Error.Code)

	status, _ = requestJSON(t, engine, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "dup@example.com", "password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestCORSPreflight(t *testing.T) {
	engine := setupTestEngine(t, time.Hour)
	req := httptest.NewRequest(http.MethodOptions, "/api/tasks/abc", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "DELETE")
	recorder := httptest.NewRecorder()

	engine.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "http://localhost:5173", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestRequestIDAndMetrics(t *testing.T) {
	engine := setupTestEngine(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	assert.Equal(t, "trace-123", recorder.Header().Get("X-Request-ID"))

	recorder = httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
	assert.Contains(t, recorder.Body.String(), "pausepad_timers_running")
}

func setupTestEngine(t *testing.T, tick time.Duration) http.Handler {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	_, err = db.RunMigrations(context.Background(), database, db.MigrationSource(migrationsDir))
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(database)
	settingsRepo := repository.NewSettingsRepository(database)
	sessionRepo := repository.NewSessionRepository(database)
	taskRepo := repository.NewTaskRepository(database)

	timerMetrics := metrics.NewTimer()
	authService := service.NewAuthService(userRepo, "test-secret", 24*time.Hour, nil)
	timerService := service.NewTimerService(settingsRepo, sessionRepo, taskRepo, service.TimerServiceOptions{
		TickInterval: tick,
		Observers: []service.ObserverSource{
			func(string) timer.Observer { return timerMetrics.Observer() },
		},
	})
	t.Cleanup(timerService.Close)

	return router.New(router.Dependencies{
		Auth:        authService,
		AuthHandler: handler.NewAuthHandler(authService),
		Timer:       handler.NewTimerHandler(timerService),
		Tasks:       handler.NewTaskHandler(service.NewTaskService(taskRepo, nil)),
		Stats:       handler.NewStatsHandler(service.NewStatsService(sessionRepo, taskRepo, time.Local, nil)),
		Metrics:     timerMetrics.Handler(),
		CORSOrigins: []string{"http://localhost:5173"},
	})
}

func registerUser(t *testing.T, server http.Handler, email, password string) authResponse {
	t.Helper()
	status, body := requestJSON(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, status, "register %s: %s", email, string(body))

	var resp authResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

func getTimer(t *testing.T, server http.Handler, token string) timerView {
	t.Helper()
	status, body := requestJSON(t, server, http.MethodGet, "/api/timer", token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	return decodeView(t, body)
}

func postTimer(t *testing.T, server http.Handler, token, path string, body interface{}) timerView {
	t.Helper()
	status, raw := requestJSON(t, server, http.MethodPost, path, token, body)
	require.Equal(t, http.StatusOK, status, "%s: %s", path, string(raw))
	return decodeView(t, raw)
}

func getHistory(t *testing.T, server http.Handler, token string) historyEnvelope {
	t.Helper()
	status, body := requestJSON(t, server, http.MethodGet, "/api/timer/sessions?limit=10", token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var history historyEnvelope
	require.NoError(t, json.Unmarshal(body, &history))
	return history
}

func decodeView(t *testing.T, raw []byte) timerView {
	t.Helper()
	var view timerView
	require.NoError(t, json.Unmarshal(raw, &view))
	return view
}

func decodeError(t *testing.T, raw []byte) apiErrorEnvelope {
	t.Helper()
	var envelope apiErrorEnvelope
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return envelope
}

func requestJSON(
	t *testing.T,
	server http.Handler,
	method, path, token string,
	body interface{},
) (int, []byte) {
	t.Helper()

	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = raw
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder.Code, recorder.Body.Bytes()
}
