package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pausepad/internal/model"
	"pausepad/internal/repository"
	"pausepad/internal/settings"
)

type paths struct {
	settings string
	db       string
}

func newPaths(t *testing.T) paths {
	t.Helper()
	dir := t.TempDir()
	return paths{
		settings: filepath.Join(dir, "settings.yaml"),
		db:       filepath.Join(dir, "pausepad.db"),
	}
}

func execute(t *testing.T, p paths, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", p.settings, "--db", p.db}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigShowPrintsDefaults(t *testing.T) {
	p := newPaths(t)

	out, err := execute(t, p, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# "+p.settings)
	assert.Contains(t, out, "timer:")
	assert.Contains(t, out, "sessions_until_long_break: 4")
}

func TestConfigSetUpdatesOnlyGivenFlags(t *testing.T) {
	p := newPaths(t)

	out, err := execute(t, p, "config", "set", "--focus", "30", "--auto-breaks", "--language", "es")
	require.NoError(t, err)
	assert.Contains(t, out, "saved "+p.settings)

	saved, err := settings.Load(p.settings)
	require.NoError(t, err)
	assert.Equal(t, 30, saved.Timer.FocusTime)
	assert.True(t, saved.Timer.AutoStartBreaks)
	assert.Equal(t, "es", saved.Language)

	defaults := model.DefaultTimerConfig()
	assert.Equal(t, defaults.ShortBreakTime, saved.Timer.ShortBreakTime)
	assert.Equal(t, defaults.LongBreakTime, saved.Timer.LongBreakTime)
	assert.False(t, saved.Timer.AutoStartPomodoros)
	assert.True(t, saved.Notifications)

	_, err = execute(t, p, "config", "set", "--sound=false")
	require.NoError(t, err)
	saved, err = settings.Load(p.settings)
	require.NoError(t, err)
	assert.Equal(t, 30, saved.Timer.FocusTime)
	assert.False(t, saved.Sound)
}

func TestConfigSetRejectsInvalidConfig(t *testing.T) {
	p := newPaths(t)

	_, err := execute(t, p, "config", "set", "--sessions", "0")
	require.Error(t, err)

	_, err = execute(t, p, "config", "set", "--focus", "0")
	require.Error(t, err)

	_, err = execute(t, p, "config", "set", "--long-break", "100000")
	require.Error(t, err)

	saved, err := settings.Load(p.settings)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), saved)
}

func TestHistoryEmpty(t *testing.T) {
	p := newPaths(t)

	out, err := execute(t, p, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "STARTED")
	assert.Contains(t, out, "0/0 focus intervals completed (0%)")
}

func TestHistoryRejectsNonPositiveLimit(t *testing.T) {
	p := newPaths(t)

	for _, limit := range []string{"0", "-1"} {
		_, err := execute(t, p, "history", "--limit", limit)
		require.Error(t, err, "limit=%s", limit)
		assert.Contains(t, err.Error(), "invalid_limit")
	}
}

func TestHistoryListsRecordedSessions(t *testing.T) {
	p := newPaths(t)
	database, err := openStore(context.Background(), p.db)
	require.NoError(t, err)

	repo := repository.NewSessionRepository(database)
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	records := []model.SessionRecord{
		closedRecord("a", model.ModeFocus, start, 1500, true),
		closedRecord("b", model.ModeShortBreak, start.Add(25*time.Minute), 300, true),
		closedRecord("c", model.ModeFocus, start.Add(30*time.Minute), 600, false),
	}
	for _, record := range records {
		require.NoError(t, repo.Insert(context.Background(), record))
	}
	require.NoError(t, database.Close())

	out, err := execute(t, p, "history", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Short Break")
	assert.Contains(t, out, "interrupted")
	assert.Contains(t, out, "10:00")
	assert.Equal(t, 1, strings.Count(out, "completed\n"))
	assert.Contains(t, out, "1/2 focus intervals completed (50%)")
}

func closedRecord(id string, mode model.TimerMode, start time.Time, seconds int, completed bool) model.SessionRecord {
	end := start.Add(time.Duration(seconds) * time.Second)
	return model.SessionRecord{
		ID:              id,
		UserID:          localUserID,
		Mode:            mode,
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: seconds,
		PlannedSeconds:  seconds,
		Completed:       completed,
		Interrupted:     !completed,
		CreatedAt:       start,
	}
}
