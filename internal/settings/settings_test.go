package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pausepad/internal/settings"
	"pausepad/internal/timer"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	loaded, err := settings.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  focus_time: 50\nlanguage: it\n"), 0o644))

	loaded, err := settings.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, loaded.Timer.FocusTime)
	assert.Equal(t, 5, loaded.Timer.ShortBreakTime)
	assert.Equal(t, 4, loaded.Timer.SessionsUntilLongBreak)
	assert.Equal(t, "it", loaded.Language)
	assert.True(t, loaded.Sound)
}

func TestLoadRejectsInvalidTimer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  sessions_until_long_break: 0\n"), 0o644))

	loaded, err := settings.Load(path)
	require.ErrorIs(t, err, timer.ErrInvalidConfig)
	assert.Equal(t, settings.Default(), loaded)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timer: [1, 2"), 0o644))

	_, err := settings.Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	want := settings.Default()
	want.Timer.LongBreakTime = 20
	want.Timer.AutoStartBreaks = true
	want.Notifications = false

	require.NoError(t, settings.Save(path, want))
	got, err := settings.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "long_break_time: 20")
}

func TestSaveRejectsInvalidTimer(t *testing.T) {
	bad := settings.Default()
	bad.Timer.FocusTime = 0
	err := settings.Save(filepath.Join(t.TempDir(), "settings.yaml"), bad)
	assert.ErrorIs(t, err, timer.ErrInvalidConfig)
}
