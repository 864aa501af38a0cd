package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pausepad/internal/model"
	"pausepad/internal/timer"
)

const (
	AppName          = "pausepad"
	settingsFileName = "settings.yaml"
	databaseFileName = "pausepad.db"
	logFileName      = "pausepad.log"
)

// Settings are the local preferences of the terminal client.
type Settings struct {
	Timer         model.TimerConfig `yaml:"timer"`
	Language      string            `yaml:"language,omitempty"`
	Notifications bool              `yaml:"notifications"`
	Sound         bool              `yaml:"sound"`
	DBPath        string            `yaml:"db_path,omitempty"`
}

func Default() Settings {
	return Settings{
		Timer:         model.DefaultTimerConfig(),
		Notifications: true,
		Sound:         true,
	}
}

// Dir returns the directory holding the settings file, database and log.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, AppName), nil
}

func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFileName), nil
}

func DefaultDBPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, databaseFileName), nil
}

func DefaultLogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logFileName), nil
}

// Load reads settings from path. A missing file yields the defaults; keys
// absent from the file keep their default values.
func Load(path string) (Settings, error) {
	settings := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return Default(), fmt.Errorf("parse settings yaml: %w", err)
	}
	if err := timer.ValidateConfig(settings.Timer); err != nil {
		return Default(), fmt.Errorf("settings file %s: %w", path, err)
	}
	return settings, nil
}

func Save(path string, settings Settings) error {
	if err := timer.ValidateConfig(settings.Timer); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
