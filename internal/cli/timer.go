package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pausepad/internal/logging"
	"pausepad/internal/model"
	"pausepad/internal/notify"
	"pausepad/internal/repository"
	"pausepad/internal/service"
	"pausepad/internal/settings"
	"pausepad/internal/timer"
	"pausepad/internal/tui"
)

func newTimerCommand(opts *rootOptions) *cobra.Command {
	var taskText string
	var mode string

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run the interactive timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := opts.loadSettings()
			if err != nil {
				return err
			}

			logger, err := openLog(opts.logLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			path, err := opts.databasePath(current)
			if err != nil {
				return err
			}
			database, err := openStore(cmd.Context(), path)
			if err != nil {
				return err
			}
			defer database.Close()

			machine, err := timer.NewMachine(current.Timer,
				timer.WithUserID(localUserID),
				timer.WithIDGenerator(uuid.NewString),
			)
			if err != nil {
				return err
			}
			controller := timer.NewController(machine, timer.Options{Logger: logger})
			notifier := newNotifier(current, logger)
			store := service.NewSessionStore(repository.NewSessionRepository(database), logger)
			defer func() {
				controller.Dispose()
				store.Close()
				notifier.Wait()
			}()

			sessionLog := timer.NewSessionLog(0, logger)
			controller.AddObserver(store)
			controller.AddObserver(sessionLog)
			controller.AddObserver(notifier)

			if mode != "" {
				if _, err := controller.SetMode(model.TimerMode(mode)); err != nil {
					return err
				}
			}

			taskText = strings.TrimSpace(taskText)
			if taskText != "" {
				task, apiErr := service.NewTaskService(repository.NewTaskRepository(database), logger).
					Create(cmd.Context(), localUserID, taskText)
				if apiErr != nil {
					return apiErr
				}
				controller.SetCurrentTask(task.ID)
			}

			screen := tui.New(tui.Config{
				Timer:    controller,
				Events:   controller.Subscribe(64),
				History:  sessionLog,
				TaskText: taskText,
			})
			logger.Info("timer opened", zap.String("db_path", path))
			_, err = tea.NewProgram(screen, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&taskText, "task", "t", "", "task worked on during this run")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "initial mode (focus, longFocus, shortBreak, longBreak)")
	return cmd
}

func newNotifier(s settings.Settings, logger *zap.Logger) *notify.Notifier {
	cfg := notify.Config{
		Logger:   logger,
		Language: s.Language,
		Timeout:  10 * time.Second,
	}
	if s.Notifications {
		cfg.Desktop = notify.NewCommandDesktop()
	}
	if s.Sound {
		cfg.Player = notify.NewCommandPlayer()
	}
	return notify.NewNotifier(cfg)
}

func openLog(level string) (*zap.Logger, error) {
	path, err := settings.DefaultLogPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return logging.NewFile(path, level)
}
