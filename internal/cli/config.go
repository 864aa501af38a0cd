package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pausepad/internal/model"
	"pausepad/internal/settings"
	"pausepad/internal/timer"
)

func newConfigCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change timer settings",
	}
	cmd.AddCommand(newConfigShowCommand(opts))
	cmd.AddCommand(newConfigSetCommand(opts))
	return cmd
}

func newConfigShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := opts.loadSettings()
			if err != nil {
				return err
			}
			serialized, err := yaml.Marshal(current)
			if err != nil {
				return fmt.Errorf("marshal settings: %w", err)
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "# %s\n", opts.settingsPath)
			_, _ = w.Write(serialized)
			return nil
		},
	}
}

type configFlags struct {
	focus         int
	longFocus     int
	shortBreak    int
	longBreak     int
	sessions      int
	autoBreaks    bool
	autoPomodoros bool
	language      string
	notifications bool
	sound         bool
}

func newConfigSetCommand(opts *rootOptions) *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings; only the flags given are updated",
		Example: `  pausepad config set --focus 30 --short-break 5
  pausepad config set --auto-breaks --language es`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := opts.loadSettings()
			if err != nil {
				return err
			}

			changed := cmd.Flags().Changed
			patch := model.TimerConfigPatch{}
			if changed("focus") {
				patch.FocusTime = &flags.focus
			}
			if changed("long-focus") {
				patch.LongFocusTime = &flags.longFocus
			}
			if changed("short-break") {
				patch.ShortBreakTime = &flags.shortBreak
			}
			if changed("long-break") {
				patch.LongBreakTime = &flags.longBreak
			}
			if changed("sessions") {
				patch.SessionsUntilLongBreak = &flags.sessions
			}
			if changed("auto-breaks") {
				patch.AutoStartBreaks = &flags.autoBreaks
			}
			if changed("auto-pomodoros") {
				patch.AutoStartPomodoros = &flags.autoPomodoros
			}

			updated := current
			updated.Timer = patch.Apply(current.Timer)
			if err := timer.ValidateConfig(updated.Timer); err != nil {
				return err
			}
			if changed("language") {
				updated.Language = flags.language
			}
			if changed("notifications") {
				updated.Notifications = flags.notifications
			}
			if changed("sound") {
				updated.Sound = flags.sound
			}

			if err := settings.Save(opts.settingsPath, updated); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", opts.settingsPath)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.focus, "focus", model.DefaultFocusMinutes, "focus length in minutes")
	f.IntVar(&flags.longFocus, "long-focus", model.DefaultLongFocusMinutes, "long focus length in minutes")
	f.IntVar(&flags.shortBreak, "short-break", model.DefaultShortBreakMinutes, "short break length in minutes")
	f.IntVar(&flags.longBreak, "long-break", model.DefaultLongBreakMinutes, "long break length in minutes")
	f.IntVar(&flags.sessions, "sessions", model.DefaultSessionsUntilLongBreak, "focus intervals per long break")
	f.BoolVar(&flags.autoBreaks, "auto-breaks", false, "start breaks automatically")
	f.BoolVar(&flags.autoPomodoros, "auto-pomodoros", false, "start focus intervals automatically")
	f.StringVar(&flags.language, "language", "", "notification language (en, es, it, tr, zh)")
	f.BoolVar(&flags.notifications, "notifications", true, "show desktop notifications")
	f.BoolVar(&flags.sound, "sound", true, "play the completion chime")
	return cmd
}
