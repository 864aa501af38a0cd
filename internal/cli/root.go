// Package cli implements the pausepad command line.
package cli

import (
	"github.com/spf13/cobra"

	"pausepad/internal/settings"
)

// localUserID owns every record written by the terminal client.
const localUserID = "local"

type rootOptions struct {
	settingsPath string
	dbPath       string
	logLevel     string
}

func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "pausepad",
		Short:         "Pomodoro timer for the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.settingsPath == "" {
				path, err := settings.DefaultPath()
				if err != nil {
					return err
				}
				opts.settingsPath = path
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.settingsPath, "config", "", "settings file (default <user config dir>/pausepad/settings.yaml)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "session database (default from settings)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level for the log file")

	root.AddCommand(newTimerCommand(opts))
	root.AddCommand(newConfigCommand(opts))
	root.AddCommand(newHistoryCommand(opts))
	return root
}

func (o *rootOptions) loadSettings() (settings.Settings, error) {
	return settings.Load(o.settingsPath)
}

// databasePath resolves --db, then the settings file, then the default.
func (o *rootOptions) databasePath(s settings.Settings) (string, error) {
	if o.dbPath != "" {
		return o.dbPath, nil
	}
	if s.DBPath != "" {
		return s.DBPath, nil
	}
	return settings.DefaultDBPath()
}
