package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	apperrors "pausepad/internal/errors"
	"pausepad/internal/repository"
	"pausepad/internal/service"
	"pausepad/internal/timer"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded sessions and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return apperrors.BadRequest("invalid_limit", "limit must be a positive integer")
			}
			current, err := opts.loadSettings()
			if err != nil {
				return err
			}
			path, err := opts.databasePath(current)
			if err != nil {
				return err
			}
			database, err := openStore(cmd.Context(), path)
			if err != nil {
				return err
			}
			defer database.Close()

			sessions := repository.NewSessionRepository(database)
			records, err := sessions.List(cmd.Context(), localUserID, limit)
			if err != nil {
				return err
			}
			all, err := sessions.ListAll(cmd.Context(), localUserID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "STARTED\tMODE\tDURATION\tRESULT")
			for _, record := range records {
				result := "completed"
				if record.Interrupted {
					result = "interrupted"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					record.StartTime.Local().Format(time.DateTime),
					timer.ModeLabel(record.Mode),
					timer.FormatTime(record.DurationSeconds),
					result,
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			stats := service.Summarize(all)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(),
				"\n%d/%d focus intervals completed (%d%%), longest streak %d, focus time %s\n",
				stats.SessionsCompleted,
				stats.SessionsStarted,
				stats.Productivity,
				stats.LongestStreak,
				(time.Duration(stats.TotalFocusTime) * time.Second).String(),
			)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of sessions to list")
	return cmd
}
