// Package main provides an operator CLI for inspecting and correcting the
// activity log without going through WhatsApp.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	walog "go.mau.fi/whatsmeow/util/log"

	"github.com/fardannozami/sweat-tracker/internal/app/usecase"
	"github.com/fardannozami/sweat-tracker/internal/config"
	"github.com/fardannozami/sweat-tracker/internal/domain"
	"github.com/fardannozami/sweat-tracker/internal/infra/sqlite"
	"github.com/fardannozami/sweat-tracker/internal/streak"
)

var (
	dbPath     string
	asOfFlag   string
	jsonOutput bool

	logDay  string
	logName string
	logSkip bool
)

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "streakctl",
		Short:        "Inspect and correct activity streaks",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.SQLitePath, "path to the SQLite database")
	rootCmd.PersistentFlags().StringVar(&asOfFlag, "as-of", "", "evaluate as of this day (YYYY-MM-DD, default: today)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON")

	rootCmd.AddCommand(newShowCmd(cfg))
	rootCmd.AddCommand(newLeaderboardCmd(cfg))
	rootCmd.AddCommand(newLogCmd(cfg))
	return rootCmd
}

func newShowCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show <user_id>",
		Short: "Show the streak of a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(db *sql.DB) error {
				clock, err := resolveClock(cfg.Location)
				if err != nil {
					return err
				}
				uc := usecase.NewGetStreakUsecase(sqlite.NewMemberRepository(db), sqlite.NewObservationRepository(db), clock, cliLogger())
				ms, err := uc.Execute(cmd.Context(), args[0])
				if errors.Is(err, domain.ErrMemberNotFound) {
					return fmt.Errorf("member %s not found", args[0])
				}
				if err != nil {
					return fmt.Errorf("failed to load streak: %w", err)
				}
				if jsonOutput {
					return writeJSON(cmd.OutOrStdout(), ms)
				}
				return writeMember(cmd.OutOrStdout(), ms)
			})
		},
	}
}

func newLeaderboardCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the current leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(db *sql.DB) error {
				clock, err := resolveClock(cfg.Location)
				if err != nil {
					return err
				}
				uc := usecase.NewGetLeaderboardUsecase(sqlite.NewMemberRepository(db), sqlite.NewObservationRepository(db), clock, cliLogger())
				if jsonOutput {
					standings, err := uc.Standings(cmd.Context())
					if err != nil {
						return fmt.Errorf("failed to load standings: %w", err)
					}
					return writeJSON(cmd.OutOrStdout(), standings)
				}
				text, err := uc.Execute(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to build leaderboard: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			})
		},
	}
}

func newLogCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <user_id>",
		Short: "Record or correct the activity of one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().In(cfg.Location)
			day := streak.DayOf(now)
			if logDay != "" {
				parsed, err := streak.ParseDay(logDay)
				if err != nil {
					return fmt.Errorf("invalid --day value: %w", err)
				}
				day = parsed
			}

			return withDB(cmd.Context(), func(db *sql.DB) error {
				members := sqlite.NewMemberRepository(db)
				observations := sqlite.NewObservationRepository(db)

				member, err := members.GetMember(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to load member: %w", err)
				}
				if member == nil {
					if logName == "" {
						return fmt.Errorf("member %s not found (pass --name to register)", args[0])
					}
					member = &domain.Member{UserID: args[0], JoinedAt: now}
				}
				if logName != "" {
					member.Name = logName
				}
				if err := members.UpsertMember(cmd.Context(), member); err != nil {
					return fmt.Errorf("failed to save member: %w", err)
				}

				obs := streak.Observation{EntityID: args[0], Day: day, Completed: !logSkip}
				if err := observations.UpsertObservation(cmd.Context(), obs, now); err != nil {
					return fmt.Errorf("failed to save activity: %w", err)
				}
				state := "completed"
				if logSkip {
					state = "rest day"
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s marked as %s\n", member.Name, day, state)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&logDay, "day", "", "day to record (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&logName, "name", "", "display name, required for new members")
	cmd.Flags().BoolVar(&logSkip, "skip", false, "record a rest day instead of an activity")
	return cmd
}

func withDB(ctx context.Context, fn func(db *sql.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "failed to close db: %v\n", cerr)
		}
	}()
	return fn(db)
}

// resolveClock pins the evaluation instant to the end of --as-of when given.
func resolveClock(loc *time.Location) (usecase.Clock, error) {
	if asOfFlag == "" {
		return usecase.SystemClock(loc), nil
	}
	day, err := streak.ParseDay(asOfFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid --as-of value: %w", err)
	}
	midnight := day.Time(loc)
	asOf := time.Date(midnight.Year(), midnight.Month(), midnight.Day(), 23, 59, 59, 0, loc)
	return func() time.Time { return asOf }, nil
}

func cliLogger() walog.Logger {
	return walog.Stdout("streakctl", "WARN", false)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeMember(w io.Writer, ms *domain.MemberStreak) error {
	if ms.Streak == nil {
		_, err := fmt.Fprintf(w, "%s (%s): streak unavailable\n", ms.Name, ms.UserID)
		return err
	}
	_, err := fmt.Fprintf(w, "%s (%s)\n  current: %d\n  longest: %d\n  total:   %d\n  status:  %s\n  last:    %s\n",
		ms.Name, ms.UserID, ms.Streak.Current, ms.Streak.Longest, ms.ActivityCount, ms.Status, ms.LastActive)
	return err
}
