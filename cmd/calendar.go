package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spiffcs/ghlens/internal/calendar"
	"github.com/spiffcs/ghlens/internal/log"
	"github.com/spiffcs/ghlens/internal/model"
	"github.com/spiffcs/ghlens/internal/output"
	"github.com/spiffcs/ghlens/internal/service"
	"github.com/spiffcs/ghlens/internal/tui"
)

// NewCmdCalendar creates the calendar command.
func NewCmdCalendar(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar <username>",
		Short: "Show a user's contribution calendar",
		Long: `Shows one year of contributions as a heatmap, darkest to brightest by
activity. In a terminal the calendar is interactive: use the arrow keys
(or h/l) to move between years. Years already seen are not fetched again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.Year, "year", 0, "Year to show (default: current year)")
	return cmd
}

func runCalendar(cmd *cobra.Command, username string, opts *Options) error {
	username, err := service.ValidateUsername(username)
	if err != nil {
		return usageError(cmd, err)
	}

	currentYear := time.Now().Year()
	year, err := resolveYear(opts.Year, currentYear)
	if err != nil {
		return err
	}

	rt, cleanup, err := setupSession(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	loader := calendar.NewLoader(rt.client, nil)
	if rt.useTUI {
		return tui.RunCalendar(cmd.Context(), loader, username, year, currentYear, tui.WithColor(!color.NoColor))
	}

	log.Info("fetching contribution calendar", "user", username, "year", year)
	cal, _, err := loader.Load(cmd.Context(), username, year)
	if err != nil {
		return fmt.Errorf("failed to load contributions: %w", err)
	}
	stats := loader.Stats()
	log.Debug("calendar loader", "hits", stats.Hits, "misses", stats.Misses, "fetches", stats.Fetches)

	report := output.CalendarReport{
		Username: username,
		Year:     year,
		Years:    model.AvailableYears(cal.AccountCreatedYear, currentYear),
		Derived:  calendar.Derive(cal),
	}
	return rt.formatter().Calendar(report, cmd.OutOrStdout())
}

// resolveYear defaults year to the current one and rejects future years.
func resolveYear(year, currentYear int) (int, error) {
	switch {
	case year == 0:
		return currentYear, nil
	case year < 0 || year > currentYear:
		return 0, fmt.Errorf("invalid year %d: must be between 1 and %d", year, currentYear)
	default:
		return year, nil
	}
}
