package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spiffcs/ghlens/internal/service"
	"github.com/spiffcs/ghlens/internal/tui"
)

// NewCmdProfile creates the profile command.
func NewCmdProfile(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "profile <username>",
		Short: "Show a user's profile and repository timeline (same as root ghlens)",
		Long: `Fetches the user's profile and repositories from the backend and shows
the repositories newest first, grouped under the year they were created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd, args[0], opts)
		},
	}
}

func runProfile(cmd *cobra.Command, username string, opts *Options) error {
	username, err := service.ValidateUsername(username)
	if err != nil {
		return usageError(cmd, err)
	}

	rt, cleanup, err := setupSession(opts)
	if err != nil {
		return err
	}
	defer cleanup()
	rt.startTUI(tui.WithTasks(tui.DashboardTasks()), tui.WithTitle("@"+username))

	svc := rt.newService()
	ctx := cmd.Context()

	rt.step(tui.TaskProfile, "fetching profile", "user", username)
	profile, err := svc.Profile(ctx, username)
	if err != nil {
		rt.fail(tui.TaskProfile, err)
		return fmt.Errorf("failed to load profile: %w", err)
	}
	rt.sendEvent(tui.TaskProfile, tui.StatusComplete, tui.WithMessage(profile.DisplayName()))

	rt.step(tui.TaskRepositories, "fetching repositories", "user", username)
	repos, err := svc.Repositories(ctx, username)
	if err != nil {
		rt.fail(tui.TaskRepositories, err)
		return fmt.Errorf("failed to load repositories: %w", err)
	}
	rt.sendEvent(tui.TaskRepositories, tui.StatusComplete, tui.WithCount(len(repos)))

	rt.sendEvent(tui.TaskRender, tui.StatusComplete)
	rt.close()

	d := &service.Dashboard{Profile: profile, Repositories: repos}
	return rt.formatter().Dashboard(d, cmd.OutOrStdout())
}

// usageError prints the command usage for a missing username and returns err.
func usageError(cmd *cobra.Command, err error) error {
	if errors.Is(err, service.ErrNoUsername) {
		_ = cmd.Usage()
	}
	return err
}
