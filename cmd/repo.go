package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spiffcs/ghlens/internal/log"
	"github.com/spiffcs/ghlens/internal/service"
	"github.com/spiffcs/ghlens/internal/tui"
)

// NewCmdRepo creates the repo command.
func NewCmdRepo(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "repo <username> <owner/name>",
		Short: "Show a repository with its AI summary",
		Long: `Shows a repository's details, README and AI-generated summary. For
repositories with more than one contributor, the user's own contribution
is analyzed as well. Each section loads independently; one failing does
not hide the others.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepo(cmd, args[0], args[1], opts)
		},
	}
}

func runRepo(cmd *cobra.Command, username, nameWithOwner string, opts *Options) error {
	username, err := service.ValidateUsername(username)
	if err != nil {
		return usageError(cmd, err)
	}

	rt, cleanup, err := setupSession(opts)
	if err != nil {
		return err
	}
	defer cleanup()
	rt.startTUI(tui.WithTasks(tui.RepositoryTasks()), tui.WithTitle(nameWithOwner))

	svc := rt.newService()
	ctx := cmd.Context()

	rt.step(tui.TaskRepositories, "resolving repository", "repo", nameWithOwner)
	repo, err := svc.ResolveRepository(ctx, username, nameWithOwner)
	if err != nil {
		rt.fail(tui.TaskRepositories, err)
		return err
	}
	rt.sendEvent(tui.TaskRepositories, tui.StatusComplete, tui.WithMessage(repo.NameWithOwner))

	onProgress := func(completed, total int) {
		if rt.useTUI {
			rt.sendEvent(tui.TaskSections, tui.StatusRunning,
				tui.WithProgress(float64(completed)/float64(total)),
				tui.WithMessage(fmt.Sprintf("%d/%d", completed, total)))
			return
		}
		log.Progress("Fetching sections: %d/%d...", completed, total)
	}

	rt.step(tui.TaskSections, "fetching repository sections", "repo", repo.NameWithOwner)
	view, err := service.NewFetcher(svc, onProgress).RepositoryView(ctx, username, repo)
	if !rt.useTUI {
		log.ProgressDone()
	}
	if err != nil {
		rt.fail(tui.TaskSections, err)
		return err
	}

	if failed := len(view.Errors()); failed > 0 {
		rt.sendEvent(tui.TaskSections, tui.StatusComplete, tui.WithMessage(fmt.Sprintf("%d failed", failed)))
	} else {
		rt.sendEvent(tui.TaskSections, tui.StatusComplete)
	}
	rt.sendEvent(tui.TaskRender, tui.StatusComplete)
	rt.close()

	return rt.formatter().Repository(view, cmd.OutOrStdout())
}
