package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/spiffcs/ghlens/internal/log"
	"github.com/spiffcs/ghlens/internal/model"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc is called as repository sections complete.
type ProgressFunc func(completed, total int)

// Section names a part of the repository view.
type Section string

const (
	SectionDetails       Section = "details"
	SectionAnalysis      Section = "analysis"
	SectionContributions Section = "contributions"
)

// RepositoryView holds every section of a repository view. Each section
// carries its own error; one failing section leaves the others intact.
type RepositoryView struct {
	Repository model.Repository
	Username   string

	Detail    *model.RepositoryDetail
	DetailErr error

	Analysis          *model.Analysis
	AnalysisErr       error
	AnalysisFromCache bool

	// Contributions is only requested for repositories with more than one
	// contributor.
	ContributionsRequested bool
	Contributions          *model.ContributionAnalysis
	ContributionsErr       error
}

// Errors returns the failed sections.
func (v *RepositoryView) Errors() map[Section]error {
	errs := make(map[Section]error)
	if v.DetailErr != nil {
		errs[SectionDetails] = v.DetailErr
	}
	if v.AnalysisErr != nil {
		errs[SectionAnalysis] = v.AnalysisErr
	}
	if v.ContributionsErr != nil {
		errs[SectionContributions] = v.ContributionsErr
	}
	return errs
}

// Fetcher loads repository sections in parallel.
type Fetcher struct {
	svc        *Service
	onProgress ProgressFunc
}

// NewFetcher creates a Fetcher. onProgress may be nil (no-op).
func NewFetcher(svc *Service, onProgress ProgressFunc) *Fetcher {
	return &Fetcher{
		svc:        svc,
		onProgress: onProgress,
	}
}

func (f *Fetcher) reportProgress(completed, total int) {
	if f.onProgress != nil {
		f.onProgress(completed, total)
	}
}

// RepositoryView fetches details, AI analysis and, for multi-contributor
// repositories, the user's contribution analysis. Section failures are
// recorded on the view; only a missing username or a canceled context
// fail the call.
func (f *Fetcher) RepositoryView(ctx context.Context, username string, repo model.Repository) (*RepositoryView, error) {
	username, err := ValidateUsername(username)
	if err != nil {
		return nil, err
	}
	owner, name, err := repo.OwnerAndName()
	if err != nil {
		return nil, err
	}

	view := &RepositoryView{
		Repository:             repo,
		Username:               username,
		ContributionsRequested: repo.IsMultiContributor(),
	}

	total := 2
	if view.ContributionsRequested {
		total = 3
	}
	var completed int32
	f.reportProgress(0, total)
	done := func() {
		f.reportProgress(int(atomic.AddInt32(&completed, 1)), total)
	}

	var mu sync.Mutex
	var g errgroup.Group

	g.Go(func() error {
		defer done()
		d, err := f.svc.backend.RepositoryDetail(ctx, username, owner, name)
		mu.Lock()
		defer mu.Unlock()
		view.Detail, view.DetailErr = d, err
		return nil
	})

	g.Go(func() error {
		defer done()
		a, fromCache, err := f.svc.Analysis(ctx, owner, name, username)
		mu.Lock()
		defer mu.Unlock()
		view.Analysis, view.AnalysisFromCache, view.AnalysisErr = a, fromCache, err
		return nil
	})

	if view.ContributionsRequested {
		g.Go(func() error {
			defer done()
			a, _, err := f.svc.ContributionAnalysis(ctx, owner, name, username)
			mu.Lock()
			defer mu.Unlock()
			view.Contributions, view.ContributionsErr = a, err
			return nil
		})
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for section, err := range view.Errors() {
		log.Warn("section failed", "section", section, "repo", repo.NameWithOwner, "error", err)
	}
	return view, nil
}
