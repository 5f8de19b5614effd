// Package service orchestrates the backend client and the analysis cache
// into the data behind each view.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spiffcs/ghlens/internal/cache"
	"github.com/spiffcs/ghlens/internal/log"
	"github.com/spiffcs/ghlens/internal/model"
)

// ErrNoUsername is returned when a view is requested without a user.
var ErrNoUsername = errors.New("no username provided")

// Backend is the subset of the API client the service needs.
// This interface enables test doubles in unit tests.
type Backend interface {
	Profile(ctx context.Context, username string) (*model.Profile, error)
	Repositories(ctx context.Context, username string) (*model.RepositoryList, error)
	RepositoryDetail(ctx context.Context, username, owner, name string) (*model.RepositoryDetail, error)
	Analyze(ctx context.Context, owner, name, username string) (*model.Analysis, error)
	AnalyzeContributions(ctx context.Context, owner, name, username string) (*model.ContributionAnalysis, error)
}

// Service combines the backend and the optional analysis cache.
type Service struct {
	backend Backend
	cache   cache.Cacher
}

// New creates a Service. If c is nil, analysis caching is disabled.
func New(backend Backend, c cache.Cacher) *Service {
	return &Service{backend: backend, cache: c}
}

// Dashboard is the profile page: the user and their repositories, newest first.
type Dashboard struct {
	Profile      *model.Profile
	Repositories []model.Repository
}

// Timeline groups the repositories under creation-year headings.
func (d *Dashboard) Timeline() []model.TimelineEntry {
	return model.Timeline(d.Repositories)
}

// ValidateUsername trims username and rejects an empty one.
func ValidateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrNoUsername
	}
	return username, nil
}

// Dashboard fetches the profile and then the repositories. Either failure
// fails the whole dashboard.
func (s *Service) Dashboard(ctx context.Context, username string) (*Dashboard, error) {
	username, err := ValidateUsername(username)
	if err != nil {
		return nil, err
	}

	profile, err := s.Profile(ctx, username)
	if err != nil {
		return nil, err
	}

	repos, err := s.Repositories(ctx, username)
	if err != nil {
		return nil, err
	}

	log.Info("loaded dashboard", "username", username, "repositories", len(repos))
	return &Dashboard{Profile: profile, Repositories: repos}, nil
}

// Profile returns the user's profile.
func (s *Service) Profile(ctx context.Context, username string) (*model.Profile, error) {
	return s.backend.Profile(ctx, username)
}

// Repositories returns the user's repositories sorted newest first.
func (s *Service) Repositories(ctx context.Context, username string) ([]model.Repository, error) {
	list, err := s.backend.Repositories(ctx, username)
	if err != nil {
		return nil, err
	}
	var repos []model.Repository
	if list != nil {
		repos = append(repos, list.Nodes...)
	}
	model.SortByCreatedDesc(repos)
	return repos, nil
}

// ResolveRepository finds owner/name among the user's repositories. A
// repository outside the list is still returned, without the counts the list
// would have carried.
func (s *Service) ResolveRepository(ctx context.Context, username, nameWithOwner string) (model.Repository, error) {
	owner, name, err := model.SplitNameWithOwner(nameWithOwner)
	if err != nil {
		return model.Repository{}, err
	}

	repos, err := s.Repositories(ctx, username)
	if err != nil {
		return model.Repository{}, fmt.Errorf("failed to list repositories: %w", err)
	}
	if repo, ok := model.FindRepository(repos, nameWithOwner); ok {
		return *repo, nil
	}

	log.Debug("repository not in user's list", "repo", nameWithOwner)
	return model.Repository{
		Name:          name,
		NameWithOwner: owner + "/" + name,
		Owner:         model.Owner{Login: owner},
	}, nil
}

// Analysis returns the AI analysis of a repository, from cache when fresh.
// Returns (analysis, fromCache, error).
func (s *Service) Analysis(ctx context.Context, owner, name, username string) (*model.Analysis, bool, error) {
	key := cache.Key{Owner: owner, Name: name, Username: username}
	if s.cache != nil {
		if a, ok := s.cache.GetAnalysis(key); ok {
			return a, true, nil
		}
	}

	a, err := s.backend.Analyze(ctx, owner, name, username)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.SetAnalysis(key, a); err != nil {
			log.Debug("failed to cache analysis", "repo", owner+"/"+name, "error", err)
		}
	}
	return a, false, nil
}

// ContributionAnalysis returns the user's contribution analysis of a
// repository, from cache when fresh. Returns (analysis, fromCache, error).
func (s *Service) ContributionAnalysis(ctx context.Context, owner, name, username string) (*model.ContributionAnalysis, bool, error) {
	key := cache.Key{Owner: owner, Name: name, Username: username}
	if s.cache != nil {
		if a, ok := s.cache.GetContributions(key); ok {
			return a, true, nil
		}
	}

	a, err := s.backend.AnalyzeContributions(ctx, owner, name, username)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.SetContributions(key, a); err != nil {
			log.Debug("failed to cache contribution analysis", "repo", owner+"/"+name, "error", err)
		}
	}
	return a, false, nil
}
