package api

import (
	"context"
	"errors"

	"github.com/spiffcs/ghlens/internal/model"
)

// Endpoint names used in errors and logs.
const (
	EndpointProfile              = "profile"
	EndpointRepositories         = "repositories"
	EndpointContributionCalendar = "contribution calendar"
	EndpointRepositoryDetail     = "repository details"
	EndpointAnalysis             = "AI analysis"
	EndpointContributions        = "contribution analysis"
)

type calendarOptions struct {
	Year int `url:"year"`
}

type analyzeOptions struct {
	Username string `url:"username"`
}

// Profile fetches GET /users/{username}.
func (c *Client) Profile(ctx context.Context, username string) (*model.Profile, error) {
	u, err := c.endpointURL(nil, "users", username)
	if err != nil {
		return nil, err
	}
	var p model.Profile
	if err := c.get(ctx, EndpointProfile, u, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Repositories fetches GET /users/{username}/repositories.
func (c *Client) Repositories(ctx context.Context, username string) (*model.RepositoryList, error) {
	u, err := c.endpointURL(nil, "users", username, "repositories")
	if err != nil {
		return nil, err
	}
	var list model.RepositoryList
	if err := c.get(ctx, EndpointRepositories, u, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ContributionCalendar fetches GET /users/{username}/contribution-calendar?year={year}.
func (c *Client) ContributionCalendar(ctx context.Context, username string, year int) (*model.ContributionCalendar, error) {
	u, err := c.endpointURL(calendarOptions{Year: year}, "users", username, "contribution-calendar")
	if err != nil {
		return nil, err
	}
	var cal model.ContributionCalendar
	if err := c.get(ctx, EndpointContributionCalendar, u, &cal); err != nil {
		return nil, err
	}
	return &cal, nil
}

// RepositoryDetail fetches GET /users/{username}/repositories/{owner}/{name}.
func (c *Client) RepositoryDetail(ctx context.Context, username, owner, name string) (*model.RepositoryDetail, error) {
	if owner == "" || name == "" {
		return nil, errors.New("repository owner and name are required")
	}
	u, err := c.endpointURL(nil, "users", username, "repositories", owner, name)
	if err != nil {
		return nil, err
	}
	var d model.RepositoryDetail
	if err := c.get(ctx, EndpointRepositoryDetail, u, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Analyze fetches GET /analyze/{owner}/{name}?username={username}.
func (c *Client) Analyze(ctx context.Context, owner, name, username string) (*model.Analysis, error) {
	u, err := c.endpointURL(analyzeOptions{Username: username}, "analyze", owner, name)
	if err != nil {
		return nil, err
	}
	var a model.Analysis
	if err := c.get(ctx, EndpointAnalysis, u, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// AnalyzeContributions fetches GET /analyze/{owner}/{name}/contributions/{username}.
func (c *Client) AnalyzeContributions(ctx context.Context, owner, name, username string) (*model.ContributionAnalysis, error) {
	u, err := c.endpointURL(nil, "analyze", owner, name, "contributions", username)
	if err != nil {
		return nil, err
	}
	var a model.ContributionAnalysis
	if err := c.get(ctx, EndpointContributions, u, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
