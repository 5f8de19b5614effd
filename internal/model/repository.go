package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultDescription is shown when a repository has no description.
const DefaultDescription = "No description provided."

// DefaultLanguageColor is used when the backend reports a language without a color.
const DefaultLanguageColor = "#888"

// RepositoryList is the response of the repositories endpoint.
type RepositoryList struct {
	Nodes []Repository `json:"nodes"`
}

// Repository is a repository owned by or contributed to by the user.
type Repository struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	NameWithOwner    string     `json:"nameWithOwner"`
	Description      string     `json:"description,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	URL              string     `json:"url"`
	StargazerCount   int        `json:"stargazerCount"`
	ForkCount        int        `json:"forkCount"`
	PrimaryLanguage  *Language  `json:"primaryLanguage,omitempty"`
	Owner            Owner      `json:"owner"`
	MentionableUsers *CountNode `json:"mentionableUsers,omitempty"`
}

// Language is a repository language.
type Language struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// DisplayColor returns the language color or the default gray.
func (l *Language) DisplayColor() string {
	if l == nil || l.Color == "" {
		return DefaultLanguageColor
	}
	return l.Color
}

// Owner is the repository owner.
type Owner struct {
	Login string `json:"login"`
}

// DisplayDescription returns the description or the placeholder text.
func (r *Repository) DisplayDescription() string {
	if r.Description != "" {
		return r.Description
	}
	return DefaultDescription
}

// IsMultiContributor reports whether more than one user can be mentioned in
// the repository. Contribution analysis is only requested for these.
func (r *Repository) IsMultiContributor() bool {
	return r.MentionableUsers.Count() > 1
}

// IsOwnedBy reports whether login owns the repository.
func (r *Repository) IsOwnedBy(login string) bool {
	return login != "" && strings.EqualFold(r.Owner.Login, login)
}

// OwnerAndName splits NameWithOwner into its owner and name parts.
func (r *Repository) OwnerAndName() (owner, name string, err error) {
	return SplitNameWithOwner(r.NameWithOwner)
}

// SplitNameWithOwner splits "owner/name".
func SplitNameWithOwner(s string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/name", s)
	}
	return owner, name, nil
}

// SortByCreatedDesc orders repositories newest first. The sort is stable so
// repositories created at the same instant keep the backend's order.
func SortByCreatedDesc(repos []Repository) {
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].CreatedAt.After(repos[j].CreatedAt)
	})
}

// FindRepository returns the repository matching nameWithOwner, case-insensitively.
func FindRepository(repos []Repository, nameWithOwner string) (*Repository, bool) {
	for i := range repos {
		if strings.EqualFold(repos[i].NameWithOwner, nameWithOwner) {
			return &repos[i], true
		}
	}
	return nil, false
}

// RepositoryDetail is the extended repository information.
// Every section is optional.
type RepositoryDetail struct {
	Readme           *Readme        `json:"readme,omitempty"`
	Languages        *LanguageEdges `json:"languages,omitempty"`
	RepositoryTopics *TopicNodes    `json:"repositoryTopics,omitempty"`
	Watchers         *CountNode     `json:"watchers,omitempty"`
	DefaultBranchRef *BranchRef     `json:"defaultBranchRef,omitempty"`
}

// Readme holds the README blob text.
type Readme struct {
	Text string `json:"text"`
}

// LanguageEdges is the languages connection.
type LanguageEdges struct {
	Edges []struct {
		Node Language `json:"node"`
	} `json:"edges"`
}

// TopicNodes is the repository topics connection.
type TopicNodes struct {
	Nodes []struct {
		Topic struct {
			Name string `json:"name"`
		} `json:"topic"`
	} `json:"nodes"`
}

// BranchRef is a git ref.
type BranchRef struct {
	Name string `json:"name"`
}

// ReadmeText returns the README text, empty when there is none.
func (d *RepositoryDetail) ReadmeText() string {
	if d == nil || d.Readme == nil {
		return ""
	}
	return d.Readme.Text
}

// LanguageNames flattens the languages connection.
func (d *RepositoryDetail) LanguageNames() []string {
	if d == nil || d.Languages == nil {
		return nil
	}
	names := make([]string, 0, len(d.Languages.Edges))
	for _, e := range d.Languages.Edges {
		names = append(names, e.Node.Name)
	}
	return names
}

// TopicNames flattens the topics connection.
func (d *RepositoryDetail) TopicNames() []string {
	if d == nil || d.RepositoryTopics == nil {
		return nil
	}
	names := make([]string, 0, len(d.RepositoryTopics.Nodes))
	for _, n := range d.RepositoryTopics.Nodes {
		names = append(names, n.Topic.Name)
	}
	return names
}

// DefaultBranch returns the default branch name, empty when unknown.
func (d *RepositoryDetail) DefaultBranch() string {
	if d == nil || d.DefaultBranchRef == nil {
		return ""
	}
	return d.DefaultBranchRef.Name
}
