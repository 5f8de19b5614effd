// Package model contains the domain types served by the GitHub analysis
// backend. JSON tags follow the backend's field names.
package model

// DefaultBio is shown when a profile has no bio.
const DefaultBio = "Building the future of software, one line of code at a time."

// Profile is a GitHub user's public profile.
type Profile struct {
	Login     string     `json:"login"`
	Name      string     `json:"name,omitempty"`
	Bio       string     `json:"bio,omitempty"`
	Location  string     `json:"location,omitempty"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
	Followers *CountNode `json:"followers,omitempty"`
	Following *CountNode `json:"following,omitempty"`
}

// CountNode wraps a GraphQL-style connection total.
type CountNode struct {
	TotalCount int `json:"totalCount"`
}

// Count returns the total, treating a missing node as zero.
func (c *CountNode) Count() int {
	if c == nil {
		return 0
	}
	return c.TotalCount
}

// DisplayName returns the profile name, falling back to the login.
func (p *Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}

// DisplayBio returns the bio or the placeholder text.
func (p *Profile) DisplayBio() string {
	if p.Bio != "" {
		return p.Bio
	}
	return DefaultBio
}

// FollowerCount returns the number of followers.
func (p *Profile) FollowerCount() int {
	return p.Followers.Count()
}

// FollowingCount returns the number of followed users.
func (p *Profile) FollowingCount() int {
	return p.Following.Count()
}
