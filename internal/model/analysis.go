package model

import "strings"

// Analysis is the AI-generated summary of a repository.
type Analysis struct {
	Technologies []string `json:"technologies"`
	Description  string   `json:"description"`
}

// ContributionAnalysis is the AI assessment of one user's work in a
// multi-contributor repository.
type ContributionAnalysis struct {
	ContributionStats ContributionStats `json:"contribution_stats"`
	AIAnalysis        AIAnalysis        `json:"ai_analysis"`
}

// ContributionStats counts the user's activity in a repository.
type ContributionStats struct {
	Commits      int `json:"commits"`
	PullRequests int `json:"pull_requests"`
	Issues       int `json:"issues"`
}

// AIAnalysis is the narrative part of a contribution analysis.
type AIAnalysis struct {
	ImpactLevel        string   `json:"impact_level"`
	RoleSummary        string   `json:"role_summary"`
	KeyContributions   []string `json:"key_contributions"`
	SkillsDemonstrated []string `json:"skills_demonstrated"`
}

// Impact is a normalized impact level.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
	ImpactNone   Impact = ""
)

// Impact normalizes ImpactLevel. Anything other than high or medium that is
// non-empty is treated as low.
func (a AIAnalysis) Impact() Impact {
	switch strings.ToLower(strings.TrimSpace(a.ImpactLevel)) {
	case "":
		return ImpactNone
	case "high":
		return ImpactHigh
	case "medium":
		return ImpactMedium
	default:
		return ImpactLow
	}
}
