// Package constants provides a centralized location for configuration
// defaults and magic numbers used throughout ghlens.
package constants

import "time"

// Backend constants
const (
	// DefaultAPIURL is the backend root used when neither config, env nor
	// flags name one.
	DefaultAPIURL = "http://localhost:8000/api/v1"

	// APIURLEnv overrides the configured backend root.
	APIURLEnv = "GHLENS_API_URL"

	// DefaultRequestTimeout of zero means requests wait indefinitely.
	DefaultRequestTimeout = time.Duration(0)
)

// Display constants
const (
	// TruncationSuffixWidth is the width of the "..." suffix when truncating strings.
	TruncationSuffixWidth = 3

	// ReadmeWrapWidth is the word wrap used when rendering READMEs.
	ReadmeWrapWidth = 80

	// TimelineDescriptionWidth caps description cells in the timeline table.
	TimelineDescriptionWidth = 60
)

// Cache constants
const (
	// AnalysisCacheTTL is the maximum age of a cached AI analysis before it
	// is fetched again.
	AnalysisCacheTTL = 24 * time.Hour

	// CacheDirName is the directory under os.UserCacheDir.
	CacheDirName = "ghlens"
)
