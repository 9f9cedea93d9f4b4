package tokens

import "strings"

// Analysis type tags used to select response budget bounds.
const (
	AnalysisSummary              = "summary"
	AnalysisHeavy                = "heavy_analysis"
	AnalysisIndividualFile       = "individual_file"
	AnalysisStructuredExtraction = "structured_extraction"
	AnalysisReleaseNotes         = "release_notes"
)

// Profile bounds the response budget for one analysis type.
type Profile struct {
	// Base is the starting budget before input-driven growth.
	Base int

	// Max caps the budget regardless of input size.
	Max int
}

// DefaultProfiles maps analysis types to their budget bounds.
var DefaultProfiles = map[string]Profile{
	AnalysisSummary:              {Base: 300, Max: 800},
	AnalysisHeavy:                {Base: 1500, Max: 6000},
	AnalysisIndividualFile:       {Base: 1000, Max: 5000},
	AnalysisStructuredExtraction: {Base: 800, Max: 3000},
	AnalysisReleaseNotes:         {Base: 200, Max: 500},
}

// FallbackProfile is used for unknown analysis types. Deliberately
// conservative.
var FallbackProfile = Profile{Base: 500, Max: 2000}

// ModelContextWindows maps model IDs to combined input+output token limits.
var ModelContextWindows = map[string]int{
	// Claude models
	"anthropic.claude-v2":                        100000,
	"anthropic.claude-v2:1":                      100000,
	"anthropic.claude-3-sonnet-20240229-v1:0":    200000,
	"anthropic.claude-3-haiku-20240307-v1:0":     200000,
	"anthropic.claude-3-opus-20240229-v1:0":      200000,
	"anthropic.claude-instant-v1":                100000,

	// Titan models
	"amazon.titan-text-lite-v1":    4000,
	"amazon.titan-text-express-v1": 8000,
	"amazon.titan-text-large-v1":   8000,

	// Jurassic models
	"ai21.j2-ultra-v1": 8192,
	"ai21.j2-mid-v1":   8192,

	// Cohere models
	"cohere.command-text-v14":       4096,
	"cohere.command-light-text-v14": 4096,
}

// DefaultContextWindow is the conservative limit assumed for unknown models.
const DefaultContextWindow = 4000

// ContextWindowFor returns the context window for a model ID. Unknown IDs
// fall back to the smallest window of any known model in the same family,
// then to DefaultContextWindow.
func ContextWindowFor(modelID string) int {
	if window, ok := ModelContextWindows[modelID]; ok {
		return window
	}

	// Family match: "anthropic.claude-next" shares the claude family floor.
	family := 0
	for known, window := range ModelContextWindows {
		if prefix, _, ok := strings.Cut(known, "-"); ok && strings.HasPrefix(modelID, prefix) {
			if family == 0 || window < family {
				family = window
			}
		}
	}
	if family > 0 {
		return family
	}
	return DefaultContextWindow
}
