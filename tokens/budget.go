package tokens

import (
	"errors"
	"math"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// ErrInputTooLarge indicates the input cannot fit the model's context window
// alongside even a minimum viable response budget. This is a configuration or
// input problem, not a transient fault.
var ErrInputTooLarge = errors.New("input too large for model context window")

// MinViableBudget is the smallest response budget worth requesting. Below
// this the response would be unusable for any analysis type.
const MinViableBudget = 256

// DefaultSafetyBuffer is the token margin reserved on top of the estimated
// input when checking the context window.
const DefaultSafetyBuffer = 100

// growthScale converts the logarithmic input-size term into tokens. Chosen
// so a multi-thousand-token diff adds on the order of one base allocation.
const growthScale = 64.0

// MaxComplexityFactor caps the combined complexity bonuses.
const MaxComplexityFactor = 2.0

// Calculator computes response token budgets. It holds only immutable
// configuration and is safe for concurrent use.
type Calculator struct {
	// Profiles maps analysis types to budget bounds. Unknown types use
	// FallbackProfile.
	Profiles map[string]Profile

	// SafetyBuffer is the token margin reserved against the context window.
	SafetyBuffer int

	counter Counter
}

// NewCalculator creates a calculator with the default profiles.
func NewCalculator() *Calculator {
	return NewCalculatorWithProfiles(DefaultProfiles)
}

// NewCalculatorWithProfiles creates a calculator with custom profiles,
// e.g. loaded from configuration overrides.
func NewCalculatorWithProfiles(profiles map[string]Profile) *Calculator {
	return &Calculator{
		Profiles:     profiles,
		SafetyBuffer: DefaultSafetyBuffer,
		counter:      NewEstimatingCounter(),
	}
}

// ProfileFor returns the budget bounds for an analysis type, falling back to
// FallbackProfile for unknown types.
func (c *Calculator) ProfileFor(analysisType string) Profile {
	if p, ok := c.Profiles[analysisType]; ok {
		return p
	}
	return FallbackProfile
}

// MaxTokensFor computes the response budget for one invocation. The result
// starts at the profile base, grows with log2(1+estimated input tokens)
// weighted by content complexity, and is clamped to [Base, Max]. If input,
// budget, and safety buffer together exceed contextWindow, the budget shrinks
// to what fits, floored at MinViableBudget; if even that cannot fit,
// ErrInputTooLarge is returned. A contextWindow of zero or less disables the
// window check.
//
// The function is referentially transparent: identical inputs always yield
// identical output.
func (c *Calculator) MaxTokensFor(content, analysisType string, contextWindow int) (int, error) {
	profile := c.ProfileFor(analysisType)
	inputTokens := c.counter.Count(content)
	factor := ComplexityFactor(content)

	candidate := float64(profile.Base) + factor*math.Log2(1+float64(inputTokens))*growthScale

	budget := int(candidate)
	if budget < profile.Base {
		budget = profile.Base
	}
	if budget > profile.Max {
		budget = profile.Max
	}

	if contextWindow > 0 && inputTokens+budget+c.SafetyBuffer > contextWindow {
		budget = contextWindow - inputTokens - c.SafetyBuffer
		if budget < MinViableBudget {
			return 0, ErrInputTooLarge
		}
	}

	return budget, nil
}

// EstimateInput returns the estimated input token count used by
// MaxTokensFor, for logging a stable "why this budget" rationale.
func (c *Calculator) EstimateInput(content string) int {
	return c.counter.Count(content)
}

// Signals of content complexity. Each detected language set counts once; the
// multi-language bonus applies when more than one matches.
var languageMarkers = map[string]*regexp.Regexp{
	"python":     regexp.MustCompile(`\bdef\b|\belif\b|\bimport\b`),
	"javascript": regexp.MustCompile(`\bfunction\b|\bconst\b|\blet\b`),
	"java":       regexp.MustCompile(`\bpublic\b|\bprivate\b|\bimplements\b`),
	"go":         regexp.MustCompile(`\bfunc\b|\bdefer\b|\bgoroutine\b`),
	"c":          regexp.MustCompile(`#include\b|\bnamespace\b|\btypedef\b`),
}

var fileExtMarker = regexp.MustCompile(`\.(go|py|js|ts|tsx|java|rb|rs|c|h|cpp|cs|php|swift|kt|sh|ya?ml|json|toml|sql|md)\b`)

// ComplexityFactor scores content complexity in [1.0, 2.0]. Dense syntax,
// changes spanning multiple file types, and mixed programming languages each
// add a bonus; the total is capped at MaxComplexityFactor.
func ComplexityFactor(content string) float64 {
	if content == "" {
		return 1.0
	}

	factor := 1.0

	// Syntax density: ratio of non-alphanumeric, non-space characters.
	special := 0
	for _, r := range content {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			special++
		}
	}
	if float64(special)/float64(utf8.RuneCountInString(content)) > 0.1 {
		factor += 0.3
	}

	// Multi-file signal: distinct file-extension markers.
	distinct := map[string]struct{}{}
	for _, m := range fileExtMarker.FindAllStringSubmatch(content, -1) {
		distinct[m[1]] = struct{}{}
	}
	if n := len(distinct); n > 1 {
		bonus := 0.1 * float64(n-1)
		if bonus > 0.4 {
			bonus = 0.4
		}
		factor += bonus
	}

	// Multi-language signal: more than one keyword set present.
	languages := 0
	for _, marker := range languageMarkers {
		if marker.MatchString(content) {
			languages++
		}
	}
	if languages > 1 {
		factor += 0.3
	}

	if factor > MaxComplexityFactor {
		factor = MaxComplexityFactor
	}
	return factor
}
