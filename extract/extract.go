package extract

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoPayload is returned when a response contains no parseable payload
// of the requested kind.
var ErrNoPayload = errors.New("no structured payload in response")

var fenceRegex = regexp.MustCompile("(?s)```([a-zA-Z0-9]*)[ \t]*\n(.*?)```")

// Fence is one fenced code block from a model response.
type Fence struct {
	// Language is the specifier after the opening backticks, lowercased.
	Language string

	// Body is the text between the fences.
	Body string
}

// Fences returns every fenced code block in the response, in order.
func Fences(response string) []Fence {
	matches := fenceRegex.FindAllStringSubmatch(response, -1)
	fences := make([]Fence, 0, len(matches))
	for _, m := range matches {
		fences = append(fences, Fence{
			Language: strings.ToLower(m[1]),
			Body:     strings.TrimSpace(m[2]),
		})
	}
	return fences
}

// JSON returns the first JSON object found in the response. Fenced blocks
// labelled json (or unlabelled) are tried first, then bare objects in the
// surrounding text.
func JSON(response string) (map[string]any, error) {
	var out map[string]any
	if err := JSONInto(response, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// JSONInto decodes the first JSON payload in the response into v.
func JSONInto(response string, v any) error {
	for _, candidate := range jsonCandidates(response) {
		if err := json.Unmarshal([]byte(candidate), v); err == nil {
			return nil
		}
	}
	return ErrNoPayload
}

// jsonCandidates collects payload candidates in decreasing order of trust:
// labelled fences, unlabelled fences, then the outermost brace or bracket
// span of the prose.
func jsonCandidates(response string) []string {
	var labelled, unlabelled []string
	for _, fence := range Fences(response) {
		switch fence.Language {
		case "json":
			labelled = append(labelled, fence.Body)
		case "":
			unlabelled = append(unlabelled, fence.Body)
		}
	}

	candidates := append(labelled, unlabelled...)

	prose := fenceRegex.ReplaceAllString(response, "")
	if span := outermostSpan(prose, '{', '}'); span != "" {
		candidates = append(candidates, span)
	}
	if span := outermostSpan(prose, '[', ']'); span != "" {
		candidates = append(candidates, span)
	}
	return candidates
}

// outermostSpan returns the text from the first open delimiter to the last
// close delimiter, or "" when no such span exists.
func outermostSpan(text string, open, closing byte) string {
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, closing)
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// YAML returns the first YAML mapping found in a fenced block labelled
// yaml or yml.
func YAML(response string) (map[string]any, error) {
	var out map[string]any
	if err := YAMLInto(response, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// YAMLInto decodes the first YAML payload in the response into v.
func YAMLInto(response string, v any) error {
	for _, fence := range Fences(response) {
		if fence.Language != "yaml" && fence.Language != "yml" {
			continue
		}
		if err := yaml.Unmarshal([]byte(fence.Body), v); err == nil {
			return nil
		}
	}
	return ErrNoPayload
}

// Code returns the body of the first fence with the given language, or the
// first fence of any language when language is empty.
func Code(response, language string) string {
	for _, fence := range Fences(response) {
		if language == "" || fence.Language == strings.ToLower(language) {
			return fence.Body
		}
	}
	return ""
}
