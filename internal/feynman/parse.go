package feynman

import (
	"encoding/json"
	"regexp"
	"strings"
)

// enumMarker matches a leading list number such as "1. " or "3、".
var enumMarker = regexp.MustCompile(`^\d+[.、]\s*`)

// parseQuestions splits a raw model response into individual questions:
// one per line, trimmed, leading enumeration markers stripped, empty lines
// dropped, capped at maxQuestions.
func parseQuestions(raw string, maxQuestions int) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		q := strings.TrimSpace(line)
		if q == "" {
			continue
		}
		q = enumMarker.ReplaceAllString(q, "")
		if q == "" {
			continue
		}
		questions = append(questions, q)
		if len(questions) == maxQuestions {
			break
		}
	}
	return questions
}

// Fenced code block, with or without a language tag. Models often wrap JSON
// or Markdown output in a fence.
var codeFence = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)\\s*```")

// stripCodeFence returns the content of the first fenced code block, or the
// trimmed input unchanged when no fence is present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFence.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// rawAssessment is the lenient shape of the model's assessment JSON. Fields
// are decoded as any so that absent, null, and mistyped values can all fall
// back to defaults instead of failing the whole assessment.
type rawAssessment struct {
	Clarity      any `json:"clarity"`
	Logic        any `json:"logic"`
	Completeness any `json:"completeness"`
	Terminology  any `json:"terminology"`
	Suggestions  any `json:"suggestions"`
}

const (
	defaultScore          = 5
	fallbackSuggestion    = "继续努力，提升表达清晰度"
	parseFailedSuggestion = "AI 评估解析失败，请重试"
)

// parseAssessment extracts rubric scores and suggestions from a raw model
// response. ok is false when the response holds no parseable JSON object at
// all, in which case the caller degrades to an all-default result.
func parseAssessment(raw string) (scores RubricScores, suggestions []string, ok bool) {
	var doc rawAssessment
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &doc); err != nil {
		return RubricScores{}, nil, false
	}

	scores = RubricScores{
		Clarity:      clampScore(doc.Clarity),
		Logic:        clampScore(doc.Logic),
		Completeness: clampScore(doc.Completeness),
		Terminology:  clampScore(doc.Terminology),
	}
	return scores, parseSuggestions(doc.Suggestions), true
}

// clampScore coerces a decoded JSON value to a score in [1,10]. Absent or
// non-numeric values default to 5; numeric values are clamped.
func clampScore(v any) int {
	f, isNum := v.(float64)
	if !isNum {
		return defaultScore
	}
	score := roundScore(f)
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

// parseSuggestions keeps the string elements of a decoded suggestions
// array. Anything that is not an array yields the single fallback hint.
func parseSuggestions(v any) []string {
	arr, isArr := v.([]any)
	if !isArr {
		return []string{fallbackSuggestion}
	}
	var out []string
	for _, e := range arr {
		if s, isStr := e.(string); isStr {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{fallbackSuggestion}
	}
	return out
}
