// Package ai implements the generation side of the pipeline: prompt
// building, response repair, and the bounded attempt loop with provider
// fallback.
package ai

import (
	"encoding/json"
	"strings"

	"github.com/talentforge/assessment-engine/internal/domain"
	"github.com/talentforge/assessment-engine/pkg/textx"
)

// ParseError reports why no questions array could be recovered from a raw
// model response.
type ParseError struct {
	Message string
	Preview string
}

func (e *ParseError) Error() string { return e.Message }

// ExtractQuestions repairs a possibly noisy model response into a list of
// candidate question objects. Repair steps, in order: strip markdown fences,
// direct parse, brace/bracket substring extraction, top-level array wrapping,
// and a data->questions key rename. Models are told to return bare JSON but
// the pipeline never assumes compliance.
func ExtractQuestions(raw string) ([]domain.CandidateQuestion, error) {
	cleaned := stripMarkdownFences(raw)

	candidates := []string{
		cleaned,
		extractDelimited(cleaned, '{', '}'),
		extractDelimited(cleaned, '[', ']'),
	}

	parsedAny := false
	for _, candidate := range candidates {
		parsed, ok := tryParse(candidate)
		if !ok {
			continue
		}
		parsedAny = true
		if out := questionObjects(parsed); len(out) > 0 {
			return out, nil
		}
	}

	if !parsedAny {
		return nil, &ParseError{Message: "no parseable JSON in response", Preview: preview(raw)}
	}
	return nil, &ParseError{Message: "no questions array in response", Preview: preview(raw)}
}

// questionObjects normalizes a parsed JSON value into the list of question
// objects it carries. A bare top-level array is treated as the questions
// array itself; an object may carry it under "questions" or, from models
// that rename the envelope, under "data".
func questionObjects(parsed any) []domain.CandidateQuestion {
	var arr []any
	switch v := parsed.(type) {
	case []any:
		arr = v
	case map[string]any:
		if qs, ok := v["questions"].([]any); ok {
			arr = qs
		} else if data, ok := v["data"].([]any); ok {
			arr = data
		}
	}

	out := make([]domain.CandidateQuestion, 0, len(arr))
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func tryParse(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}

// extractDelimited returns the substring from the first opening delimiter to
// the last closing delimiter, or "" when no such span exists.
func extractDelimited(s string, opening, closing byte) string {
	start := strings.IndexByte(s, opening)
	end := strings.LastIndexByte(s, closing)
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// previewBytes bounds raw-response snippets surfaced in errors and logs.
const previewBytes = 200

func preview(s string) string {
	return textx.Preview(s, previewBytes)
}
