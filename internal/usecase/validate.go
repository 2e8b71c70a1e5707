package usecase

import (
	"strings"

	"github.com/talentforge/assessment-engine/internal/domain"
	"github.com/talentforge/assessment-engine/pkg/textx"
)

// Rejection reasons recorded against discarded candidates.
const (
	RejectMissingText   = "missing_text"
	RejectDuplicate     = "duplicate"
	RejectTooFewOptions = "too_few_options"
)

// placeholder starter code for coding questions the model returned without any
const starterCodePlaceholder = "// Write your solution here\n"

// ValidateCandidate normalizes one raw candidate into a GeneratedQuestion.
// seen holds the hashes already taken by the user's history and by questions
// accepted earlier in the same run; an accepted question's hash is added to
// it before returning. A non-empty reason means the candidate was discarded.
func ValidateCandidate(c domain.CandidateQuestion, seen map[string]struct{}) (domain.GeneratedQuestion, string) {
	raw, ok := c["question"].(string)
	if !ok {
		return domain.GeneratedQuestion{}, RejectMissingText
	}
	text := textx.SanitizeText(raw)
	if text == "" {
		return domain.GeneratedQuestion{}, RejectMissingText
	}

	hash := domain.QuestionHash(text)
	if _, dup := seen[hash]; dup {
		return domain.GeneratedQuestion{}, RejectDuplicate
	}

	q := domain.GeneratedQuestion{
		Type:     questionType(c),
		Skill:    stringField(c, "skill", "general"),
		Question: text,
	}

	switch q.Type {
	case domain.QuestionMCQ:
		options := stringSlice(c["options"])
		if len(options) < 2 {
			return domain.GeneratedQuestion{}, RejectTooFewOptions
		}
		q.Options = options
		idx := intField(c, "correctAnswer")
		if idx < 0 || idx >= len(options) {
			idx = 0
		}
		q.CorrectAnswer = &idx
	case domain.QuestionCoding:
		q.StarterCode = stringField(c, "starterCode", starterCodePlaceholder)
	}

	seen[hash] = struct{}{}
	return q, ""
}

func questionType(c domain.CandidateQuestion) domain.QuestionType {
	raw, _ := c["type"].(string)
	if strings.ToLower(raw) == string(domain.QuestionCoding) {
		return domain.QuestionCoding
	}
	return domain.QuestionMCQ
}

func stringField(c domain.CandidateQuestion, key, fallback string) string {
	if s, ok := c[key].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// intField reads a numeric field, tolerating the float64 the JSON decoder
// produces. Returns -1 when absent or non-numeric.
func intField(c domain.CandidateQuestion, key string) int {
	switch v := c[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return -1
}

func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
