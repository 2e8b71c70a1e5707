package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentforge/assessment-engine/internal/domain"
)

func mcqCandidate(text string) domain.CandidateQuestion {
	return domain.CandidateQuestion{
		"type":          "mcq",
		"skill":         "Go",
		"question":      text,
		"options":       []any{"a", "b", "c", "d"},
		"correctAnswer": float64(1),
	}
}

func TestValidateCandidateAcceptsMCQ(t *testing.T) {
	seen := map[string]struct{}{}
	q, reason := ValidateCandidate(mcqCandidate("What is a slice?"), seen)

	require.Empty(t, reason)
	assert.Equal(t, domain.QuestionMCQ, q.Type)
	assert.Equal(t, "Go", q.Skill)
	assert.Equal(t, []string{"a", "b", "c", "d"}, q.Options)
	require.NotNil(t, q.CorrectAnswer)
	assert.Equal(t, 1, *q.CorrectAnswer)
	assert.Contains(t, seen, domain.QuestionHash("What is a slice?"))
}

func TestValidateCandidateSanitizesText(t *testing.T) {
	c := mcqCandidate("  What is a \x00channel?\x07 ")

	q, reason := ValidateCandidate(c, map[string]struct{}{})
	require.Empty(t, reason)
	assert.Equal(t, "What is a channel?", q.Question)
}

func TestValidateCandidateCorrectAnswerOutOfRange(t *testing.T) {
	c := mcqCandidate("Out of range answer")
	c["correctAnswer"] = float64(9)

	q, reason := ValidateCandidate(c, map[string]struct{}{})
	require.Empty(t, reason)
	require.NotNil(t, q.CorrectAnswer)
	assert.Equal(t, 0, *q.CorrectAnswer)
}

func TestValidateCandidateCorrectAnswerMissing(t *testing.T) {
	c := mcqCandidate("No answer given")
	delete(c, "correctAnswer")

	q, reason := ValidateCandidate(c, map[string]struct{}{})
	require.Empty(t, reason)
	require.NotNil(t, q.CorrectAnswer)
	assert.Equal(t, 0, *q.CorrectAnswer)
}

func TestValidateCandidateRejectsMissingText(t *testing.T) {
	for _, c := range []domain.CandidateQuestion{
		{"type": "mcq"},
		{"type": "mcq", "question": "   "},
		{"type": "mcq", "question": float64(42)},
	} {
		_, reason := ValidateCandidate(c, map[string]struct{}{})
		assert.Equal(t, RejectMissingText, reason)
	}
}

func TestValidateCandidateRejectsDuplicate(t *testing.T) {
	seen := map[string]struct{}{
		domain.QuestionHash("Seen before"): {},
	}
	_, reason := ValidateCandidate(mcqCandidate("Seen before"), seen)
	assert.Equal(t, RejectDuplicate, reason)
}

func TestValidateCandidateRejectsTooFewOptions(t *testing.T) {
	c := mcqCandidate("Not enough options")
	c["options"] = []any{"only one"}
	_, reason := ValidateCandidate(c, map[string]struct{}{})
	assert.Equal(t, RejectTooFewOptions, reason)

	delete(c, "options")
	c["question"] = "No options at all"
	_, reason = ValidateCandidate(c, map[string]struct{}{})
	assert.Equal(t, RejectTooFewOptions, reason)
}

func TestValidateCandidateCodingPlaceholder(t *testing.T) {
	c := domain.CandidateQuestion{
		"type":     "coding",
		"skill":    "SQL",
		"question": "Write a query returning duplicate emails.",
	}
	q, reason := ValidateCandidate(c, map[string]struct{}{})
	require.Empty(t, reason)
	assert.Equal(t, domain.QuestionCoding, q.Type)
	assert.NotEmpty(t, q.StarterCode)
	assert.Nil(t, q.CorrectAnswer)
}

func TestValidateCandidateCodingKeepsStarterCode(t *testing.T) {
	c := domain.CandidateQuestion{
		"type":        "CODING",
		"question":    "Implement a worker pool.",
		"starterCode": "func main() {}",
	}
	q, reason := ValidateCandidate(c, map[string]struct{}{})
	require.Empty(t, reason)
	assert.Equal(t, domain.QuestionCoding, q.Type)
	assert.Equal(t, "func main() {}", q.StarterCode)
}

func TestValidateCandidateTypeDefaultsToMCQ(t *testing.T) {
	c := mcqCandidate("Untyped question")
	delete(c, "type")
	q, reason := ValidateCandidate(c, map[string]struct{}{})
	require.Empty(t, reason)
	assert.Equal(t, domain.QuestionMCQ, q.Type)
}

func TestValidateCandidateSkillDefault(t *testing.T) {
	c := mcqCandidate("Skill-less question")
	delete(c, "skill")
	q, reason := ValidateCandidate(c, map[string]struct{}{})
	require.Empty(t, reason)
	assert.Equal(t, "general", q.Skill)
}
