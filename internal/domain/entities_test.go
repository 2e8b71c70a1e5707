package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentforge/assessment-engine/internal/domain"
)

func TestAssessmentConfig_EffectiveTotal(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 5, domain.AssessmentConfig{}.EffectiveTotal())
	assert.Equal(t, 7, domain.AssessmentConfig{TotalQuestions: 7}.EffectiveTotal())
	assert.Equal(t, 10, domain.AssessmentConfig{TotalQuestions: 10}.EffectiveTotal())
	// hard cap
	assert.Equal(t, 10, domain.AssessmentConfig{TotalQuestions: 25}.EffectiveTotal())
	assert.Equal(t, 5, domain.AssessmentConfig{TotalQuestions: -1}.EffectiveTotal())
}

func TestAssessmentConfig_EffectiveType(t *testing.T) {
	t.Parallel()
	assert.Equal(t, domain.AssessmentTypeMixed, domain.AssessmentConfig{}.EffectiveType())
	assert.Equal(t, domain.AssessmentTypeMCQ, domain.AssessmentConfig{Type: "mcq"}.EffectiveType())
	assert.Equal(t, domain.AssessmentTypeMixed, domain.AssessmentConfig{Type: "essay"}.EffectiveType())
}

func TestJob_MinMatchPercent(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 60, domain.Job{}.MinMatchPercent())
	assert.Equal(t, 80, domain.Job{MinPercentage: 80}.MinMatchPercent())
}

func TestQuestionHash(t *testing.T) {
	t.Parallel()
	h1 := domain.QuestionHash("What is a goroutine?")
	h2 := domain.QuestionHash("What is a goroutine?")
	h3 := domain.QuestionHash("What is a channel?")
	assert.Len(t, h1, 64)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}
