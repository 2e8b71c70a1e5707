package ai

import (
	"fmt"
	"strings"

	"github.com/talentforge/assessment-engine/internal/adapter/ai/tokencount"
	"github.com/talentforge/assessment-engine/internal/config"
	"github.com/talentforge/assessment-engine/internal/domain"
)

const systemPromptTemplate = `You are an expert technical interviewer creating a skills assessment for a job opening. You write precise, unambiguous questions targeted at the %s difficulty level.

Respond with JSON only. No markdown fences, no commentary, no explanation before or after the JSON.`

const userPromptTemplate = `Create a skills assessment for the position "%s".

Skills to assess: %s.

%s

Generate up to %d questions. The assessment passing score is %d%%.

Return exactly this JSON structure:
{
  "questions": [
    {
      "type": "mcq" | "coding",
      "skill": "the skill this question tests",
      "question": "the question text",
      "options": ["..."],      // mcq only, at least 2 entries
      "correctAnswer": 0,       // mcq only, index into options
      "starterCode": "..."      // coding only
    }
  ]
}

Rules:
- Every question must test one of the listed skills.
- MCQ questions must have at least 2 options and exactly one correct answer.
- Coding questions must include starter code.
- Do not wrap the JSON in markdown fences or add any prose.`

// Prompt is a fully rendered generation request plus the completion budget
// sized for it.
type Prompt struct {
	System    string
	User      string
	MaxTokens int
}

// tokens reserved per generated question in the completion budget. Coding
// questions with starter code run long, so the figure is generous.
const (
	tokensPerQuestion   = 300
	completionOverhead  = 100
	fallbackModelForEnc = "gpt-4"
)

// BuildPrompt renders the generation request for one run. It is a pure
// function of its inputs: the same spec and instructions always yield the
// same prompt.
func BuildPrompt(spec domain.PromptSpec, ins config.PromptInstructions) Prompt {
	difficulty := spec.Difficulty
	if difficulty == "" {
		difficulty = "intermediate"
	}

	var typeInstruction string
	switch spec.AssessmentType {
	case domain.AssessmentTypeMCQ:
		typeInstruction = ins.MCQ
	case domain.AssessmentTypeCoding:
		typeInstruction = ins.Coding
	default:
		typeInstruction = ins.Mixed
	}

	skills := strings.Join(spec.Skills, ", ")
	if skills == "" {
		skills = "general software engineering"
	}

	return Prompt{
		System:    fmt.Sprintf(systemPromptTemplate, difficulty),
		User:      fmt.Sprintf(userPromptTemplate, spec.JobTitle, skills, typeInstruction, spec.TotalQuestions, spec.PassingScore),
		MaxTokens: spec.TotalQuestions*tokensPerQuestion + completionOverhead,
	}
}

// PromptTokens counts the tokens the rendered request will consume for the
// given model. Used for logging; a counting failure falls back to a byte
// estimate rather than blocking the run.
func PromptTokens(p Prompt, model string) int {
	if model == "" {
		model = fallbackModelForEnc
	}
	n, err := tokencount.DefaultCounter.CountChatTokens(p.System, p.User, model)
	if err != nil {
		return tokencount.EstimateTokens(p.System + p.User)
	}
	return n
}
