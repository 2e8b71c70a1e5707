package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/talentforge/assessment-engine/internal/domain"
	"github.com/talentforge/assessment-engine/internal/domain/mocks"
)

const goodResponse = `{"questions":[{"type":"mcq","skill":"Go","question":"What does go vet do?","options":["Lints","Formats"],"correctAnswer":0}]}`

func chatProvider(t *testing.T, name string) *mocks.MockChatProvider {
	t.Helper()
	p := mocks.NewMockChatProvider(t)
	p.On("Name").Return(name).Maybe()
	return p
}

func TestGatewaySuccessFirstAttempt(t *testing.T) {
	primary := chatProvider(t, "openrouter")
	primary.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(goodResponse, nil).Once()
	secondary := chatProvider(t, "groq")

	g := NewGateway(primary, secondary, WithRetryPolicy(3, 0))
	questions, diag, err := g.Generate(context.Background(), promptSpecFixture())

	require.NoError(t, err)
	assert.Len(t, questions, 1)
	assert.Equal(t, 1, diag.Attempts)
	assert.Equal(t, []string{"openrouter"}, diag.Providers)
	secondary.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGatewayFallsBackToSecondaryWithinAttempt(t *testing.T) {
	primary := chatProvider(t, "openrouter")
	primary.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("upstream timeout")).Once()
	secondary := chatProvider(t, "groq")
	secondary.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(goodResponse, nil).Once()

	g := NewGateway(primary, secondary, WithRetryPolicy(3, 0))
	questions, diag, err := g.Generate(context.Background(), promptSpecFixture())

	require.NoError(t, err)
	assert.Len(t, questions, 1)
	assert.Equal(t, 1, diag.Attempts)
	assert.Equal(t, []string{"openrouter", "groq"}, diag.Providers)
}

func TestGatewayUnparseableResponseConsumesAttempt(t *testing.T) {
	primary := chatProvider(t, "openrouter")
	primary.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("I cannot help with that request, sorry.", nil).Once()
	primary.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(goodResponse, nil).Once()

	g := NewGateway(primary, nil, WithRetryPolicy(3, 0))
	questions, diag, err := g.Generate(context.Background(), promptSpecFixture())

	require.NoError(t, err)
	assert.Len(t, questions, 1)
	assert.Equal(t, 2, diag.Attempts)
}

func TestGatewayShortResponseConsumesAttempt(t *testing.T) {
	primary := chatProvider(t, "openrouter")
	primary.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("{}", nil).Once()
	primary.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(goodResponse, nil).Once()

	g := NewGateway(primary, nil, WithRetryPolicy(3, 0))
	_, diag, err := g.Generate(context.Background(), promptSpecFixture())

	require.NoError(t, err)
	assert.Equal(t, 2, diag.Attempts)
}

func TestGatewayExhaustsAllAttempts(t *testing.T) {
	primary := chatProvider(t, "openrouter")
	primary.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("boom")).Times(3)
	secondary := chatProvider(t, "groq")
	secondary.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("not json at all", nil).Times(3)

	g := NewGateway(primary, secondary, WithRetryPolicy(3, 0))
	questions, diag, err := g.Generate(context.Background(), promptSpecFixture())

	require.ErrorIs(t, err, domain.ErrGenerationExhausted)
	assert.Nil(t, questions)
	assert.Equal(t, 3, diag.Attempts)
	assert.Len(t, diag.Providers, 6)
	assert.NotEmpty(t, diag.LastPreview)
}

func TestGatewayRespectsContextDuringBackoff(t *testing.T) {
	primary := chatProvider(t, "openrouter")
	primary.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("boom")).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGateway(primary, nil)
	_, _, err := g.Generate(ctx, promptSpecFixture())
	require.ErrorIs(t, err, context.Canceled)
}
