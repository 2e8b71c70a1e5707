package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentforge/assessment-engine/internal/config"
)

func TestLoadPromptInstructions_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	ins, err := config.LoadPromptInstructions(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPromptInstructions(), ins)
}

func TestLoadPromptInstructions_PartialOverride(t *testing.T) {
	t.Parallel()
	p := filepath.Join(t.TempDir(), "instructions.yaml")
	require.NoError(t, os.WriteFile(p, []byte("mcq: \"MCQ override text.\"\n"), 0o600))

	ins, err := config.LoadPromptInstructions(p)
	require.NoError(t, err)
	assert.Equal(t, "MCQ override text.", ins.MCQ)
	// untouched fields keep their defaults
	assert.Equal(t, config.DefaultPromptInstructions().Coding, ins.Coding)
}

func TestLoadPromptInstructions_BadYAML(t *testing.T) {
	t.Parallel()
	p := filepath.Join(t.TempDir(), "instructions.yaml")
	require.NoError(t, os.WriteFile(p, []byte("mcq: [unclosed"), 0o600))

	_, err := config.LoadPromptInstructions(p)
	require.Error(t, err)
}
