// Package config provides configuration loading utilities for prompt
// instruction overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PromptInstructions holds the per-assessment-type instruction texts the
// prompt builder embeds into generation requests. Empty fields fall back to
// the built-in defaults.
type PromptInstructions struct {
	MCQ    string `yaml:"mcq"`
	Coding string `yaml:"coding"`
	Mixed  string `yaml:"mixed"`
}

// DefaultPromptInstructions returns the built-in instruction texts.
func DefaultPromptInstructions() PromptInstructions {
	return PromptInstructions{
		MCQ:    "Generate multiple-choice questions only. Every question must have at least 4 options and exactly one correct answer.",
		Coding: "Generate coding exercises only. Every question must include starter code the candidate completes.",
		Mixed:  "Mix multiple-choice questions and coding exercises, roughly evenly.",
	}
}

// LoadPromptInstructions reads instruction overrides from a YAML file. A
// missing file is not an error: built-in defaults are returned so deployments
// without a config directory keep working.
func LoadPromptInstructions(path string) (PromptInstructions, error) {
	ins := DefaultPromptInstructions()
	if path == "" {
		return ins, nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- operator-provided config path
	if err != nil {
		if os.IsNotExist(err) {
			return ins, nil
		}
		return ins, fmt.Errorf("op=config.LoadPromptInstructions: %w", err)
	}
	var override PromptInstructions
	if err := yaml.Unmarshal(content, &override); err != nil {
		return ins, fmt.Errorf("op=config.LoadPromptInstructions: parse %s: %w", path, err)
	}
	if override.MCQ != "" {
		ins.MCQ = override.MCQ
	}
	if override.Coding != "" {
		ins.Coding = override.Coding
	}
	if override.Mixed != "" {
		ins.Mixed = override.Mixed
	}
	return ins, nil
}
