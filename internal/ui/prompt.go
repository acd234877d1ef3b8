package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// Field is one input of a prompt form. Fields whose Value is already set
// are skipped.
type Field struct {
	Title  string
	Value  *string
	Secret bool
}

// PromptMissing asks for every field that is still empty.
func PromptMissing(fields ...Field) error {
	var inputs []huh.Field
	for _, f := range fields {
		if *f.Value != "" {
			continue
		}
		input := huh.NewInput().
			Title(f.Title).
			Value(f.Value)
		if f.Secret {
			input = input.EchoMode(huh.EchoModePassword)
		}
		inputs = append(inputs, input)
	}
	if len(inputs) == 0 {
		return nil
	}

	if !ShouldPrompt() {
		return fmt.Errorf("missing %d required value(s) and stdin is not a terminal", len(inputs))
	}

	form := huh.NewForm(huh.NewGroup(inputs...))
	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

// Confirm displays a yes/no prompt. Non-interactive sessions get def.
func Confirm(message string, def bool) (bool, error) {
	if !ShouldPrompt() {
		return def, nil
	}

	confirmed := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(message).Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return confirmed, nil
}

// IsInteractive returns true if stdin is a terminal (not piped).
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ShouldPrompt returns true if prompts should be shown. Prompts are
// disabled in CI environments or when stdin is not a terminal.
func ShouldPrompt() bool {
	for _, env := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI"} {
		if os.Getenv(env) != "" {
			return false
		}
	}
	return IsInteractive()
}
