package manager

import "context"

// Prompter is the interactive side of the view: blocking alerts and yes/no
// confirmations.
type Prompter interface {
	Alert(ctx context.Context, message string)
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// silentPrompter drops alerts and declines every confirmation, so a
// Manager without a prompter never deletes anything.
type silentPrompter struct{}

func (silentPrompter) Alert(context.Context, string) {}

func (silentPrompter) Confirm(context.Context, string) (bool, error) {
	return false, nil
}
