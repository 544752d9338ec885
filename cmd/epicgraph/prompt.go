package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"epicgraph/internal/remote"
)

// isInteractiveTTY checks if stdin is connected to an interactive terminal.
func isInteractiveTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptForEpic lets the user pick one of the tracker's epics.
func promptForEpic(ctx context.Context, source *remote.BeadsSource) (string, error) {
	epics, err := source.Epics(ctx)
	if err != nil {
		return "", err
	}
	if len(epics) == 0 {
		return "", fmt.Errorf("no epics found")
	}
	options := make([]huh.Option[string], 0, len(epics))
	for _, e := range epics {
		options = append(options, huh.NewOption(fmt.Sprintf("%s  %s", e.ID, e.Title), e.ID))
	}

	var choice string
	form := huh.NewSelect[string]().
		Title("Which epic?").
		Options(options...).
		Value(&choice)
	if err := form.Run(); err != nil {
		return "", err
	}
	return choice, nil
}

// epicIDs lists the tracker's epic ids for switching inside the viewer.
func epicIDs(ctx context.Context, source *remote.BeadsSource) ([]string, error) {
	epics, err := source.Epics(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(epics))
	for _, e := range epics {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

// confirmCommit asks before sending changes to the tracker.
func confirmCommit(question string) bool {
	var confirmed bool
	form := huh.NewConfirm().
		Title(question).
		Description("Dependencies are written to the tracker one at a time.").
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	if err := form.Run(); err != nil {
		return false
	}
	return confirmed
}
