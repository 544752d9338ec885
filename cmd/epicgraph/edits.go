package main

import (
	"fmt"
	"strings"

	"epicgraph/internal/interact"
)

// parseEdits turns the --add, --remove and --move flag values into edits.
// Each value is a comma-separated list: "blocker:blocked" for add and remove,
// "blocker:old:new" for move.
func parseEdits(add, remove, move string) ([]interact.EdgeEdit, error) {
	var edits []interact.EdgeEdit
	for _, item := range splitList(add) {
		ids, err := splitIDs("add", item, 2)
		if err != nil {
			return nil, err
		}
		edits = append(edits, interact.EdgeEdit{Kind: interact.EdgeCreate, SourceID: ids[0], TargetID: ids[1]})
	}
	for _, item := range splitList(remove) {
		ids, err := splitIDs("remove", item, 2)
		if err != nil {
			return nil, err
		}
		edits = append(edits, interact.EdgeEdit{Kind: interact.EdgeDelete, SourceID: ids[0], TargetID: ids[1]})
	}
	for _, item := range splitList(move) {
		ids, err := splitIDs("move", item, 3)
		if err != nil {
			return nil, err
		}
		edits = append(edits, interact.EdgeEdit{
			Kind:        interact.EdgeRetarget,
			SourceID:    ids[0],
			OldTargetID: ids[1],
			TargetID:    ids[2],
		})
	}
	return edits, nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func splitIDs(flagName, item string, want int) ([]string, error) {
	ids := strings.Split(item, ":")
	if len(ids) != want {
		return nil, fmt.Errorf("--%s %q: expected %d ids separated by ':'", flagName, item, want)
	}
	for i, id := range ids {
		ids[i] = strings.TrimSpace(id)
		if ids[i] == "" {
			return nil, fmt.Errorf("--%s %q: empty issue id", flagName, item)
		}
	}
	return ids, nil
}

func describeEdit(e interact.EdgeEdit) string {
	switch e.Kind {
	case interact.EdgeCreate:
		return fmt.Sprintf("add %s->%s", e.SourceID, e.TargetID)
	case interact.EdgeDelete:
		return fmt.Sprintf("remove %s->%s", e.SourceID, e.TargetID)
	case interact.EdgeRetarget:
		return fmt.Sprintf("move %s->%s to %s", e.SourceID, e.OldTargetID, e.TargetID)
	default:
		return "no-op"
	}
}
