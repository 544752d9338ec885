package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts of the viewer.
// Related bindings (arrows, shifted arrows) share help text since they appear
// as a single row in the help overlay.
type KeyMap struct {
	// Selection
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Next  key.Binding

	// Moving nodes
	MoveUp    key.Binding
	MoveDown  key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Reset     key.Binding
	Undo      key.Binding
	Redo      key.Binding

	// Dependency editing
	EditMode   key.Binding
	Link       key.Binding
	NextLink   key.Binding
	PrevLink   key.Binding
	DeleteLink key.Binding
	Drop       key.Binding
	Cancel     key.Binding
	Commit     key.Binding

	// Misc
	NextEpic key.Binding
	PrevEpic key.Binding
	Details  key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("←↑↓→ hjkl", "Select nearby issue"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("←↑↓→ hjkl", "Select nearby issue"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←↑↓→ hjkl", "Select nearby issue"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("←↑↓→ hjkl", "Select nearby issue"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "Next issue"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("shift+up", "K"),
			key.WithHelp("Shift+←↑↓→", "Move issue"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("shift+down", "J"),
			key.WithHelp("Shift+←↑↓→", "Move issue"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("Shift+←↑↓→", "Move issue"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("Shift+←↑↓→", "Move issue"),
		),
		Reset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "Reset positions"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Undo move"),
		),
		Redo: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "Redo move"),
		),
		EditMode: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Toggle edit mode"),
		),
		Link: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Draw or pick up dependency"),
		),
		NextLink: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("[ ]", "Cycle dependencies"),
		),
		PrevLink: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[ ]", "Cycle dependencies"),
		),
		DeleteLink: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Delete dependency"),
		),
		Drop: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "Drop on selected issue"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Cancel"),
		),
		Commit: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Commit changes"),
		),
		NextEpic: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n p", "Switch epic"),
		),
		PrevEpic: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("n p", "Switch epic"),
		),
		Details: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Toggle details"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy issue id"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// helpRows returns one binding per help row, skipping bindings that share a
// row with the previous one.
func (k KeyMap) helpRows() []key.Binding {
	all := []key.Binding{
		k.Up, k.Down, k.Left, k.Right, k.Next,
		k.MoveUp, k.MoveDown, k.MoveLeft, k.MoveRight, k.Reset, k.Undo, k.Redo,
		k.EditMode, k.Link, k.NextLink, k.PrevLink, k.DeleteLink, k.Drop, k.Cancel, k.Commit,
		k.NextEpic, k.PrevEpic, k.Details, k.Copy, k.Help, k.Quit,
	}
	var rows []key.Binding
	last := ""
	for _, b := range all {
		if b.Help().Key == last {
			continue
		}
		last = b.Help().Key
		rows = append(rows, b)
	}
	return rows
}
