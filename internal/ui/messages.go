package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"epicgraph/internal/reconcile"
	"epicgraph/internal/session"
)

type loadedMsg struct {
	epicID string
	err    error
}

type committedMsg struct {
	result reconcile.Result
	err    error
}

func loadCmd(s *session.Session, epicID string) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{epicID: epicID, err: s.Load(context.Background(), epicID)}
	}
}

func commitCmd(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		res, err := s.Commit(context.Background())
		return committedMsg{result: res, err: err}
	}
}
