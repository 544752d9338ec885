package beads

import (
	"context"
	"sync"
)

// DependencyCall records one dependency mutation seen by MockClient.
type DependencyCall struct {
	FromID  string
	ToID    string
	DepType string
}

// MockClient implements Client for tests. Unset Fn fields succeed.
type MockClient struct {
	mu sync.Mutex

	ExportFn           func(context.Context) ([]FullIssue, error)
	AddDependencyFn    func(context.Context, string, string, string) error
	RemoveDependencyFn func(context.Context, string, string, string) error

	ExportCallCount           int
	AddDependencyCallCount    int
	RemoveDependencyCallCount int

	AddDependencyCalls    []DependencyCall
	RemoveDependencyCalls []DependencyCall
}

// NewMockClient returns a MockClient with no configured behavior.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Export(ctx context.Context) ([]FullIssue, error) {
	m.mu.Lock()
	m.ExportCallCount++
	fn := m.ExportFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return []FullIssue{}, nil
}

func (m *MockClient) AddDependency(ctx context.Context, fromID, toID, depType string) error {
	m.mu.Lock()
	m.AddDependencyCallCount++
	m.AddDependencyCalls = append(m.AddDependencyCalls, DependencyCall{FromID: fromID, ToID: toID, DepType: depType})
	fn := m.AddDependencyFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, fromID, toID, depType)
	}
	return nil
}

func (m *MockClient) RemoveDependency(ctx context.Context, fromID, toID, depType string) error {
	m.mu.Lock()
	m.RemoveDependencyCallCount++
	m.RemoveDependencyCalls = append(m.RemoveDependencyCalls, DependencyCall{FromID: fromID, ToID: toID, DepType: depType})
	fn := m.RemoveDependencyFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, fromID, toID, depType)
	}
	return nil
}
