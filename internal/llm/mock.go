package llm

import (
	"context"
	"errors"
	"sync"
)

// Call records one Complete invocation on a MockClient.
type Call struct {
	Model  string
	Prompt string
}

// MockClient is a scripted Client for tests. Responses are returned in order; once
// exhausted, Default is returned. Respond, when set, takes precedence over both.
type MockClient struct {
	mu        sync.Mutex
	Responses []string
	Default   string
	Err       error
	Respond   func(prompt string) (string, error)
	calls     []Call
}

// NewMockClient returns a MockClient that answers with responses in order.
func NewMockClient(responses ...string) *MockClient {
	return &MockClient{Responses: responses}
}

// Complete records the call and returns the next scripted response.
func (m *MockClient) Complete(ctx context.Context, model, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Model: model, Prompt: prompt})

	if m.Respond != nil {
		return m.Respond(prompt)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) > 0 {
		r := m.Responses[0]
		m.Responses = m.Responses[1:]
		return r, nil
	}
	return m.Default, nil
}

// Calls returns a copy of the recorded calls.
func (m *MockClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallCount returns the number of Complete calls made.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// ErrMock is a convenience error for failure injection.
var ErrMock = errors.New("mock completion failure")
