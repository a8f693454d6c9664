package api

import (
	"context"
	"sync"
)

// MockChatClient is a mock implementation of ChatClientInterface for testing
type MockChatClient struct {
	mu sync.Mutex

	// Mock return values
	ModelName   string
	GenerateVal string
	GenerateErr error

	// Call counters/recorders
	GenerateCalls int
	LastPrompt    string
	LastAPIKey    string
	LastRequestID string
}

// Ensure MockChatClient implements ChatClientInterface
var _ ChatClientInterface = (*MockChatClient)(nil)

func (m *MockChatClient) Generate(ctx context.Context, prompt, apiKey string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GenerateCalls++
	m.LastPrompt = prompt
	m.LastAPIKey = apiKey
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		m.LastRequestID = id
	}
	return m.GenerateVal, m.GenerateErr
}

func (m *MockChatClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

// Calls returns the number of Generate calls so far
func (m *MockChatClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.GenerateCalls
}
