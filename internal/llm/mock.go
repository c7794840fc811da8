package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned reply. A non-nil Err is returned instead of
// a response.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays canned responses in order and records requests.
// Replies are validated against the request schema like real providers.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse
	Calls []Request
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

func (m *MockProvider) ModelID() string { return "mock" }

// Enqueue adds replies to the end of the queue.
func (m *MockProvider) Enqueue(responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, responses...)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if len(m.queue) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return finish(req, next.Content, next.Usage, "mock", StopEnd)
}
