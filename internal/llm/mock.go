package llm

import "context"

// MockClient answers deterministically from the last user-role message,
// with no network dependency. Used for tests and for running the service
// without an upstream key.
type MockClient struct{}

func NewMock() *MockClient { return &MockClient{} }

func (c *MockClient) Complete(_ context.Context, messages []Message) (string, error) {
	last := ""
	for _, m := range messages {
		if m.Role == RoleUser {
			last = m.Content
		}
	}
	return "[mock] " + last, nil
}
