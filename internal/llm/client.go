package llm

import (
	"context"
	"fmt"
	"time"
)

type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// requestTimeout bounds every real upstream call. A call that exceeds it is
// aborted and reported as an error; it is not retried.
const requestTimeout = 30 * time.Second

// Client abstracts the upstream completion call.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// UpstreamError carries the status and body of a failed upstream call.
// A structurally invalid success response (missing answer) is reported the
// same way as a non-2xx status.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status=%d body=%q", e.Status, e.Body)
}
