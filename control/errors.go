package control

import (
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// InvalidArgumentError indicates a request that the orchestrator would
// reject, caught before any network traffic.
type InvalidArgumentError struct {
	message string
}

func (e *InvalidArgumentError) Error() string {
	return e.message
}

// RemoteError is a non-2xx response from the orchestrator. Body carries the
// orchestrator's message as sent.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("orchestrator returned status %d", e.StatusCode)
}

func remoteError(res *resty.Response) error {
	return &RemoteError{
		StatusCode: res.StatusCode(),
		Body:       strings.TrimSpace(string(res.Body())),
	}
}
