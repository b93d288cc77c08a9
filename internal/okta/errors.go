package okta

import (
	"fmt"
	"time"
)

// RateLimitError reports a 429 response. RetryAfter is the server-indicated
// delay; callers must wait at least that long before retrying.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}
