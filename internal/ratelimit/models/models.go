package models

import "time"

// Result is the outcome of one rate-limit check.
type Result struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
	// Degraded is set when the answer came from the in-process fallback.
	Degraded bool `json:"-"`
}

// ExceededResponse is the 429 body.
type ExceededResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after"`
}

// NewIPKey builds the bucket key for a client IP under scope.
func NewIPKey(scope, ip string) string {
	return "ratelimit:" + scope + ":ip:" + ip
}

// RetryAfterSeconds rounds the wait until resetAt up to whole seconds, never
// below one.
func RetryAfterSeconds(resetAt, now time.Time) int {
	d := resetAt.Sub(now)
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
