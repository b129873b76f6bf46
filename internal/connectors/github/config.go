package github

import "time"

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSecond is the default proactive throttle rate.
	DefaultRequestsPerSecond = 10.0

	// DefaultBurst is the default token bucket burst.
	DefaultBurst = 30

	// UserAgent identifies docsync to the GitHub API.
	UserAgent = "docsync"
)

// Options configures a Client.
type Options struct {
	// Token is a personal access or OAuth token.
	Token string

	// BaseURL overrides the API root (GitHub Enterprise or tests).
	BaseURL string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond is the proactive throttle rate.
	// Negative disables throttling; zero selects the default.
	RequestsPerSecond float64

	// Burst is the token bucket size (default: 30).
	Burst int
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.RequestsPerSecond == 0 {
		o.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if o.Burst <= 0 {
		o.Burst = DefaultBurst
	}
	return o
}
