// Package github implements the source repository port for GitHub.
//
// The connector enumerates a branch's tree with a single recursive Trees API
// call and downloads file bodies through the contents API using the raw media
// type, so each file costs exactly one request and no base64 decoding.
//
// # Architecture
//
// The connector follows the driven port pattern defined in
// [driven.SourceRepository]. It comprises the following components:
//
//   - Client: handles GitHub API communication with rate limiting
//   - Options: token, base URL, timeout and throttle settings
//   - RateLimiter: proactive token bucket plus reactive header tracking
//
// # Authentication
//
// A static token (personal access token or OAuth access token) is attached
// to every request through an oauth2 token source. Authenticated requests
// get 5,000 API requests per hour.
//
// # Rate Limiting
//
// The connector implements a dual-strategy rate limiting approach:
//
//  1. Proactive throttling: a token bucket limits the request rate
//     (10 requests per second by default, burst 30).
//
//  2. Reactive handling: the connector monitors X-RateLimit-Remaining and
//     X-RateLimit-Reset headers. When fewer than 100 requests remain, it
//     waits until the reset time before continuing.
//
// Requests are never retried. A throttled response surfaces as a
// [RateLimitError] and is classified as [domain.ErrRateLimited].
//
// # Error Handling
//
// Errors leaving the port are wrapped with a domain sentinel:
//
//   - 404 (missing branch or file): [domain.ErrNotFound]
//   - primary or secondary rate limit, HTTP 429: [domain.ErrRateLimited]
//   - anything else: [domain.ErrTransport]
//
// # Example Usage
//
//	client, err := github.NewClient(ctx, github.Options{Token: token})
//	if err != nil {
//	    return err
//	}
//	entries, err := client.ListTree(ctx, domain.RepoRef{Owner: "vercel", Repo: "next.js", Branch: "canary"})
package github
