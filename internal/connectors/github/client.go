package github

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// mediaTypeRaw asks the contents API for the file body instead of JSON.
const mediaTypeRaw = "application/vnd.github.raw+json"

// Client wraps the go-github client with rate limiting and error mapping.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// NewClient creates a GitHub API client authenticated with a static token.
// Works for both PAT and OAuth access tokens.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	opts = opts.withDefaults()

	var httpClient *http.Client
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = opts.Timeout

	c := NewClientWithHTTPClient(httpClient, NewRateLimiter(opts.RequestsPerSecond, opts.Burst))
	if opts.BaseURL != "" {
		if err := c.setBaseURL(opts.BaseURL); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewClientWithHTTPClient creates a GitHub client with a custom http.Client.
func NewClientWithHTTPClient(httpClient *http.Client, limiter *RateLimiter) *Client {
	if limiter == nil {
		limiter = NewRateLimiter(0, 0)
	}
	gc := gh.NewClient(httpClient)
	gc.UserAgent = UserAgent
	return &Client{
		gh:          gc,
		rateLimiter: limiter,
	}
}

// setBaseURL points the client at another API root (GHES or a test server).
func (c *Client) setBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("github: invalid base URL %q: %w", raw, err)
	}
	c.gh.BaseURL = u
	return nil
}

// GetTree fetches the entire tree for a revision recursively.
// This gets all file paths in one API call.
func (c *Client) GetTree(ctx context.Context, owner, repo, sha string) (*gh.Tree, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	tree, resp, err := c.gh.Git.GetTree(ctx, owner, repo, sha, true) // recursive=true
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "get tree")
	}
	return tree, nil
}

// GetRawContent fetches the raw body of a file at ref.
// An empty ref selects the repository's default branch.
func (c *Client) GetRawContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	escapedPath := (&url.URL{Path: strings.TrimSuffix(path, "/")}).String()
	u := fmt.Sprintf("repos/%s/%s/contents/%s", owner, repo, escapedPath)
	if ref != "" {
		u += "?ref=" + url.QueryEscape(ref)
	}

	req, err := c.gh.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", mediaTypeRaw)

	var buf bytes.Buffer
	resp, err := c.gh.Do(ctx, req, &buf)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return "", c.wrapError(err, "get contents")
	}
	return buf.String(), nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		rlErr := &RateLimitError{
			ResetAt:   c.rateLimiter.ResetTime(),
			Remaining: c.rateLimiter.Remaining(),
			Limit:     c.rateLimiter.Limit(),
			Secondary: true,
		}
		if abuseErr.RetryAfter != nil {
			rlErr.RetryAfter = *abuseErr.RetryAfter
		}
		return rlErr
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		if ghErr.Response.StatusCode == http.StatusTooManyRequests {
			return &RateLimitError{
				ResetAt:   c.rateLimiter.ResetTime(),
				Remaining: c.rateLimiter.Remaining(),
				Limit:     c.rateLimiter.Limit(),
			}
		}
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
