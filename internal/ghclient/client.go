package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/spiffcs/folio/internal/constants"
	"github.com/spiffcs/folio/internal/log"
	"github.com/spiffcs/folio/internal/model"
	"github.com/spiffcs/folio/internal/observability"
)

// rateLimitTransport wraps an http.RoundTripper to handle GitHub rate limits
type rateLimitTransport struct {
	base  http.RoundTripper
	state *RateLimitState
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.state.IsLimited() {
		return nil, ErrRateLimited
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	remaining, limit, resetAt := parseRateLimitHeaders(resp)
	if remaining >= 0 && limit > 0 {
		t.state.Update(remaining, limit, resetAt)
		observability.RecordRateLimit(remaining)
	}

	if remaining <= constants.RateLimitLowWatermark && remaining > 0 {
		log.Debug("rate limit low", "remaining", remaining, "resets_at", resetAt.Format(time.RFC3339))
	}

	// 403 with an exhausted quota, or 429
	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		if resp.Header.Get("X-RateLimit-Remaining") == "0" || resp.StatusCode == http.StatusTooManyRequests {
			t.state.SetLimited(true, resetAt)
			_ = resp.Body.Close()
			return nil, ErrRateLimited
		}
	}

	return resp, nil
}

// parseRateLimitHeaders extracts rate limit info from response headers.
func parseRateLimitHeaders(resp *http.Response) (remaining, limit int, resetAt time.Time) {
	remaining = -1
	limit = -1

	if remainingStr := resp.Header.Get("X-RateLimit-Remaining"); remainingStr != "" {
		if rem, err := strconv.Atoi(remainingStr); err == nil {
			remaining = rem
		}
	}

	if limitStr := resp.Header.Get("X-RateLimit-Limit"); limitStr != "" {
		if lim, err := strconv.Atoi(limitStr); err == nil {
			limit = lim
		}
	}

	if resetStr := resp.Header.Get("X-RateLimit-Reset"); resetStr != "" {
		if resetTime, err := strconv.ParseInt(resetStr, 10, 64); err == nil {
			resetAt = time.Unix(resetTime, 0)
		}
	}

	return remaining, limit, resetAt
}

// Client wraps the GitHub REST and GraphQL APIs.
type Client struct {
	client     *gh.Client
	httpClient *http.Client
	graphqlURL string
	rate       *RateLimitState
	// token is intentionally unexported. NEVER add String(), MarshalJSON(),
	// or any method that could expose this value in logs or serialized output.
	token string
}

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL points the client at a different API host, such as a GitHub
// Enterprise server or a test server. GraphQL requests go to <base>/graphql.
func WithBaseURL(base string) Option {
	return func(c *Client) error {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return fmt.Errorf("invalid GitHub base URL %q: %w", base, err)
		}
		c.client.BaseURL = u
		c.graphqlURL = base + "graphql"
		return nil
	}
}

// NewClient creates a GitHub client. An empty token yields an
// unauthenticated client that can only reach public REST endpoints.
func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)

	var tc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		tc = oauth2.NewClient(ctx, ts)
	} else {
		tc = &http.Client{Transport: http.DefaultTransport}
	}
	tc.Timeout = constants.RequestTimeout

	state := newRateLimitState()
	tc.Transport = &rateLimitTransport{base: tc.Transport, state: state}

	c := &Client{
		client:     gh.NewClient(tc),
		httpClient: tc,
		graphqlURL: graphqlEndpoint,
		rate:       state,
		token:      token,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Authenticated reports whether the client carries a token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// RateLimit returns the client's rate limit tracker.
func (c *Client) RateLimit() *RateLimitState {
	return c.rate
}

// RateLimits fetches the current GitHub API rate limit status.
func (c *Client) RateLimits(ctx context.Context) (*gh.RateLimits, error) {
	limits, _, err := c.client.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limits: %w", err)
	}
	return limits, nil
}

// Profile fetches a user's public profile.
func (c *Client) Profile(ctx context.Context, login string) (model.RawProfile, error) {
	user, _, err := c.client.Users.Get(ctx, login)
	if err != nil {
		return model.RawProfile{}, fmt.Errorf("failed to get user %s: %w", login, err)
	}

	p := model.RawProfile{Login: user.GetLogin()}
	if user.PublicRepos != nil {
		repos := user.GetPublicRepos()
		p.PublicRepos = &repos
	}
	if user.CreatedAt != nil {
		created := user.GetCreatedAt().Time
		p.CreatedAt = &created
	}
	return p, nil
}
