package ghclient

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spiffcs/folio/internal/log"
	"github.com/spiffcs/folio/internal/model"
)

const graphqlEndpoint = "https://api.github.com/graphql"

//go:embed queries/contributions.graphql
var contributionsQuery string

// graphqlRequest represents a GraphQL request payload.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse represents a generic GraphQL response.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type contributionsData struct {
	User *struct {
		ContributionsCollection struct {
			ContributionCalendar model.RawCalendar `json:"contributionCalendar"`
		} `json:"contributionsCollection"`
	} `json:"user"`
}

// Contributions fetches the contribution calendar of the last year. The
// GraphQL API requires a token.
func (c *Client) Contributions(ctx context.Context, login string) (model.RawCalendar, error) {
	if !c.Authenticated() {
		return model.RawCalendar{}, ErrUnauthenticated
	}

	data, err := c.executeGraphQL(ctx, contributionsQuery, map[string]any{"login": login})
	if err != nil {
		return model.RawCalendar{}, err
	}

	var resp contributionsData
	if err := json.Unmarshal(data, &resp); err != nil {
		return model.RawCalendar{}, fmt.Errorf("failed to parse contributions: %w", err)
	}
	if resp.User == nil {
		return model.RawCalendar{}, fmt.Errorf("user %s not found", login)
	}
	return resp.User.ContributionsCollection.ContributionCalendar, nil
}

// executeGraphQL executes a GraphQL query against GitHub's API.
func (c *Client) executeGraphQL(ctx context.Context, query string, vars map[string]any) (json.RawMessage, error) {
	bodyBytes, err := json.Marshal(graphqlRequest{Query: query, Variables: vars})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// The oauth2 transport adds the Authorization header.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GraphQL request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read GraphQL response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GraphQL request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var gqlResp graphqlResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		msgs := make([]string, 0, len(gqlResp.Errors))
		for _, e := range gqlResp.Errors {
			log.Debug("GraphQL error", "message", e.Message, "type", e.Type)
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("GraphQL errors: %s", strings.Join(msgs, "; "))
	}

	return gqlResp.Data, nil
}
