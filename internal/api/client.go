package api

import (
	"context"
	"net/http"
	"time"

	graphql "github.com/cli/shurcooL-graphql"
)

// DefaultEndpoint is the Linear GraphQL API endpoint.
const DefaultEndpoint = "https://api.linear.app/graphql"

const defaultTimeout = 30 * time.Second

// GraphQLClient interface allows mocking the GraphQL client for testing
type GraphQLClient interface {
	Query(ctx context.Context, query interface{}, variables map[string]interface{}) error
	Mutate(ctx context.Context, mutation interface{}, variables map[string]interface{}) error
}

// Client wraps the workspace GraphQL API with project viewing and
// customer-request features
type Client struct {
	gql  GraphQLClient
	opts ClientOptions
}

// ClientOptions configures the API client
type ClientOptions struct {
	// Endpoint is the GraphQL endpoint URL (default: DefaultEndpoint)
	Endpoint string

	// APIKey is sent as the Authorization header on every request
	APIKey string

	// Timeout bounds each request (default: 30s)
	Timeout time.Duration
}

// NewClient creates a new API client
func NewClient(opts ClientOptions) *Client {
	if opts.APIKey == "" {
		// No credentials - return a client with nil gql, methods will
		// return errors
		return &Client{opts: opts}
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &authTransport{
			key:  opts.APIKey,
			base: http.DefaultTransport,
		},
	}

	return &Client{
		gql:  graphql.NewClient(endpoint, httpClient),
		opts: opts,
	}
}

// NewClientWithGraphQL creates a Client with a custom GraphQL client (for testing)
func NewClientWithGraphQL(gql GraphQLClient) *Client {
	return &Client{gql: gql}
}

// authTransport adds the Authorization header to every request.
// Linear expects the raw API key, not a Bearer scheme.
type authTransport struct {
	key  string
	base http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", t.key)
	return t.base.RoundTrip(clone)
}
