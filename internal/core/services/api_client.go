package services

import (
	"context"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driven"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driving"
)

// Ensure APIClient implements the interface.
var _ driving.APIClient = (*APIClient)(nil)

// APIClient sends authenticated GraphQL operations to the label service.
type APIClient struct {
	session   driving.AuthSession
	requester *requester
}

// NewAPIClient creates a client that takes its bearer token from session.
// store is cleared when the service rejects the credential.
func NewAPIClient(
	session driving.AuthSession,
	store driven.CredentialStore,
	transport driven.GraphQLTransport,
	opts ...Option,
) *APIClient {
	o := newOptions(opts)
	return &APIClient{
		session: session,
		requester: &requester{
			transport: transport,
			store:     store,
			observer:  o.observer,
		},
	}
}

// Query sends a query. Without stored credentials it is sent anonymously.
func (c *APIClient) Query(ctx context.Context, params driving.QueryParams) (*domain.Response, error) {
	auth, err := c.session.GetValidAuthData(ctx)
	if err != nil {
		return nil, err
	}

	op := domain.Operation{
		OperationName: params.OperationName,
		Query:         domain.CompactDocument(params.Query),
		Variables:     params.Variables,
	}
	return c.requester.do(ctx, op, auth.BearerToken())
}

// Mutate sends a mutation. It behaves exactly like Query.
func (c *APIClient) Mutate(ctx context.Context, params driving.MutationParams) (*domain.Response, error) {
	return c.Query(ctx, driving.QueryParams{
		OperationName: params.OperationName,
		Query:         params.Mutation,
		Variables:     params.Variables,
	})
}
