package driving

import (
	"context"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

// QueryParams describes a GraphQL query.
type QueryParams struct {
	OperationName string
	Query         string
	Variables     map[string]any
}

// MutationParams describes a GraphQL mutation.
type MutationParams struct {
	OperationName string
	Mutation      string
	Variables     map[string]any
}

// APIClient sends authenticated GraphQL operations to the label service.
// Every failure is returned as a *domain.RequestError.
type APIClient interface {
	// Query sends a query.
	Query(ctx context.Context, params QueryParams) (*domain.Response, error)

	// Mutate sends a mutation.
	Mutate(ctx context.Context, params MutationParams) (*domain.Response, error)
}
