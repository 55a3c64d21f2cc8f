package driven

import (
	"context"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

// GraphQLTransport sends one GraphQL operation to the label service.
type GraphQLTransport interface {
	// Post sends op with "Authorization: Bearer <token>" when token is set.
	// Network and decoding failures are returned as a *domain.RequestError
	// of kind ErrorKindTransport; non-2xx responses as ErrorKindHTTPStatus.
	// The returned envelope is not normalized.
	Post(ctx context.Context, op domain.Operation, token string) (*domain.Envelope, error)
}
