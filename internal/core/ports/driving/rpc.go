package driving

import (
	"context"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

// RPCService dispatches method calls from the companion app.
type RPCService interface {
	// Handle runs req. Unknown methods return domain.ErrMethodNotFound.
	Handle(ctx context.Context, req domain.RPCRequest) (any, error)
}
