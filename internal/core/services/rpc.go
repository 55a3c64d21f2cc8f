package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driven"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driving"
	"github.com/teabag-labs/teabag-snap/internal/logger"
)

// Ensure RPCService implements the interface.
var _ driving.RPCService = (*RPCService)(nil)

var rpcLog = logger.New("[onRpcRequest]")

// RPCService answers the companion site's credential requests.
type RPCService struct {
	store driven.CredentialStore
}

// NewRPCService creates an RPC service over the credential store.
func NewRPCService(store driven.CredentialStore) *RPCService {
	return &RPCService{store: store}
}

// Handle dispatches req by method name.
func (s *RPCService) Handle(ctx context.Context, req domain.RPCRequest) (any, error) {
	rpcLog.Debug("%s from %q", req.Method, req.Origin)

	switch req.Method {
	case domain.RPCMethodGetAuth:
		auth, err := s.store.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("get auth: %w", err)
		}
		if auth == nil {
			return nil, nil
		}
		return auth, nil

	case domain.RPCMethodSetAuth:
		var auth *domain.AuthData
		if req.HasParams() {
			if err := json.Unmarshal(req.Params, &auth); err != nil {
				return nil, fmt.Errorf("%w: auth params: %w", domain.ErrInvalidInput, err)
			}
		}
		if err := s.store.Set(ctx, auth); err != nil {
			return nil, fmt.Errorf("set auth: %w", err)
		}
		return nil, nil

	default:
		return nil, domain.ErrMethodNotFound
	}
}
