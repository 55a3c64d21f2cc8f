package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driven"
	"github.com/teabag-labs/teabag-snap/internal/logger"
)

var apiLog = logger.New("[apiClient]")

// requester sends one operation and turns the envelope into a result.
// Both the API client and the refresh path go through it, so an
// UNAUTHENTICATED answer logs the user out no matter who asked.
type requester struct {
	transport driven.GraphQLTransport
	store     driven.CredentialStore
	observer  driven.Observer
}

func (r *requester) do(ctx context.Context, op domain.Operation, token string) (*domain.Response, error) {
	start := time.Now()

	env, err := r.transport.Post(ctx, op, token)
	if err != nil {
		var reqErr *domain.RequestError
		if !errors.As(err, &reqErr) {
			reqErr = domain.NewTransportError(err)
			err = reqErr
		}
		apiLog.Error("%s failed: %v", op.OperationName, err)
		r.observer.ObserveRequest(op.OperationName, reqErr.Kind.String(), time.Since(start))
		return nil, err
	}

	switch out := env.Normalize().(type) {
	case domain.Success:
		r.observer.ObserveRequest(op.OperationName, "ok", time.Since(start))
		return &domain.Response{Data: out.Data}, nil

	case domain.Failure:
		reqErr := domain.NewGraphQLError(out.Errors)
		apiLog.Error("%s returned %d error(s): %s", op.OperationName, len(out.Errors), reqErr.Message)
		r.observer.ObserveRequest(op.OperationName, reqErr.Kind.String(), time.Since(start))

		if reqErr.Kind == domain.ErrorKindUnauthenticated {
			apiLog.Info("Auth error, logging out")
			if err := r.store.ClearAll(ctx); err != nil {
				return nil, fmt.Errorf("logging out after auth error: %w", err)
			}
			r.observer.ObserveLogout()
		}
		return nil, reqErr

	default:
		return nil, fmt.Errorf("unexpected outcome %T", out)
	}
}
