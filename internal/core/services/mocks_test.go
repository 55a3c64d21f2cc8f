package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/teabag-labs/teabag-snap/internal/adapters/driven/storage/memory"
	"github.com/teabag-labs/teabag-snap/internal/adapters/driven/storage/state"
	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

// --- Mock implementations ---

type transportCall struct {
	op    domain.Operation
	token string
}

// mockTransport implements driven.GraphQLTransport for testing.
type mockTransport struct {
	mu      sync.Mutex
	calls   []transportCall
	respond func(op domain.Operation, token string) (*domain.Envelope, error)
	// respondCtx, when set, takes precedence and sees the request context.
	respondCtx func(ctx context.Context, op domain.Operation, token string) (*domain.Envelope, error)
}

func (m *mockTransport) Post(ctx context.Context, op domain.Operation, token string) (*domain.Envelope, error) {
	m.mu.Lock()
	m.calls = append(m.calls, transportCall{op: op, token: token})
	m.mu.Unlock()

	if m.respondCtx != nil {
		return m.respondCtx(ctx, op, token)
	}
	if m.respond == nil {
		return nil, errors.New("no response configured")
	}
	return m.respond(op, token)
}

func (m *mockTransport) callsFor(operationName string) []transportCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []transportCall
	for _, c := range m.calls {
		if c.op.OperationName == operationName {
			out = append(out, c)
		}
	}
	return out
}

func (m *mockTransport) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockObserver implements driven.Observer for testing.
type mockObserver struct {
	mu        sync.Mutex
	requests  []string
	refreshes []error
	logouts   int
}

func (m *mockObserver) ObserveRequest(operation, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, operation+":"+outcome)
}

func (m *mockObserver) ObserveRefresh(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshes = append(m.refreshes, err)
}

func (m *mockObserver) ObserveLogout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logouts++
}

// --- Helpers ---

func dataEnvelope(t *testing.T, data any) *domain.Envelope {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return &domain.Envelope{Data: raw}
}

func errorEnvelope(code domain.ErrorCode, message string) *domain.Envelope {
	return &domain.Envelope{Errors: []domain.GraphQLError{{
		Message:    message,
		Extensions: &domain.ErrorExtensions{Code: code},
	}}}
}

// newStores returns a host state blob and a credential store over it.
func newStores() (*memory.StateStore, *state.CredentialStore) {
	host := memory.NewStateStore()
	return host, state.NewCredentialStore(host)
}

func seedAuth(t *testing.T, creds *state.CredentialStore, auth *domain.AuthData) {
	t.Helper()
	require.NoError(t, creds.Set(context.Background(), auth))
}

func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func validAuth() *domain.AuthData {
	return &domain.AuthData{
		ID:           1,
		Email:        "a@b.com",
		Token:        "t1",
		RefreshToken: "r1",
		Expires:      "2099-01-01T00:00:00Z",
	}
}

func refreshedAuth() *domain.AuthData {
	return &domain.AuthData{
		ID:           1,
		Email:        "a@b.com",
		Token:        "t2",
		RefreshToken: "r2",
		Expires:      "2099-06-01T00:00:00Z",
	}
}
