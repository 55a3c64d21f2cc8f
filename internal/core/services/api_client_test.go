package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driving"
)

func newTestAPIClient(transport *mockTransport, seed *domain.AuthData, t *testing.T) *APIClient {
	t.Helper()
	_, creds := newStores()
	if seed != nil {
		seedAuth(t, creds, seed)
	}
	session := NewAuthSessionService(creds, transport, WithClock(fixedClock(testNow)))
	return NewAPIClient(session, creds, transport)
}

func TestAPIClient_QueryUsesStoredToken(t *testing.T) {
	transport := &mockTransport{respond: func(domain.Operation, string) (*domain.Envelope, error) {
		return dataEnvelope(t, map[string]any{"me": "a@b.com"}), nil
	}}
	client := newTestAPIClient(transport, validAuth(), t)

	resp, err := client.Query(context.Background(), driving.QueryParams{
		OperationName: "Me",
		Query:         "query Me {\n  me\n}",
	})

	require.NoError(t, err)
	var out struct {
		Me string `json:"me"`
	}
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, "a@b.com", out.Me)

	require.Equal(t, 1, transport.callCount())
	assert.Empty(t, transport.callsFor(opRefreshAuth))
	calls := transport.callsFor("Me")
	require.Len(t, calls, 1)
	assert.Equal(t, "t1", calls[0].token)
	assert.Equal(t, "query Me { me }", calls[0].op.Query)
}

func TestAPIClient_QueryWithoutAuthIsAnonymous(t *testing.T) {
	transport := &mockTransport{respond: func(domain.Operation, string) (*domain.Envelope, error) {
		return dataEnvelope(t, map[string]any{}), nil
	}}
	client := newTestAPIClient(transport, nil, t)

	_, err := client.Query(context.Background(), driving.QueryParams{OperationName: "Public", Query: "{ ping }"})

	require.NoError(t, err)
	calls := transport.callsFor("Public")
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].token)
}

func TestAPIClient_QueryRefreshesStaleToken(t *testing.T) {
	transport := &mockTransport{respond: func(op domain.Operation, _ string) (*domain.Envelope, error) {
		if op.OperationName == opRefreshAuth {
			return dataEnvelope(t, map[string]any{"refreshAuth": refreshedAuth()}), nil
		}
		return dataEnvelope(t, map[string]any{}), nil
	}}
	stale := validAuth()
	stale.Expires = testNow.Add(time.Minute).Format(time.RFC3339)
	client := newTestAPIClient(transport, stale, t)

	_, err := client.Query(context.Background(), driving.QueryParams{OperationName: "Q", Query: "{ q }"})

	require.NoError(t, err)
	require.Len(t, transport.callsFor(opRefreshAuth), 1)
	calls := transport.callsFor("Q")
	require.Len(t, calls, 1)
	assert.Equal(t, "t2", calls[0].token)
}

func TestAPIClient_RefreshFailureSkipsQuery(t *testing.T) {
	transport := &mockTransport{respond: func(domain.Operation, string) (*domain.Envelope, error) {
		return dataEnvelope(t, map[string]any{"refreshAuth": nil}), nil
	}}
	stale := validAuth()
	stale.Expires = testNow.Format(time.RFC3339)
	client := newTestAPIClient(transport, stale, t)

	_, err := client.Query(context.Background(), driving.QueryParams{OperationName: "Q", Query: "{ q }"})

	require.ErrorIs(t, err, domain.ErrRefreshFailed)
	assert.Empty(t, transport.callsFor("Q"))
}

func TestAPIClient_MutateBehavesLikeQuery(t *testing.T) {
	transport := &mockTransport{respond: func(domain.Operation, string) (*domain.Envelope, error) {
		return dataEnvelope(t, map[string]any{"done": true}), nil
	}}
	client := newTestAPIClient(transport, validAuth(), t)

	_, err := client.Mutate(context.Background(), driving.MutationParams{
		OperationName: "Save",
		Mutation:      "mutation Save($x: Int!) {\n  save(x: $x)\n}",
		Variables:     map[string]any{"x": 1},
	})

	require.NoError(t, err)
	calls := transport.callsFor("Save")
	require.Len(t, calls, 1)
	assert.Equal(t, "t1", calls[0].token)
	assert.Equal(t, "mutation Save($x: Int!) { save(x: $x) }", calls[0].op.Query)
	assert.Equal(t, map[string]any{"x": 1}, calls[0].op.Variables)
}

func TestAPIClient_UnauthenticatedQueryLogsOut(t *testing.T) {
	_, creds := newStores()
	seedAuth(t, creds, validAuth())
	transport := &mockTransport{respond: func(domain.Operation, string) (*domain.Envelope, error) {
		return errorEnvelope(domain.ErrorCodeUnauthenticated, "Token revoked"), nil
	}}
	session := NewAuthSessionService(creds, transport, WithClock(fixedClock(testNow)))
	client := NewAPIClient(session, creds, transport)

	_, err := client.Query(context.Background(), driving.QueryParams{OperationName: "Q", Query: "{ q }"})

	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	auth, err := creds.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, auth)
}
