package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

func TestRPC_GetAuth(t *testing.T) {
	_, creds := newStores()
	svc := NewRPCService(creds)

	res, err := svc.Handle(context.Background(), domain.RPCRequest{Method: domain.RPCMethodGetAuth})
	require.NoError(t, err)
	assert.Nil(t, res)

	seedAuth(t, creds, validAuth())
	res, err = svc.Handle(context.Background(), domain.RPCRequest{Method: domain.RPCMethodGetAuth})
	require.NoError(t, err)
	assert.Equal(t, validAuth(), res)
}

func TestRPC_SetAuth(t *testing.T) {
	_, creds := newStores()
	svc := NewRPCService(creds)

	params, err := json.Marshal(validAuth())
	require.NoError(t, err)

	res, err := svc.Handle(context.Background(), domain.RPCRequest{
		Origin: "https://snap.0xteabag.com",
		Method: domain.RPCMethodSetAuth,
		Params: params,
	})
	require.NoError(t, err)
	assert.Nil(t, res)

	stored, err := creds.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, validAuth(), stored)
}

func TestRPC_SetAuthNullRemoves(t *testing.T) {
	for _, params := range []json.RawMessage{nil, json.RawMessage("null")} {
		_, creds := newStores()
		seedAuth(t, creds, validAuth())
		svc := NewRPCService(creds)

		_, err := svc.Handle(context.Background(), domain.RPCRequest{Method: domain.RPCMethodSetAuth, Params: params})
		require.NoError(t, err)

		stored, err := creds.Get(context.Background())
		require.NoError(t, err)
		assert.Nil(t, stored)
	}
}

func TestRPC_SetAuthInvalidParams(t *testing.T) {
	_, creds := newStores()
	svc := NewRPCService(creds)

	_, err := svc.Handle(context.Background(), domain.RPCRequest{
		Method: domain.RPCMethodSetAuth,
		Params: json.RawMessage(`[1,2,3]`),
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRPC_UnknownMethod(t *testing.T) {
	_, creds := newStores()
	svc := NewRPCService(creds)

	_, err := svc.Handle(context.Background(), domain.RPCRequest{Method: "deleteEverything"})

	require.ErrorIs(t, err, domain.ErrMethodNotFound)
	assert.Equal(t, "Method not found.", err.Error())
}
