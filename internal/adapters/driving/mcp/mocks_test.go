package mcp

import (
	"context"
	"encoding/json"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

// mockRPCService is a mock implementation of driving.RPCService.
type mockRPCService struct {
	auth     *domain.AuthData
	err      error
	requests []domain.RPCRequest
}

func (m *mockRPCService) Handle(_ context.Context, req domain.RPCRequest) (any, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	switch req.Method {
	case domain.RPCMethodGetAuth:
		if m.auth == nil {
			return nil, nil
		}
		return m.auth, nil
	case domain.RPCMethodSetAuth:
		m.auth = nil
		if req.HasParams() {
			m.auth = &domain.AuthData{}
			if err := json.Unmarshal(req.Params, m.auth); err != nil {
				return nil, err
			}
		}
		return nil, nil
	default:
		return nil, domain.ErrMethodNotFound
	}
}

// mockInsightService is a mock implementation of driving.InsightService.
type mockInsightService struct {
	content *domain.Component
	err     error
	got     []domain.Transaction
}

func (m *mockInsightService) OnTransaction(_ context.Context, tx domain.Transaction) (*domain.Component, error) {
	m.got = append(m.got, tx)
	return m.content, m.err
}

func (m *mockInsightService) LabelsForTx(context.Context, domain.Transaction) (*domain.TxLabels, error) {
	return &domain.TxLabels{}, m.err
}

func testAuth() *domain.AuthData {
	return &domain.AuthData{ID: 1, Email: "a@b.com", Token: "t1", RefreshToken: "r1", Expires: "2099-01-01T00:00:00Z"}
}
