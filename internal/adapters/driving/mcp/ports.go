package mcp

import (
	"github.com/teabag-labs/teabag-snap/internal/core/domain"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// RPC serves getAuth and setAuth.
	RPC driving.RPCService

	// Insight builds the transaction-insight panel.
	Insight driving.InsightService

	// DecodeRaw turns a raw signed transaction into a Transaction.
	// Optional; without it the raw input is rejected.
	DecodeRaw func(raw string) (domain.Transaction, error)
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.RPC == nil {
		return ErrMissingRPCService
	}
	if p.Insight == nil {
		return ErrMissingInsightService
	}
	return nil
}
