// Package mcp exposes the snap's RPC methods and transaction insight as
// MCP (Model Context Protocol) tools, so assistants can read labels for a
// pending transaction.
package mcp

import "errors"

var (
	// ErrMissingRPCService is returned when the RPC service is not provided.
	ErrMissingRPCService = errors.New("mcp: rpc service is required")

	// ErrMissingInsightService is returned when the insight service is not provided.
	ErrMissingInsightService = errors.New("mcp: insight service is required")

	// ErrNoTransaction is returned when transaction_insight gets neither a
	// transaction nor a raw transaction.
	ErrNoTransaction = errors.New("mcp: transaction or raw is required")
)
