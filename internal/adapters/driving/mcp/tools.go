package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

// GetAuthInput is the input schema for the get_auth tool.
type GetAuthInput struct{}

// AuthOutput reports the stored credential.
type AuthOutput struct {
	Connected bool             `json:"connected"`
	Auth      *domain.AuthData `json:"auth,omitempty"`
}

// SetAuthInput is the input schema for the set_auth tool.
type SetAuthInput struct {
	Auth *domain.AuthData `json:"auth,omitempty" jsonschema:"credential to store; omit to disconnect"`
}

// InsightInput is the input schema for the transaction_insight tool.
type InsightInput struct {
	Transaction *domain.Transaction `json:"transaction,omitempty" jsonschema:"pending transaction as sent by the wallet"`
	Raw         string              `json:"raw,omitempty" jsonschema:"raw signed transaction, 0x-prefixed hex"`
}

// InsightOutput is the output schema for the transaction_insight tool.
type InsightOutput struct {
	Text    string `json:"text"`
	Content any    `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_auth",
		Description: "Return the connected 0xTeabag account, if any",
	}, s.handleGetAuth)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_auth",
		Description: "Store or remove the 0xTeabag credential",
	}, s.handleSetAuth)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "transaction_insight",
		Description: "Show 0xTeabag address labels for a pending transaction",
	}, s.handleInsight)
}

func (s *Server) handleGetAuth(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GetAuthInput,
) (*mcp.CallToolResult, AuthOutput, error) {
	res, err := s.ports.RPC.Handle(ctx, domain.RPCRequest{Origin: originMCP, Method: domain.RPCMethodGetAuth})
	if err != nil {
		return nil, AuthOutput{}, err
	}

	auth, _ := res.(*domain.AuthData)
	return nil, AuthOutput{Connected: auth != nil, Auth: auth}, nil
}

func (s *Server) handleSetAuth(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetAuthInput,
) (*mcp.CallToolResult, AuthOutput, error) {
	var params json.RawMessage
	if input.Auth != nil {
		b, err := json.Marshal(input.Auth)
		if err != nil {
			return nil, AuthOutput{}, fmt.Errorf("encoding auth: %w", err)
		}
		params = b
	}

	req := domain.RPCRequest{Origin: originMCP, Method: domain.RPCMethodSetAuth, Params: params}
	if _, err := s.ports.RPC.Handle(ctx, req); err != nil {
		return nil, AuthOutput{}, err
	}
	return nil, AuthOutput{Connected: input.Auth != nil, Auth: input.Auth}, nil
}

func (s *Server) handleInsight(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InsightInput,
) (*mcp.CallToolResult, InsightOutput, error) {
	tx, err := s.transactionFrom(input)
	if err != nil {
		return nil, InsightOutput{}, err
	}

	content, err := s.ports.Insight.OnTransaction(ctx, tx)
	if err != nil {
		return nil, InsightOutput{}, err
	}
	return nil, InsightOutput{Text: content.PlainText(), Content: content}, nil
}

func (s *Server) transactionFrom(input InsightInput) (domain.Transaction, error) {
	switch {
	case input.Transaction != nil:
		return *input.Transaction, nil
	case input.Raw != "" && s.ports.DecodeRaw != nil:
		return s.ports.DecodeRaw(input.Raw)
	case input.Raw != "":
		return domain.Transaction{}, fmt.Errorf("raw transactions: %w", domain.ErrNotImplemented)
	default:
		return domain.Transaction{}, ErrNoTransaction
	}
}
