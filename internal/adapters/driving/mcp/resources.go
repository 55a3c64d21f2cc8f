package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

// accountURI is the resource describing the connected account.
const accountURI = "teabag://account"

// accountInfo is the account resource body. Tokens are never exposed here.
type accountInfo struct {
	Connected bool   `json:"connected"`
	ID        int64  `json:"id,omitempty"`
	Email     string `json:"email,omitempty"`
	Expires   string `json:"expires,omitempty"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         accountURI,
		Name:        "account",
		Description: "The connected 0xTeabag account",
		MIMEType:    "application/json",
	}, s.handleAccountResource)
}

func (s *Server) handleAccountResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	res, err := s.ports.RPC.Handle(ctx, domain.RPCRequest{Origin: originMCP, Method: domain.RPCMethodGetAuth})
	if err != nil {
		return nil, fmt.Errorf("reading account: %w", err)
	}

	info := accountInfo{}
	if auth, ok := res.(*domain.AuthData); ok && auth != nil {
		info = accountInfo{Connected: true, ID: auth.ID, Email: auth.Email, Expires: auth.Expires}
	}

	body, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("encoding account: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(body),
		}},
	}, nil
}
