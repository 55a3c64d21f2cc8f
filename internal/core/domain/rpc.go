package domain

import "encoding/json"

// RPC methods served to the companion app.
const (
	RPCMethodGetAuth = "getAuth"
	RPCMethodSetAuth = "setAuth"
)

// RPCRequest is a method call from the companion app.
type RPCRequest struct {
	// Origin identifies the caller, when the transport knows it.
	Origin string          `json:"origin,omitempty"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// HasParams returns true if params are present and not JSON null.
func (r RPCRequest) HasParams() bool {
	return len(r.Params) > 0 && string(r.Params) != "null"
}
