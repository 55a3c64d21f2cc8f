package domain

import (
	"bytes"
	"encoding/json"
)

// Transaction is the pending transaction handed over by the wallet.
// Quantities are hex strings, as in the Ethereum JSON-RPC encoding.
type Transaction struct {
	From                 string `json:"from"`
	To                   string `json:"to,omitempty"`
	Value                string `json:"value,omitempty"`
	Data                 string `json:"data,omitempty"`
	Gas                  string `json:"gas,omitempty"`
	GasPrice             string `json:"gasPrice,omitempty"`
	MaxFeePerGas         string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas,omitempty"`
	Nonce                string `json:"nonce,omitempty"`
	ChainID              string `json:"chainId,omitempty"`

	// raw is the object as received, including fields not modelled above.
	raw json.RawMessage
}

// UnmarshalJSON decodes the known fields and keeps the whole object.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type fields Transaction
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return err
	}

	*t = Transaction(f)
	t.raw = compact.Bytes()
	return nil
}

// Payload returns the transaction as it was received, or the known fields
// when it was built in code.
func (t Transaction) Payload() ([]byte, error) {
	if len(t.raw) > 0 {
		return t.raw, nil
	}
	return json.Marshal(t)
}

// IsContractCreation returns true if the transaction has no recipient.
func (t Transaction) IsContractCreation() bool {
	return t.To == ""
}

// ShortAddr abbreviates an address to its first five and last four characters.
func ShortAddr(addr string) string {
	if len(addr) <= 9 {
		return addr
	}
	return addr[:5] + "..." + addr[len(addr)-4:]
}
