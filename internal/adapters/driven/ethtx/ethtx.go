// Package ethtx turns raw signed Ethereum transactions into the wallet's
// transaction object and checks the addresses in one.
package ethtx

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

// DecodeRaw decodes a 0x-prefixed, RLP or typed-envelope encoded signed
// transaction and recovers its sender. Addresses are returned in lower
// case, matching what wallets hand to insight handlers.
func DecodeRaw(raw string) (domain.Transaction, error) {
	b, err := hexutil.Decode(strings.TrimSpace(raw))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: raw transaction: %w", domain.ErrInvalidInput, err)
	}

	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(b); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: decoding transaction: %w", domain.ErrInvalidInput, err)
	}

	from, err := types.Sender(signerFor(tx), tx)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: recovering sender: %w", domain.ErrInvalidInput, err)
	}

	out := domain.Transaction{
		From:  lowerHex(from),
		Value: hexutil.EncodeBig(tx.Value()),
		Data:  hexutil.Encode(tx.Data()),
		Gas:   hexutil.EncodeUint64(tx.Gas()),
		Nonce: hexutil.EncodeUint64(tx.Nonce()),
	}
	if to := tx.To(); to != nil {
		out.To = lowerHex(*to)
	}
	if tx.Protected() {
		out.ChainID = hexutil.EncodeBig(tx.ChainId())
	}

	if tx.Type() == types.LegacyTxType || tx.Type() == types.AccessListTxType {
		out.GasPrice = hexutil.EncodeBig(tx.GasPrice())
	} else {
		out.MaxFeePerGas = hexutil.EncodeBig(tx.GasFeeCap())
		out.MaxPriorityFeePerGas = hexutil.EncodeBig(tx.GasTipCap())
	}

	return out, nil
}

func signerFor(tx *types.Transaction) types.Signer {
	if !tx.Protected() {
		return types.HomesteadSigner{}
	}
	return types.LatestSignerForChainID(tx.ChainId())
}

func lowerHex(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

// Validate checks that from is an address and that to, when present, is one.
func Validate(tx domain.Transaction) error {
	if !common.IsHexAddress(tx.From) {
		return fmt.Errorf("%w: from %q is not an address", domain.ErrInvalidInput, tx.From)
	}
	if tx.To != "" && !common.IsHexAddress(tx.To) {
		return fmt.Errorf("%w: to %q is not an address", domain.ErrInvalidInput, tx.To)
	}
	if tx.Value != "" {
		if _, err := hexutil.DecodeBig(tx.Value); err != nil {
			return fmt.Errorf("%w: value %q: %w", domain.ErrInvalidInput, tx.Value, err)
		}
	}
	return nil
}

// Checksum returns the EIP-55 form of addr, or addr unchanged if it is
// not an address.
func Checksum(addr string) string {
	if !common.IsHexAddress(addr) {
		return addr
	}
	return common.HexToAddress(addr).Hex()
}

// FormatWei renders a hex wei quantity in ether, trimmed of trailing zeros.
func FormatWei(value string) string {
	wei, err := hexutil.DecodeBig(value)
	if err != nil {
		return value
	}
	eth := new(big.Rat).SetFrac(wei, big.NewInt(1e18))
	s := strings.TrimSuffix(strings.TrimRight(eth.FloatString(18), "0"), ".")
	if s == "" {
		s = "0"
	}
	return s + " ETH"
}
