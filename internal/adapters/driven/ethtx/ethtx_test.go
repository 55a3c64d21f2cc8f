package ethtx

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

const testKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

var usdc = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")

func signedRaw(t *testing.T, txData types.TxData, chainID *big.Int) (string, common.Address) {
	t.Helper()
	key, err := crypto.HexToECDSA(testKey)
	require.NoError(t, err)

	var signer types.Signer = types.HomesteadSigner{}
	if chainID != nil {
		signer = types.LatestSignerForChainID(chainID)
	}
	signed, err := types.SignTx(types.NewTx(txData), signer, key)
	require.NoError(t, err)

	b, err := signed.MarshalBinary()
	require.NoError(t, err)
	return hexutil.Encode(b), crypto.PubkeyToAddress(key.PublicKey)
}

func TestDecodeRaw_DynamicFee(t *testing.T) {
	chainID := big.NewInt(1)
	raw, sender := signedRaw(t, &types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     7,
		GasTipCap: big.NewInt(2_000_000_000),
		GasFeeCap: big.NewInt(30_000_000_000),
		Gas:       60_000,
		To:        &usdc,
		Value:     big.NewInt(0),
		Data:      []byte{0xa9, 0x05, 0x9c, 0xbb},
	}, chainID)

	tx, err := DecodeRaw(raw)

	require.NoError(t, err)
	assert.Equal(t, Checksum(tx.From), sender.Hex())
	assert.Equal(t, "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", tx.To)
	assert.Equal(t, "0xa9059cbb", tx.Data)
	assert.Equal(t, "0x7", tx.Nonce)
	assert.Equal(t, "0xea60", tx.Gas)
	assert.Equal(t, "0x1", tx.ChainID)
	assert.Equal(t, "0x6fc23ac00", tx.MaxFeePerGas)
	assert.Equal(t, "0x77359400", tx.MaxPriorityFeePerGas)
	assert.Empty(t, tx.GasPrice)
}

func TestDecodeRaw_LegacyUnprotected(t *testing.T) {
	raw, sender := signedRaw(t, &types.LegacyTx{
		Nonce:    1,
		GasPrice: big.NewInt(1_000_000_000),
		Gas:      21_000,
		To:       &usdc,
		Value:    big.NewInt(1e18),
	}, nil)

	tx, err := DecodeRaw(raw)

	require.NoError(t, err)
	assert.Equal(t, sender.Hex(), Checksum(tx.From))
	assert.Equal(t, "0xde0b6b3a7640000", tx.Value)
	assert.Equal(t, "0x3b9aca00", tx.GasPrice)
	assert.Empty(t, tx.ChainID)
}

func TestDecodeRaw_ContractCreation(t *testing.T) {
	chainID := big.NewInt(137)
	raw, _ := signedRaw(t, &types.DynamicFeeTx{
		ChainID:   chainID,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(1),
		Gas:       1_000_000,
		Data:      []byte{0x60, 0x80},
	}, chainID)

	tx, err := DecodeRaw(raw)

	require.NoError(t, err)
	assert.True(t, tx.IsContractCreation())
	assert.Equal(t, "0x89", tx.ChainID)
}

func TestDecodeRaw_Invalid(t *testing.T) {
	for _, raw := range []string{"", "nothex", "0x", "0xdeadbeef"} {
		_, err := DecodeRaw(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, raw)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		tx      domain.Transaction
		wantErr bool
	}{
		{"valid", domain.Transaction{From: usdc.Hex(), To: usdc.Hex(), Value: "0x0"}, false},
		{"creation", domain.Transaction{From: usdc.Hex()}, false},
		{"bad from", domain.Transaction{From: "alice"}, true},
		{"bad to", domain.Transaction{From: usdc.Hex(), To: "0x123"}, true},
		{"bad value", domain.Transaction{From: usdc.Hex(), Value: "12"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.tx)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		Checksum("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"))
	assert.Equal(t, "not-an-address", Checksum("not-an-address"))
}

func TestFormatWei(t *testing.T) {
	assert.Equal(t, "1 ETH", FormatWei("0xde0b6b3a7640000"))
	assert.Equal(t, "0.5 ETH", FormatWei("0x6f05b59d3b20000"))
	assert.Equal(t, "0 ETH", FormatWei("0x0"))
	assert.Equal(t, "zz", FormatWei("zz"))
}
