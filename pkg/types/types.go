package types

import (
	"fmt"
	"math/big"

	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
)

// Color is the on-chain RGB triple. Each channel is stored as a uint256 on
// chain; values that do not fit a uint64 are rejected when read back.
type Color struct {
	R uint64 `json:"r"`
	G uint64 `json:"g"`
	B uint64 `json:"b"`
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Channels returns the channels as big integers in ABI order
func (c Color) Channels() (*big.Int, *big.Int, *big.Int) {
	return new(big.Int).SetUint64(c.R), new(big.Int).SetUint64(c.G), new(big.Int).SetUint64(c.B)
}

// ColorFromChannels converts ABI decoded channels back into a Color
func ColorFromChannels(r, g, b *big.Int) (Color, error) {
	channels := []*big.Int{r, g, b}
	names := []string{"r", "g", "b"}
	out := make([]uint64, 3)
	for i, ch := range channels {
		if ch == nil {
			return Color{}, fmt.Errorf("channel %s is missing", names[i])
		}
		if ch.Sign() < 0 || !ch.IsUint64() {
			return Color{}, fmt.Errorf("channel %s value %s does not fit in uint64", names[i], ch.String())
		}
		out[i] = ch.Uint64()
	}
	return Color{R: out[0], G: out[1], B: out[2]}, nil
}

// Balance is a native currency amount in base units (wei)
type Balance struct {
	Wei *big.Int
}

// String returns the full precision decimal representation
func (b Balance) String() string {
	if b.Wei == nil {
		return "0"
	}
	return b.Wei.String()
}

// TransactionReceipt is the terminal outcome of a submitted write
type TransactionReceipt struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed"`
	Success     bool   `json:"success"`
}

// ReceiptFromEthereum flattens a go-ethereum receipt
func ReceiptFromEthereum(r *ethereumTypes.Receipt) *TransactionReceipt {
	if r == nil {
		return nil
	}
	receipt := &TransactionReceipt{
		TxHash:  r.TxHash.Hex(),
		GasUsed: r.GasUsed,
		Success: r.Status == ethereumTypes.ReceiptStatusSuccessful,
	}
	if r.BlockNumber != nil {
		receipt.BlockNumber = r.BlockNumber.Uint64()
	}
	return receipt
}
