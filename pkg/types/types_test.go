package types

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorFromChannels(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		c := Color{R: 10, G: 20, B: 30}
		r, g, b := c.Channels()
		out, err := ColorFromChannels(r, g, b)
		require.NoError(t, err)
		require.Equal(t, c, out)
	})

	t.Run("overflow", func(t *testing.T) {
		tooLarge := new(big.Int).Lsh(big.NewInt(1), 64)
		_, err := ColorFromChannels(tooLarge, common.Big1, common.Big1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "channel r")
	})

	t.Run("missing channel", func(t *testing.T) {
		_, err := ColorFromChannels(common.Big1, nil, common.Big1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "channel g")
	})
}

func TestBalanceString(t *testing.T) {
	wei, ok := new(big.Int).SetString("1000000000000000000", 10)
	require.True(t, ok)
	assert.Equal(t, "1000000000000000000", Balance{Wei: wei}.String())
	assert.Equal(t, "0", Balance{}.String())

	huge, ok := new(big.Int).SetString("340282366920938463463374607431768211457", 10)
	require.True(t, ok)
	assert.Equal(t, "340282366920938463463374607431768211457", Balance{Wei: huge}.String())
}

func TestReceiptFromEthereum(t *testing.T) {
	require.Nil(t, ReceiptFromEthereum(nil))

	r := &ethereumTypes.Receipt{
		Status:      ethereumTypes.ReceiptStatusSuccessful,
		TxHash:      common.HexToHash("0x01"),
		GasUsed:     21000,
		BlockNumber: big.NewInt(7),
	}
	out := ReceiptFromEthereum(r)
	assert.True(t, out.Success)
	assert.Equal(t, uint64(7), out.BlockNumber)
	assert.Equal(t, uint64(21000), out.GasUsed)
	assert.Equal(t, r.TxHash.Hex(), out.TxHash)

	r.Status = ethereumTypes.ReceiptStatusFailed
	assert.False(t, ReceiptFromEthereum(r).Success)
}

func TestBridgeError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewError(ErrorKindRpc, "get_balance", cause)

	require.ErrorIs(t, err, ErrRpc)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, ErrSubmission)
	assert.Equal(t, ErrorKindRpc, KindOf(err))
	assert.Equal(t, "get_balance: RpcError: dial tcp: connection refused", err.Error())

	t.Run("wrapped keeps kind", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", err)
		assert.Equal(t, ErrorKindRpc, KindOf(wrapped))
		require.ErrorIs(t, wrapped, ErrRpc)
	})

	t.Run("rewrap keeps original kind", func(t *testing.T) {
		inner := NewError(ErrorKindInvalidAddress, "", errors.New("bad"))
		outer := NewError(ErrorKindRpc, "get_color", inner)
		assert.Equal(t, ErrorKindInvalidAddress, KindOf(outer))
		assert.Contains(t, outer.Error(), "get_color: InvalidAddress")
	})

	t.Run("unknown and nil", func(t *testing.T) {
		assert.Equal(t, ErrorKindUnknown, KindOf(errors.New("plain")))
		assert.Equal(t, ErrorKind(""), KindOf(nil))
	})
}
