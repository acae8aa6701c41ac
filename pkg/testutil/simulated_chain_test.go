package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedChain_FundsDevAccounts(t *testing.T) {
	sc := NewSimulatedChain(t)
	ctx := context.Background()

	chainId, err := sc.Client.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, sc.ChainID, chainId.Uint64())

	for _, account := range sc.Accounts {
		balance, err := sc.Client.BalanceAt(ctx, account.Address, nil)
		require.NoError(t, err)
		assert.Equal(t, account.Funding.String(), balance.String(), account.Address.Hex())
	}
}

func TestSimulatedChain_DeployColorChain(t *testing.T) {
	sc := NewSimulatedChain(t)

	address := sc.DeployColorChain(t, sc.Accounts[0])
	code, err := sc.Client.CodeAt(context.Background(), address, nil)
	require.NoError(t, err)
	require.NotEmpty(t, code)
}

func TestBlockProducer(t *testing.T) {
	sc := NewSimulatedChain(t)
	ctx := context.Background()

	start, err := sc.Client.BlockNumber(ctx)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		current, err := sc.Client.BlockNumber(ctx)
		return err == nil && current > start
	}, 5*time.Second, 10*time.Millisecond)

	sc.Producer.Stop()
	emitted := sc.Producer.BlocksEmitted()
	require.Greater(t, emitted, uint64(0))

	// manual emission still works once the loop is stopped
	sc.Producer.EmitBlock()
	require.Equal(t, emitted+1, sc.Producer.BlocksEmitted())

	// stopping twice is a no-op
	sc.Producer.Stop()
}
