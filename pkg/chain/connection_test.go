package chain

import (
	"context"
	"testing"

	"github.com/Layr-Labs/colorchain-go/pkg/testutil"
	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"github.com/Layr-Labs/colorchain-go/pkg/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConnect_MalformedEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
	}{
		{name: "empty", endpoint: ""},
		{name: "no scheme", endpoint: "localhost:8545"},
		{name: "websocket", endpoint: "ws://localhost:8546"},
		{name: "no host", endpoint: "http://"},
		{name: "garbage", endpoint: "::not a url::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Connect(context.Background(), tt.endpoint, zap.NewNop())
			require.Nil(t, conn)
			require.ErrorIs(t, err, types.ErrEndpointUnreachableOrInvalid)
		})
	}
}

func TestConnect_UnreachableEndpoint(t *testing.T) {
	// construction does not touch the network; the first call does
	conn, err := Connect(context.Background(), "http://127.0.0.1:1", zap.NewNop())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.GetBalance(context.Background(), testutil.DevAccounts[0].Address.Hex())
	require.ErrorIs(t, err, types.ErrRpc)
}

func TestConnection_GetBalance(t *testing.T) {
	sc := testutil.NewSimulatedChain(t)
	conn := NewConnection(sc.Client, "simulated", zap.NewNop())
	defer conn.Close()

	funded := sc.Accounts[2]
	balance, err := conn.GetBalance(context.Background(), funded.Address.Hex())
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", balance.String())

	t.Run("unfunded address", func(t *testing.T) {
		balance, err := conn.GetBalance(context.Background(), "0x000000000000000000000000000000000000dEaD")
		require.NoError(t, err)
		assert.Equal(t, "0", balance.String())
	})

	t.Run("invalid address", func(t *testing.T) {
		_, err := conn.GetBalance(context.Background(), "not-an-address")
		require.ErrorIs(t, err, types.ErrInvalidAddress)
	})
}

func TestConnection_ChainID(t *testing.T) {
	sc := testutil.NewSimulatedChain(t)
	conn := NewConnection(sc.Client, "simulated", zap.NewNop())

	chainId, err := conn.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sc.ChainID, chainId.Uint64())
	assert.Equal(t, "simulated", conn.Endpoint())

	// closing a wrapped connection leaves the backend usable
	conn.Close()
	_, err = sc.Client.ChainID(context.Background())
	require.NoError(t, err)
}

func TestBindSigner(t *testing.T) {
	sc := testutil.NewSimulatedChain(t)
	conn := NewConnection(sc.Client, "simulated", zap.NewNop())

	identity, err := wallet.DeriveIdentity(sc.Accounts[0].RawKey(), sc.ChainID)
	require.NoError(t, err)

	client, err := BindSigner(conn, identity, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, sc.Accounts[0].Address, client.Address())
	assert.Equal(t, sc.Accounts[0].Address, client.Signer().GetFromAddress())
	assert.Same(t, identity, client.Identity())

	_, err = BindSigner(nil, identity, zap.NewNop())
	require.Error(t, err)

	_, err = BindSigner(conn, nil, zap.NewNop())
	require.ErrorIs(t, err, types.ErrInvalidKeyMaterial)
}
