package caller

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/Layr-Labs/colorchain-go/pkg/chain"
	"github.com/Layr-Labs/colorchain-go/pkg/testutil"
	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"github.com/Layr-Labs/colorchain-go/pkg/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSigningClient(t *testing.T, sc *testutil.SimulatedChain, account testutil.Account) *chain.SigningClient {
	t.Helper()
	identity, err := wallet.DeriveIdentity(account.RawKey(), sc.ChainID)
	require.NoError(t, err)

	client, err := chain.BindSigner(chain.NewConnection(sc.Client, "simulated", zap.NewNop()), identity, zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestContractCaller_SetThenGetColor(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sc := testutil.NewSimulatedChain(t)
	contract := sc.DeployColorChain(t, sc.Accounts[0])

	cc, err := NewContractCaller(newSigningClient(t, sc, sc.Accounts[1]), contract.Hex(), zap.NewNop())
	require.NoError(t, err)

	initial, err := cc.GetColor(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.Color{}, initial)

	receipt, err := cc.SetColor(ctx, types.Color{R: 10, G: 20, B: 30})
	require.NoError(t, err)
	require.True(t, receipt.Success)
	require.NotEmpty(t, receipt.TxHash)
	require.Greater(t, receipt.BlockNumber, uint64(0))

	color, err := cc.GetColor(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.Color{R: 10, G: 20, B: 30}, color)
}

func TestContractCaller_GetColorOverflow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sc := testutil.NewSimulatedChain(t)
	contract := sc.DeployColorChain(t, sc.Accounts[0])
	client := newSigningClient(t, sc, sc.Accounts[0])

	cc, err := NewContractCaller(client, contract.Hex(), zap.NewNop())
	require.NoError(t, err)

	// write a channel wider than 64 bits through the raw binding
	txOpts, err := cc.buildTransactionOpts(ctx)
	require.NoError(t, err)
	huge := new(big.Int).Lsh(big.NewInt(1), 100)
	tx, err := cc.colorChain.SetColor(txOpts, huge, big.NewInt(1), big.NewInt(2))
	require.NoError(t, err)
	_, err = cc.signAndSendTransaction(ctx, tx, "SetColor")
	require.NoError(t, err)

	_, err = cc.GetColor(ctx)
	require.ErrorIs(t, err, types.ErrRpc)
	assert.Contains(t, err.Error(), "does not fit in uint64")
}

func TestContractCaller_NoContractAtAddress(t *testing.T) {
	sc := testutil.NewSimulatedChain(t)

	cc, err := NewContractCaller(newSigningClient(t, sc, sc.Accounts[0]), "0x000000000000000000000000000000000000dEaD", zap.NewNop())
	require.NoError(t, err)

	_, err = cc.GetColor(context.Background())
	require.ErrorIs(t, err, types.ErrRpc)
}

func TestNewContractCaller_InvalidAddress(t *testing.T) {
	sc := testutil.NewSimulatedChain(t)
	client := newSigningClient(t, sc, sc.Accounts[0])

	for _, bad := range []string{"", "0x1234", "not-an-address"} {
		cc, err := NewContractCaller(client, bad, zap.NewNop())
		require.Nil(t, cc)
		require.ErrorIs(t, err, types.ErrInvalidAddress, bad)
	}

	_, err := NewContractCaller(nil, "0x000000000000000000000000000000000000dEaD", zap.NewNop())
	require.Error(t, err)
}

func TestDeployColorChain(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sc := testutil.NewSimulatedChain(t)
	client := newSigningClient(t, sc, sc.Accounts[1])

	cc, receipt, err := DeployColorChain(ctx, client, zap.NewNop())
	require.NoError(t, err)
	require.True(t, receipt.Success)

	code, err := sc.Client.CodeAt(ctx, cc.ContractAddress(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, code)

	_, err = cc.SetColor(ctx, types.Color{R: 1, G: 2, B: 3})
	require.NoError(t, err)
	color, err := cc.GetColor(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.Color{R: 1, G: 2, B: 3}, color)
}
