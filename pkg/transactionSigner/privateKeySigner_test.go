package transactionSigner

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/Layr-Labs/colorchain-go/pkg/testutil"
	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"github.com/Layr-Labs/colorchain-go/pkg/wallet"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSigner(t *testing.T, sc *testutil.SimulatedChain, account testutil.Account) (*PrivateKeySigner, *wallet.SigningIdentity) {
	t.Helper()
	identity, err := wallet.DeriveIdentity(account.RawKey(), sc.ChainID)
	require.NoError(t, err)

	signer, err := NewPrivateKeySigner(identity, sc.Client, zap.NewNop())
	require.NoError(t, err)
	return signer, identity
}

func Test_PrivateKeySigner_SendTransaction(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sc := testutil.NewSimulatedChain(t)
	signer, _ := newSigner(t, sc, sc.Accounts[0])
	to := sc.Accounts[1].Address

	before, err := sc.Client.BalanceAt(ctx, to, nil)
	require.NoError(t, err)

	// gas fields are placeholders, the signer prices the transaction itself
	tx := ethereumTypes.NewTransaction(0, to, big.NewInt(1), 21000, big.NewInt(0), nil)

	receipt, err := signer.SignAndSendTransaction(ctx, tx)
	require.NoError(t, err)
	require.Equal(t, ethereumTypes.ReceiptStatusSuccessful, receipt.Status)

	after, err := sc.Client.BalanceAt(ctx, to, nil)
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Add(before, big.NewInt(1)).String(), after.String())

	nonce, err := sc.Client.NonceAt(ctx, sc.Accounts[0].Address, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), nonce)
}

func Test_PrivateKeySigner_GetTransactOpts(t *testing.T) {
	sc := testutil.NewSimulatedChain(t)
	signer, _ := newSigner(t, sc, sc.Accounts[1])

	opts, err := signer.GetTransactOpts(context.Background())
	require.NoError(t, err)
	assert.True(t, opts.NoSend)
	assert.Equal(t, sc.Accounts[1].Address, opts.From)
	assert.Equal(t, sc.Accounts[1].Address, signer.GetFromAddress())

	tx := ethereumTypes.NewTransaction(0, sc.Accounts[0].Address, big.NewInt(0), 21000, big.NewInt(0), nil)
	same, err := opts.Signer(opts.From, tx)
	require.NoError(t, err)
	assert.Equal(t, tx.Hash(), same.Hash())
}

func Test_PrivateKeySigner_DestroyedIdentity(t *testing.T) {
	sc := testutil.NewSimulatedChain(t)
	signer, identity := newSigner(t, sc, sc.Accounts[0])
	identity.Destroy()

	tx := ethereumTypes.NewTransaction(0, sc.Accounts[1].Address, big.NewInt(1), 21000, big.NewInt(0), nil)
	_, err := signer.SignAndSendTransaction(context.Background(), tx)
	require.ErrorIs(t, err, types.ErrSubmission)
	assert.Contains(t, err.Error(), "destroyed")
}

func Test_PrivateKeySigner_InsufficientFunds(t *testing.T) {
	sc := testutil.NewSimulatedChain(t)
	signer, _ := newSigner(t, sc, sc.Accounts[2])

	// more than the account holds
	value := new(big.Int).Mul(sc.Accounts[2].Funding, big.NewInt(2))
	tx := ethereumTypes.NewTransaction(0, sc.Accounts[0].Address, value, 21000, big.NewInt(0), nil)

	_, err := signer.SignAndSendTransaction(context.Background(), tx)
	require.ErrorIs(t, err, types.ErrSubmission)
}

func TestNewPrivateKeySigner_Validation(t *testing.T) {
	sc := testutil.NewSimulatedChain(t)

	_, err := NewPrivateKeySigner(nil, sc.Client, zap.NewNop())
	require.ErrorIs(t, err, types.ErrInvalidKeyMaterial)

	identity, err := wallet.DeriveIdentity(sc.Accounts[0].RawKey(), sc.ChainID)
	require.NoError(t, err)
	_, err = NewPrivateKeySigner(identity, nil, zap.NewNop())
	require.Error(t, err)
}

func TestAddGasBuffer(t *testing.T) {
	assert.Equal(t, uint64(25200), addGasBuffer(21000))
	assert.Equal(t, uint64(0), addGasBuffer(0))
}
