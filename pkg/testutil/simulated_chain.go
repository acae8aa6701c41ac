package testutil

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/Layr-Labs/colorchain-go/pkg/config"
	"github.com/Layr-Labs/colorchain-go/pkg/middleware-bindings/ColorChain"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// DefaultBlockInterval is how often the simulated chain seals a block
const DefaultBlockInterval = 50 * time.Millisecond

// Account is a funded development account
type Account struct {
	PrivateKey string
	Address    common.Address
	Funding    *big.Int
}

// RawKey returns a fresh copy of the account's 32 byte private key
func (a Account) RawKey() []byte {
	return common.FromHex(a.PrivateKey)
}

// DevAccounts are the first anvil development accounts. The last one is
// funded with exactly one ether and never sends transactions, so its balance
// stays predictable.
var DevAccounts = []Account{
	{
		PrivateKey: "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
		Address:    common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		Funding:    new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether)),
	},
	{
		PrivateKey: "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d",
		Address:    common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
		Funding:    new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether)),
	},
	{
		PrivateKey: "5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a",
		Address:    common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"),
		Funding:    big.NewInt(params.Ether),
	},
}

// SimulatedChain is an in-process chain with funded dev accounts and a block
// producer that keeps sealing blocks so receipts become available
type SimulatedChain struct {
	Backend  *simulated.Backend
	Client   simulated.Client
	Producer *BlockProducer
	Accounts []Account
	ChainID  uint64
}

// NewSimulatedChain starts a simulated chain that is torn down with the test
func NewSimulatedChain(t *testing.T) *SimulatedChain {
	t.Helper()

	alloc := ethereumTypes.GenesisAlloc{}
	for _, account := range DevAccounts {
		alloc[account.Address] = ethereumTypes.Account{Balance: new(big.Int).Set(account.Funding)}
	}

	backend := simulated.NewBackend(alloc)
	producer := NewBlockProducer(backend, DefaultBlockInterval, zap.NewNop())
	require.NoError(t, producer.Start(context.Background()))

	t.Cleanup(func() {
		producer.Stop()
		_ = backend.Close()
	})

	return &SimulatedChain{
		Backend:  backend,
		Client:   backend.Client(),
		Producer: producer,
		Accounts: DevAccounts,
		ChainID:  config.ChainId_Simulated.Uint64(),
	}
}

// DeployColorChain deploys a fresh ColorChain contract from account and waits
// for it to be mined
func (sc *SimulatedChain) DeployColorChain(t *testing.T, account Account) common.Address {
	t.Helper()

	privateKey, err := crypto.HexToECDSA(account.PrivateKey)
	require.NoError(t, err)

	auth, err := bind.NewKeyedTransactorWithChainID(privateKey, new(big.Int).SetUint64(sc.ChainID))
	require.NoError(t, err)

	_, tx, _, err := ColorChain.DeployColorChain(auth, sc.Client)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	address, err := bind.WaitDeployed(ctx, sc.Client, tx)
	require.NoError(t, err)
	return address
}
