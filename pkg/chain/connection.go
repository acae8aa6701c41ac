// Package chain owns the per operation link to an EVM endpoint. Connections
// are opened for a single host operation and closed when it returns; nothing
// is pooled or cached between operations.
package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Layr-Labs/chain-indexer/pkg/clients/ethereum"
	"github.com/Layr-Labs/colorchain-go/pkg/config"
	"github.com/Layr-Labs/colorchain-go/pkg/transactionSigner"
	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"github.com/Layr-Labs/colorchain-go/pkg/wallet"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Backend is the RPC surface a connection needs: contract calls, transaction
// submission and confirmation, and account balances
type Backend interface {
	transactionSigner.TransactionBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

type closer interface {
	Close()
}

// Connection is a read-only handle to one chain endpoint
type Connection struct {
	backend  Backend
	endpoint string
	logger   *zap.Logger
	owned    bool
}

// Connect validates endpoint and builds an RPC client for it. The endpoint is
// checked before any network I/O; an unsupported or malformed URL yields an
// EndpointUnreachableOrInvalid error.
func Connect(ctx context.Context, endpoint string, logger *zap.Logger) (*Connection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := config.ValidateRpcUrl(endpoint); err != nil {
		return nil, types.NewError(types.ErrorKindEndpointUnreachableOrInvalid, "", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, types.NewError(types.ErrorKindEndpointUnreachableOrInvalid, "", err)
	}

	ethereumClient := ethereum.NewEthereumClient(&ethereum.EthereumClientConfig{
		BaseUrl:   endpoint,
		BlockType: ethereum.BlockType_Latest,
	}, logger)

	ethClient, err := ethereumClient.GetEthereumContractCaller()
	if err != nil {
		return nil, types.NewError(types.ErrorKindEndpointUnreachableOrInvalid, "", fmt.Errorf("failed to create rpc client for %s: %w", endpoint, err))
	}

	logger.Sugar().Debugw("Opened chain connection", zap.String("endpoint", endpoint))
	conn := NewConnection(ethClient, endpoint, logger)
	conn.owned = true
	return conn, nil
}

// NewConnection wraps an existing backend. The caller keeps ownership of it;
// Close does not close a wrapped backend.
func NewConnection(backend Backend, endpoint string, logger *zap.Logger) *Connection {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Connection{
		backend:  backend,
		endpoint: endpoint,
		logger:   logger,
	}
}

func (c *Connection) Backend() Backend {
	return c.backend
}

func (c *Connection) Endpoint() string {
	return c.endpoint
}

// ChainID asks the endpoint for its chain id
func (c *Connection) ChainID(ctx context.Context) (*big.Int, error) {
	chainId, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, types.NewError(types.ErrorKindRpc, "", fmt.Errorf("failed to get chain ID: %w", err))
	}
	return chainId, nil
}

// GetBalance returns the latest balance of address in base units
func (c *Connection) GetBalance(ctx context.Context, address string) (types.Balance, error) {
	account, err := wallet.ParseAddress(address)
	if err != nil {
		return types.Balance{}, err
	}

	wei, err := c.backend.BalanceAt(ctx, account, nil)
	if err != nil {
		return types.Balance{}, types.NewError(types.ErrorKindRpc, "", fmt.Errorf("failed to get balance for %s: %w", account.Hex(), err))
	}

	c.logger.Sugar().Debugw("Fetched balance",
		zap.String("address", account.Hex()),
		zap.String("wei", wei.String()),
	)
	return types.Balance{Wei: wei}, nil
}

// Close releases the underlying client if the connection opened it
func (c *Connection) Close() {
	if !c.owned {
		return
	}
	if cl, ok := c.backend.(closer); ok {
		cl.Close()
		c.logger.Sugar().Debugw("Closed chain connection", zap.String("endpoint", c.endpoint))
	}
}

// SigningClient is a connection bound to a signing identity
type SigningClient struct {
	*Connection
	identity *wallet.SigningIdentity
	signer   transactionSigner.ITransactionSigner
}

// BindSigner composes a connection with an identity. It performs no I/O.
func BindSigner(conn *Connection, identity *wallet.SigningIdentity, logger *zap.Logger) (*SigningClient, error) {
	if conn == nil {
		return nil, fmt.Errorf("connection cannot be nil")
	}
	signer, err := transactionSigner.NewTransactionSigner(identity, conn.backend, logger)
	if err != nil {
		return nil, err
	}
	return &SigningClient{
		Connection: conn,
		identity:   identity,
		signer:     signer,
	}, nil
}

func (sc *SigningClient) Signer() transactionSigner.ITransactionSigner {
	return sc.signer
}

func (sc *SigningClient) Identity() *wallet.SigningIdentity {
	return sc.identity
}

// Address is the account transactions are sent from
func (sc *SigningClient) Address() common.Address {
	return sc.identity.Address()
}
