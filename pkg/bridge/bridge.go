// Package bridge is the host facing operation surface. Every chain operation
// runs to completion on the bridge executor while the calling host thread
// blocks, and every per operation resource (signing identity, connection,
// contract binding) is released before the call returns.
package bridge

import (
	"context"

	"github.com/Layr-Labs/colorchain-go/pkg/chain"
	"github.com/Layr-Labs/colorchain-go/pkg/config"
	"github.com/Layr-Labs/colorchain-go/pkg/contractCaller"
	"github.com/Layr-Labs/colorchain-go/pkg/contractCaller/caller"
	"github.com/Layr-Labs/colorchain-go/pkg/executor"
	"github.com/Layr-Labs/colorchain-go/pkg/host"
	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"github.com/Layr-Labs/colorchain-go/pkg/wallet"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Operation names, used in errors and logs
const (
	OpGetAddress = "get_address"
	OpGetBalance = "get_balance"
	OpSendColor  = "send_color"
	OpGetColor   = "get_color"
)

// Dialer opens a chain connection for one operation
type Dialer func(ctx context.Context, endpoint string, logger *zap.Logger) (*chain.Connection, error)

// ContractBinder binds the ColorChain ABI to an address for one operation
type ContractBinder func(client *chain.SigningClient, contractAddress string, logger *zap.Logger) (contractCaller.IContractCaller, error)

// IdentityDeriver turns raw key bytes into a chain scoped identity
type IdentityDeriver func(raw []byte, chainId uint64) (*wallet.SigningIdentity, error)

type Option func(*Bridge)

func WithDialer(dial Dialer) Option {
	return func(b *Bridge) {
		b.dial = dial
	}
}

func WithContractBinder(bind ContractBinder) Option {
	return func(b *Bridge) {
		b.bindContract = bind
	}
}

func WithIdentityDeriver(derive IdentityDeriver) Option {
	return func(b *Bridge) {
		b.deriveIdentity = derive
	}
}

type Bridge struct {
	executor *executor.Executor
	logger   *zap.Logger

	dial           Dialer
	bindContract   ContractBinder
	deriveIdentity IdentityDeriver
}

func defaultContractBinder(client *chain.SigningClient, contractAddress string, logger *zap.Logger) (contractCaller.IContractCaller, error) {
	return caller.NewContractCaller(client, contractAddress, logger)
}

// New builds a bridge that runs its operations on exec
func New(exec *executor.Executor, logger *zap.Logger, opts ...Option) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Bridge{
		executor:       exec,
		logger:         logger,
		dial:           chain.Connect,
		bindContract:   defaultContractBinder,
		deriveIdentity: wallet.DeriveIdentity,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewShared builds a bridge on the process wide executor
func NewShared(logger *zap.Logger, opts ...Option) (*Bridge, error) {
	exec, err := executor.Shared(logger)
	if err != nil {
		return nil, err
	}
	return New(exec, logger, opts...), nil
}

func (b *Bridge) operationLogger(op string) *zap.Logger {
	return b.logger.With(
		zap.String("operation", op),
		zap.String("operationId", uuid.New().String()),
	)
}

// GetAddress returns the short display form of the address controlled by raw.
// The identity is always bound to config.DefaultAddressChainId.
func (b *Bridge) GetAddress(raw []byte) (string, error) {
	logger := b.operationLogger(OpGetAddress)

	identity, err := b.deriveIdentity(raw, config.DefaultAddressChainId.Uint64())
	if err != nil {
		return "", types.NewError(types.ErrorKindInvalidKeyMaterial, OpGetAddress, err)
	}
	defer identity.Destroy()

	short := wallet.ShortAddress(wallet.DisplayAddress(identity))
	logger.Sugar().Debugw("Derived address", "address", identity.Address().Hex())
	return short, nil
}

// GetBalance reads the balance of address and delivers it to the host's
// set_balance handler as a decimal string. Nothing is delivered on failure.
func (b *Bridge) GetBalance(ctx context.Context, address string, rpcUrl string, receiver host.Receiver) error {
	logger := b.operationLogger(OpGetBalance)

	if _, err := wallet.ParseAddress(address); err != nil {
		return types.NewError(types.ErrorKindInvalidAddress, OpGetBalance, err)
	}

	balance, err := executor.RunTyped(ctx, b.executor, OpGetBalance, func(ctx context.Context) (types.Balance, error) {
		conn, err := b.dial(ctx, rpcUrl, logger)
		if err != nil {
			return types.Balance{}, err
		}
		defer conn.Close()

		return conn.GetBalance(ctx, address)
	})
	if err != nil {
		logger.Sugar().Warnw("Operation failed", "error", err)
		return types.NewError(types.ErrorKindUnknown, OpGetBalance, err)
	}

	logger.Sugar().Infow("Fetched balance", "address", address, "wei", balance.String())

	if err := host.NewDelivery(receiver, logger).Notify(host.HandlerSetBalance, host.BalancePayload(balance)); err != nil {
		return types.NewError(types.ErrorKindHostDelivery, OpGetBalance, err)
	}
	return nil
}

// SendColor writes color to the contract and returns once the transaction is
// mined. Broadcast but unconfirmed writes are reported as ConfirmationErrors.
func (b *Bridge) SendColor(
	ctx context.Context,
	raw []byte,
	chainId uint64,
	contractAddress string,
	rpcUrl string,
	color types.Color,
) (*types.TransactionReceipt, error) {
	logger := b.operationLogger(OpSendColor)

	identity, err := b.deriveIdentity(raw, chainId)
	if err != nil {
		return nil, types.NewError(types.ErrorKindInvalidKeyMaterial, OpSendColor, err)
	}
	defer identity.Destroy()

	if _, err := wallet.ParseAddress(contractAddress); err != nil {
		return nil, types.NewError(types.ErrorKindInvalidAddress, OpSendColor, err)
	}

	receipt, err := executor.RunTyped(ctx, b.executor, OpSendColor, func(ctx context.Context) (*types.TransactionReceipt, error) {
		contract, cleanup, err := b.openContract(ctx, identity, contractAddress, rpcUrl, logger)
		if err != nil {
			return nil, err
		}
		defer cleanup()

		return contract.SetColor(ctx, color)
	})
	if err != nil {
		logger.Sugar().Warnw("Operation failed", "error", err)
		return nil, types.NewError(types.ErrorKindUnknown, OpSendColor, err)
	}

	logger.Sugar().Infow("Color written",
		"from", identity.Address().Hex(),
		"contract", contractAddress,
		"color", color.String(),
		"txHash", receipt.TxHash,
	)
	return receipt, nil
}

// GetColor reads the color stored at the contract and delivers it to the
// host's set_color handler as {"r":..,"g":..,"b":..}. Nothing is delivered on
// failure.
func (b *Bridge) GetColor(
	ctx context.Context,
	raw []byte,
	chainId uint64,
	contractAddress string,
	rpcUrl string,
	receiver host.Receiver,
) error {
	logger := b.operationLogger(OpGetColor)

	identity, err := b.deriveIdentity(raw, chainId)
	if err != nil {
		return types.NewError(types.ErrorKindInvalidKeyMaterial, OpGetColor, err)
	}
	defer identity.Destroy()

	if _, err := wallet.ParseAddress(contractAddress); err != nil {
		return types.NewError(types.ErrorKindInvalidAddress, OpGetColor, err)
	}

	color, err := executor.RunTyped(ctx, b.executor, OpGetColor, func(ctx context.Context) (types.Color, error) {
		contract, cleanup, err := b.openContract(ctx, identity, contractAddress, rpcUrl, logger)
		if err != nil {
			return types.Color{}, err
		}
		defer cleanup()

		return contract.GetColor(ctx)
	})
	if err != nil {
		logger.Sugar().Warnw("Operation failed", "error", err)
		return types.NewError(types.ErrorKindUnknown, OpGetColor, err)
	}

	payload, err := host.ColorPayload(color)
	if err != nil {
		return types.NewError(types.ErrorKindUnknown, OpGetColor, err)
	}

	logger.Sugar().Infow("Fetched color", "contract", contractAddress, "color", color.String())

	if err := host.NewDelivery(receiver, logger).Notify(host.HandlerSetColor, payload); err != nil {
		return types.NewError(types.ErrorKindHostDelivery, OpGetColor, err)
	}
	return nil
}

// openContract runs the connect, bind signer, bind contract sequence. The
// returned cleanup closes the connection.
func (b *Bridge) openContract(
	ctx context.Context,
	identity *wallet.SigningIdentity,
	contractAddress string,
	rpcUrl string,
	logger *zap.Logger,
) (contractCaller.IContractCaller, func(), error) {
	conn, err := b.dial(ctx, rpcUrl, logger)
	if err != nil {
		return nil, nil, err
	}

	client, err := chain.BindSigner(conn, identity, logger)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	contract, err := b.bindContract(client, contractAddress, logger)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return contract, conn.Close, nil
}
