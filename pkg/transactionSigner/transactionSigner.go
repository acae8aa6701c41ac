package transactionSigner

import (
	"context"

	"github.com/Layr-Labs/colorchain-go/pkg/wallet"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// ITransactionSigner provides methods for signing Ethereum transactions
type ITransactionSigner interface {
	// GetTransactOpts returns transaction options for creating unsigned transactions
	GetTransactOpts(ctx context.Context) (*bind.TransactOpts, error)

	// SignAndSendTransaction signs a transaction, sends it to the network and
	// waits for it to be mined
	SignAndSendTransaction(ctx context.Context, tx *ethereumTypes.Transaction) (*ethereumTypes.Receipt, error)

	// GetFromAddress returns the address that will be used for signing
	GetFromAddress() common.Address
}

// TransactionBackend is the part of an RPC client a signer needs to price,
// send and confirm transactions
type TransactionBackend interface {
	bind.ContractBackend
	bind.DeployBackend
}

func NewTransactionSigner(identity *wallet.SigningIdentity, backend TransactionBackend, logger *zap.Logger) (ITransactionSigner, error) {
	return NewPrivateKeySigner(identity, backend, logger)
}
