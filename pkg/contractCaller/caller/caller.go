package caller

import (
	"fmt"

	"github.com/Layr-Labs/colorchain-go/pkg/chain"
	"github.com/Layr-Labs/colorchain-go/pkg/middleware-bindings/ColorChain"
	"github.com/Layr-Labs/colorchain-go/pkg/transactionSigner"
	"github.com/Layr-Labs/colorchain-go/pkg/wallet"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ContractCaller is a ColorChain binding: a contract address reachable
// through one signing client
type ContractCaller struct {
	client          *chain.SigningClient
	signer          transactionSigner.ITransactionSigner
	logger          *zap.Logger
	contractAddress common.Address

	colorChain *ColorChain.ColorChain
}

// NewContractCaller binds the ColorChain ABI to contractAddress. It performs
// no I/O; a malformed address yields an InvalidAddress error.
func NewContractCaller(
	client *chain.SigningClient,
	contractAddress string,
	logger *zap.Logger,
) (*ContractCaller, error) {
	if client == nil {
		return nil, fmt.Errorf("signing client cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	address, err := wallet.ParseAddress(contractAddress)
	if err != nil {
		return nil, err
	}

	colorChain, err := ColorChain.NewColorChain(address, client.Backend())
	if err != nil {
		return nil, fmt.Errorf("failed to create color chain contract instance: %w", err)
	}

	return &ContractCaller{
		client:          client,
		signer:          client.Signer(),
		logger:          logger,
		contractAddress: address,
		colorChain:      colorChain,
	}, nil
}

func (cc *ContractCaller) ContractAddress() common.Address {
	return cc.contractAddress
}
