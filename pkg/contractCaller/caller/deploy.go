package caller

import (
	"context"
	"fmt"

	"github.com/Layr-Labs/colorchain-go/pkg/chain"
	"github.com/Layr-Labs/colorchain-go/pkg/middleware-bindings/ColorChain"
	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// DeployColorChain deploys a new ColorChain contract from the client's
// account and returns a caller bound to it
func DeployColorChain(ctx context.Context, client *chain.SigningClient, logger *zap.Logger) (*ContractCaller, *types.TransactionReceipt, error) {
	if client == nil {
		return nil, nil, fmt.Errorf("signing client cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	signer := client.Signer()

	txOpts, err := signer.GetTransactOpts(ctx)
	if err != nil {
		return nil, nil, types.NewError(types.ErrorKindSubmission, "", fmt.Errorf("failed to build transaction options: %w", err))
	}

	_, tx, _, err := ColorChain.DeployColorChain(txOpts, client.Backend())
	if err != nil {
		return nil, nil, types.NewError(types.ErrorKindSubmission, "", fmt.Errorf("failed to create deployment transaction: %w", err))
	}

	logger.Sugar().Infow("Deploying ColorChain contract", zap.String("from", signer.GetFromAddress().Hex()))

	receipt, err := signer.SignAndSendTransaction(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	if receipt.ContractAddress == (common.Address{}) {
		return nil, nil, types.Errorf(types.ErrorKindConfirmation, "", "receipt %s has no contract address", receipt.TxHash.Hex())
	}

	logger.Sugar().Infow("Deployed ColorChain contract",
		zap.String("address", receipt.ContractAddress.Hex()),
		zap.String("txHash", receipt.TxHash.Hex()),
	)

	cc, err := NewContractCaller(client, receipt.ContractAddress.Hex(), logger)
	if err != nil {
		return nil, nil, err
	}
	return cc, types.ReceiptFromEthereum(receipt), nil
}
