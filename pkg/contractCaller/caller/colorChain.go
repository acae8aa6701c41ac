package caller

import (
	"context"
	"fmt"

	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// SetColor writes color to the contract and waits for the transaction to be
// mined. A single attempt is made.
func (cc *ContractCaller) SetColor(ctx context.Context, color types.Color) (*types.TransactionReceipt, error) {
	txOpts, err := cc.buildTransactionOpts(ctx)
	if err != nil {
		return nil, types.NewError(types.ErrorKindSubmission, "", fmt.Errorf("failed to build transaction options: %w", err))
	}

	r, g, b := color.Channels()
	tx, err := cc.colorChain.SetColor(txOpts, r, g, b)
	if err != nil {
		return nil, types.NewError(types.ErrorKindSubmission, "", fmt.Errorf("failed to create transaction: %w", err))
	}

	cc.logger.Sugar().Infow("Submitting color to contract",
		"contract", cc.contractAddress.Hex(),
		"color", color.String(),
	)

	receipt, err := cc.signAndSendTransaction(ctx, tx, "SetColor")
	if err != nil {
		return nil, err
	}
	return types.ReceiptFromEthereum(receipt), nil
}

// GetColor reads the current color from the contract
func (cc *ContractCaller) GetColor(ctx context.Context) (types.Color, error) {
	out, err := cc.colorChain.GetColor(&bind.CallOpts{Context: ctx})
	if err != nil {
		return types.Color{}, types.NewError(types.ErrorKindRpc, "", fmt.Errorf("failed to get color: %w", err))
	}

	color, err := types.ColorFromChannels(out.R, out.G, out.B)
	if err != nil {
		return types.Color{}, types.NewError(types.ErrorKindRpc, "", err)
	}
	return color, nil
}
