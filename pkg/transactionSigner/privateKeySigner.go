package transactionSigner

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"github.com/Layr-Labs/colorchain-go/pkg/wallet"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

var (
	// FallbackGasTipCap is used when the node does not support eth_maxPriorityFeePerGas
	FallbackGasTipCap = big.NewInt(1000000000)

	baseFeeMultiplier = big.NewInt(2)
)

// PrivateKeySigner implements ITransactionSigner by signing locally with a
// chain scoped SigningIdentity
type PrivateKeySigner struct {
	backend  TransactionBackend
	logger   *zap.Logger
	identity *wallet.SigningIdentity
}

// NewPrivateKeySigner creates a signer for identity. It performs no I/O.
func NewPrivateKeySigner(identity *wallet.SigningIdentity, backend TransactionBackend, logger *zap.Logger) (*PrivateKeySigner, error) {
	if identity == nil {
		return nil, types.Errorf(types.ErrorKindInvalidKeyMaterial, "", "signing identity cannot be nil")
	}
	if backend == nil {
		return nil, fmt.Errorf("transaction backend cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrivateKeySigner{
		backend:  backend,
		logger:   logger,
		identity: identity,
	}, nil
}

// GetTransactOpts returns options that build the transaction without sending
// it. Signing happens in SignAndSendTransaction.
func (pks *PrivateKeySigner) GetTransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts := &bind.TransactOpts{
		From:    pks.identity.Address(),
		Context: ctx,
		NoSend:  true,
		Signer: func(address common.Address, tx *ethereumTypes.Transaction) (*ethereumTypes.Transaction, error) {
			return tx, nil
		},
	}
	return opts, nil
}

// SignAndSendTransaction re-prices tx, signs it for the identity's chain id,
// sends it and waits for the receipt. A single attempt is made.
//
// Failures before the node accepts the transaction are SubmissionErrors.
// Failures after that, including a reverted receipt, are ConfirmationErrors.
func (pks *PrivateKeySigner) SignAndSendTransaction(ctx context.Context, tx *ethereumTypes.Transaction) (*ethereumTypes.Receipt, error) {
	signedTx, err := pks.sign(ctx, tx)
	if err != nil {
		return nil, types.NewError(types.ErrorKindSubmission, "", err)
	}

	if err := pks.backend.SendTransaction(ctx, signedTx); err != nil {
		return nil, types.NewError(types.ErrorKindSubmission, "", fmt.Errorf("failed to send transaction: %w", err))
	}

	pks.logger.Sugar().Infow("SignAndSendTransaction: transaction sent",
		zap.String("txHash", signedTx.Hash().Hex()),
		zap.String("from", pks.identity.Address().Hex()),
	)

	receipt, err := bind.WaitMined(ctx, pks.backend, signedTx)
	if err != nil {
		return nil, types.NewError(types.ErrorKindConfirmation, "", fmt.Errorf("failed to wait for transaction receipt: %w", err))
	}

	if receipt.Status != ethereumTypes.ReceiptStatusSuccessful {
		pks.logger.Sugar().Errorw("SignAndSendTransaction: transaction failed",
			zap.String("txHash", receipt.TxHash.Hex()),
			zap.Uint64("status", receipt.Status),
			zap.Uint64("gasUsed", receipt.GasUsed),
		)
		return nil, types.Errorf(types.ErrorKindConfirmation, "", "transaction %s failed with status %d", receipt.TxHash.Hex(), receipt.Status)
	}

	pks.logger.Sugar().Infow("SignAndSendTransaction: transaction succeeded",
		zap.String("txHash", receipt.TxHash.Hex()),
		zap.Uint64("gasUsed", receipt.GasUsed),
		zap.Uint64("blockNumber", receipt.BlockNumber.Uint64()),
	)

	return receipt, nil
}

func (pks *PrivateKeySigner) sign(ctx context.Context, tx *ethereumTypes.Transaction) (*ethereumTypes.Transaction, error) {
	privateKey, err := pks.identity.PrivateKey()
	if err != nil {
		return nil, err
	}
	from := pks.identity.Address()

	header, err := pks.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest block header: %w", err)
	}

	// Always fetch the nonce since 0 is a valid value on the incoming tx
	nonce, err := pks.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	msg := ethereum.CallMsg{
		From:  from,
		To:    tx.To(),
		Value: tx.Value(),
		Data:  tx.Data(),
	}

	var unsigned *ethereumTypes.Transaction
	if header.BaseFee != nil {
		gasTipCap, err := pks.backend.SuggestGasTipCap(ctx)
		if err != nil {
			pks.logger.Sugar().Warnw("SignAndSendTransaction: cannot get gasTipCap, using fallback",
				zap.Error(err),
			)
			gasTipCap = FallbackGasTipCap
		}
		// basefee * 2 + tip
		gasFeeCap := new(big.Int).Add(new(big.Int).Mul(header.BaseFee, baseFeeMultiplier), gasTipCap)

		msg.GasTipCap = gasTipCap
		msg.GasFeeCap = gasFeeCap
		gasLimit, err := pks.backend.EstimateGas(ctx, msg)
		if err != nil {
			return nil, fmt.Errorf("failed to estimate gas: %w", err)
		}

		unsigned = ethereumTypes.NewTx(&ethereumTypes.DynamicFeeTx{
			ChainID:   pks.identity.ChainID(),
			Nonce:     nonce,
			GasTipCap: gasTipCap,
			GasFeeCap: gasFeeCap,
			Gas:       addGasBuffer(gasLimit),
			To:        tx.To(),
			Value:     tx.Value(),
			Data:      tx.Data(),
		})
	} else {
		gasPrice, err := pks.backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to suggest gas price: %w", err)
		}
		msg.GasPrice = gasPrice
		gasLimit, err := pks.backend.EstimateGas(ctx, msg)
		if err != nil {
			return nil, fmt.Errorf("failed to estimate gas: %w", err)
		}

		unsigned = ethereumTypes.NewTx(&ethereumTypes.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      addGasBuffer(gasLimit),
			To:       tx.To(),
			Value:    tx.Value(),
			Data:     tx.Data(),
		})
	}

	pks.logger.Sugar().Debugw("SignAndSendTransaction: signing transaction",
		zap.String("to", describeRecipient(tx.To())),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gasLimit", unsigned.Gas()),
		zap.String("chainId", pks.identity.ChainID().String()),
	)

	signer := ethereumTypes.LatestSignerForChainID(pks.identity.ChainID())
	signedTx, err := ethereumTypes.SignTx(unsigned, signer, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signedTx, nil
}

// GetFromAddress returns the address that will be used for signing
func (pks *PrivateKeySigner) GetFromAddress() common.Address {
	return pks.identity.Address()
}

// addGasBuffer adds 20% to an estimated gas limit
func addGasBuffer(gasLimit uint64) uint64 {
	return gasLimit * 12 / 10
}

func describeRecipient(to *common.Address) string {
	if to == nil {
		return "contract creation"
	}
	return to.Hex()
}
