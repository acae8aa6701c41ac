package contractCaller

import (
	"context"

	"github.com/Layr-Labs/colorchain-go/pkg/contractCaller/caller"
	"github.com/Layr-Labs/colorchain-go/pkg/types"
)

type IContractCaller interface {
	// SetColor submits a color write and waits for it to be mined
	SetColor(ctx context.Context, color types.Color) (*types.TransactionReceipt, error)

	// GetColor reads the stored color
	GetColor(ctx context.Context) (types.Color, error)
}

var _ IContractCaller = (*caller.ContractCaller)(nil)
