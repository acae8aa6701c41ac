package contractCaller

import (
	"context"
	"testing"

	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestMockContractCallerStub(t *testing.T) {
	stub := &MockContractCallerStub{}
	ctx := context.Background()

	receipt, err := stub.SetColor(ctx, types.Color{R: 10, G: 20, B: 30})
	require.NoError(t, err)
	require.True(t, receipt.Success)

	color, err := stub.GetColor(ctx)
	require.NoError(t, err)
	require.Equal(t, types.Color{R: 10, G: 20, B: 30}, color)
	require.Equal(t, 1, stub.Writes())

	stub.SetColorErr = types.Errorf(types.ErrorKindConfirmation, "", "reverted")
	_, err = stub.SetColor(ctx, types.Color{})
	require.ErrorIs(t, err, types.ErrConfirmation)
	require.Equal(t, 1, stub.Writes())
}
