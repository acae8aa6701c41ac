package contractCaller

import (
	"context"
	"sync"

	"github.com/Layr-Labs/colorchain-go/pkg/types"
)

// MockContractCallerStub is an in-memory IContractCaller for testing
type MockContractCallerStub struct {
	mu     sync.Mutex
	color  types.Color
	writes int

	// SetColorErr and GetColorErr, when set, are returned instead of touching state
	SetColorErr error
	GetColorErr error
}

func (m *MockContractCallerStub) SetColor(ctx context.Context, color types.Color) (*types.TransactionReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetColorErr != nil {
		return nil, m.SetColorErr
	}
	m.color = color
	m.writes++
	return &types.TransactionReceipt{
		BlockNumber: uint64(m.writes),
		Success:     true,
	}, nil
}

func (m *MockContractCallerStub) GetColor(ctx context.Context) (types.Color, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetColorErr != nil {
		return types.Color{}, m.GetColorErr
	}
	return m.color, nil
}

// Writes returns how many successful SetColor calls were made
func (m *MockContractCallerStub) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

var _ IContractCaller = (*MockContractCallerStub)(nil)
