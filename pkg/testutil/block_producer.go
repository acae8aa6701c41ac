package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"go.uber.org/zap"
)

// BlockProducer seals blocks on a simulated backend, either on a fixed
// interval once started or on demand through EmitBlock
type BlockProducer struct {
	backend  *simulated.Backend
	logger   *zap.Logger
	interval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	emitted uint64
}

func NewBlockProducer(backend *simulated.Backend, interval time.Duration, logger *zap.Logger) *BlockProducer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlockProducer{
		backend:  backend,
		logger:   logger,
		interval: interval,
	}
}

// Start begins sealing a block every interval until Stop is called or ctx ends
func (bp *BlockProducer) Start(ctx context.Context) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.cancel != nil {
		return nil
	}

	ctx, bp.cancel = context.WithCancel(ctx)
	bp.done = make(chan struct{})

	go func() {
		defer close(bp.done)
		ticker := time.NewTicker(bp.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				bp.EmitBlock()
			}
		}
	}()

	bp.logger.Sugar().Debugw("BlockProducer started", zap.Duration("interval", bp.interval))
	return nil
}

// Stop halts the producer and waits for the sealing loop to exit
func (bp *BlockProducer) Stop() {
	bp.mu.Lock()
	cancel, done := bp.cancel, bp.done
	bp.cancel = nil
	bp.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	bp.logger.Sugar().Debugw("BlockProducer stopped", zap.Uint64("blocks", bp.BlocksEmitted()))
}

// EmitBlock seals the pending transactions into a new block
func (bp *BlockProducer) EmitBlock() common.Hash {
	hash := bp.backend.Commit()

	bp.mu.Lock()
	bp.emitted++
	bp.mu.Unlock()
	return hash
}

// BlocksEmitted returns how many blocks this producer has sealed
func (bp *BlockProducer) BlocksEmitted() uint64 {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.emitted
}
