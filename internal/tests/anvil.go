package tests

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/Layr-Labs/chain-indexer/pkg/clients/ethereum"
)

type AnvilConfig struct {
	BlockTime  string `json:"blockTime"`
	PortNumber string `json:"portNumber"`
	ChainId    string `json:"chainId"`
}

// DevAnvilConfig is a fresh, unforked anvil on a port that does not collide
// with a locally running node
var DevAnvilConfig = &AnvilConfig{
	BlockTime:  "1",
	PortNumber: "8645",
	ChainId:    "31337",
}

// AnvilInstalled reports whether the anvil binary is on PATH
func AnvilInstalled() bool {
	_, err := exec.LookPath("anvil")
	return err == nil
}

// RpcUrl returns the HTTP endpoint the anvil instance listens on
func (cfg *AnvilConfig) RpcUrl() string {
	return fmt.Sprintf("http://127.0.0.1:%s", cfg.PortNumber)
}

func StartAnvil(ctx context.Context, cfg *AnvilConfig) (*exec.Cmd, error) {
	args := []string{
		"--chain-id", cfg.ChainId,
		"--port", cfg.PortNumber,
		"--block-time", cfg.BlockTime,
	}
	fmt.Printf("Starting anvil with args: %v\n", args)
	cmd := exec.CommandContext(ctx, "anvil", args...)
	cmd.Stderr = os.Stderr

	if os.Getenv("JOIN_ANVIL_OUTPUT") == "true" {
		cmd.Stdout = os.Stdout
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start anvil: %w", err)
	}

	for i := 1; i < 10; i++ {
		res, err := http.Post(cfg.RpcUrl(), "application/json", nil)
		if err == nil {
			_ = res.Body.Close()
			if res.StatusCode == http.StatusOK {
				fmt.Println("Anvil is up and running")
				return cmd, nil
			}
		}
		fmt.Printf("Anvil not ready yet, retrying... %d\n", i)
		time.Sleep(time.Second * time.Duration(i))
	}

	_ = KillAnvil(cmd)
	return nil, fmt.Errorf("failed to start anvil")
}

// WaitForAnvil blocks until the node serves its latest block
func WaitForAnvil(
	anvilWg *sync.WaitGroup,
	ctx context.Context,
	t *testing.T,
	ethereumClient ethereum.Client,
	errorsChan chan error,
) {
	defer anvilWg.Done()

	for {
		select {
		case <-ctx.Done():
			t.Logf("Failed to reach anvil: %v", ctx.Err())
			errorsChan <- fmt.Errorf("failed to reach anvil: %w", ctx.Err())
			return
		case <-time.After(500 * time.Millisecond):
			block, err := ethereumClient.GetLatestBlock(ctx)
			if err != nil {
				t.Logf("Failed to get latest block, will retry: %v", err)
				continue
			}
			t.Logf("Anvil is up and running, latest block: %v", block)
			return
		}
	}
}

func KillAnvil(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return fmt.Errorf("anvil command is not running")
	}

	if err := cmd.Process.Kill(); err != nil {
		return fmt.Errorf("failed to kill anvil process: %w", err)
	}
	_ = cmd.Wait()

	fmt.Println("Anvil process killed successfully")
	return nil
}
