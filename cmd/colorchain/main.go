package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Layr-Labs/colorchain-go/pkg/bridge"
	"github.com/Layr-Labs/colorchain-go/pkg/chain"
	"github.com/Layr-Labs/colorchain-go/pkg/config"
	"github.com/Layr-Labs/colorchain-go/pkg/contractCaller/caller"
	"github.com/Layr-Labs/colorchain-go/pkg/executor"
	"github.com/Layr-Labs/colorchain-go/pkg/host"
	"github.com/Layr-Labs/colorchain-go/pkg/logger"
	"github.com/Layr-Labs/colorchain-go/pkg/server"
	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"github.com/Layr-Labs/colorchain-go/pkg/wallet"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	rpcUrlFlag = &cli.StringFlag{
		Name:    "rpc-url",
		Aliases: []string{"rpc"},
		Usage:   "Ethereum RPC endpoint URL",
		Value:   "http://localhost:8545",
		EnvVars: []string{config.EnvColorChainRPCURL},
	}
	chainIdFlag = &cli.Uint64Flag{
		Name:     "chain-id",
		Aliases:  []string{"chain"},
		Usage:    fmt.Sprintf("Ethereum chain ID: %s", config.GetSupportedChainIDsString()),
		EnvVars:  []string{config.EnvColorChainChainID},
		Required: true,
	}
	contractAddressFlag = &cli.StringFlag{
		Name:     "contract-address",
		Aliases:  []string{"contract"},
		Usage:    "ColorChain contract address",
		EnvVars:  []string{config.EnvColorChainContractAddress},
		Required: true,
	}
	privateKeyFlag = &cli.StringFlag{
		Name:    "private-key",
		Usage:   "Hex encoded secp256k1 private key; prompted for when omitted",
		EnvVars: []string{config.EnvColorChainPrivateKey},
	}
)

func main() {
	app := &cli.App{
		Name:  "colorchain",
		Usage: "Read and write the color stored in a ColorChain contract",
		Description: `A command line host for the colorchain bridge.

Every operation runs on the bridge executor. Callbacks that an operation
delivers to its host (set_balance, set_color) are written to stdout as JSON
lines; logs go to stderr.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvColorChainVerbose},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "get-address",
				Usage:  "Print the short form address controlled by a private key",
				Flags:  []cli.Flag{privateKeyFlag},
				Action: getAddressCommand,
			},
			{
				Name:  "get-balance",
				Usage: "Fetch the native balance of an address",
				Flags: []cli.Flag{
					rpcUrlFlag,
					&cli.StringFlag{
						Name:     "address",
						Usage:    "Address to query",
						Required: true,
					},
				},
				Action: getBalanceCommand,
			},
			{
				Name:  "send-color",
				Usage: "Write a color to the contract and wait for the transaction to be mined",
				Flags: []cli.Flag{
					rpcUrlFlag,
					chainIdFlag,
					contractAddressFlag,
					privateKeyFlag,
					&cli.Uint64Flag{Name: "r", Usage: "Red channel", Required: true},
					&cli.Uint64Flag{Name: "g", Usage: "Green channel", Required: true},
					&cli.Uint64Flag{Name: "b", Usage: "Blue channel", Required: true},
				},
				Action: sendColorCommand,
			},
			{
				Name:   "get-color",
				Usage:  "Read the color stored in the contract",
				Flags:  []cli.Flag{rpcUrlFlag, chainIdFlag, contractAddressFlag, privateKeyFlag},
				Action: getColorCommand,
			},
			{
				Name:   "deploy",
				Usage:  "Deploy a new ColorChain contract",
				Flags:  []cli.Flag{rpcUrlFlag, chainIdFlag, privateKeyFlag},
				Action: deployCommand,
			},
			{
				Name:  "serve",
				Usage: "Serve the bridge operations over HTTP",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   8080,
						Usage:   "HTTP server port",
						EnvVars: []string{config.EnvColorChainPort},
					},
					&cli.Int64Flag{
						Name:    "max-in-flight",
						Value:   config.DefaultMaxInFlight,
						Usage:   "Maximum number of operations suspended on I/O at once",
						EnvVars: []string{config.EnvColorChainMaxInFlight},
					},
					&cli.Float64Flag{
						Name:    "requests-per-second",
						Usage:   "Operation admission rate limit, 0 for unlimited",
						EnvVars: []string{config.EnvColorChainRequestsPerSecond},
					},
				},
				Action: serveCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return l, nil
}

func newBridge(c *cli.Context) (*bridge.Bridge, *zap.Logger, error) {
	l, err := newLogger(c)
	if err != nil {
		return nil, nil, err
	}
	b, err := bridge.NewShared(l)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start bridge executor: %w", err)
	}
	return b, l, nil
}

func getAddressCommand(c *cli.Context) error {
	b, l, err := newBridge(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	raw, err := readPrivateKey(c)
	if err != nil {
		return err
	}
	defer wallet.Wipe(raw)

	address, err := b.GetAddress(raw)
	if err != nil {
		return err
	}
	fmt.Println(address)
	return nil
}

func getBalanceCommand(c *cli.Context) error {
	b, l, err := newBridge(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	return b.GetBalance(c.Context, c.String("address"), c.String("rpc-url"), host.NewWriterReceiver(os.Stdout))
}

func sendColorCommand(c *cli.Context) error {
	b, l, err := newBridge(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	raw, err := readPrivateKey(c)
	if err != nil {
		return err
	}
	defer wallet.Wipe(raw)

	color := types.Color{R: c.Uint64("r"), G: c.Uint64("g"), B: c.Uint64("b")}
	receipt, err := b.SendColor(c.Context, raw, c.Uint64("chain-id"), c.String("contract-address"), c.String("rpc-url"), color)
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(receipt)
}

func getColorCommand(c *cli.Context) error {
	b, l, err := newBridge(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	raw, err := readPrivateKey(c)
	if err != nil {
		return err
	}
	defer wallet.Wipe(raw)

	return b.GetColor(c.Context, raw, c.Uint64("chain-id"), c.String("contract-address"), c.String("rpc-url"), host.NewWriterReceiver(os.Stdout))
}

func deployCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	raw, err := readPrivateKey(c)
	if err != nil {
		return err
	}
	defer wallet.Wipe(raw)

	identity, err := wallet.DeriveIdentity(raw, c.Uint64("chain-id"))
	if err != nil {
		return err
	}
	defer identity.Destroy()

	conn, err := chain.Connect(c.Context, c.String("rpc-url"), l)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := chain.BindSigner(conn, identity, l)
	if err != nil {
		return err
	}

	cc, receipt, err := caller.DeployColorChain(c.Context, client, l)
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(struct {
		ContractAddress string                    `json:"contractAddress"`
		Receipt         *types.TransactionReceipt `json:"receipt"`
	}{
		ContractAddress: cc.ContractAddress().Hex(),
		Receipt:         receipt,
	})
}

func serveCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	serverConfig := &config.ServerConfig{
		Port:    c.Int("port"),
		Verbose: c.Bool("verbose"),
		Executor: &config.ExecutorConfig{
			MaxInFlight:       c.Int64("max-in-flight"),
			RequestsPerSecond: c.Float64("requests-per-second"),
			QueueSize:         config.DefaultQueueSize,
		},
	}
	if err := serverConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	exec, err := executor.New(serverConfig.Executor, l)
	if err != nil {
		return err
	}
	defer exec.Close()

	srv := server.NewServer(bridge.New(exec, l), serverConfig, l)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	l.Sugar().Infow("Available endpoints",
		"address", "POST /address",
		"balance", "POST /balance",
		"color", "POST /color",
		"send_color", "POST /color/send")
	l.Sugar().Info("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	l.Sugar().Infow("Shutting down HTTP server")
	return srv.Stop(shutdownCtx)
}
