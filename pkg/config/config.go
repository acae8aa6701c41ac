package config

import (
	"fmt"
	"net/url"

	"github.com/ethereum/go-ethereum/common"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names for the colorchain CLI and server
const (
	EnvColorChainRPCURL            = "COLORCHAIN_RPC_URL"
	EnvColorChainChainID           = "COLORCHAIN_CHAIN_ID"
	EnvColorChainContractAddress   = "COLORCHAIN_CONTRACT_ADDRESS"
	EnvColorChainPrivateKey        = "COLORCHAIN_PRIVATE_KEY"
	EnvColorChainPort              = "COLORCHAIN_PORT"
	EnvColorChainVerbose           = "COLORCHAIN_VERBOSE"
	EnvColorChainMaxInFlight       = "COLORCHAIN_MAX_IN_FLIGHT"
	EnvColorChainRequestsPerSecond = "COLORCHAIN_REQUESTS_PER_SECOND"
)

type ChainId uint64

const (
	ChainId_EthereumMainnet ChainId = 1
	ChainId_EthereumSepolia ChainId = 11155111
	ChainId_EthereumAnvil   ChainId = 31337
	ChainId_Simulated       ChainId = 1337
)

func (c ChainId) Uint64() uint64 {
	return uint64(c)
}

type ChainName string

const (
	ChainName_EthereumMainnet ChainName = "mainnet"
	ChainName_EthereumSepolia ChainName = "sepolia"
	ChainName_EthereumAnvil   ChainName = "devnet"
	ChainName_Simulated       ChainName = "simulated"
)

var ChainIdToName = map[ChainId]ChainName{
	ChainId_EthereumMainnet: ChainName_EthereumMainnet,
	ChainId_EthereumSepolia: ChainName_EthereumSepolia,
	ChainId_EthereumAnvil:   ChainName_EthereumAnvil,
	ChainId_Simulated:       ChainName_Simulated,
}
var ChainNameToId = map[ChainName]ChainId{
	ChainName_EthereumMainnet: ChainId_EthereumMainnet,
	ChainName_EthereumSepolia: ChainId_EthereumSepolia,
	ChainName_EthereumAnvil:   ChainId_EthereumAnvil,
	ChainName_Simulated:       ChainId_Simulated,
}

// DefaultAddressChainId is the chain the get_address operation binds its
// identity to. Callers cannot override it; the other operations take the
// chain id as an argument.
const DefaultAddressChainId = ChainId_EthereumSepolia

// ShortAddressHexChars is the number of trailing hex characters kept by the
// short display form of an address.
const ShortAddressHexChars = 14

// GetChainName returns the well known name of a chain id, or its decimal form
func GetChainName(chainId ChainId) ChainName {
	if name, ok := ChainIdToName[chainId]; ok {
		return name
	}
	return ChainName(fmt.Sprintf("%d", chainId))
}

// GetSupportedChainIDsString returns the named chain IDs for CLI help
func GetSupportedChainIDsString() string {
	return fmt.Sprintf("%d (mainnet), %d (sepolia), %d (anvil), %d (simulated); any other id is accepted as-is",
		ChainId_EthereumMainnet, ChainId_EthereumSepolia, ChainId_EthereumAnvil, ChainId_Simulated)
}

// ExecutorConfig tunes the process wide bridge executor
type ExecutorConfig struct {
	// MaxInFlight bounds how many admitted tasks may be suspended on I/O at once
	MaxInFlight int64 `json:"maxInFlight" yaml:"maxInFlight"`
	// RequestsPerSecond limits task admission; 0 disables the limit
	RequestsPerSecond float64 `json:"requestsPerSecond" yaml:"requestsPerSecond"`
	// QueueSize is the number of submitted tasks that may wait for admission
	QueueSize int `json:"queueSize" yaml:"queueSize"`
}

const (
	DefaultMaxInFlight = 16
	DefaultQueueSize   = 64
)

// DefaultExecutorConfig returns the settings used by the shared executor
func DefaultExecutorConfig() *ExecutorConfig {
	return &ExecutorConfig{
		MaxInFlight:       DefaultMaxInFlight,
		RequestsPerSecond: 0,
		QueueSize:         DefaultQueueSize,
	}
}

func (ec *ExecutorConfig) Validate() error {
	var allErrors field.ErrorList
	if ec.MaxInFlight < 1 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("maxInFlight"), ec.MaxInFlight, "must be at least 1"))
	}
	if ec.RequestsPerSecond < 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("requestsPerSecond"), ec.RequestsPerSecond, "must not be negative"))
	}
	if ec.QueueSize < 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("queueSize"), ec.QueueSize, "must not be negative"))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// ServerConfig configures the HTTP host surface
type ServerConfig struct {
	Port     int             `json:"port"`
	Verbose  bool            `json:"verbose"`
	Executor *ExecutorConfig `json:"executor"`
}

func (sc *ServerConfig) Validate() error {
	var allErrors field.ErrorList
	if sc.Port < 1 || sc.Port > 65535 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("port"), sc.Port, "must be between 1-65535"))
	}
	if sc.Executor == nil {
		allErrors = append(allErrors, field.Required(field.NewPath("executor"), "executor config is required"))
	} else if err := sc.Executor.Validate(); err != nil {
		allErrors = append(allErrors, field.Invalid(field.NewPath("executor"), sc.Executor, err.Error()))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// ContractTargetConfig names a deployed contract reachable through an RPC endpoint
type ContractTargetConfig struct {
	RpcUrl          string  `json:"rpcUrl"`
	ChainId         ChainId `json:"chainId"`
	ContractAddress string  `json:"contractAddress"`
}

func (ct *ContractTargetConfig) Validate() error {
	var allErrors field.ErrorList
	if ct.RpcUrl == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("rpcUrl"), "rpcUrl is required"))
	} else if err := ValidateRpcUrl(ct.RpcUrl); err != nil {
		allErrors = append(allErrors, field.Invalid(field.NewPath("rpcUrl"), ct.RpcUrl, err.Error()))
	}
	if ct.ChainId == 0 {
		allErrors = append(allErrors, field.Required(field.NewPath("chainId"), "chainId is required"))
	}
	if !common.IsHexAddress(ct.ContractAddress) {
		allErrors = append(allErrors, field.Invalid(field.NewPath("contractAddress"), ct.ContractAddress, "must be a hex address"))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// ValidateRpcUrl checks that an endpoint is an absolute http(s) URL. It does
// not touch the network.
func ValidateRpcUrl(rpcUrl string) error {
	u, err := url.Parse(rpcUrl)
	if err != nil {
		return fmt.Errorf("failed to parse rpc url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported rpc url scheme %q, expected http or https", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("rpc url %q has no host", rpcUrl)
	}
	return nil
}
