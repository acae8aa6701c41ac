package types

// AddressRequest asks for the short form address of a raw key
type AddressRequest struct {
	PrivateKey string `json:"privateKey"`
}

// AddressResponse carries the short form address
type AddressResponse struct {
	Address string `json:"address"`
}

// BalanceRequest asks for the native balance of an address
type BalanceRequest struct {
	Address     string `json:"address"`
	RpcUrl      string `json:"rpcUrl"`
	CallbackUrl string `json:"callbackUrl,omitempty"`
}

// ColorRequest reads the color stored at a contract
type ColorRequest struct {
	PrivateKey      string `json:"privateKey"`
	ChainId         uint64 `json:"chainId"`
	ContractAddress string `json:"contractAddress"`
	RpcUrl          string `json:"rpcUrl"`
	CallbackUrl     string `json:"callbackUrl,omitempty"`
}

// SendColorRequest writes a color to a contract
type SendColorRequest struct {
	PrivateKey      string `json:"privateKey"`
	ChainId         uint64 `json:"chainId"`
	ContractAddress string `json:"contractAddress"`
	RpcUrl          string `json:"rpcUrl"`
	Color           Color  `json:"color"`
}

// CallbackMessage is one host handler invocation
type CallbackMessage struct {
	Handler string        `json:"handler"`
	Args    []interface{} `json:"args"`
}

// CallbackResponse lists the handler invocations an operation produced
type CallbackResponse struct {
	Callbacks []CallbackMessage `json:"callbacks"`
}

// SendColorResponse is returned once the write is confirmed
type SendColorResponse struct {
	Receipt *TransactionReceipt `json:"receipt"`
}

// ErrorResponse is returned for every failed operation
type ErrorResponse struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}
