package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/Layr-Labs/colorchain-go/pkg/config"
	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// RawKeyLength is the byte length of a secp256k1 secret scalar
const RawKeyLength = 32

// SigningIdentity is a secret key scoped to a single chain id. It is created
// for one operation and destroyed when that operation returns.
type SigningIdentity struct {
	mu         sync.RWMutex
	privateKey *ecdsa.PrivateKey
	chainId    *big.Int
	address    common.Address
	destroyed  bool
}

// DeriveIdentity turns raw key bytes into a chain bound signing identity.
// raw is read but never retained.
func DeriveIdentity(raw []byte, chainId uint64) (*SigningIdentity, error) {
	if len(raw) != RawKeyLength {
		return nil, types.Errorf(types.ErrorKindInvalidKeyMaterial, "", "expected %d key bytes, got %d", RawKeyLength, len(raw))
	}
	if chainId == 0 {
		return nil, types.Errorf(types.ErrorKindInvalidKeyMaterial, "", "chain id must be non-zero")
	}

	// ToECDSA copies the scalar into a fresh big.Int and rejects zero and
	// values at or above the curve order.
	privateKey, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, types.NewError(types.ErrorKindInvalidKeyMaterial, "", errors.Wrap(err, "failed to convert to ECDSA private key"))
	}

	return &SigningIdentity{
		privateKey: privateKey,
		chainId:    new(big.Int).SetUint64(chainId),
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
	}, nil
}

// Address returns the public address of the identity
func (si *SigningIdentity) Address() common.Address {
	return si.address
}

// ChainID returns a copy of the signing domain chain id
func (si *SigningIdentity) ChainID() *big.Int {
	return new(big.Int).Set(si.chainId)
}

// PrivateKey returns the secret key, or an error once the identity has been destroyed
func (si *SigningIdentity) PrivateKey() (*ecdsa.PrivateKey, error) {
	si.mu.RLock()
	defer si.mu.RUnlock()
	if si.destroyed {
		return nil, fmt.Errorf("signing identity for %s has been destroyed", si.address.Hex())
	}
	return si.privateKey, nil
}

// Destroy zeroes the secret scalar and drops the key. Safe to call more than once.
func (si *SigningIdentity) Destroy() {
	si.mu.Lock()
	defer si.mu.Unlock()
	if si.destroyed {
		return
	}
	if si.privateKey != nil && si.privateKey.D != nil {
		words := si.privateKey.D.Bits()
		for i := range words {
			words[i] = 0
		}
		si.privateKey.D.SetInt64(0)
	}
	si.privateKey = nil
	si.destroyed = true
}

// Destroyed reports whether Destroy has been called
func (si *SigningIdentity) Destroyed() bool {
	si.mu.RLock()
	defer si.mu.RUnlock()
	return si.destroyed
}

// DisplayAddress returns the canonical EIP-55 checksummed address
func DisplayAddress(si *SigningIdentity) string {
	return si.Address().Hex()
}

// ShortAddress truncates a canonical hex address to "0x" followed by its last
// config.ShortAddressHexChars hex characters. Display only.
func ShortAddress(canonical string) string {
	hexPart := strings.TrimPrefix(strings.TrimPrefix(canonical, "0x"), "0X")
	if len(hexPart) > config.ShortAddressHexChars {
		hexPart = hexPart[len(hexPart)-config.ShortAddressHexChars:]
	}
	return "0x" + hexPart
}

// ParseAddress parses a plain text address supplied by the host
func ParseAddress(address string) (common.Address, error) {
	trimmed := strings.TrimSpace(address)
	if !common.IsHexAddress(trimmed) {
		return common.Address{}, types.Errorf(types.ErrorKindInvalidAddress, "", "%q is not a hex address", address)
	}
	return common.HexToAddress(trimmed), nil
}

// ParseRawKey decodes a hex private key into a new buffer. The caller owns
// the buffer and should Wipe it once the identity has been derived.
func ParseRawKey(hexKey string) ([]byte, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	raw := common.FromHex(trimmed)
	if len(raw) != RawKeyLength || len(trimmed) != RawKeyLength*2 {
		Wipe(raw)
		return nil, types.Errorf(types.ErrorKindInvalidKeyMaterial, "", "private key must be %d hex encoded bytes", RawKeyLength)
	}
	return raw, nil
}

// Wipe zeroes a key buffer in place
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
