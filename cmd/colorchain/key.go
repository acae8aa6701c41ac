package main

import (
	"fmt"
	"os"

	"github.com/Layr-Labs/colorchain-go/pkg/wallet"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// readPrivateKey returns the raw key from --private-key, or prompts for it
// without echo when stdin is a terminal. The caller wipes the result.
func readPrivateKey(c *cli.Context) ([]byte, error) {
	hexKey := c.String("private-key")
	if hexKey == "" {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return nil, fmt.Errorf("--private-key is required when stdin is not a terminal")
		}

		fmt.Fprint(os.Stderr, "Private key: ")
		keyBytes, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read private key from terminal")
		}
		hexKey = string(keyBytes)
		wallet.Wipe(keyBytes)
	}
	return wallet.ParseRawKey(hexKey)
}
