package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// NewSigner returns transact options signing with the hex encoded private key.
// A nil chainID is resolved from the node.
func NewSigner(ctx context.Context, client *ethclient.Client, privateKeyHex string, chainID *big.Int) (*bind.TransactOpts, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("could not parse private key: %w", err)
	}

	if chainID == nil {
		chainID, err = client.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not get chain id: %w", err)
		}
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("could not create transactor: %w", err)
	}
	return opts, nil
}

// Dial connects to an Ethereum JSON-RPC endpoint.
func Dial(ctx context.Context, url string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("could not dial chain rpc %s: %w", url, err)
	}
	return client, nil
}
