package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"

	"github.com/arktech/studydao/config"
	"github.com/arktech/studydao/engine/verification"
	"github.com/arktech/studydao/module"
	"github.com/arktech/studydao/module/chain"
	"github.com/arktech/studydao/module/krnl"
	"github.com/arktech/studydao/module/studydao"
	"github.com/arktech/studydao/module/token"
)

var errNoSigner = errors.New("a private key is required, set chain.private_key or STUDYDAO_CHAIN_PRIVATE_KEY")

// node holds the components built from the configuration.
type node struct {
	log     zerolog.Logger
	cfg     *config.Config
	metrics module.VerificationMetrics

	chainRPC *ethclient.Client
	signer   *bind.TransactOpts

	dao *studydao.Client
}

// buildNode connects to the chain and binds the DAO contract. The signer is
// only created when a private key is configured, requireSigner turns its
// absence into an error.
func buildNode(ctx context.Context, log zerolog.Logger, cfg *config.Config, metrics module.VerificationMetrics, requireSigner bool) (*node, error) {
	client, err := chain.Dial(ctx, cfg.Chain.RPC)
	if err != nil {
		return nil, err
	}

	var signer *bind.TransactOpts
	if cfg.Chain.PrivateKey != "" {
		signer, err = chain.NewSigner(ctx, client, cfg.Chain.PrivateKey, chainID(cfg.Chain))
		if err != nil {
			client.Close()
			return nil, err
		}
		log.Info().Str("sender", signer.From.Hex()).Msg("transaction signer loaded")
	} else if requireSigner {
		client.Close()
		return nil, errNoSigner
	}

	dao := studydao.NewClient(
		log,
		common.HexToAddress(cfg.Contract.Address),
		client,
		signer,
		metrics,
		cfg.Contract.ConfirmationTimeout,
	)

	return &node{
		log:      log,
		cfg:      cfg,
		metrics:  metrics,
		chainRPC: client,
		signer:   signer,
		dao:      dao,
	}, nil
}

// chainID returns the configured chain id, nil when it is to be read from the node.
func chainID(cfg config.ChainConfig) *big.Int {
	if cfg.ChainID == 0 {
		return nil
	}
	return new(big.Int).SetUint64(cfg.ChainID)
}

// sender is the account the node acts for, the zero address without a signer.
func (n *node) sender() common.Address {
	if n.signer == nil {
		return common.Address{}
	}
	return n.signer.From
}

func (n *node) gate() *verification.Gate {
	return verification.NewGate(n.log, n.dao, n.metrics)
}

// verifier builds the full verification pipeline. The returned rpc client
// must be closed by the caller.
func (n *node) verifier(ctx context.Context) (*verification.Verifier, *rpc.Client, error) {
	if n.signer == nil {
		return nil, nil, errNoSigner
	}

	kernelRPC, err := krnl.Dial(ctx, n.cfg.Kernel.Endpoint)
	if err != nil {
		return nil, nil, err
	}

	kernel, err := krnl.NewClient(n.log, kernelRPC, krnl.Config{
		EntryID:            n.cfg.Kernel.EntryID,
		AccessToken:        n.cfg.Kernel.AccessToken,
		KernelID:           n.cfg.Kernel.ID,
		Timeout:            n.cfg.Kernel.Timeout,
		RateLimit:          n.cfg.Kernel.RateLimit,
		BreakerMaxFailures: n.cfg.Kernel.Breaker.MaxFailures,
		BreakerOpenTimeout: n.cfg.Kernel.Breaker.OpenTimeout,
	}, n.metrics)
	if err != nil {
		kernelRPC.Close()
		return nil, nil, fmt.Errorf("could not create kernel client: %w", err)
	}

	tracker, err := verification.NewTracker(n.cfg.Contract.TrackerCapacity)
	if err != nil {
		kernelRPC.Close()
		return nil, nil, err
	}

	verifier := verification.NewVerifier(
		n.log,
		n.signer.From,
		n.gate(),
		kernel,
		n.dao,
		tracker,
		n.metrics,
		verification.RetryConfig{
			MaxRetries:    n.cfg.Kernel.Retry.Max,
			BaseDelay:     n.cfg.Kernel.Retry.Base,
			MaxDelay:      n.cfg.Kernel.Retry.MaxDelay,
			JitterPercent: n.cfg.Kernel.Retry.Jitter,
		},
	)
	return verifier, kernelRPC, nil
}

// token binds the configured ERC-20 token.
func (n *node) token() (*token.Client, error) {
	if n.cfg.Token.Address == "" {
		return nil, errors.New("no token configured, set token.address or STUDYDAO_TOKEN_ADDRESS")
	}
	return token.NewClient(
		n.log,
		common.HexToAddress(n.cfg.Token.Address),
		n.chainRPC,
		n.signer,
		n.metrics,
		n.cfg.Contract.ConfirmationTimeout,
	), nil
}

func (n *node) Close() {
	n.chainRPC.Close()
}
