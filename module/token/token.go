package token

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"

	"github.com/arktech/studydao/model/verification"
	"github.com/arktech/studydao/module"
	"github.com/arktech/studydao/module/chain"
	"github.com/arktech/studydao/utils/units"
)

// ERC20ABI is the subset of the ERC-20 interface used for the reward token.
const ERC20ABI = `[
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"decimals","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"symbol","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]}
]`

// ErrTransferRefused is wrapped in the rejection of a transfer the token
// answered with false instead of reverting.
var ErrTransferRefused = errors.New("token refused the transfer")

var parsedABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(ERC20ABI))
	if err != nil {
		panic(fmt.Sprintf("invalid ERC20 ABI: %v", err))
	}
	return parsed
}()

// Client reads and transfers the DAO reward token.
type Client struct {
	log        zerolog.Logger
	contract   chain.Contract
	transactor *chain.Transactor
	signer     *bind.TransactOpts
}

func NewClient(
	log zerolog.Logger,
	address common.Address,
	backend chain.Backend,
	signer *bind.TransactOpts,
	metrics module.SubmissionMetrics,
	confirmationTimeout time.Duration,
) *Client {
	contract := bind.NewBoundContract(address, parsedABI, backend, backend, backend)
	transactor := chain.NewTransactor(log, backend, metrics, confirmationTimeout)
	return newClient(log.With().Str("token", address.Hex()).Logger(), contract, transactor, signer)
}

func newClient(log zerolog.Logger, contract chain.Contract, transactor *chain.Transactor, signer *bind.TransactOpts) *Client {
	return &Client{
		log:        log.With().Str("component", "token_client").Logger(),
		contract:   contract,
		transactor: transactor,
		signer:     signer,
	}
}

func (c *Client) call(ctx context.Context, method string, params ...interface{}) (interface{}, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...); err != nil {
		return nil, fmt.Errorf("could not call %s: %w", method, err)
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("unexpected %s result length %d", method, len(out))
	}
	return out[0], nil
}

func (c *Client) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	out, err := c.call(ctx, "balanceOf", account)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out, new(*big.Int)).(**big.Int), nil
}

func (c *Client) Decimals(ctx context.Context) (uint8, error) {
	out, err := c.call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	return *abi.ConvertType(out, new(uint8)).(*uint8), nil
}

func (c *Client) Symbol(ctx context.Context) (string, error) {
	out, err := c.call(ctx, "symbol")
	if err != nil {
		return "", err
	}
	return *abi.ConvertType(out, new(string)).(*string), nil
}

// FormattedBalance returns the balance of account as a decimal string in
// token units, followed by the token symbol.
func (c *Client) FormattedBalance(ctx context.Context, account common.Address) (string, error) {
	balance, err := c.BalanceOf(ctx, account)
	if err != nil {
		return "", err
	}
	decimals, err := c.Decimals(ctx)
	if err != nil {
		return "", err
	}
	symbol, err := c.Symbol(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s", units.FormatUnits(balance, decimals), symbol), nil
}

// Transfer sends amount, a decimal string in token units, to the receiver.
// The transfer is simulated first, so a token that reports failure by
// returning false is rejected before anything is broadcast.
//
// Expected errors:
//   - verification.InvalidAddressError if to is not an account address
//   - units.ErrInvalidAmount if amount is malformed or has too many decimals
//   - verification.SubmissionRejectedError wrapping ErrTransferRefused if the token returns false
//   - verification.SubmissionRejectedError / SubmissionFailedError / SubmissionTimeoutError as for any transaction
func (c *Client) Transfer(ctx context.Context, to string, amount string) (*types.Receipt, error) {
	if c.signer == nil {
		return nil, fmt.Errorf("token client has no signer configured")
	}
	receiver, err := verification.ParseAddress(to)
	if err != nil {
		return nil, err
	}
	decimals, err := c.Decimals(ctx)
	if err != nil {
		return nil, err
	}
	value, err := units.ParseUnits(amount, decimals)
	if err != nil {
		return nil, err
	}
	if value.Sign() <= 0 {
		return nil, fmt.Errorf("%w: transfer amount must be positive", units.ErrInvalidAmount)
	}

	if err := c.simulateTransfer(ctx, receiver, value); err != nil {
		return nil, err
	}

	c.log.Info().Str("to", receiver.Hex()).Str("amount", value.String()).Msg("transferring tokens")

	opts := *c.signer
	opts.Context = ctx
	return c.transactor.Submit(ctx, "transfer", opts.From, func() (*types.Transaction, error) {
		return c.contract.Transact(&opts, "transfer", receiver, value)
	})
}

// simulateTransfer runs transfer as a call from the signer and checks the
// returned flag.
func (c *Client) simulateTransfer(ctx context.Context, to common.Address, value *big.Int) error {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx, From: c.signer.From}, &out, "transfer", to, value)
	if err != nil {
		if chain.IsRevert(err) {
			return verification.NewSubmissionRejectedError(chain.RevertReason(err), common.Hash{}, err)
		}
		return fmt.Errorf("could not simulate transfer: %w", err)
	}
	if len(out) != 1 {
		return fmt.Errorf("unexpected transfer result length %d", len(out))
	}
	if ok := *abi.ConvertType(out[0], new(bool)).(*bool); !ok {
		c.log.Warn().Str("to", to.Hex()).Str("amount", value.String()).Msg("token refused transfer")
		return verification.NewSubmissionRejectedError("transfer returned false", common.Hash{}, ErrTransferRefused)
	}
	return nil
}
