package studydao

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"

	"github.com/arktech/studydao/module"
	"github.com/arktech/studydao/module/chain"
)

// ErrReadOnly is returned by state changing calls on a client without a signer.
var ErrReadOnly = errors.New("studydao client has no signer configured")

// Client binds to a deployed StudyDAO contract. Without a signer only the
// read-only calls are available.
type Client struct {
	log        zerolog.Logger
	address    common.Address
	contract   chain.Contract
	transactor *chain.Transactor
	signer     *bind.TransactOpts
}

var (
	_ module.VerificationSubmitter = (*Client)(nil)
	_ module.SessionReader         = (*Client)(nil)
	_ module.StudyGroupReader      = (*Client)(nil)
)

// NewClient binds the contract at address. signer may be nil.
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
	return newClient(log, address, contract, transactor, signer)
}

func newClient(
	log zerolog.Logger,
	address common.Address,
	contract chain.Contract,
	transactor *chain.Transactor,
	signer *bind.TransactOpts,
) *Client {
	return &Client{
		log:        log.With().Str("component", "studydao_client").Str("contract", address.Hex()).Logger(),
		address:    address,
		contract:   contract,
		transactor: transactor,
		signer:     signer,
	}
}

// Address returns the bound contract address.
func (c *Client) Address() common.Address {
	return c.address
}

// Sender returns the signing account, or the zero address for a read-only client.
func (c *Client) Sender() common.Address {
	if c.signer == nil {
		return common.Address{}
	}
	return c.signer.From
}

func (c *Client) call(ctx context.Context, method string, params ...interface{}) ([]interface{}, error) {
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx, From: c.Sender()}
	if err := c.contract.Call(opts, &out, method, params...); err != nil {
		return nil, fmt.Errorf("could not call %s: %w", method, err)
	}
	return out, nil
}

// transact sends a state changing call and waits for its receipt. value is
// attached to the transaction for payable methods and may be nil.
func (c *Client) transact(ctx context.Context, method string, value *big.Int, params ...interface{}) (*types.Receipt, error) {
	if c.signer == nil {
		return nil, ErrReadOnly
	}
	opts := *c.signer
	opts.Context = ctx
	opts.Value = value

	return c.transactor.Submit(ctx, method, opts.From, func() (*types.Transaction, error) {
		return c.contract.Transact(&opts, method, params...)
	})
}
