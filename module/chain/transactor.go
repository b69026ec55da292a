package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"

	"github.com/arktech/studydao/model/verification"
	"github.com/arktech/studydao/module"
	"github.com/arktech/studydao/module/metrics"
)

// DefaultConfirmationTimeout is used when no confirmation timeout is configured.
const DefaultConfirmationTimeout = 2 * time.Minute

// Contract is the subset of *bind.BoundContract used by the contract clients.
type Contract interface {
	Call(opts *bind.CallOpts, results *[]interface{}, method string, params ...interface{}) error
	Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error)
}

// Backend is the chain access needed to bind contracts and observe receipts.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// ReceiptBackend is what the Transactor needs to confirm transactions and
// recover revert reasons.
type ReceiptBackend interface {
	bind.DeployBackend
	ethereum.ContractCaller
}

// Transactor broadcasts state changing contract calls and blocks until they
// are confirmed. It never resubmits a transaction.
type Transactor struct {
	log                 zerolog.Logger
	backend             ReceiptBackend
	metrics             module.SubmissionMetrics
	confirmationTimeout time.Duration
}

func NewTransactor(log zerolog.Logger, backend ReceiptBackend, metrics module.SubmissionMetrics, confirmationTimeout time.Duration) *Transactor {
	if confirmationTimeout <= 0 {
		confirmationTimeout = DefaultConfirmationTimeout
	}
	return &Transactor{
		log:                 log.With().Str("component", "transactor").Logger(),
		backend:             backend,
		metrics:             metrics,
		confirmationTimeout: confirmationTimeout,
	}
}

// Submit broadcasts the transaction built by send and waits for its receipt.
// from is the sender, used to replay a failed transaction for its revert reason.
//
// Expected errors:
//   - verification.SubmissionRejectedError if the call reverted, either during gas
//     estimation or after inclusion
//   - verification.SubmissionFailedError if the transaction could not be sent for
//     any other reason
//   - verification.SubmissionTimeoutError if no receipt was observed within the
//     confirmation timeout or ctx was cancelled while waiting
func (t *Transactor) Submit(
	ctx context.Context,
	method string,
	from common.Address,
	send func() (*types.Transaction, error),
) (*types.Receipt, error) {
	lg := t.log.With().Str("method", method).Logger()

	tx, err := send()
	if err != nil {
		if !IsRevert(err) {
			lg.Error().Err(err).Msg("could not send transaction")
			t.metrics.TransactionFinalized(method, metrics.OutcomeError, 0)
			return nil, verification.NewSubmissionFailedError(err)
		}
		reason := RevertReason(err)
		lg.Warn().Err(err).Str("reason", reason).Msg("transaction rejected before broadcast")
		t.metrics.TransactionFinalized(method, metrics.OutcomeRejected, 0)
		return nil, verification.NewSubmissionRejectedError(reason, common.Hash{}, err)
	}
	t.metrics.TransactionSubmitted(method)

	lg = lg.With().Str("tx_hash", tx.Hash().Hex()).Logger()
	lg.Info().Msg("transaction broadcast, waiting for confirmation")

	start := time.Now()
	waitCtx, cancel := context.WithTimeout(ctx, t.confirmationTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, t.backend, tx)
	duration := time.Since(start)
	if err != nil {
		lg.Error().Err(err).Dur("waited", duration).Msg("transaction confirmation not observed")
		t.metrics.TransactionFinalized(method, metrics.OutcomeTimeout, duration)
		return nil, verification.NewSubmissionTimeoutError(tx.Hash(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		reason := t.replayRevertReason(ctx, from, tx, receipt)
		lg.Warn().
			Uint64("block", receipt.BlockNumber.Uint64()).
			Str("reason", reason).
			Msg("transaction reverted")
		t.metrics.TransactionFinalized(method, metrics.OutcomeRejected, duration)
		return nil, verification.NewSubmissionRejectedError(reason, tx.Hash(), fmt.Errorf("transaction reverted in block %v", receipt.BlockNumber))
	}

	lg.Info().
		Uint64("block", receipt.BlockNumber.Uint64()).
		Uint64("gas_used", receipt.GasUsed).
		Dur("waited", duration).
		Msg("transaction confirmed")
	t.metrics.TransactionFinalized(method, metrics.OutcomeConfirmed, duration)
	return receipt, nil
}

// replayRevertReason re-executes a reverted transaction as a call at the block
// it was included in to recover the revert reason. Returns an empty string
// when the node does not provide one.
func (t *Transactor) replayRevertReason(ctx context.Context, from common.Address, tx *types.Transaction, receipt *types.Receipt) string {
	msg := ethereum.CallMsg{
		From:  from,
		To:    tx.To(),
		Gas:   tx.Gas(),
		Value: tx.Value(),
		Data:  tx.Data(),
	}
	_, err := t.backend.CallContract(ctx, msg, receipt.BlockNumber)
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ""
	}
	return RevertReason(err)
}
