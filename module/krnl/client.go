package krnl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/arktech/studydao/model/verification"
	"github.com/arktech/studydao/module"
)

// Caller is the JSON-RPC transport to the kernel endpoint. *rpc.Client
// satisfies it.
type Caller interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// Config holds the kernel endpoint identity and the client side call policy.
type Config struct {
	EntryID     string
	AccessToken string
	KernelID    uint64
	// Timeout bounds a single call, zero leaves it to the caller's context.
	Timeout time.Duration
	// RateLimit is the maximum number of calls per second, zero disables limiting.
	RateLimit float64
	// BreakerMaxFailures consecutive transport failures open the circuit breaker.
	BreakerMaxFailures uint32
	// BreakerOpenTimeout is how long the breaker stays open before probing again.
	BreakerOpenTimeout time.Duration
}

// Client submits verification requests to the off-chain kernel endpoint. It
// makes a single call per invocation and never retries; retry policy belongs
// to the caller.
type Client struct {
	log     zerolog.Logger
	caller  Caller
	encoder *Encoder
	config  Config
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	metrics module.KernelMetrics
}

var _ module.KernelExecutor = (*Client)(nil)

// Dial connects to the kernel endpoint over HTTP(S) or WebSocket.
func Dial(ctx context.Context, endpoint string) (*rpc.Client, error) {
	client, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("could not dial kernel endpoint: %w", err)
	}
	return client, nil
}

// NewClient returns a kernel client using caller as transport.
func NewClient(log zerolog.Logger, caller Caller, config Config, metrics module.KernelMetrics) (*Client, error) {
	if config.EntryID == "" || config.AccessToken == "" {
		return nil, fmt.Errorf("kernel entry id and access token are required")
	}
	if config.KernelID == 0 {
		return nil, fmt.Errorf("kernel id is required")
	}

	c := &Client{
		log:     log.With().Str("component", "krnl_client").Uint64("kernel_id", config.KernelID).Logger(),
		caller:  caller,
		encoder: NewEncoder(),
		config:  config,
		metrics: metrics,
	}

	maxFailures := config.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "krnl",
		MaxRequests: 1,
		Timeout:     config.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			c.log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("kernel endpoint circuit breaker changed state")
		},
	})

	if config.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	return c, nil
}

// Execute encodes req for function, sends it to the kernel endpoint on behalf
// of sender and returns the authenticated result.
//
// Expected errors:
//   - UnsupportedOperationError if function has no encoding (no network call is made)
//   - ErrParamsMismatch if the kernel and function params disagree (no network call is made)
//   - KernelExecutionError if the call fails, times out or returns malformed data
func (c *Client) Execute(
	ctx context.Context,
	sender common.Address,
	function string,
	req verification.VerificationRequest,
) (*verification.KernelResultBundle, error) {
	if !c.encoder.Supports(function) {
		return nil, verification.NewUnsupportedOperationError(function)
	}

	kernelParams, err := c.encoder.EncodeKernelParams(function, req)
	if err != nil {
		return nil, err
	}
	functionParams, err := c.encoder.EncodeFunctionParams(function, req)
	if err != nil {
		return nil, err
	}
	if err := checkSameRequest(req, kernelParams, functionParams); err != nil {
		return nil, err
	}

	envelope := newRequestEnvelope(sender, c.config.KernelID, kernelParams)

	lg := c.log.With().
		Str("function", function).
		Str("sender", sender.Hex()).
		Str("subject", req.Subject().Hex()).
		Str("session_index", req.SessionIndex().String()).
		Logger()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, verification.NewKernelExecutionError("rate limiter: %w", err)
		}
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	lg.Debug().Msg("executing kernel")
	start := time.Now()
	out, err := c.breaker.Execute(func() (interface{}, error) {
		var raw json.RawMessage
		err := c.caller.CallContext(ctx, &raw, MethodExecuteKernels,
			c.config.EntryID,
			c.config.AccessToken,
			envelope,
			hexutil.Bytes(functionParams.Bytes()),
		)
		return raw, err
	})
	duration := time.Since(start)
	if err != nil {
		c.metrics.KernelCall(duration, false)
		lg.Warn().Err(err).Dur("duration", duration).Msg("kernel execution failed")
		return nil, wrapCallError(err)
	}

	bundle, err := decodeResult(out.(json.RawMessage), req)
	if err != nil {
		c.metrics.KernelCall(duration, false)
		lg.Warn().Err(err).Msg("kernel returned malformed result")
		return nil, err
	}

	c.metrics.KernelCall(duration, true)
	lg.Info().Dur("duration", duration).Msg("kernel execution succeeded")
	return bundle, nil
}

// checkSameRequest asserts that both encodings describe req.
func checkSameRequest(req verification.VerificationRequest, params ...verification.EncodedParams) error {
	for _, p := range params {
		decoded, err := DecodeParams(p)
		if err != nil {
			return fmt.Errorf("%w: %v", verification.ErrParamsMismatch, err)
		}
		if !decoded.Equal(req) {
			return verification.ErrParamsMismatch
		}
	}
	return nil
}

func wrapCallError(err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return verification.NewKernelExecutionError("kernel endpoint unavailable: %w", err)
	case errors.Is(err, context.DeadlineExceeded):
		return verification.NewKernelExecutionError("timed out waiting for kernel endpoint: %w", err)
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		var dataErr rpc.DataError
		if errors.As(err, &dataErr) && dataErr.ErrorData() != nil {
			return verification.NewKernelExecutionError("kernel endpoint error %d: %w (data: %v)", rpcErr.ErrorCode(), err, dataErr.ErrorData())
		}
		return verification.NewKernelExecutionError("kernel endpoint error %d: %w", rpcErr.ErrorCode(), err)
	}
	return verification.NewKernelExecutionError("could not call kernel endpoint: %w", err)
}
