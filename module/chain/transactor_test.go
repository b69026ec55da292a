package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arktech/studydao/model/verification"
	"github.com/arktech/studydao/module/metrics"
	"github.com/arktech/studydao/utils/unittest"
)

// fakeBackend returns a fixed receipt, or ethereum.NotFound when receipt is nil.
type fakeBackend struct {
	receipt *types.Receipt
	callErr error
	calls   int
}

func (f *fakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if f.receipt == nil {
		return nil, ethereum.NotFound
	}
	return f.receipt, nil
}

func (f *fakeBackend) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	return []byte{0x01}, nil
}

func (f *fakeBackend) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	f.calls++
	return nil, f.callErr
}

// dataError mimics the JSON-RPC error returned by nodes for reverted calls.
type dataError struct {
	msg  string
	data interface{}
}

func (e dataError) Error() string          { return e.msg }
func (e dataError) ErrorCode() int         { return 3 }
func (e dataError) ErrorData() interface{} { return e.data }

func testTx() *types.Transaction {
	to := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   big.NewInt(1337),
		Nonce:     1,
		To:        &to,
		Gas:       100000,
		GasFeeCap: big.NewInt(2),
		GasTipCap: big.NewInt(1),
		Data:      []byte{0xde, 0xad},
	})
}

func TestSubmit_Confirmed(t *testing.T) {
	backend := &fakeBackend{receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(10), GasUsed: 21000}}
	transactor := NewTransactor(unittest.Logger(), backend, metrics.NewNoopCollector(), time.Second)

	tx := testTx()
	receipt, err := transactor.Submit(context.Background(), "logStudySession", common.Address{}, func() (*types.Transaction, error) {
		return tx, nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), receipt.GasUsed)
	assert.Equal(t, 0, backend.calls)
}

func TestSubmit_RejectedBeforeBroadcast(t *testing.T) {
	backend := &fakeBackend{}
	transactor := NewTransactor(unittest.Logger(), backend, metrics.NewNoopCollector(), time.Second)

	_, err := transactor.Submit(context.Background(), "verifyStudySessionWithKRNL", common.Address{}, func() (*types.Transaction, error) {
		return nil, errors.New("execution reverted: cooldown active")
	})
	require.Error(t, err)
	require.True(t, verification.IsSubmissionRejectedError(err))

	var rejected verification.SubmissionRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, "cooldown active", rejected.Reason)
	assert.Contains(t, err.Error(), "cooldown active")
}

// TestSubmit_SendFailure checks that a transport failure while sending is not
// reported as a contract rejection.
func TestSubmit_SendFailure(t *testing.T) {
	backend := &fakeBackend{}
	transactor := NewTransactor(unittest.Logger(), backend, metrics.NewNoopCollector(), time.Second)

	upstream := errors.New("Post \"http://127.0.0.1:8545\": dial tcp 127.0.0.1:8545: connect: connection refused")
	_, err := transactor.Submit(context.Background(), "verifyStudySessionWithKRNL", common.Address{}, func() (*types.Transaction, error) {
		return nil, upstream
	})
	require.Error(t, err)
	assert.True(t, verification.IsSubmissionFailedError(err))
	assert.False(t, verification.IsSubmissionRejectedError(err))
	assert.False(t, verification.IsSubmissionTimeoutError(err))
	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, 0, backend.calls)
}

func TestSubmit_RevertedAfterInclusion(t *testing.T) {
	backend := &fakeBackend{
		receipt: &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(11)},
		callErr: dataError{
			msg: "execution reverted",
			// Error("already verified")
			data: "0x08c379a00000000000000000000000000000000000000000000000000000000000000020" +
				"0000000000000000000000000000000000000000000000000000000000000010" +
				"616c7265616479207665726966696564" + "00000000000000000000000000000000",
		},
	}
	transactor := NewTransactor(unittest.Logger(), backend, metrics.NewNoopCollector(), time.Second)

	tx := testTx()
	_, err := transactor.Submit(context.Background(), "verifyStudySessionWithKRNL", common.Address{}, func() (*types.Transaction, error) {
		return tx, nil
	})
	require.Error(t, err)

	var rejected verification.SubmissionRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, "already verified", rejected.Reason)
	assert.Equal(t, tx.Hash(), rejected.TxHash)
	assert.Equal(t, 1, backend.calls)
}

func TestSubmit_Timeout(t *testing.T) {
	backend := &fakeBackend{}
	transactor := NewTransactor(unittest.Logger(), backend, metrics.NewNoopCollector(), 50*time.Millisecond)

	tx := testTx()
	_, err := transactor.Submit(context.Background(), "verifyStudySessionWithKRNL", common.Address{}, func() (*types.Transaction, error) {
		return tx, nil
	})
	require.Error(t, err)
	assert.True(t, verification.IsSubmissionTimeoutError(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), tx.Hash().Hex())
}

func TestIsRevert(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":         {nil, false},
		"bare revert": {errors.New("execution reverted"), true},
		"wrapped":     {fmt.Errorf("estimate gas: %w", errors.New("execution reverted: no session")), true},
		"data error":  {dataError{msg: "custom error 0x1234", data: "0x1234"}, true},
		"transport":   {errors.New("dial tcp 127.0.0.1:8545: connect: connection refused"), false},
		"deadline":    {context.DeadlineExceeded, false},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.want, IsRevert(c.err))
		})
	}
}

func TestRevertReason(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"nil":              {nil, ""},
		"message":          {errors.New("execution reverted: no session"), "no session"},
		"wrapped message":  {fmt.Errorf("estimate gas: %w", errors.New("execution reverted: cooldown active")), "cooldown active"},
		"bare revert":      {errors.New("execution reverted"), ""},
		"unrelated":        {errors.New("insufficient funds for gas * price + value"), ""},
		"undecodable data": {dataError{msg: "execution reverted: fallback", data: "0xzz"}, "fallback"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.want, RevertReason(c.err))
		})
	}
}
