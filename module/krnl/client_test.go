package krnl

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/arktech/studydao/model/verification"
	"github.com/arktech/studydao/module/metrics"
	"github.com/arktech/studydao/utils/unittest"
)

// kernelService is a fake kernel endpoint served over go-ethereum's JSON-RPC server.
type kernelService struct {
	mu             sync.Mutex
	calls          int
	entryID        string
	accessToken    string
	envelope       RequestEnvelope
	functionParams hexutil.Bytes

	result json.RawMessage
	err    error
	block  chan struct{}
}

// ExecuteKernels is served as krnl_executeKernels.
func (s *kernelService) ExecuteKernels(
	ctx context.Context,
	entryID string,
	accessToken string,
	envelope RequestEnvelope,
	functionParams hexutil.Bytes,
) (json.RawMessage, error) {
	s.mu.Lock()
	s.calls++
	s.entryID = entryID
	s.accessToken = accessToken
	s.envelope = envelope
	s.functionParams = functionParams
	result, err, block := s.result, s.err, s.block
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return result, err
}

func (s *kernelService) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type ClientSuite struct {
	suite.Suite

	service *kernelService
	rpc     *rpc.Client
	config  Config
	client  *Client

	sender common.Address
	req    verification.VerificationRequest
}

func TestClient(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.service = &kernelService{
		result: json.RawMessage(`{"auth":"0x01","kernel_responses":"0x02","kernel_params":"0x03"}`),
	}

	server := rpc.NewServer()
	s.Require().NoError(server.RegisterName("krnl", s.service))
	httpServer := httptest.NewServer(server)

	client, err := rpc.DialHTTP(httpServer.URL)
	s.Require().NoError(err)
	s.rpc = client

	s.T().Cleanup(func() {
		s.service.mu.Lock()
		if s.service.block != nil {
			close(s.service.block)
			s.service.block = nil
		}
		s.service.mu.Unlock()
		client.Close()
		httpServer.Close()
		server.Stop()
	})

	s.config = Config{
		EntryID:            "entry-1",
		AccessToken:        "token-1",
		KernelID:           1593,
		Timeout:            time.Second,
		BreakerMaxFailures: 3,
		BreakerOpenTimeout: time.Minute,
	}
	s.client, err = NewClient(unittest.Logger(), s.rpc, s.config, metrics.NewNoopCollector())
	s.Require().NoError(err)

	s.sender = common.HexToAddress("0x00000000000000000000000000000000000000ee")
	s.req, err = verification.NewVerificationRequest("0xABCD000000000000000000000000000000001234", big.NewInt(3))
	s.Require().NoError(err)
}

// TestExecute_PassThrough checks that the request envelope is built as the
// endpoint expects and that the result is relayed byte for byte.
func (s *ClientSuite) TestExecute_PassThrough() {
	bundle, err := s.client.Execute(context.Background(), s.sender, FunctionVerifyStudySession, s.req)
	s.Require().NoError(err)

	payload := bundle.Payload()
	s.Assert().Equal([]byte{0x01}, payload.Auth)
	s.Assert().Equal([]byte{0x02}, payload.KernelResponses)
	s.Assert().Equal([]byte{0x03}, payload.KernelParams)
	s.Assert().True(bundle.Request().Equal(s.req))

	expected, err := EncodeParams(s.req)
	s.Require().NoError(err)

	s.Assert().Equal(1, s.service.Calls())
	s.Assert().Equal("entry-1", s.service.entryID)
	s.Assert().Equal("token-1", s.service.accessToken)
	s.Assert().Equal(s.sender, s.service.envelope.SenderAddress)
	s.Require().Contains(s.service.envelope.KernelPayload, "1593")
	s.Assert().Equal(expected.Bytes(), []byte(s.service.envelope.KernelPayload["1593"].FunctionParams))
	s.Assert().Equal(expected.Bytes(), []byte(s.service.functionParams))
}

func (s *ClientSuite) TestExecute_UnsupportedOperation() {
	_, err := s.client.Execute(context.Background(), s.sender, "createStudyGroup", s.req)
	s.Require().Error(err)
	s.Assert().True(verification.IsUnsupportedOperationError(err))
	s.Assert().Equal(0, s.service.Calls(), "no request may reach the endpoint")
}

func (s *ClientSuite) TestExecute_Timeout() {
	s.service.block = make(chan struct{})
	s.config.Timeout = 50 * time.Millisecond
	client, err := NewClient(unittest.Logger(), s.rpc, s.config, metrics.NewNoopCollector())
	s.Require().NoError(err)

	_, err = client.Execute(context.Background(), s.sender, FunctionVerifyStudySession, s.req)
	s.Require().Error(err)
	s.Assert().True(verification.IsKernelExecutionError(err))
	s.Assert().ErrorIs(err, context.DeadlineExceeded)
}

func (s *ClientSuite) TestExecute_UpstreamError() {
	s.service.err = errors.New("invalid access token")

	_, err := s.client.Execute(context.Background(), s.sender, FunctionVerifyStudySession, s.req)
	s.Require().Error(err)
	s.Assert().True(verification.IsKernelExecutionError(err))
	unittest.AssertErrSubstringMatch(s.T(), errors.New("invalid access token"), err)
}

func (s *ClientSuite) TestExecute_MalformedResult() {
	cases := map[string]string{
		"null result":           `null`,
		"missing auth":          `{"kernel_responses":"0x02","kernel_params":"0x03"}`,
		"missing responses":     `{"auth":"0x01","kernel_params":"0x03"}`,
		"missing params":        `{"auth":"0x01","kernel_responses":"0x02"}`,
		"empty auth":            `{"auth":"0x","kernel_responses":"0x02","kernel_params":"0x03"}`,
		"non hex responses":     `{"auth":"0x01","kernel_responses":"hello","kernel_params":"0x03"}`,
		"wrong type":            `{"auth":1,"kernel_responses":"0x02","kernel_params":"0x03"}`,
		"camel case field name": `{"auth":"0x01","kernelResponses":"0x02","kernel_params":"0x03"}`,
	}
	for name, raw := range cases {
		s.Run(name, func() {
			s.service.result = json.RawMessage(raw)
			bundle, err := s.client.Execute(context.Background(), s.sender, FunctionVerifyStudySession, s.req)
			s.Require().Error(err)
			s.Assert().Nil(bundle)
			s.Assert().True(verification.IsKernelExecutionError(err), err.Error())
		})
	}
}

func (s *ClientSuite) TestExecute_CircuitBreaker() {
	s.service.err = errors.New("kernel unavailable")

	for i := 0; i < int(s.config.BreakerMaxFailures); i++ {
		_, err := s.client.Execute(context.Background(), s.sender, FunctionVerifyStudySession, s.req)
		s.Require().True(verification.IsKernelExecutionError(err))
	}

	_, err := s.client.Execute(context.Background(), s.sender, FunctionVerifyStudySession, s.req)
	s.Require().Error(err)
	s.Assert().True(verification.IsKernelExecutionError(err))
	s.Assert().ErrorIs(err, gobreaker.ErrOpenState)
	s.Assert().Equal(int(s.config.BreakerMaxFailures), s.service.Calls())
}

func TestNewClient_RequiresIdentity(t *testing.T) {
	_, err := NewClient(unittest.Logger(), nil, Config{AccessToken: "t", KernelID: 1}, metrics.NewNoopCollector())
	assert.Error(t, err)
	_, err = NewClient(unittest.Logger(), nil, Config{EntryID: "e", KernelID: 1}, metrics.NewNoopCollector())
	assert.Error(t, err)
	_, err = NewClient(unittest.Logger(), nil, Config{EntryID: "e", AccessToken: "t"}, metrics.NewNoopCollector())
	require.Error(t, err)
}
