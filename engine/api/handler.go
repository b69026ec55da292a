package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/arktech/studydao/model/verification"
	"github.com/arktech/studydao/module"
)

// Backend is the set of services the API handlers call into.
type Backend struct {
	Verifier module.SessionVerifier
	Gate     module.EligibilityGate
	Sessions module.SessionReader
	Groups   module.StudyGroupReader
}

// ApiHandlerFunc is a function that contains endpoint handling logic,
// it fetches necessary resources and returns an error or response model.
type ApiHandlerFunc func(r *http.Request, backend Backend) (interface{}, error)

// Handler is custom http handler implementing custom handler function.
// Handler function allows easier handling of errors and responses as it
// wraps functionality for handling error and responses outside of endpoint handling.
type Handler struct {
	logger         zerolog.Logger
	backend        Backend
	apiHandlerFunc ApiHandlerFunc
}

func NewHandler(logger zerolog.Logger, backend Backend, handlerFunc ApiHandlerFunc) *Handler {
	return &Handler{
		logger:         logger,
		backend:        backend,
		apiHandlerFunc: handlerFunc,
	}
}

// ServerHTTP function acts as a wrapper to each request providing common handling functionality
// such as logging, error handling, request decorators
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// create a logger
	errLog := h.logger.With().Str("request_url", r.URL.String()).Logger()

	response, err := h.apiHandlerFunc(r, h.backend)
	if err != nil {
		h.errorHandler(w, err, errLog)
		return
	}

	h.jsonResponse(w, http.StatusOK, response, errLog)
}

func (h *Handler) errorHandler(w http.ResponseWriter, err error, errorLogger zerolog.Logger) {
	status := statusOf(err)
	modelErr := ModelError{
		Code:    int32(status),
		Message: err.Error(),
	}

	var statusErr StatusError
	if errors.As(err, &statusErr) {
		modelErr.Message = statusErr.UserMessage()
	}
	var ineligible verification.IneligibleError
	if errors.As(err, &ineligible) {
		modelErr.Reason = string(ineligible.Result.Reason)
	}
	var rejected verification.SubmissionRejectedError
	if errors.As(err, &rejected) {
		modelErr.Reason = rejected.Reason
		if rejected.TxHash != (common.Hash{}) {
			modelErr.TxHash = rejected.TxHash.Hex()
		}
	}
	var timeout verification.SubmissionTimeoutError
	if errors.As(err, &timeout) {
		modelErr.TxHash = timeout.TxHash.Hex()
	}

	if status >= http.StatusInternalServerError {
		errorLogger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		errorLogger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	h.jsonResponse(w, status, modelErr, errorLogger)
}

// jsonResponse builds a JSON response and send it to the client
func (h *Handler) jsonResponse(w http.ResponseWriter, code int, response interface{}, errLogger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")

	// serialize response to JSON and handler errors
	encodedResponse, err := json.MarshalIndent(response, "", "\t")
	if err != nil {
		errLogger.Error().Err(err).Str("response", string(encodedResponse)).Msg("failed to indent response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)
	// write response to response stream
	_, err = w.Write(encodedResponse)
	if err != nil {
		errLogger.Error().Err(err).Str("response", string(encodedResponse)).Msg("failed to write http response")
	}
}
