package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"

	"github.com/arktech/studydao/model/verification"
)

func addressVar(r *http.Request) (common.Address, error) {
	address, err := verification.ParseAddress(mux.Vars(r)["address"])
	if err != nil {
		return common.Address{}, NewBadRequestError(err)
	}
	return address, nil
}

// VerifySession runs the verification pipeline for a session of a member.
func VerifySession(r *http.Request, backend Backend) (interface{}, error) {
	vars := mux.Vars(r)
	index, err := verification.ParseSessionIndex(vars["index"])
	if err != nil {
		return nil, NewBadRequestError(err)
	}
	req, err := verification.NewVerificationRequest(vars["address"], index)
	if err != nil {
		return nil, NewBadRequestError(err)
	}

	var body VerifyRequestBody
	if r.Body != nil {
		err = json.NewDecoder(io.LimitReader(r.Body, 1<<10)).Decode(&body)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, NewBadRequestError(fmt.Errorf("invalid request body: %w", err))
		}
	}

	outcome, err := backend.Verifier.Verify(r.Context(), req, body.Force)
	if err != nil {
		return nil, err
	}

	var response Outcome
	response.Build(outcome)
	return response, nil
}

// GetEligibility returns whether the most recent session of a member can be verified now.
func GetEligibility(r *http.Request, backend Backend) (interface{}, error) {
	address, err := addressVar(r)
	if err != nil {
		return nil, err
	}

	result, err := backend.Gate.Check(r.Context(), address)
	if err != nil {
		return nil, err
	}

	var response Eligibility
	response.Build(result)
	return response, nil
}

// GetSessions returns the study sessions logged by a member.
func GetSessions(r *http.Request, backend Backend) (interface{}, error) {
	address, err := addressVar(r)
	if err != nil {
		return nil, err
	}

	sessions, err := backend.Sessions.MemberStudySessions(r.Context(), address)
	if err != nil {
		return nil, err
	}

	response := make([]Session, len(sessions))
	for i, s := range sessions {
		response[i].Build(i, s)
	}
	return response, nil
}

// GetMember returns the member record of an address.
func GetMember(r *http.Request, backend Backend) (interface{}, error) {
	address, err := addressVar(r)
	if err != nil {
		return nil, err
	}

	member, err := backend.Groups.Member(r.Context(), address)
	if err != nil {
		return nil, err
	}

	var response Member
	response.Build(address.Hex(), member)
	return response, nil
}
