package verification

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// integerPattern matches a base-10 integer with an optional sign. Fractions,
// exponents and hex are rejected.
var integerPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)

// VerificationRequest identifies a single logged study session to be verified.
// It is constructed fresh for every verification attempt and is immutable
// once created.
type VerificationRequest struct {
	subject      common.Address
	sessionIndex *big.Int
}

// NewVerificationRequest validates the subject and session index and returns
// the resulting request.
//
// Expected errors:
//   - InvalidAddressError if subject is not a 20-byte hex account address
//   - InvalidIndexError if sessionIndex is nil, negative or does not fit in 256 bits
func NewVerificationRequest(subject string, sessionIndex *big.Int) (VerificationRequest, error) {
	addr, err := ParseAddress(subject)
	if err != nil {
		return VerificationRequest{}, err
	}
	if err := checkIndex(sessionIndex); err != nil {
		return VerificationRequest{}, err
	}
	return VerificationRequest{
		subject:      addr,
		sessionIndex: new(big.Int).Set(sessionIndex),
	}, nil
}

// ParseAddress validates an account address in hex form, with or without the
// 0x prefix.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(strings.TrimSpace(s)) {
		return common.Address{}, NewInvalidAddressError(s)
	}
	return common.HexToAddress(strings.TrimSpace(s)), nil
}

// ParseSessionIndex parses a user supplied session index. Only base-10
// integers in [0, 2^256) are accepted.
func ParseSessionIndex(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if !integerPattern.MatchString(s) {
		return nil, NewInvalidIndexError(s, "not an integer")
	}
	index, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, NewInvalidIndexError(s, "not an integer")
	}
	if err := checkIndex(index); err != nil {
		return nil, err
	}
	return index, nil
}

func checkIndex(index *big.Int) error {
	if index == nil {
		return NewInvalidIndexError("<nil>", "missing")
	}
	if index.Sign() < 0 {
		return NewInvalidIndexError(index.String(), "negative")
	}
	if index.Cmp(math.MaxBig256) > 0 {
		return NewInvalidIndexError(index.String(), "exceeds 256 bits")
	}
	return nil
}

// Subject returns the owner of the session being verified.
func (r VerificationRequest) Subject() common.Address {
	return r.subject
}

// SessionIndex returns a copy of the session index.
func (r VerificationRequest) SessionIndex() *big.Int {
	if r.sessionIndex == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(r.sessionIndex)
}

// IsZero reports whether r is the zero value, i.e. was not built through
// NewVerificationRequest.
func (r VerificationRequest) IsZero() bool {
	return r.sessionIndex == nil
}

// Equal reports whether both requests name the same session.
func (r VerificationRequest) Equal(other VerificationRequest) bool {
	if r.IsZero() || other.IsZero() {
		return r.IsZero() && other.IsZero()
	}
	return r.subject == other.subject && r.sessionIndex.Cmp(other.sessionIndex) == 0
}

// Key is a stable string key for the session, used for client-local bookkeeping.
func (r VerificationRequest) Key() string {
	return fmt.Sprintf("%s/%s", r.subject.Hex(), r.SessionIndex().String())
}

func (r VerificationRequest) String() string {
	return fmt.Sprintf("session %s of %s", r.SessionIndex().String(), r.subject.Hex())
}
