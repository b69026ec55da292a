package verification

import (
	"fmt"
	"math/big"
)

// SessionState is the state of a logged study session as observed by this
// client. Verifying is client-local and never visible to other clients.
type SessionState int

const (
	SessionLogged SessionState = iota
	SessionVerifying
	SessionVerified
)

func (s SessionState) String() string {
	switch s {
	case SessionLogged:
		return "logged"
	case SessionVerifying:
		return "verifying"
	case SessionVerified:
		return "verified"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// StudySession mirrors the session tuple returned by getMemberStudySessions.
// Field order and types must match the contract ABI.
type StudySession struct {
	Duration   *big.Int
	StudyTopic string
	Timestamp  *big.Int
	Verified   bool
}

// State maps the on-chain verified flag to a SessionState.
func (s StudySession) State() SessionState {
	if s.Verified {
		return SessionVerified
	}
	return SessionLogged
}

// Reason distinguishes why a verification attempt is not permitted.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonNoSession       Reason = "no session"
	ReasonCooldownActive  Reason = "cooldown active"
	ReasonAlreadyVerified Reason = "already verified"
)

// EligibilityResult is the outcome of an eligibility check. It is recomputed
// on every check and only reflects chain state at call time.
type EligibilityResult struct {
	CanVerify bool
	Reason    Reason
	// SessionIndex is the index of the most recent session, nil when the
	// subject has no sessions.
	SessionIndex *big.Int
}

func Eligible(sessionIndex *big.Int) EligibilityResult {
	return EligibilityResult{CanVerify: true, SessionIndex: sessionIndex}
}

func Ineligible(reason Reason, sessionIndex *big.Int) EligibilityResult {
	return EligibilityResult{CanVerify: false, Reason: reason, SessionIndex: sessionIndex}
}

func (r EligibilityResult) String() string {
	if r.CanVerify {
		return "eligible"
	}
	return fmt.Sprintf("ineligible: %s", r.Reason)
}
