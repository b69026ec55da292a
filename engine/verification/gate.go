package verification

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/arktech/studydao/model/verification"
	"github.com/arktech/studydao/module"
)

// Gate answers whether the most recent session of a member may be verified.
// It only reads contract state and its answer is advisory: the contract
// remains the sole arbiter at submission time.
type Gate struct {
	log     zerolog.Logger
	reader  module.SessionReader
	metrics module.VerificationMetrics
}

var _ module.EligibilityGate = (*Gate)(nil)

func NewGate(log zerolog.Logger, reader module.SessionReader, metrics module.VerificationMetrics) *Gate {
	return &Gate{
		log:     log.With().Str("component", "eligibility_gate").Logger(),
		reader:  reader,
		metrics: metrics,
	}
}

// Check returns the eligibility of subject's most recent session. Errors
// are only returned when the contract could not be read.
func (g *Gate) Check(ctx context.Context, subject common.Address) (verification.EligibilityResult, error) {
	sessions, err := g.reader.MemberStudySessions(ctx, subject)
	if err != nil {
		return verification.EligibilityResult{}, fmt.Errorf("could not read study sessions of %s: %w", subject.Hex(), err)
	}
	if len(sessions) == 0 {
		return g.report(subject, verification.Ineligible(verification.ReasonNoSession, nil)), nil
	}

	latest := big.NewInt(int64(len(sessions) - 1))
	canVerify, err := g.reader.CanVerifyRecentSession(ctx, subject)
	if err != nil {
		return verification.EligibilityResult{}, fmt.Errorf("could not read eligibility of %s: %w", subject.Hex(), err)
	}
	if canVerify {
		return g.report(subject, verification.Eligible(latest)), nil
	}

	// the contract does not say why, the session record does
	if sessions[len(sessions)-1].Verified {
		return g.report(subject, verification.Ineligible(verification.ReasonAlreadyVerified, latest)), nil
	}
	return g.report(subject, verification.Ineligible(verification.ReasonCooldownActive, latest)), nil
}

func (g *Gate) report(subject common.Address, result verification.EligibilityResult) verification.EligibilityResult {
	g.metrics.EligibilityChecked(result.CanVerify, string(result.Reason))
	g.log.Debug().
		Str("subject", subject.Hex()).
		Bool("can_verify", result.CanVerify).
		Str("reason", string(result.Reason)).
		Msg("eligibility checked")
	return result
}
