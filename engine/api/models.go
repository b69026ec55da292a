package api

import (
	"math/big"

	"github.com/arktech/studydao/model/verification"
	"github.com/arktech/studydao/utils/units"
)

// ModelError is the body of every error response.
type ModelError struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
	// Reason is the contract or eligibility reason, when known.
	Reason string `json:"reason,omitempty"`
	TxHash string `json:"tx_hash,omitempty"`
}

type VerifyRequestBody struct {
	Force bool `json:"force"`
}

type Outcome struct {
	AttemptID    string `json:"attempt_id"`
	Subject      string `json:"subject"`
	SessionIndex string `json:"session_index"`
	TxHash       string `json:"tx_hash"`
	BlockNumber  string `json:"block_number"`
	GasUsed      uint64 `json:"gas_used,string"`
	State        string `json:"state"`
}

func (o *Outcome) Build(outcome *verification.Outcome) {
	o.AttemptID = outcome.AttemptID
	o.Subject = outcome.Request.Subject().Hex()
	o.SessionIndex = outcome.Request.SessionIndex().String()
	o.TxHash = outcome.TxHash.Hex()
	o.BlockNumber = bigString(outcome.BlockNumber)
	o.GasUsed = outcome.GasUsed
	o.State = outcome.State.String()
}

type Eligibility struct {
	CanVerify    bool   `json:"can_verify"`
	Reason       string `json:"reason,omitempty"`
	SessionIndex string `json:"session_index,omitempty"`
}

func (e *Eligibility) Build(result verification.EligibilityResult) {
	e.CanVerify = result.CanVerify
	e.Reason = string(result.Reason)
	if result.SessionIndex != nil {
		e.SessionIndex = result.SessionIndex.String()
	}
}

type Session struct {
	Index      string `json:"index"`
	Duration   string `json:"duration"`
	StudyTopic string `json:"study_topic"`
	Timestamp  string `json:"timestamp"`
	Verified   bool   `json:"verified"`
	State      string `json:"state"`
}

func (s *Session) Build(index int, session verification.StudySession) {
	s.Index = big.NewInt(int64(index)).String()
	s.Duration = bigString(session.Duration)
	s.StudyTopic = session.StudyTopic
	s.Timestamp = bigString(session.Timestamp)
	s.Verified = session.Verified
	s.State = session.State().String()
}

type Member struct {
	Address          string `json:"address"`
	TotalStudyTime   string `json:"total_study_time"`
	VerifiedSessions string `json:"verified_sessions"`
	ReputationScore  string `json:"reputation_score"`
	LastVerification string `json:"last_verification"`
	IsActive         bool   `json:"is_active"`
}

func (m *Member) Build(address string, member *verification.Member) {
	m.Address = address
	m.TotalStudyTime = bigString(member.TotalStudyTime)
	m.VerifiedSessions = bigString(member.VerifiedSessions)
	m.ReputationScore = bigString(member.ReputationScore)
	m.LastVerification = bigString(member.LastVerification)
	m.IsActive = member.IsActive
}

type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Creator     string `json:"creator"`
	// MinStake and TotalStaked are in wei, the Ether variants are formatted for display.
	MinStake         string `json:"min_stake"`
	MinStakeEther    string `json:"min_stake_ether"`
	TotalStaked      string `json:"total_staked"`
	TotalStakedEther string `json:"total_staked_ether"`
	MemberCount      string `json:"member_count"`
	IsActive         bool   `json:"is_active"`
}

func (g *Group) Build(id *big.Int, group *verification.StudyGroup) {
	g.ID = id.String()
	g.Name = group.Name
	g.Description = group.Description
	g.Creator = group.Creator.Hex()
	g.MinStake = bigString(group.MinStakeAmount)
	g.MinStakeEther = units.FormatEther(group.MinStakeAmount)
	g.TotalStaked = bigString(group.TotalStaked)
	g.TotalStakedEther = units.FormatEther(group.TotalStaked)
	g.MemberCount = bigString(group.MemberCount)
	g.IsActive = group.IsActive
}

type GroupList struct {
	Count  string  `json:"count"`
	Groups []Group `json:"groups"`
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
