package verification

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// StudyGroup mirrors the tuple returned by getStudyGroup. Field order and
// types must match the contract ABI.
type StudyGroup struct {
	Name           string
	Description    string
	Creator        common.Address
	MinStakeAmount *big.Int
	TotalStaked    *big.Int
	MemberCount    *big.Int
	IsActive       bool
}

// Member mirrors the outputs of the public members mapping.
type Member struct {
	TotalStudyTime   *big.Int
	VerifiedSessions *big.Int
	ReputationScore  *big.Int
	LastVerification *big.Int
	IsActive         bool
}
