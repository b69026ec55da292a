package studydao

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/arktech/studydao/model/verification"
)

// CanVerifyRecentSession returns whether the contract currently accepts a
// verification of member's most recent session.
func (c *Client) CanVerifyRecentSession(ctx context.Context, member common.Address) (bool, error) {
	out, err := c.call(ctx, MethodCanVerifyRecentSession, member)
	if err != nil {
		return false, err
	}
	if len(out) != 1 {
		return false, fmt.Errorf("unexpected %s result length %d", MethodCanVerifyRecentSession, len(out))
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// MemberStudySessions returns the sessions logged by member in log order.
func (c *Client) MemberStudySessions(ctx context.Context, member common.Address) ([]verification.StudySession, error) {
	out, err := c.call(ctx, MethodMemberStudySessions, member)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("unexpected %s result length %d", MethodMemberStudySessions, len(out))
	}
	return *abi.ConvertType(out[0], new([]verification.StudySession)).(*[]verification.StudySession), nil
}

// Member returns the member record for addr. Unknown members are returned
// with zero values and IsActive unset.
func (c *Client) Member(ctx context.Context, addr common.Address) (*verification.Member, error) {
	out, err := c.call(ctx, MethodMembers, addr)
	if err != nil {
		return nil, err
	}
	if len(out) != 5 {
		return nil, fmt.Errorf("unexpected %s result length %d", MethodMembers, len(out))
	}

	return &verification.Member{
		TotalStudyTime:   *abi.ConvertType(out[0], new(*big.Int)).(**big.Int),
		VerifiedSessions: *abi.ConvertType(out[1], new(*big.Int)).(**big.Int),
		ReputationScore:  *abi.ConvertType(out[2], new(*big.Int)).(**big.Int),
		LastVerification: *abi.ConvertType(out[3], new(*big.Int)).(**big.Int),
		IsActive:         *abi.ConvertType(out[4], new(bool)).(*bool),
	}, nil
}

// StudyGroup returns the group with the given id.
func (c *Client) StudyGroup(ctx context.Context, groupID *big.Int) (*verification.StudyGroup, error) {
	if groupID == nil || groupID.Sign() < 0 {
		return nil, fmt.Errorf("invalid group id %v", groupID)
	}
	out, err := c.call(ctx, MethodGetStudyGroup, groupID)
	if err != nil {
		return nil, err
	}
	if len(out) != 7 {
		return nil, fmt.Errorf("unexpected %s result length %d", MethodGetStudyGroup, len(out))
	}

	return &verification.StudyGroup{
		Name:           *abi.ConvertType(out[0], new(string)).(*string),
		Description:    *abi.ConvertType(out[1], new(string)).(*string),
		Creator:        *abi.ConvertType(out[2], new(common.Address)).(*common.Address),
		MinStakeAmount: *abi.ConvertType(out[3], new(*big.Int)).(**big.Int),
		TotalStaked:    *abi.ConvertType(out[4], new(*big.Int)).(**big.Int),
		MemberCount:    *abi.ConvertType(out[5], new(*big.Int)).(**big.Int),
		IsActive:       *abi.ConvertType(out[6], new(bool)).(*bool),
	}, nil
}

// GroupCount returns the number of groups created so far.
func (c *Client) GroupCount(ctx context.Context) (*big.Int, error) {
	out, err := c.call(ctx, MethodGroupCount)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("unexpected %s result length %d", MethodGroupCount, len(out))
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}
