package studydao

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/core/types"
)

// CreateStudyGroup creates a group requiring minStake wei to join.
func (c *Client) CreateStudyGroup(ctx context.Context, name string, description string, minStake *big.Int) (*types.Receipt, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("group name must not be empty")
	}
	if minStake == nil || minStake.Sign() < 0 {
		return nil, fmt.Errorf("invalid minimum stake %v", minStake)
	}
	return c.transact(ctx, MethodCreateStudyGroup, nil, name, description, minStake)
}

// JoinGroup joins groupID, attaching stake wei as the transaction value.
func (c *Client) JoinGroup(ctx context.Context, groupID *big.Int, stake *big.Int) (*types.Receipt, error) {
	if groupID == nil || groupID.Sign() < 0 {
		return nil, fmt.Errorf("invalid group id %v", groupID)
	}
	if stake == nil || stake.Sign() < 0 {
		return nil, fmt.Errorf("invalid stake %v", stake)
	}
	return c.transact(ctx, MethodJoinGroup, stake, groupID)
}

// LogStudySession records a study session of duration seconds on topic for
// the signing account.
func (c *Client) LogStudySession(ctx context.Context, duration *big.Int, topic string) (*types.Receipt, error) {
	if duration == nil || duration.Sign() <= 0 {
		return nil, fmt.Errorf("session duration must be positive, got %v", duration)
	}
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("study topic must not be empty")
	}
	return c.transact(ctx, MethodLogStudySession, nil, duration, topic)
}
