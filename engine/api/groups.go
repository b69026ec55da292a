package api

import (
	"fmt"
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxGroupsListed bounds the number of groups returned by a single list request.
	MaxGroupsListed = 100
	// groupFetchConcurrency bounds the concurrent contract reads of a list request.
	groupFetchConcurrency = 8
)

// GetGroup returns a study group by id.
func GetGroup(r *http.Request, backend Backend) (interface{}, error) {
	id, ok := new(big.Int).SetString(mux.Vars(r)["id"], 10)
	if !ok || id.Sign() < 0 {
		return nil, NewBadRequestError(fmt.Errorf("invalid group id %q", mux.Vars(r)["id"]))
	}

	count, err := backend.Groups.GroupCount(r.Context())
	if err != nil {
		return nil, err
	}
	if id.Cmp(count) >= 0 {
		err := fmt.Errorf("study group %s not found", id)
		return nil, NewNotFoundError(err.Error(), err)
	}

	group, err := backend.Groups.StudyGroup(r.Context(), id)
	if err != nil {
		return nil, err
	}

	var response Group
	response.Build(id, group)
	return response, nil
}

// GetGroups lists study groups in creation order, at most MaxGroupsListed.
func GetGroups(r *http.Request, backend Backend) (interface{}, error) {
	count, err := backend.Groups.GroupCount(r.Context())
	if err != nil {
		return nil, err
	}

	n := int64(MaxGroupsListed)
	if count.IsInt64() && count.Int64() < n {
		n = count.Int64()
	}

	groups := make([]Group, n)
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(groupFetchConcurrency)
	for i := int64(0); i < n; i++ {
		i := i
		g.Go(func() error {
			id := big.NewInt(i)
			group, err := backend.Groups.StudyGroup(ctx, id)
			if err != nil {
				return fmt.Errorf("could not get study group %d: %w", i, err)
			}
			groups[i].Build(id, group)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return GroupList{Count: count.String(), Groups: groups}, nil
}
