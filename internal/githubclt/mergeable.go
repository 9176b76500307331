package githubclt

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"

	"github.com/simplesurance/prsync/internal/logfields"
)

// IsMergeable returns if the pull request can be merged without conflicts
// into its base branch.
// nil is returned when github did not compute the mergeable state yet.
func (clt *Client) IsMergeable(ctx context.Context, owner, repo string, prNumber int) (*bool, error) {
	var q struct {
		Repository struct {
			PullRequest struct {
				Mergeable githubv4.MergeableState
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	vars := map[string]any{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(repo),
		"number": githubv4.Int(prNumber),
	}

	if err := clt.graphQLClt.Query(ctx, &q, vars); err != nil {
		return nil, clt.wrapGraphQLRetryableErrors(err)
	}

	return clt.mergeableStateToBool(prNumber, q.Repository.PullRequest.Mergeable)
}

func (clt *Client) mergeableStateToBool(prNumber int, state githubv4.MergeableState) (*bool, error) {
	var result bool

	switch state {
	case githubv4.MergeableStateMergeable:
		result = true

	case githubv4.MergeableStateConflicting:
		result = false

	case githubv4.MergeableStateUnknown:
		clt.logger.Debug("mergeable state of pull request is not computed yet",
			logfields.PullRequest(prNumber),
			logfields.Event("github_mergeable_state_unknown"),
		)
		return nil, nil

	default:
		return nil, fmt.Errorf("github returned unsupported mergeable state: %q", state)
	}

	return &result, nil
}
