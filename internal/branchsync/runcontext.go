package branchsync

import (
	"context"
	"fmt"
)

// RunContext holds values that are computed once per run and shared between
// the processing of all branches of the run.
// It is not safe for concurrent use.
type RunContext struct {
	memo map[string]any
}

func NewRunContext() *RunContext {
	return &RunContext{memo: map[string]any{}}
}

// get returns the value stored for key. If none is stored, fn is called and
// its result is stored when it succeeded.
func (rc *RunContext) get(key string, fn func() (any, error)) (any, error) {
	if v, exists := rc.memo[key]; exists {
		return v, nil
	}

	v, err := fn()
	if err != nil {
		return nil, err
	}

	rc.memo[key] = v

	return v, nil
}

// DefaultBranch returns the default branch of the repository.
func (rc *RunContext) DefaultBranch(ctx context.Context, clt GithubClient, retryer Retryer, owner, repo string) (string, error) {
	v, err := rc.get("default_branch:"+owner+"/"+repo, func() (any, error) {
		var branch string

		err := retryer.Run(ctx, func(ctx context.Context) error {
			var err error
			branch, err = clt.DefaultBranch(ctx, owner, repo)
			return err
		}, nil)
		if err != nil {
			return nil, fmt.Errorf("retrieving default branch failed: %w", err)
		}

		return branch, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}
