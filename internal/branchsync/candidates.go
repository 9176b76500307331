package branchsync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/go-github/v59/github"

	"github.com/simplesurance/prsync/internal/githubclt"
)

// CandidateIterator returns the branches that are processed in a batch run.
type CandidateIterator interface {
	// Next returns the next candidate, nil is returned when all
	// candidates were returned.
	Next() (*BranchTarget, error)
}

// Candidates enumerates the open pull requests of a repository and
// optionally its default branch.
type Candidates struct {
	gh      GithubClient
	retryer Retryer
	owner   string
	repo    string

	defaultBranch        string
	includeDefaultBranch bool
}

// NewCandidates returns a Candidates instance.
// If includeDefaultBranch is true, defaultBranch is returned after all open
// pull requests.
func NewCandidates(gh GithubClient, retryer Retryer, owner, repo, defaultBranch string, includeDefaultBranch bool) *Candidates {
	return &Candidates{
		gh:                   gh,
		retryer:              retryer,
		owner:                owner,
		repo:                 repo,
		defaultBranch:        defaultBranch,
		includeDefaultBranch: includeDefaultBranch,
	}
}

// Iter returns a new iterator, pull requests are retrieved page-wise while
// iterating.
func (c *Candidates) Iter(ctx context.Context) CandidateIterator {
	return &candidateIter{
		ctx:         ctx,
		c:           c,
		it:          c.gh.ListPullRequests(ctx, c.owner, c.repo, "open", "created", "asc"),
		emitDefault: c.includeDefaultBranch,
	}
}

type candidateIter struct {
	ctx context.Context
	c   *Candidates
	it  githubclt.PRIterator

	prsDone     bool
	emitDefault bool
}

func (it *candidateIter) Next() (*BranchTarget, error) {
	if !it.prsDone {
		var pr *github.PullRequest

		err := it.c.retryer.Run(it.ctx, func(context.Context) error {
			var err error
			pr, err = it.it.Next()
			return err
		}, nil)
		if err != nil {
			return nil, fmt.Errorf("retrieving pull requests failed: %w", err)
		}

		if pr != nil {
			return branchTargetFromPR(pr)
		}

		it.prsDone = true
	}

	if it.emitDefault {
		it.emitDefault = false
		return &BranchTarget{Branch: it.c.defaultBranch, IsDefault: true}, nil
	}

	return nil, nil
}

func branchTargetFromPR(ghPR *github.PullRequest) (*BranchTarget, error) {
	pr := githubclt.NewPullRequestFromGithub(ghPR)

	js, err := json.Marshal(ghPR)
	if err != nil {
		return nil, fmt.Errorf("marshaling pull request #%d to json failed: %w", pr.Number, err)
	}

	return &BranchTarget{
		Branch:    pr.HeadRef,
		Base:      pr.BaseRef,
		PRNumber:  pr.Number,
		HeadOwner: pr.HeadOwner,
		Labels:    pr.Labels,
		CreatedAt: pr.CreatedAt,
		JSON:      js,
	}, nil
}

// sliceIter is a CandidateIterator for a fixed list of candidates.
type sliceIter struct {
	candidates []*BranchTarget
}

// NewSliceIterator returns an iterator that returns the elements of
// candidates.
func NewSliceIterator(candidates ...*BranchTarget) CandidateIterator {
	return &sliceIter{candidates: candidates}
}

func (it *sliceIter) Next() (*BranchTarget, error) {
	if len(it.candidates) == 0 {
		return nil, nil
	}

	result := it.candidates[0]
	it.candidates = it.candidates[1:]

	return result, nil
}
