package branchsync

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-github/v59/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/simplesurance/prsync/internal/branchsync/mocks"
)

type prSliceIter struct {
	prs []*github.PullRequest
	err error
}

func (it *prSliceIter) Next() (*github.PullRequest, error) {
	if it.err != nil {
		return nil, it.err
	}

	if len(it.prs) == 0 {
		return nil, nil
	}

	result := it.prs[0]
	it.prs = it.prs[1:]

	return result, nil
}

func newGithubPR(number int, head, base, headOwner string) *github.PullRequest {
	return &github.PullRequest{
		Number: github.Int(number),
		State:  github.String("open"),
		Head: &github.PullRequestBranch{
			Ref: github.String(head),
			Repo: &github.Repository{
				Owner: &github.User{Login: github.String(headOwner)},
			},
		},
		Base:   &github.PullRequestBranch{Ref: github.String(base)},
		Labels: []*github.Label{{Name: github.String("dependencies")}},
	}
}

func collectCandidates(t *testing.T, it CandidateIterator) []*BranchTarget {
	t.Helper()

	var result []*BranchTarget
	for {
		target, err := it.Next()
		require.NoError(t, err)

		if target == nil {
			return result
		}

		result = append(result, target)
	}
}

func TestCandidatesAppendsDefaultBranch(t *testing.T) {
	mockctrl := gomock.NewController(t)
	gh := mocks.NewMockGithubClient(mockctrl)

	gh.EXPECT().
		ListPullRequests(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq("open"), gomock.Eq("created"), gomock.Eq("asc")).
		Return(&prSliceIter{prs: []*github.PullRequest{
			newGithubPR(1, "feature", "main", repoOwner),
			newGithubPR(2, "patch", "feature", "forker"),
		}})

	candidates := NewCandidates(gh, noRetryer{}, repoOwner, repo, defaultBranch, true)
	targets := collectCandidates(t, candidates.Iter(context.Background()))
	require.Len(t, targets, 3)

	assert.Equal(t, "feature", targets[0].Branch)
	assert.Equal(t, "main", targets[0].Base)
	assert.Equal(t, 1, targets[0].PRNumber)
	assert.Equal(t, []string{"dependencies"}, targets[0].Labels)
	assert.Contains(t, string(targets[0].JSON), `"number":1`)

	assert.Equal(t, "forker", targets[1].HeadOwner)

	assert.Equal(t, defaultBranch, targets[2].Branch)
	assert.True(t, targets[2].IsDefault)
	assert.Zero(t, targets[2].PRNumber)
}

func TestCandidatesWithoutDefaultBranch(t *testing.T) {
	mockctrl := gomock.NewController(t)
	gh := mocks.NewMockGithubClient(mockctrl)

	gh.EXPECT().
		ListPullRequests(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&prSliceIter{})

	candidates := NewCandidates(gh, noRetryer{}, repoOwner, repo, defaultBranch, false)
	assert.Empty(t, collectCandidates(t, candidates.Iter(context.Background())))
}

func TestCandidatesListingError(t *testing.T) {
	mockctrl := gomock.NewController(t)
	gh := mocks.NewMockGithubClient(mockctrl)

	listErr := errors.New("api down")
	gh.EXPECT().
		ListPullRequests(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&prSliceIter{err: listErr})

	candidates := NewCandidates(gh, noRetryer{}, repoOwner, repo, defaultBranch, true)
	_, err := candidates.Iter(context.Background()).Next()
	require.ErrorIs(t, err, listErr)
}
