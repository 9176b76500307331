package event

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pushPayload = `{
  "ref": "refs/heads/feature/x",
  "repository": {"name": "repo", "owner": {"login": "octo", "name": "octo"}}
}`

const prPayload = `{
  "action": %q,
  "number": 5,
  "pull_request": {
    "number": 5,
    "labels": [{"name": "generated"}],
    "head": {"ref": "feature/y", "sha": "abc", "repo": {"owner": {"login": "fork-owner"}}},
    "base": {"ref": "main"}
  },
  "repository": {"name": "repo", "owner": {"login": "octo"}}
}`

func prEventPayload(action string) []byte {
	return []byte(fmt.Sprintf(prPayload, action))
}

func TestParsePush(t *testing.T) {
	ev, err := Parse("push", []byte(pushPayload))
	require.NoError(t, err)

	assert.Equal(t, KindPush, ev.Kind)
	assert.Equal(t, "feature/x", ev.Branch)
	assert.Equal(t, "octo", ev.RepositoryOwner)
	assert.Equal(t, "repo", ev.Repository)
	assert.False(t, ev.Kind.IsBatch())
}

func TestParsePushOfTagFails(t *testing.T) {
	_, err := Parse("push", []byte(`{"ref": "refs/tags/v1.0.0"}`))
	assert.Error(t, err)
}

func TestParsePullRequestActions(t *testing.T) {
	tcs := map[string]Kind{
		"opened":      KindPullRequest,
		"reopened":    KindPullRequest,
		"synchronize": KindPullRequest,
		"labeled":     KindPullRequest,
		"closed":      KindPullRequestClosed,
		"edited":      KindSchedule,
	}

	for action, kind := range tcs {
		t.Run(action, func(t *testing.T) {
			ev, err := Parse("pull_request", prEventPayload(action))
			require.NoError(t, err)

			assert.Equal(t, kind, ev.Kind)
			assert.Equal(t, action, ev.Action)
			assert.Equal(t, 5, ev.PullRequestNr)
			assert.Equal(t, "feature/y", ev.Branch)
			assert.Equal(t, "main", ev.BaseBranch)
			assert.Equal(t, "fork-owner", ev.HeadOwner)
			assert.Equal(t, "octo", ev.RepositoryOwner)
			assert.Equal(t, []string{"generated"}, ev.Labels)
			assert.NotEmpty(t, ev.PullRequestJSON)
		})
	}
}

func TestParseOtherEventsAreBatchRuns(t *testing.T) {
	for _, name := range []string{"schedule", "workflow_dispatch", "repository_dispatch"} {
		ev, err := Parse(name, nil)
		require.NoError(t, err)
		assert.Equal(t, KindSchedule, ev.Kind)
		assert.True(t, ev.Kind.IsBatch())
	}
}

func TestFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, prEventPayload("closed"), 0o644))

	t.Setenv("GITHUB_EVENT_NAME", "pull_request")
	t.Setenv("GITHUB_EVENT_PATH", path)

	ev, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, KindPullRequestClosed, ev.Kind)
	assert.True(t, ev.Kind.IsBatch())
}

func TestFromEnvWithoutEventName(t *testing.T) {
	t.Setenv("GITHUB_EVENT_NAME", "")

	ev, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, KindSchedule, ev.Kind)
}
