package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/prsync/internal/branchsync"
)

func TestWriteActionOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	require.NoError(t, os.WriteFile(path, []byte("other=1\n"), 0o644))

	t.Setenv("GITHUB_OUTPUT", path)

	require.NoError(t, writeActionOutput(branchsync.OutcomeNotChanged))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "other=1\nresult=not-changed\n", string(content))
}

func TestWriteActionOutputUnset(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	assert.NoError(t, writeActionOutput(branchsync.OutcomeFailed))
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "prsync unknown\n", buf.String())
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prsync.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
github_api_token = "secret"
commands = ["make generate"]

[repository]
owner = "testman"
repository = "repo"
`), 0o644))

	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GITHUB_REPOSITORY", "")

	config, err := loadConfig(&arguments{ConfigFile: path, DryRun: true, WorkDir: "/tmp/x"})
	require.NoError(t, err)
	assert.True(t, config.DryRun)
	assert.Equal(t, "/tmp/x", config.WorkDir)

	bcfg, err := newBranchsyncConfig(config)
	require.NoError(t, err)
	assert.Equal(t, "testman", bcfg.RepositoryOwner)
	assert.Equal(t, "repo", bcfg.Repository)
	assert.Nil(t, bcfg.TargetFilter)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prsync.toml")
	require.NoError(t, os.WriteFile(path, []byte(`commands = ["make"]`), 0o644))

	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GITHUB_REPOSITORY", "")

	_, err := loadConfig(&arguments{ConfigFile: path})
	require.Error(t, err)
}
