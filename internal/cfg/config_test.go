package cfg

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlCfg = `
github_api_token = "abc"
commands = ["make generate"]
branch_prefix = "gen/"
check_default_branch = true
auto_merge_threshold_days = 3
pr_labels = ["generated"]

[repository]
owner = "simplesurance"
repository = "prsync"
`

const yamlCfg = `
github_api_token: abc
commands:
  - make generate
  - go mod tidy
repository:
  owner: simplesurance
  repository: prsync
interval: 10s
`

func TestLoadTOMLAppliesDefaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GITHUB_REPOSITORY", "")

	c, err := Load(strings.NewReader(tomlCfg))
	require.NoError(t, err)

	assert.Equal(t, "abc", c.GithubAPIToken)
	assert.Equal(t, "simplesurance/prsync", c.Repository.String())
	assert.Equal(t, "gen/", c.BranchPrefix)
	assert.Equal(t, "{{.Branch}}", c.BranchName)
	assert.Equal(t, "merge", c.MergeMethod)
	assert.True(t, c.CheckDefaultBranch)
	assert.Equal(t, 3, c.AutoMergeThresholdDays)
	assert.Equal(t, []string{"generated"}, c.PRLabels)
	require.NoError(t, c.Validate())
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GITHUB_REPOSITORY", "")

	c, err := LoadYAML(strings.NewReader(yamlCfg))
	require.NoError(t, err)

	assert.Equal(t, []string{"make generate", "go mod tidy"}, c.Commands)
	assert.Equal(t, "prsync/", c.BranchPrefix)

	d, err := c.PacingInterval()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, d)
	require.NoError(t, c.Validate())
}

func TestEnvOverridesUnsetValues(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "from-env")
	t.Setenv("GITHUB_REPOSITORY", "octo/hello")

	c, err := Load(strings.NewReader(`commands = ["true"]`))
	require.NoError(t, err)

	assert.Equal(t, "from-env", c.GithubAPIToken)
	assert.Equal(t, "octo", c.Repository.Owner)
	assert.Equal(t, "hello", c.Repository.RepositoryName)
}

func TestEnvDoesNotOverrideConfiguredToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "from-env")

	c, err := Load(strings.NewReader(`github_api_token = "cfg"`))
	require.NoError(t, err)
	assert.Equal(t, "cfg", c.GithubAPIToken)
}

func TestRequire(t *testing.T) {
	c := Defaults()
	c.GithubAPIToken = "  "

	_, err := c.Require("github_api_token")
	assert.True(t, errors.Is(err, ErrRequiredValueMissing))

	v, err := c.Require("branch_prefix")
	require.NoError(t, err)
	assert.Equal(t, "prsync/", v)

	_, err = c.Require("does_not_exist")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRequiredValueMissing))
}

func TestValidateFailsWithoutCommands(t *testing.T) {
	c := Defaults()
	c.GithubAPIToken = "abc"
	c.Repository = GithubRepository{Owner: "o", RepositoryName: "r"}

	err := c.Validate()
	assert.ErrorIs(t, err, ErrRequiredValueMissing)
}

func TestValidateRejectsInvalidValues(t *testing.T) {
	valid := func() *Config {
		c := Defaults()
		c.GithubAPIToken = "abc"
		c.Repository = GithubRepository{Owner: "o", RepositoryName: "r"}
		c.Commands = []string{"true"}
		return c
	}

	require.NoError(t, valid().Validate())

	c := valid()
	c.LogFormat = "xml"
	assert.Error(t, c.Validate())

	c = valid()
	c.MergeMethod = "fast-forward"
	assert.Error(t, c.Validate())

	c = valid()
	c.AutoMergeThresholdDays = -1
	assert.Error(t, c.Validate())

	c = valid()
	c.Interval = "-3s"
	assert.Error(t, c.Validate())
}
