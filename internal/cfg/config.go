// Package cfg provides the prsync configuration.
package cfg

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

var ErrRequiredValueMissing = errors.New("required configuration value is missing")

type Config struct {
	GithubAPIToken string           `toml:"github_api_token" yaml:"github_api_token"`
	Repository     GithubRepository `toml:"repository" yaml:"repository"`
	// CloneURL is the URL the working directory is cloned from, when
	// empty it is derived from Repository.
	CloneURL string `toml:"clone_url" yaml:"clone_url"`
	WorkDir  string `toml:"work_dir" yaml:"work_dir"`

	GitUserName  string `toml:"git_user_name" yaml:"git_user_name"`
	GitUserEmail string `toml:"git_user_email" yaml:"git_user_email"`

	// Commands are executed in the working directory, their changes are
	// committed.
	Commands []string `toml:"commands" yaml:"commands"`

	BranchPrefix   string `toml:"branch_prefix" yaml:"branch_prefix"`
	BranchName     string `toml:"branch_name" yaml:"branch_name"`
	CommitMessage  string `toml:"commit_message" yaml:"commit_message"`
	PRTitle        string `toml:"pr_title" yaml:"pr_title"`
	PRBody         string `toml:"pr_body" yaml:"pr_body"`
	PRCommentBody  string `toml:"pr_comment_body" yaml:"pr_comment_body"`
	PRCloseMessage string `toml:"pr_close_message" yaml:"pr_close_message"`

	PRLabels    []string `toml:"pr_labels" yaml:"pr_labels"`
	PRReviewers []string `toml:"pr_reviewers" yaml:"pr_reviewers"`

	TargetBranchPrefixes []string `toml:"target_branch_prefixes" yaml:"target_branch_prefixes"`
	IncludeLabels        []string `toml:"include_labels" yaml:"include_labels"`
	ExcludeLabels        []string `toml:"exclude_labels" yaml:"exclude_labels"`
	// TargetFilter is a jq expression evaluated on the JSON representation
	// of a pull request, it must return a boolean.
	TargetFilter string `toml:"target_filter" yaml:"target_filter"`

	CheckDefaultBranch     bool   `toml:"check_default_branch" yaml:"check_default_branch"`
	NotCreatePR            bool   `toml:"not_create_pr" yaml:"not_create_pr"`
	AutoMergeThresholdDays int    `toml:"auto_merge_threshold_days" yaml:"auto_merge_threshold_days"`
	MergeMethod            string `toml:"merge_method" yaml:"merge_method"`
	// Interval is the pause between processing 2 branches in a batch run.
	Interval string `toml:"interval" yaml:"interval"`

	DryRun          bool   `toml:"dry_run" yaml:"dry_run"`
	MetricsTextfile string `toml:"metrics_textfile" yaml:"metrics_textfile"`

	LogFormat  string `toml:"log_format" yaml:"log_format"`
	LogLevel   string `toml:"log_level" yaml:"log_level"`
	LogTimeKey string `toml:"log_time_key" yaml:"log_time_key"`
}

type GithubRepository struct {
	Owner          string `toml:"owner" yaml:"owner"`
	RepositoryName string `toml:"repository" yaml:"repository"`
}

func (r *GithubRepository) String() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.RepositoryName)
}

// Defaults returns the values that are used for unset configuration options.
func Defaults() *Config {
	return &Config{
		WorkDir:        filepath.Join(os.TempDir(), "prsync", "workdir"),
		GitUserName:    "prsync",
		GitUserEmail:   "prsync@users.noreply.github.com",
		BranchPrefix:   "prsync/",
		BranchName:     "{{.Branch}}",
		CommitMessage:  "chore: update generated files",
		PRTitle:        "chore: update generated files ({{.Branch}})",
		PRBody:         DefaultPRBody,
		PRCloseMessage: "This pull request is not needed anymore, the changes are already contained in {{.Base}}.",
		MergeMethod:    "merge",
		Interval:       "3s",
		LogFormat:      "logfmt",
		LogLevel:       "info",
		LogTimeKey:     "time_iso8601",
	}
}

// DefaultPRBody is the default template for the body of created pull requests.
const DefaultPRBody = `## Base PullRequest

{{if .BasePRNumber}}#{{.BasePRNumber}}{{else}}{{.Base}}{{end}}

## Command results
{{range .Outputs}}
<details>
<summary><em>{{.Command}}</em></summary>

` + "```" + `
{{.StdoutText}}
` + "```" + `
</details>
{{end}}
## Changed files
{{range .Files}}
- {{.}}{{end}}
`

// Load reads a TOML configuration from reader, applies defaults for unset
// values and environment variable overrides.
func Load(reader io.Reader) (*Config, error) {
	return load(reader, toml.Unmarshal)
}

// LoadYAML reads a YAML configuration from reader, applies defaults for unset
// values and environment variable overrides.
func LoadYAML(reader io.Reader) (*Config, error) {
	return load(reader, yaml.Unmarshal)
}

// LoadFile loads the configuration file at path, the format is determined by
// the file extension.
func LoadFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return LoadYAML(file)
	default:
		return Load(file)
	}
}

func load(reader io.Reader, unmarshalFn func([]byte, any) error) (*Config, error) {
	var result Config

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if err := unmarshalFn(data, &result); err != nil {
		return nil, err
	}

	if err := mergo.Merge(&result, Defaults()); err != nil {
		return nil, fmt.Errorf("applying default values failed: %w", err)
	}

	result.applyEnvOverrides()

	return &result, nil
}

func (c *Config) applyEnvOverrides() {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" && c.GithubAPIToken == "" {
		c.GithubAPIToken = token
	}

	if repo := os.Getenv("GITHUB_REPOSITORY"); repo != "" && c.Repository.Owner == "" && c.Repository.RepositoryName == "" {
		if owner, name, found := strings.Cut(repo, "/"); found {
			c.Repository.Owner = owner
			c.Repository.RepositoryName = name
		}
	}
}

func (c *Config) Marshal(writer io.Writer) error {
	return toml.NewEncoder(writer).Encode(c)
}

func (c *Config) stringValues() map[string]string {
	return map[string]string{
		"github_api_token":      c.GithubAPIToken,
		"repository.owner":      c.Repository.Owner,
		"repository.repository": c.Repository.RepositoryName,
		"clone_url":             c.CloneURL,
		"work_dir":              c.WorkDir,
		"git_user_name":         c.GitUserName,
		"git_user_email":        c.GitUserEmail,
		"branch_prefix":         c.BranchPrefix,
		"branch_name":           c.BranchName,
		"commit_message":        c.CommitMessage,
		"pr_title":              c.PRTitle,
		"pr_body":               c.PRBody,
		"pr_comment_body":       c.PRCommentBody,
		"pr_close_message":      c.PRCloseMessage,
		"target_filter":         c.TargetFilter,
		"merge_method":          c.MergeMethod,
		"interval":              c.Interval,
		"metrics_textfile":      c.MetricsTextfile,
		"log_format":            c.LogFormat,
		"log_level":             c.LogLevel,
		"log_time_key":          c.LogTimeKey,
	}
}

// Require returns the value of the string option with the given key.
// If the option is unknown, unset or only consists of whitespaces an error
// wrapping ErrRequiredValueMissing is returned.
func (c *Config) Require(key string) (string, error) {
	val, exists := c.stringValues()[key]
	if !exists {
		return "", fmt.Errorf("unknown configuration option %q", key)
	}

	if strings.TrimSpace(val) == "" {
		return "", fmt.Errorf("%w: %s", ErrRequiredValueMissing, key)
	}

	return val, nil
}

// PacingInterval returns the parsed Interval option.
func (c *Config) PacingInterval() (time.Duration, error) {
	if c.Interval == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 0, fmt.Errorf("interval: %w", err)
	}

	if d < 0 {
		return 0, fmt.Errorf("interval is %s, must be >=0", d)
	}

	return d, nil
}

// Validate returns an error if a mandatory option is missing or an option
// has an invalid value.
func (c *Config) Validate() error {
	for _, key := range []string{
		"github_api_token",
		"repository.owner",
		"repository.repository",
		"work_dir",
		"branch_prefix",
	} {
		if _, err := c.Require(key); err != nil {
			return err
		}
	}

	if len(c.Commands) == 0 {
		return fmt.Errorf("%w: commands", ErrRequiredValueMissing)
	}

	switch c.LogFormat {
	case "logfmt", "console", "json":
	default:
		return fmt.Errorf("unsupported log_format: %q", c.LogFormat)
	}

	switch c.MergeMethod {
	case "merge", "squash", "rebase":
	default:
		return fmt.Errorf("unsupported merge_method: %q", c.MergeMethod)
	}

	if c.AutoMergeThresholdDays < 0 {
		return fmt.Errorf("auto_merge_threshold_days is %d, must be >=0", c.AutoMergeThresholdDays)
	}

	if _, err := c.PacingInterval(); err != nil {
		return err
	}

	return nil
}
