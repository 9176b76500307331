// Package gitrepo manages the local git working directory in which branches
// are checked out, modified, committed and pushed.
//
// Branch, commit, merge and push operations are run via the git command line
// client, the status of the working tree is read with go-git.
package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"go.uber.org/zap"

	"github.com/simplesurance/prsync/internal/logfields"
	"github.com/simplesurance/prsync/internal/syncerr"
)

const loggerName = "git"

const remoteName = "origin"

// Repository is a git working directory with a single remote.
type Repository struct {
	dir      string
	cloneURL string
	token    string

	userName  string
	userEmail string

	dryRun bool
	logger *zap.Logger
}

type Opt func(*Repository)

// WithToken sets the token that is used to authenticate https git
// operations.
func WithToken(token string) Opt {
	return func(r *Repository) {
		r.token = token
	}
}

// WithCommitter sets the name and email address used for commits.
func WithCommitter(name, email string) Opt {
	return func(r *Repository) {
		r.userName = name
		r.userEmail = email
	}
}

// WithDryRun disables pushing to the remote repository.
func WithDryRun() Opt {
	return func(r *Repository) {
		r.dryRun = true
	}
}

func New(dir, cloneURL string, opts ...Opt) *Repository {
	r := Repository{
		dir:       dir,
		cloneURL:  cloneURL,
		userName:  "prsync",
		userEmail: "prsync@users.noreply.github.com",
		logger:    zap.L().Named(loggerName),
	}

	for _, opt := range opts {
		opt(&r)
	}

	return &r
}

// GithubCloneURL returns the https clone URL of a github repository.
func GithubCloneURL(owner, repo string) string {
	return fmt.Sprintf("https://github.com/%s/%s.git", owner, repo)
}

func (r *Repository) Dir() string {
	return r.dir
}

// Init clones the repository into the working directory if it does not
// exist yet and fetches all branches from the remote.
func (r *Repository) Init(ctx context.Context) error {
	remoteURL, err := r.authenticatedURL()
	if err != nil {
		return err
	}

	if _, err := git.PlainOpen(r.dir); err != nil {
		if !errors.Is(err, git.ErrRepositoryNotExists) {
			return fmt.Errorf("opening git repository in %s failed: %w", r.dir, err)
		}

		if err := os.MkdirAll(filepath.Dir(r.dir), 0o755); err != nil {
			return err
		}

		r.logger.Info("cloning repository",
			logfields.Event("git_clone_started"),
			zap.String("git.clone_url", r.cloneURL),
			zap.String("dir", r.dir),
		)

		if _, err := r.runIn(ctx, filepath.Dir(r.dir), "clone", remoteURL, r.dir); err != nil {
			return err
		}

		return nil
	}

	if _, err := r.run(ctx, "remote", "set-url", remoteName, remoteURL); err != nil {
		return err
	}

	return r.fetch(ctx)
}

func (r *Repository) authenticatedURL() (string, error) {
	if r.token == "" {
		return r.cloneURL, nil
	}

	u, err := url.Parse(r.cloneURL)
	if err != nil {
		return "", fmt.Errorf("parsing clone url failed: %w", err)
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return r.cloneURL, nil
	}

	u.User = url.UserPassword("x-access-token", r.token)
	return u.String(), nil
}

func (r *Repository) fetch(ctx context.Context) error {
	_, err := r.run(ctx, "fetch", "--prune", remoteName)
	return err
}

// reset discards all uncommitted changes and untracked files.
func (r *Repository) reset(ctx context.Context) error {
	// merge --abort fails when no merge is in progress
	_, _ = r.run(ctx, "merge", "--abort")

	if _, err := r.run(ctx, "reset", "--hard"); err != nil {
		return err
	}

	_, err := r.run(ctx, "clean", "-fdx")
	return err
}

// MaterializeBranch resets the working directory and checks out the local
// branch name.
// If the branch exists in the remote repository it is based on the remote
// branch, otherwise it is created from the remote branch sourceRef.
// It returns the name of the checked out branch.
func (r *Repository) MaterializeBranch(ctx context.Context, name, sourceRef string) (string, error) {
	if err := r.fetch(ctx); err != nil {
		return "", err
	}

	if err := r.reset(ctx); err != nil {
		return "", err
	}

	exists, err := r.RemoteBranchExists(ctx, name)
	if err != nil {
		return "", err
	}

	startPoint := remoteRef(sourceRef)
	if exists {
		startPoint = remoteRef(name)
	}

	if _, err := r.run(ctx, "checkout", "-B", name, startPoint); err != nil {
		return "", err
	}

	r.logger.Debug("branch checked out",
		logfields.Event("git_branch_materialized"),
		logfields.Branch(name),
		zap.String("git.start_point", startPoint),
	)

	return r.CurrentBranch()
}

// ResetBranch recreates the local branch name from the remote branch baseRef,
// all changes of the local branch are discarded.
func (r *Repository) ResetBranch(ctx context.Context, name, baseRef string) error {
	if err := r.reset(ctx); err != nil {
		return err
	}

	_, err := r.run(ctx, "checkout", "-B", name, remoteRef(baseRef))
	return err
}

// RemoteBranchExists returns true if the branch exists in the remote
// repository, as of the last fetch.
func (r *Repository) RemoteBranchExists(ctx context.Context, branch string) (bool, error) {
	_, err := r.run(ctx, "rev-parse", "--verify", "--quiet", "refs/remotes/"+remoteRef(branch))
	if err != nil {
		var cmdErr *syncerr.CommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode == 1 {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// Commit stages all changes in the working directory and commits them.
func (r *Repository) Commit(ctx context.Context, msg string) error {
	if _, err := r.run(ctx, "add", "--all"); err != nil {
		return err
	}

	_, err := r.run(ctx,
		"-c", "user.name="+r.userName,
		"-c", "user.email="+r.userEmail,
		"commit", "--no-verify", "-m", msg,
	)
	return err
}

// Push pushes the HEAD commit to the remote branch.
func (r *Repository) Push(ctx context.Context, branch string) error {
	return r.push(ctx, branch, false)
}

// ForcePush pushes the HEAD commit to the remote branch, overwriting its
// history.
func (r *Repository) ForcePush(ctx context.Context, branch string) error {
	return r.push(ctx, branch, true)
}

func (r *Repository) push(ctx context.Context, branch string, force bool) error {
	args := []string{"push"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, remoteName, "HEAD:refs/heads/"+branch)

	logger := r.logger.With(logfields.Branch(branch), zap.Bool("git.force_push", force))

	if r.dryRun {
		logger.Info("dry run: skipping git push", logfields.Event("git_push_skipped_dry_run"))
		return nil
	}

	if _, err := r.run(ctx, args...); err != nil {
		return err
	}

	logger.Info("branch pushed", logfields.Event("git_branch_pushed"))

	return nil
}

// MergeResult is the result of a merge operation.
type MergeResult struct {
	Conflict bool
	Output   string
}

// MergeNoEdit merges the remote branch ref into the current branch.
// When the merge fails because of conflicts, the result has Conflict set to
// true and no error is returned.
func (r *Repository) MergeNoEdit(ctx context.Context, ref string) (*MergeResult, error) {
	out, err := r.run(ctx,
		"-c", "user.name="+r.userName,
		"-c", "user.email="+r.userEmail,
		"merge", "--no-edit", remoteRef(ref),
	)
	if err != nil {
		if strings.Contains(out, "CONFLICT") {
			return &MergeResult{Conflict: true, Output: out}, nil
		}

		return nil, err
	}

	return &MergeResult{Output: out}, nil
}

// AbortMerge aborts an in-progress merge.
func (r *Repository) AbortMerge(ctx context.Context) error {
	_, err := r.run(ctx, "merge", "--abort")
	return err
}

// DiffAgainst returns the names of the files that differ between HEAD and the
// remote branch ref.
func (r *Repository) DiffAgainst(ctx context.Context, ref string) ([]string, error) {
	out, err := r.run(ctx, "diff", "--name-only", remoteRef(ref), "HEAD", "--")
	if err != nil {
		return nil, err
	}

	return splitLines(out), nil
}

// ChangedFiles returns the sorted paths of all modified, added, deleted and
// untracked files in the working directory.
func (r *Repository) ChangedFiles() ([]string, error) {
	repo, err := git.PlainOpen(r.dir)
	if err != nil {
		return nil, fmt.Errorf("opening git repository failed: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("retrieving worktree status failed: %w", err)
	}

	result := make([]string, 0, len(status))
	for path, st := range status {
		if st.Staging == git.Unmodified && st.Worktree == git.Unmodified {
			continue
		}

		result = append(result, path)
	}

	sort.Strings(result)

	return result, nil
}

// CurrentBranch returns the name of the checked out branch.
func (r *Repository) CurrentBranch() (string, error) {
	repo, err := git.PlainOpen(r.dir)
	if err != nil {
		return "", fmt.Errorf("opening git repository failed: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD failed: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not a branch: %s", head.Name())
	}

	return head.Name().Short(), nil
}

func (r *Repository) run(ctx context.Context, args ...string) (string, error) {
	return r.runIn(ctx, r.dir, args...)
}

func (r *Repository) runIn(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "LC_ALL=C")

	out, err := cmd.CombinedOutput()
	output := r.sanitize(string(out))
	cmdStr := r.sanitize("git " + strings.Join(args, " "))

	if err != nil {
		cmdErr := syncerr.CommandError{
			Command:  cmdStr,
			ExitCode: -1,
			Output:   output,
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		} else {
			cmdErr.Err = err
		}

		return output, &cmdErr
	}

	r.logger.Debug("git command executed",
		logfields.Command(cmdStr),
		logfields.Event("git_command_executed"),
	)

	return output, nil
}

func (r *Repository) sanitize(s string) string {
	if r.token == "" {
		return s
	}

	return strings.ReplaceAll(s, r.token, "***")
}

func remoteRef(branch string) string {
	return remoteName + "/" + branch
}

func splitLines(s string) []string {
	var result []string

	for _, l := range strings.Split(s, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		result = append(result, l)
	}

	return result
}
