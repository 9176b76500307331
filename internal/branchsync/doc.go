// Package branchsync keeps branches and their pull requests synchronized with
// the changes produced by a list of commands.
//
// For a single branch the Synchronizer checks the branch out, runs the
// commands and decides if the result is committed and pushed, if a pull
// request is created, updated or closed, or if the branch is skipped.
// When a pull request can not be merged cleanly into its base branch the
// conflict resolution merges the base branch into the pull request branch.
// If that fails the branch is recreated from the base branch and the commands
// are run again.
// Pull requests that are older than a configured number of days, are
// mergeable and whose checks succeeded, can be merged automatically during
// batch runs.
//
// The BatchDriver runs the Synchronizer for every open pull request and
// optionally the default branch of the repository. Branches are processed
// sequentially in a single shared working directory. An error or panic while
// processing one branch is recorded as a failed result and does not prevent
// the processing of the remaining branches. Candidates that resolve to the
// same branch are only processed once.
package branchsync
