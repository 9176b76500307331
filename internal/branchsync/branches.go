package branchsync

import (
	"context"
	"fmt"
	"strings"

	"github.com/simplesurance/prsync/internal/tmpl"
)

// Branches implements the branch naming conventions and the target branch
// predicate.
type Branches struct {
	cfg      *Config
	renderer Renderer
}

func NewBranches(cfg *Config, renderer Renderer) *Branches {
	return &Branches{cfg: cfg, renderer: renderer}
}

// IsActionOwned returns true if the branch was created by prsync.
func (b *Branches) IsActionOwned(branch string) bool {
	return strings.HasPrefix(branch, b.cfg.BranchPrefix)
}

// IsFork returns true if the branch of target is in a different repository.
func (b *Branches) IsFork(target *BranchTarget) bool {
	return target.HeadOwner != "" && target.HeadOwner != b.cfg.RepositoryOwner
}

// WorkBranch returns the name of the branch that contains the changes for
// target.
func (b *Branches) WorkBranch(target *BranchTarget) (string, error) {
	name, err := b.renderer.BranchName(&tmpl.Data{
		Branch:     target.Branch,
		Base:       target.Base,
		Repository: b.cfg.RepositoryOwner + "/" + b.cfg.Repository,
	})
	if err != nil {
		return "", err
	}

	return b.cfg.BranchPrefix + name, nil
}

// IsTarget returns true if changes for the branch of target are created.
// A target must match one of the configured target branch prefixes, have one
// of the include labels and none of the exclude labels and match the target
// filter. Conditions that are not configured are ignored.
func (b *Branches) IsTarget(ctx context.Context, target *BranchTarget) (bool, error) {
	if len(b.cfg.TargetBranchPrefixes) > 0 && !hasAnyPrefix(target.Branch, b.cfg.TargetBranchPrefixes) {
		return false, nil
	}

	if len(b.cfg.IncludeLabels) > 0 && !containsAny(target.Labels, b.cfg.IncludeLabels) {
		return false, nil
	}

	if containsAny(target.Labels, b.cfg.ExcludeLabels) {
		return false, nil
	}

	if b.cfg.TargetFilter == nil {
		return true, nil
	}

	if len(target.JSON) == 0 {
		return false, nil
	}

	match, err := b.cfg.TargetFilter.Match(ctx, target.JSON)
	if err != nil {
		return false, fmt.Errorf("evaluating target filter failed: %w", err)
	}

	return match, nil
}

// DedupName returns the name of the branch that processing target would
// change. An empty string is returned when target is not processed.
func (b *Branches) DedupName(ctx context.Context, target *BranchTarget) (string, error) {
	if b.IsActionOwned(target.Branch) {
		return target.Branch, nil
	}

	if !target.IsDefault {
		isTarget, err := b.IsTarget(ctx, target)
		if err != nil {
			return "", err
		}

		if !isTarget {
			return "", nil
		}
	}

	if b.cfg.NotCreatePR {
		return target.Branch, nil
	}

	return b.WorkBranch(target)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}

	return false
}

func containsAny(haystack, needles []string) bool {
	for _, n := range needles {
		for _, h := range haystack {
			if h == n {
				return true
			}
		}
	}

	return false
}
