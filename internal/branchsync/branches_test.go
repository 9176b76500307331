package branchsync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/prsync/internal/prfilter"
)

func TestIsTarget(t *testing.T) {
	filter, err := prfilter.New(`.base.ref == "main"`)
	require.NoError(t, err)

	testcases := []struct {
		name   string
		cfgFn  func(*Config)
		target BranchTarget
		result bool
	}{
		{
			name:   "unconfigured",
			target: BranchTarget{Branch: "feature"},
			result: true,
		},
		{
			name:   "prefix_matches",
			cfgFn:  func(cfg *Config) { cfg.TargetBranchPrefixes = []string{"renovate/", "feature"} },
			target: BranchTarget{Branch: "feature/x"},
			result: true,
		},
		{
			name:   "prefix_does_not_match",
			cfgFn:  func(cfg *Config) { cfg.TargetBranchPrefixes = []string{"renovate/"} },
			target: BranchTarget{Branch: "feature/x"},
		},
		{
			name:   "include_label_missing",
			cfgFn:  func(cfg *Config) { cfg.IncludeLabels = []string{"sync"} },
			target: BranchTarget{Branch: "feature", Labels: []string{"bug"}},
		},
		{
			name:   "include_label_present",
			cfgFn:  func(cfg *Config) { cfg.IncludeLabels = []string{"sync"} },
			target: BranchTarget{Branch: "feature", Labels: []string{"bug", "sync"}},
			result: true,
		},
		{
			name:   "exclude_label_present",
			cfgFn:  func(cfg *Config) { cfg.ExcludeLabels = []string{"wip"} },
			target: BranchTarget{Branch: "feature", Labels: []string{"wip"}},
		},
		{
			name:   "filter_matches",
			cfgFn:  func(cfg *Config) { cfg.TargetFilter = filter },
			target: BranchTarget{Branch: "feature", JSON: []byte(`{"base": {"ref": "main"}}`)},
			result: true,
		},
		{
			name:   "filter_does_not_match",
			cfgFn:  func(cfg *Config) { cfg.TargetFilter = filter },
			target: BranchTarget{Branch: "feature", JSON: []byte(`{"base": {"ref": "develop"}}`)},
		},
		{
			name:   "filter_without_json",
			cfgFn:  func(cfg *Config) { cfg.TargetFilter = filter },
			target: BranchTarget{Branch: "feature"},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := newTestConfig()
			if tc.cfgFn != nil {
				tc.cfgFn(cfg)
			}

			branches := NewBranches(cfg, newTestRenderer(t))

			result, err := branches.IsTarget(context.Background(), &tc.target)
			require.NoError(t, err)
			assert.Equal(t, tc.result, result)
		})
	}
}

func TestDedupName(t *testing.T) {
	ctx := context.Background()

	cfg := newTestConfig()
	cfg.TargetBranchPrefixes = []string{"feature"}
	branches := NewBranches(cfg, newTestRenderer(t))

	name, err := branches.DedupName(ctx, &BranchTarget{Branch: "feature", Base: "main"})
	require.NoError(t, err)
	assert.Equal(t, "prsync/feature", name)

	name, err = branches.DedupName(ctx, &BranchTarget{Branch: "prsync/feature", Base: "feature"})
	require.NoError(t, err)
	assert.Equal(t, "prsync/feature", name)

	name, err = branches.DedupName(ctx, &BranchTarget{Branch: "bugfix"})
	require.NoError(t, err)
	assert.Empty(t, name)

	name, err = branches.DedupName(ctx, &BranchTarget{Branch: "main", IsDefault: true})
	require.NoError(t, err)
	assert.Equal(t, "prsync/main", name)

	cfg.NotCreatePR = true
	name, err = branches.DedupName(ctx, &BranchTarget{Branch: "feature"})
	require.NoError(t, err)
	assert.Equal(t, "feature", name)
}

func TestIsFork(t *testing.T) {
	branches := NewBranches(newTestConfig(), newTestRenderer(t))

	assert.False(t, branches.IsFork(&BranchTarget{Branch: "feature"}))
	assert.False(t, branches.IsFork(&BranchTarget{Branch: "feature", HeadOwner: repoOwner}))
	assert.True(t, branches.IsFork(&BranchTarget{Branch: "feature", HeadOwner: "forker"}))
}
