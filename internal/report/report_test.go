package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/prsync/internal/branchsync"
)

func TestWrite(t *testing.T) {
	r := branchsync.NewReport([]*branchsync.ProcessResult{
		{Outcome: branchsync.OutcomeSucceeded, Detail: "PullRequest created", BranchLabel: "#1 (feature)"},
		{Outcome: branchsync.OutcomeFailed, Detail: "exit status 1", BranchLabel: "#2 (bugfix)"},
		{Outcome: branchsync.OutcomeNotChanged, Detail: "There is no diff", BranchLabel: "main"},
	})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 4)

	assert.Contains(t, lines[0], "✔")
	assert.Contains(t, lines[0], "#1 (feature)")
	assert.Contains(t, lines[0], "PullRequest created")
	assert.Contains(t, lines[1], "✘")
	assert.Contains(t, lines[1], "exit status 1")
	assert.Contains(t, lines[2], "=")
	assert.Contains(t, lines[len(lines)-1], "Total: 3, Succeeded: 2, Failed: 1, Skipped: 0")
}

func TestLineUnknownOutcome(t *testing.T) {
	line := Line(&branchsync.ProcessResult{Outcome: "strange", Detail: "d", BranchLabel: "b"})
	assert.Contains(t, line, "? ")
	assert.Contains(t, line, "b")
}
