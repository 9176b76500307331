package branchsync

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsWriteToTextfile(t *testing.T) {
	m := NewMetrics()

	m.recordResult(&ProcessResult{Outcome: OutcomeSucceeded})
	m.recordResult(&ProcessResult{Outcome: OutcomeFailed})
	m.autoMerged()
	m.batchFinished(1500 * time.Millisecond)

	path := filepath.Join(t.TempDir(), "prsync.prom")
	require.NoError(t, m.WriteToTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(content), `prsync_processed_branches_total{outcome="succeeded"} 1`)
	assert.Contains(t, string(content), `prsync_processed_branches_total{outcome="failed"} 1`)
	assert.Contains(t, string(content), "prsync_auto_merges_total 1")
	assert.Contains(t, string(content), "prsync_batch_duration_seconds 1.5")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.recordResult(&ProcessResult{Outcome: OutcomeSucceeded})
		m.autoMerged()
		m.batchFinished(time.Second)
	})
}
