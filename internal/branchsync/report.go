package branchsync

// Report is the aggregated result of a batch run.
type Report struct {
	Results []*ProcessResult
	// Outcome is the most significant outcome of all results.
	Outcome Outcome

	Total int
	// Succeeded includes results with the outcome not-changed.
	Succeeded int
	Failed    int
	Skipped   int
}

// NewReport aggregates results.
// The outcome of the report is failed if any result failed, otherwise
// succeeded if any result succeeded. Skipped dominates not-changed.
// A report without results has the outcome skipped.
func NewReport(results []*ProcessResult) *Report {
	report := Report{
		Results: results,
		Outcome: OutcomeSkipped,
		Total:   len(results),
	}

	highest := 0
	for _, res := range results {
		switch res.Outcome {
		case OutcomeSucceeded, OutcomeNotChanged:
			report.Succeeded++
		case OutcomeFailed:
			report.Failed++
		}

		if p := res.Outcome.precedence(); p > highest {
			highest = p
			report.Outcome = res.Outcome
		}
	}

	report.Skipped = report.Total - report.Succeeded - report.Failed

	return &report
}

// Err returns ErrFailedProcess if one result failed, ErrFailedProcesses if
// multiple failed and nil otherwise.
func (r *Report) Err() error {
	switch {
	case r.Failed == 1:
		return ErrFailedProcess
	case r.Failed > 1:
		return ErrFailedProcesses
	default:
		return nil
	}
}
