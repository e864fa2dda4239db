package domain

// OutcomeStatus describes what happened to one identifier during a resolution run.
type OutcomeStatus string

const (
	// OutcomeDownloaded indicates the top match was fetched, verified and written.
	OutcomeDownloaded OutcomeStatus = "downloaded"
	// OutcomeIgnored indicates the identifier is in the ignore set and was never fetched.
	OutcomeIgnored OutcomeStatus = "ignored"
	// OutcomeUnmatched indicates no artifact matched the identifier and platform version.
	OutcomeUnmatched OutcomeStatus = "unmatched"
	// OutcomeFetchFailed indicates the primary mirror could not be fetched.
	OutcomeFetchFailed OutcomeStatus = "fetch_failed"
)

// Skipped reports whether processing of the identifier ended without a download.
func (s OutcomeStatus) Skipped() bool {
	switch s {
	case OutcomeIgnored, OutcomeUnmatched, OutcomeFetchFailed:
		return true
	default:
		return false
	}
}

// Outcome is the result of processing one identifier.
type Outcome struct {
	Identifier string
	Status     OutcomeStatus

	// Artifact is the selected top match. It is nil for ignored and unmatched identifiers.
	Artifact *Artifact

	// Path is where the artifact was written. It is only set for downloaded identifiers.
	Path string

	// Err is the recoverable error behind a fetch failure.
	Err error
}

// Resolution is the result of a completed resolution run.
type Resolution struct {
	// Resolved holds every identifier that was enqueued during the run.
	Resolved *ResolvedSet

	// Outcomes lists the processed identifiers in processing order.
	Outcomes []Outcome
}

// Count returns the number of outcomes with the given status.
func (r *Resolution) Count(status OutcomeStatus) int {
	n := 0
	for i := range r.Outcomes {
		if r.Outcomes[i].Status == status {
			n++
		}
	}
	return n
}

// Downloaded returns the paths written during the run, in processing order.
func (r *Resolution) Downloaded() []string {
	var paths []string
	for i := range r.Outcomes {
		if r.Outcomes[i].Status == OutcomeDownloaded {
			paths = append(paths, r.Outcomes[i].Path)
		}
	}
	return paths
}
