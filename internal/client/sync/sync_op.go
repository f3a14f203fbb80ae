package sync

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Outcome is the terminal state of a sync run.
type Outcome uint8

var outcomeNames = []string{
	"Noop",
	"Pulled",
	"Pushed",
	"Merged",
	"MergedConflicts",
}

const (
	OutcomeNoop Outcome = iota
	OutcomePulled
	OutcomePushed
	OutcomeMerged
	OutcomeMergedConflicts
)

func (o Outcome) String() string {
	if int(o) >= len(outcomeNames) {
		return "Unknown"
	}
	return outcomeNames[o]
}

// SyncResult reports a completed run to the caller.
type SyncResult struct {
	Key         string
	Outcome     Outcome
	Conflicts   []string   // section names that required resolution
	Resolution  Resolution // meaningful only for OutcomeMergedConflicts
	BytesPushed int64      // size of content sent to the remote, 0 if none
}

// Summary is the single human-readable outcome line for the CLI.
func (r *SyncResult) Summary() string {
	switch r.Outcome {
	case OutcomeNoop:
		return "already synced"
	case OutcomePulled:
		return "pulled from remote"
	case OutcomePushed:
		return fmt.Sprintf("pushed %s", humanize.Bytes(uint64(r.BytesPushed)))
	case OutcomeMerged:
		return "merged local and remote changes"
	case OutcomeMergedConflicts:
		return fmt.Sprintf("merged with %d resolved conflicts (%s)", len(r.Conflicts), r.Resolution)
	default:
		return "unknown outcome"
	}
}
