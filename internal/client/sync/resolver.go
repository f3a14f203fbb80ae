package sync

import (
	"context"
	"errors"
)

// Resolution is the human's choice when a sync run cannot resolve both
// sides automatically.
type Resolution uint8

var resolutionNames = []string{
	"AdoptRemote",
	"KeepLocal",
	"AcceptMerge",
}

const (
	// ResolutionAdoptRemote overwrites local with the remote content.
	ResolutionAdoptRemote Resolution = iota
	// ResolutionKeepLocal keeps local content as-is and pushes it.
	ResolutionKeepLocal
	// ResolutionAcceptMerge applies the merge engine's conflict-default
	// merge (local wins in conflicting sections) and pushes it.
	ResolutionAcceptMerge
)

func (r Resolution) String() string {
	if int(r) >= len(resolutionNames) {
		return "Unknown"
	}
	return resolutionNames[r]
}

// ErrResolutionAborted means the human cancelled the prompt. The run must
// end with local file and sync state untouched.
var ErrResolutionAborted = errors.New("sync: conflict resolution aborted")

// ConflictResolver asks a human to settle a divergence the merge engine
// could not. Implementations must honor ctx cancellation and may return
// ErrResolutionAborted.
type ConflictResolver interface {
	// ResolveConflicts handles genuine section conflicts after a three-way
	// merge. Any Resolution may be returned.
	ResolveConflicts(ctx context.Context, key string, conflicts []string, diff string) (Resolution, error)

	// ResolveTwoWay handles documents the section codec could not parse.
	// Only ResolutionAdoptRemote and ResolutionKeepLocal are meaningful;
	// returning ResolutionAcceptMerge is treated as ResolutionKeepLocal.
	ResolveTwoWay(ctx context.Context, key string, diff string) (Resolution, error)
}

// AbortResolver always aborts. Used for non-interactive runs where a
// conflict must never be resolved destructively.
type AbortResolver struct{}

func (AbortResolver) ResolveConflicts(context.Context, string, []string, string) (Resolution, error) {
	return 0, ErrResolutionAborted
}

func (AbortResolver) ResolveTwoWay(context.Context, string, string) (Resolution, error) {
	return 0, ErrResolutionAborted
}

var _ ConflictResolver = AbortResolver{}
