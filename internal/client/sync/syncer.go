package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/daybook-hq/daybook/internal/daybooksdk"
)

// EntryClient is the remote transport consumed by the Syncer. Satisfied by
// *daybooksdk.JournalAPI; faked in tests.
type EntryClient interface {
	GetEntry(ctx context.Context, params *daybooksdk.GetEntryParams) (*daybooksdk.EntryResponse, error)
	PutEntry(ctx context.Context, params *daybooksdk.PutEntryParams) (*daybooksdk.PutEntryResponse, error)
}

// Syncer reconciles one document key per run: compare, then one of
// no-op, pull, push, merge, or prompt. Local file and sync state are only
// written in the terminal steps of a successful run, file before state, so
// an interrupted run is self-correcting on the next one.
type Syncer struct {
	remote    EntryClient
	docs      DocumentStore
	store     StateStore
	resolver  ConflictResolver
	order     []string
	tolerance time.Duration
	log       *slog.Logger
}

// SyncerOption configures a Syncer
type SyncerOption func(*Syncer)

// WithSectionOrder overrides the canonical section order used when
// reconstructing merged documents
func WithSectionOrder(order []string) SyncerOption {
	return func(s *Syncer) {
		if len(order) > 0 {
			s.order = order
		}
	}
}

// WithTimestampTolerance overrides the serialization-rounding tolerance
func WithTimestampTolerance(d time.Duration) SyncerOption {
	return func(s *Syncer) {
		s.tolerance = d
	}
}

// WithLogger overrides the default logger
func WithLogger(log *slog.Logger) SyncerOption {
	return func(s *Syncer) {
		s.log = log
	}
}

func NewSyncer(remote EntryClient, docs DocumentStore, store StateStore, resolver ConflictResolver, opts ...SyncerOption) *Syncer {
	s := &Syncer{
		remote:    remote,
		docs:      docs,
		store:     store,
		resolver:  resolver,
		order:     DefaultSectionOrder,
		tolerance: DefaultTimestampTolerance,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync runs one synchronization for key.
//
// Network and auth failures abort before any mutation and are surfaced
// verbatim. A cancelled conflict prompt returns ErrResolutionAborted with
// local file and sync state untouched.
func (s *Syncer) Sync(ctx context.Context, key string) (*SyncResult, error) {
	local, err := s.docs.Read(key)
	if err != nil {
		return nil, err
	}

	state, err := s.store.Load(key)
	if err != nil {
		return nil, err
	}

	remote, err := s.remote.GetEntry(ctx, &daybooksdk.GetEntryParams{Date: key})
	if err != nil {
		if errors.Is(err, daybooksdk.ErrEntryNotFound) {
			s.log.Debug("remote entry missing, creating", "key", key)
			return s.pushCreate(ctx, key, local)
		}
		return nil, err
	}

	if local == nil {
		// key exists remotely but was never synced to this machine
		s.log.Debug("no local copy, pulling", "key", key)
		return s.pull(key, remote, remoteDigestOf(remote))
	}

	localDigest := Digest(local.Text)
	remoteDigest := remoteDigestOf(remote)

	var localKnownMatch, remoteKnownMatch bool
	var knownDigest string
	if state != nil {
		knownDigest = state.Digest
		localKnownMatch = localDigest == state.Digest
		remoteKnownMatch = TimestampsEqual(remote.UpdatedAt, state.UpdatedAt, s.tolerance) ||
			remoteDigest == state.Digest
	}

	s.log.Debug("compare",
		"key", key,
		"local_mtime", local.ModTime,
		"remote_updated", remote.UpdatedAt,
		"local_known", localKnownMatch,
		"remote_known", remoteKnownMatch,
	)

	switch {
	case TimestampsEqual(remote.UpdatedAt, local.ModTime, s.tolerance) || (localKnownMatch && remoteKnownMatch):
		// already synced; refresh the record if it drifted
		if state == nil || !TimestampsEqual(state.UpdatedAt, remote.UpdatedAt, 0) || state.Digest != remoteDigest {
			if err := s.store.Save(&StateRecord{Key: key, UpdatedAt: remote.UpdatedAt, Digest: remoteDigest}); err != nil {
				return nil, err
			}
		}
		return &SyncResult{Key: key, Outcome: OutcomeNoop}, nil

	case localKnownMatch && !remoteKnownMatch:
		// no unsynced local edits, remote moved on
		return s.pull(key, remote, remoteDigest)

	case remote.UpdatedAt.After(local.ModTime) && !remoteKnownMatch:
		// both sides may have moved
		return s.merge(ctx, key, local, remote, knownDigest, remoteDigest)

	default:
		// remote is ahead only because it read back our own last write
		// with clock skew, or local is strictly newer: push
		return s.push(ctx, key, local.Text, local.ModTime)
	}
}

func remoteDigestOf(remote *daybooksdk.EntryResponse) string {
	if remote.Digest != "" {
		return remote.Digest
	}
	return Digest(remote.Content)
}

// pushCreate handles a key the server has never seen. A missing local file
// is scaffolded from the entry template first.
func (s *Syncer) pushCreate(ctx context.Context, key string, local *LocalSnapshot) (*SyncResult, error) {
	if local == nil {
		text := NewEntryTemplate(key, s.order)
		now := time.Now()
		if err := s.docs.Write(key, text, now); err != nil {
			return nil, err
		}
		local = &LocalSnapshot{Text: text, ModTime: now}
	}
	return s.push(ctx, key, local.Text, local.ModTime)
}

// pull overwrites local with the remote snapshot and records agreement.
func (s *Syncer) pull(key string, remote *daybooksdk.EntryResponse, remoteDigest string) (*SyncResult, error) {
	if err := s.docs.Write(key, remote.Content, remote.UpdatedAt); err != nil {
		return nil, err
	}
	if err := s.store.Save(&StateRecord{Key: key, UpdatedAt: remote.UpdatedAt, Digest: remoteDigest}); err != nil {
		return nil, err
	}
	s.log.Info("pulled", "key", key, "remote_updated", remote.UpdatedAt)
	return &SyncResult{Key: key, Outcome: OutcomePulled}, nil
}

// push sends text to the remote store, then aligns local mtime to the
// server timestamp and records agreement.
func (s *Syncer) push(ctx context.Context, key string, text string, clientModified time.Time) (*SyncResult, error) {
	resp, err := s.remote.PutEntry(ctx, &daybooksdk.PutEntryParams{
		Date:           key,
		Content:        text,
		ClientModified: clientModified,
	})
	if err != nil {
		return nil, err
	}

	if err := s.docs.SetModTime(key, resp.UpdatedAt); err != nil {
		return nil, err
	}
	if err := s.store.Save(&StateRecord{Key: key, UpdatedAt: resp.UpdatedAt, Digest: Digest(text)}); err != nil {
		return nil, err
	}

	s.log.Info("pushed", "key", key, "bytes", len(text), "remote_updated", resp.UpdatedAt)
	return &SyncResult{Key: key, Outcome: OutcomePushed, BytesPushed: int64(len(text))}, nil
}

// merge runs the section-level three-way merge and, when needed, the human
// prompt.
func (s *Syncer) merge(ctx context.Context, key string, local *LocalSnapshot, remote *daybooksdk.EntryResponse, knownDigest, remoteDigest string) (*SyncResult, error) {
	// a newer remote timestamp over identical text is an mtime artifact,
	// not an edit: align and stop
	if textuallyIdentical(local.Text, remote.Content) {
		if err := s.docs.SetModTime(key, remote.UpdatedAt); err != nil {
			return nil, err
		}
		if err := s.store.Save(&StateRecord{Key: key, UpdatedAt: remote.UpdatedAt, Digest: remoteDigest}); err != nil {
			return nil, err
		}
		return &SyncResult{Key: key, Outcome: OutcomeNoop}, nil
	}

	localSecs, lerr := ParseSections(local.Text)
	remoteSecs, rerr := ParseSections(remote.Content)
	if lerr != nil || rerr != nil {
		// ParseFailure: fall back to a coarser two-way choice instead of
		// attempting a merge we cannot reason about
		s.log.Warn("sections unparseable, two-way fallback", "key", key,
			"local_err", lerr, "remote_err", rerr)
		choice, err := s.resolver.ResolveTwoWay(ctx, key, UnifiedDiff(local.Text, remote.Content))
		if err != nil {
			return nil, err
		}
		if choice == ResolutionAdoptRemote {
			return s.pull(key, remote, remoteDigest)
		}
		return s.push(ctx, key, local.Text, local.ModTime)
	}

	result := MergeSections(localSecs, remoteSecs, knownDigest, remoteDigest)
	merged := result.Merged.Reconstruct(s.order)

	if len(result.Conflicts) == 0 {
		if err := s.docs.Write(key, merged, remote.UpdatedAt); err != nil {
			return nil, err
		}

		if Digest(merged) == remoteDigest {
			// the merge contributed nothing the remote didn't already
			// have; record agreement without a push
			if err := s.store.Save(&StateRecord{Key: key, UpdatedAt: remote.UpdatedAt, Digest: remoteDigest}); err != nil {
				return nil, err
			}
			s.log.Info("merged", "key", key, "conflicts", 0, "pushed", false)
			return &SyncResult{Key: key, Outcome: OutcomeMerged}, nil
		}

		// remote also receives the consolidated sections
		res, err := s.push(ctx, key, merged, remote.UpdatedAt)
		if err != nil {
			return nil, err
		}
		s.log.Info("merged", "key", key, "conflicts", 0, "pushed", true)
		res.Outcome = OutcomeMerged
		return res, nil
	}

	s.log.Info("conflicts found", "key", key, "sections", strings.Join(result.Conflicts, ","))
	choice, err := s.resolver.ResolveConflicts(ctx, key, result.Conflicts, UnifiedDiff(local.Text, remote.Content))
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", key, err)
	}

	var res *SyncResult
	switch choice {
	case ResolutionAdoptRemote:
		res, err = s.pull(key, remote, remoteDigest)
	case ResolutionKeepLocal:
		res, err = s.push(ctx, key, local.Text, local.ModTime)
	case ResolutionAcceptMerge:
		if err := s.docs.Write(key, merged, remote.UpdatedAt); err != nil {
			return nil, err
		}
		res, err = s.push(ctx, key, merged, remote.UpdatedAt)
	default:
		return nil, fmt.Errorf("resolve %q: unknown resolution %d", key, choice)
	}
	if err != nil {
		return nil, err
	}

	res.Outcome = OutcomeMergedConflicts
	res.Conflicts = result.Conflicts
	res.Resolution = choice
	return res, nil
}

// textuallyIdentical ignores line-ending style and surrounding whitespace.
func textuallyIdentical(a, b string) bool {
	return strings.TrimSpace(NormalizeLineEndings(a)) == strings.TrimSpace(NormalizeLineEndings(b))
}

// NewEntryTemplate scaffolds a fresh journal entry for a date key.
func NewEntryTemplate(key string, order []string) string {
	if order == nil {
		order = DefaultSectionOrder
	}
	var b strings.Builder
	b.WriteString("# " + key + "\n")
	for _, name := range order {
		b.WriteString("\n" + headingPrefix + name + "\n")
	}
	return b.String()
}
