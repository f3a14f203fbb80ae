package sync

import (
	"context"
	"fmt"

	"github.com/daybook-hq/daybook/internal/client/workspace"
	"github.com/daybook-hq/daybook/internal/daybooksdk"
)

// SyncManager wires the syncer to a workspace and SDK.
type SyncManager struct {
	syncer *Syncer
	store  StateStore
}

func NewManager(ws *workspace.Workspace, sdk *daybooksdk.DaybookSDK, resolver ConflictResolver) (*SyncManager, error) {
	order, err := LoadSectionOrder(ws.SectionsFile)
	if err != nil {
		return nil, fmt.Errorf("load section order: %w", err)
	}

	store, err := NewSqliteStateStore(ws.StateDBPath)
	if err != nil {
		return nil, fmt.Errorf("open sync state store: %w", err)
	}

	docs := NewFSDocumentStore(ws.JournalDir)
	syncer := NewSyncer(sdk.Journal, docs, store, resolver, WithSectionOrder(order))

	return &SyncManager{
		syncer: syncer,
		store:  store,
	}, nil
}

// SyncKey runs one synchronization for the given date key.
func (m *SyncManager) SyncKey(ctx context.Context, key string) (*SyncResult, error) {
	return m.syncer.Sync(ctx, key)
}

func (m *SyncManager) Close() error {
	return m.store.Close()
}
