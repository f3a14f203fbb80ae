package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daybook-hq/daybook/internal/client/config"
	"github.com/daybook-hq/daybook/internal/client/sync"
	"github.com/daybook-hq/daybook/internal/client/workspace"
	"github.com/daybook-hq/daybook/internal/daybooksdk"
)

// Client ties together the workspace, the SDK, and the sync manager for
// one synchronization run.
type Client struct {
	sdk       *daybooksdk.DaybookSDK
	config    *config.Config
	workspace *workspace.Workspace
	resolver  sync.ConflictResolver
}

func New(cfg *config.Config, resolver sync.ConflictResolver) (*Client, error) {
	ws, err := workspace.NewWorkspace(cfg.DataDir, cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	sdk, err := daybooksdk.New(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create sdk: %w", err)
	}

	return &Client{
		config:    cfg,
		workspace: ws,
		sdk:       sdk,
		resolver:  resolver,
	}, nil
}

// Workspace exposes the client's directory layout.
func (c *Client) Workspace() *workspace.Workspace {
	return c.workspace
}

// SyncKey performs one synchronization run for a date key. The workspace is
// locked for the duration of the run.
func (c *Client) SyncKey(ctx context.Context, key string) (*sync.SyncResult, error) {
	slog.Info("daybook sync", "datadir", c.config.DataDir, "email", c.config.Email, "server", c.config.ServerURL, "key", key)

	if err := c.workspace.Setup(); err != nil {
		return nil, fmt.Errorf("failed to set up workspace: %w", err)
	}
	defer c.workspace.Unlock()

	if err := c.sdk.Login(ctx, c.config.Email, c.config.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	defer c.sdk.Close()

	manager, err := sync.NewManager(c.workspace, c.sdk, c.resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync manager: %w", err)
	}
	defer manager.Close()

	return manager.SyncKey(ctx, key)
}
