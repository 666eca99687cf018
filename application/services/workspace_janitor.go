package services

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/config"
)

const sweepInterval = 5 * time.Minute

type WorkspaceJanitor struct {
	workspace  *config.WorkspaceConfig
	dispatcher outbound.TaskDispatcher
	logger     outbound.LoggerPort
}

func NewWorkspaceJanitor(
	workspace *config.WorkspaceConfig,
	dispatcher outbound.TaskDispatcher,
	logger outbound.LoggerPort,
) *WorkspaceJanitor {
	return &WorkspaceJanitor{
		workspace:  workspace,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Start schedules the periodic sweep on the worker pool. A TTL of zero means
// artifacts persist until the operator cleans up, and no sweep runs.
func (j *WorkspaceJanitor) Start(ctx context.Context) error {
	if j.workspace.TtlMinutes <= 0 {
		j.logger.Info("Workspace TTL disabled, rendered artifacts persist indefinitely")
		return nil
	}
	return j.dispatcher.Submit(func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.sweep()
			}
		}
	})
}

// sweep removes expired request directories. Only entries whose name parses
// as a request ID are touched; the workspace root may be a shared temp dir.
func (j *WorkspaceJanitor) sweep() {
	entries, err := os.ReadDir(j.workspace.Root)
	if err != nil {
		j.logger.Error(err, "Failed to read workspace root during sweep")
		return
	}

	ttl := time.Duration(j.workspace.TtlMinutes) * time.Minute
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := uuid.Parse(entry.Name()); err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < ttl {
			continue
		}
		dir := filepath.Join(j.workspace.Root, entry.Name())
		if err := os.RemoveAll(dir); err != nil {
			j.logger.ErrorWithFields(err, "Failed to remove expired workspace", map[string]interface{}{
				"dir": dir,
			})
			continue
		}
		removed++
	}

	if removed > 0 {
		j.logger.InfoWithFields("Swept expired request workspaces", map[string]interface{}{
			"removed": removed,
		})
	}
}
