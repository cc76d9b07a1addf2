package server

import (
	"log/slog"
	"time"

	"github.com/preston-bernstein/football-slip-service/internal/config"
	"github.com/preston-bernstein/football-slip-service/internal/snapshots"
	"github.com/preston-bernstein/football-slip-service/internal/store"
)

type snapshotComponents struct {
	store  snapshots.Store
	writer *snapshots.Writer
}

// buildSnapshots returns nil components when snapshots are disabled.
func buildSnapshots(cfg config.Config) snapshotComponents {
	if !cfg.Snapshots.Enabled || cfg.Snapshots.Folder == "" {
		return snapshotComponents{}
	}
	return snapshotComponents{
		store:  snapshots.NewFSStore(cfg.Snapshots.Folder),
		writer: snapshots.NewWriter(cfg.Snapshots.Folder, cfg.Snapshots.RetentionDays),
	}
}

// syncer restores boards into sink on boot and prunes disk and memory on a schedule.
func (c snapshotComponents) syncer(cfg config.Config, sink snapshots.BoardSink, memory *store.MemoryStore, loc *time.Location, logger *slog.Logger) *snapshots.Syncer {
	if c.writer == nil {
		return nil
	}
	return snapshots.NewSyncer(c.store, c.writer, sink, memory, snapshots.SyncConfig{
		Enabled:  cfg.Snapshots.Enabled,
		Interval: cfg.Snapshots.PruneInterval,
		Location: loc,
	}, logger)
}
