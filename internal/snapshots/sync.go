package snapshots

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"time"

	domainboard "github.com/preston-bernstein/football-slip-service/internal/domain/board"
	"github.com/preston-bernstein/football-slip-service/internal/logging"
	"github.com/preston-bernstein/football-slip-service/internal/timeutil"
)

// BoardSink receives boards restored from disk.
type BoardSink interface {
	ReplaceBoard(snap domainboard.Snapshot)
}

// MemoryPruner drops in-memory boards dated before a YYYY-MM-DD date.
type MemoryPruner interface {
	Prune(before string) int
}

// SyncConfig controls snapshot restore and pruning.
type SyncConfig struct {
	Enabled  bool
	Interval time.Duration
	Location *time.Location
}

// Syncer restores persisted boards on boot and prunes expired boards on a schedule.
type Syncer struct {
	store     Store
	writer    *Writer
	sink      BoardSink
	pruner    MemoryPruner
	cfg       SyncConfig
	logger    *slog.Logger
	now       func() time.Time
	newTicker func(time.Duration) *time.Ticker
}

// NewSyncer constructs a snapshot syncer. sink and pruner may be nil.
func NewSyncer(store Store, writer *Writer, sink BoardSink, pruner MemoryPruner, cfg SyncConfig, logger *slog.Logger) *Syncer {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Syncer{
		store:     store,
		writer:    writer,
		sink:      sink,
		pruner:    pruner,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		newTicker: time.NewTicker,
	}
}

// Run restores current boards and starts the pruning loop. It returns immediately.
func (s *Syncer) Run(ctx context.Context) {
	if s == nil || !s.cfg.Enabled || s.writer == nil {
		return
	}
	logging.Info(s.logger, "snapshot sync starting", "interval", s.cfg.Interval.String())
	restored := s.Restore()
	logging.Info(s.logger, "snapshots restored", logging.FieldCount, restored)
	go s.loop(ctx)
}

// Restore loads every stored board dated today or later into the sink.
func (s *Syncer) Restore() int {
	if s == nil || s.writer == nil || s.store == nil || s.sink == nil {
		return 0
	}
	m, err := ReadManifest(s.writer.BasePath())
	if err != nil {
		logging.Warn(s.logger, "snapshot manifest unreadable", logging.FieldError, err)
		return 0
	}
	today := s.today()

	keys := make([]string, 0, len(m.Boards))
	for key := range m.Boards {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	restored := 0
	for _, key := range keys {
		leagueKey, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		for _, date := range m.Boards[key].Dates {
			if date < today {
				continue
			}
			snap, err := s.store.LoadBoard(leagueKey, date)
			if err != nil {
				logging.Warn(s.logger, "snapshot restore failed",
					logging.FieldLeague, leagueKey,
					logging.FieldDate, date,
					logging.FieldError, err,
				)
				continue
			}
			s.sink.ReplaceBoard(snap)
			restored++
		}
	}
	return restored
}

// Prune drops expired boards from disk and past boards from memory.
func (s *Syncer) Prune() {
	if s == nil {
		return
	}
	if s.writer != nil {
		removed, err := s.writer.Prune()
		if err != nil {
			logging.Warn(s.logger, "snapshot prune failed", logging.FieldError, err)
		} else if removed > 0 {
			logging.Info(s.logger, "snapshots pruned", logging.FieldCount, removed)
		}
	}
	if s.pruner != nil {
		if removed := s.pruner.Prune(s.today()); removed > 0 {
			logging.Debug(s.logger, "past boards dropped from memory", logging.FieldCount, removed)
		}
	}
}

func (s *Syncer) loop(ctx context.Context) {
	ticker := s.newTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Prune()
		}
	}
}

func (s *Syncer) today() string {
	return timeutil.FormatDate(s.now().In(s.cfg.Location))
}
