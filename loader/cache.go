package loader

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nonsonwune/student_results/config"
	"github.com/nonsonwune/student_results/models"
)

// Cache memoizes loads for the life of the process. Each distinct source and
// schema is loaded at most once; every later call gets the same table, or
// the same error if that load failed.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	logger  *slog.Logger
}

type cacheEntry struct {
	once  sync.Once
	table *models.Table
	err   error
}

// NewCache creates an empty cache. A nil logger falls back to slog.Default().
func NewCache(logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		entries: make(map[string]*cacheEntry),
		logger:  logger,
	}
}

// Load returns the table for src, reading it on first use.
func (c *Cache) Load(ctx context.Context, src Source, schema config.Schema) (*models.Table, error) {
	key := src.Key() + "|" + strings.Join(schema.Columns(), ",")

	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok {
		entry = &cacheEntry{}
		c.entries[key] = entry
	}
	c.mu.Unlock()

	if ok {
		c.logger.DebugContext(ctx, "roster cache hit", slog.String("source", src.Key()))
	}

	entry.once.Do(func() {
		start := time.Now()
		entry.table, entry.err = Load(ctx, src, schema)
		if entry.err != nil {
			c.logger.ErrorContext(ctx, "failed to load roster",
				slog.String("source", src.Key()),
				slog.String("error", entry.err.Error()))
			return
		}
		c.logger.InfoContext(ctx, "roster loaded",
			slog.String("source", src.Key()),
			slog.Int("records", len(entry.table.Records)),
			slog.Int("subjects", len(entry.table.Subjects)),
			slog.Duration("duration", time.Since(start)))
		if n := entry.table.IncompleteCount(); n > 0 {
			c.logger.WarnContext(ctx, "roster has incomplete rows",
				slog.String("source", src.Key()),
				slog.Int("incomplete", n))
		}
	})

	return entry.table, entry.err
}
