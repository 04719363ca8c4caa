// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Node dataset source: dispatch by URI, caching and reload.

package dataset

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gridsite/internal/cache"
	"gridsite/internal/config"
	"gridsite/internal/db"
	serr "gridsite/internal/errors"
	"gridsite/internal/logging"
	"gridsite/internal/metrics"
	"gridsite/internal/nodes"
)

// Kind is the storage behind a node dataset.
type Kind string

const (
	KindCSV      Kind = "csv"
	KindPostgres Kind = "postgres"
	KindSQLite   Kind = "sqlite"
)

// KindOf classifies a nodes_source value and returns the location to
// open: the DSN for PostgreSQL, the file path otherwise.
func KindOf(source string) (Kind, string) {
	s := strings.TrimSpace(source)
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return KindPostgres, s
	case strings.Contains(lower, "host=") || strings.Contains(lower, "dbname="):
		return KindPostgres, s
	case strings.HasPrefix(lower, "sqlite://"):
		return KindSQLite, s[len("sqlite://"):]
	case strings.HasPrefix(lower, "sqlite:"):
		return KindSQLite, s[len("sqlite:"):]
	}
	switch strings.ToLower(filepath.Ext(s)) {
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite, s
	}
	return KindCSV, s
}

// Info describes the currently loaded dataset.
type Info struct {
	Source   string   `json:"source"`
	Kind     Kind     `json:"kind"`
	Table    string   `json:"table,omitempty"`
	Rows     int      `json:"rows"`
	Columns  []string `json:"columns,omitempty"`
	Missing  []string `json:"missing_required_columns,omitempty"`
	LoadedAt string   `json:"loaded_at,omitempty"`
	Loads    int      `json:"loads"`
	Server   string   `json:"server_version,omitempty"`
}

// Source loads the node table on demand and keeps it cached. The cached
// table is shared read-only by all callers and replaced wholesale on
// reload.
type Source struct {
	cfg      config.Config
	kind     Kind
	location string
	logger   *zap.Logger
	metrics  *metrics.Metrics
	cache    *cache.Cache[nodes.Table]

	loadMu sync.Mutex
	mu     sync.RWMutex
	pool   *pgxpool.Pool
	info   Info
}

// New prepares a source; nothing is opened until the first load.
func New(cfg config.Config, logger *zap.Logger, m *metrics.Metrics) *Source {
	kind, location := KindOf(cfg.NodesSource)
	if logger == nil {
		logger = zap.NewNop()
	}
	table := ""
	if kind != KindCSV {
		table = cfg.NodesTable
	}
	return &Source{
		cfg:      cfg,
		kind:     kind,
		location: location,
		logger:   logging.WithFields(logger, logging.Fields{Component: "dataset", Source: cfg.NodesSource}),
		metrics:  m,
		cache:    cache.New[nodes.Table](),
		info:     Info{Source: logging.RedactDSN(cfg.NodesSource), Kind: kind, Table: table},
	}
}

func (s *Source) Kind() Kind { return s.kind }

// Path is the watched file for file-backed sources.
func (s *Source) Path() string {
	if s.kind == KindPostgres {
		return ""
	}
	return s.location
}

// Table returns the node table, loading it if the cache is empty or stale.
func (s *Source) Table(ctx context.Context) (nodes.Table, error) {
	if s.cfg.EnableCaching {
		if t, ok := s.cache.Get(s.cfg.NodesSource); ok {
			return t, nil
		}
	}
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.cfg.EnableCaching {
		if t, ok := s.cache.Get(s.cfg.NodesSource); ok {
			return t, nil
		}
	}
	return s.load(ctx)
}

// Reload forces a fresh load and replaces the cached table. On failure the
// previous table stays cached.
func (s *Source) Reload(ctx context.Context) (nodes.Table, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.load(ctx)
}

func (s *Source) load(ctx context.Context) (nodes.Table, error) {
	started := time.Now()
	t, err := s.read(ctx)
	s.metrics.ObserveLoad(string(s.kind), t.Len(), err)
	if err != nil {
		s.logger.Warn("node dataset load failed", zap.Error(err))
		if serr.ToToolError(err).Code == serr.CodeInternalError {
			err = serr.NewDataUnavailable(s.info.Source, err)
		}
		return nodes.Table{}, err
	}
	if s.cfg.EnableCaching {
		s.cache.Set(s.cfg.NodesSource, t, time.Duration(s.cfg.CacheTTLSeconds)*time.Second)
	}

	s.mu.Lock()
	s.info.Rows = t.Len()
	s.info.Columns = t.Columns
	s.info.Missing = missingRequired(t)
	s.info.LoadedAt = started.UTC().Format(time.RFC3339)
	s.info.Loads++
	s.mu.Unlock()

	s.logger.Info("node dataset loaded",
		zap.Int("rows", t.Len()),
		zap.Int("columns", len(t.Columns)),
		zap.Duration("took", time.Since(started)),
	)
	return t, nil
}

func (s *Source) read(ctx context.Context) (nodes.Table, error) {
	switch s.kind {
	case KindPostgres:
		pool, err := s.connect(ctx)
		if err != nil {
			return nodes.Table{}, err
		}
		return LoadPostgres(ctx, pool, s.cfg.NodesTable, s.cfg.NodesQuery)
	case KindSQLite:
		return LoadSQLite(ctx, s.location, s.cfg.NodesTable)
	default:
		return LoadCSV(s.location)
	}
}

func (s *Source) connect(ctx context.Context) (*pgxpool.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		return s.pool, nil
	}
	pool, err := db.NewPool(ctx, s.cfg)
	if err != nil {
		return nil, err
	}
	if v, err := db.GetServerVersion(ctx, pool); err == nil {
		s.info.Server = v
	}
	s.pool = pool
	return pool, nil
}

// Info returns a snapshot of the dataset description.
func (s *Source) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.info
	out.Columns = append([]string(nil), s.info.Columns...)
	out.Missing = append([]string(nil), s.info.Missing...)
	return out
}

// Close releases the PostgreSQL pool, if one was opened.
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}

func missingRequired(t nodes.Table) []string {
	var out []string
	for _, c := range nodes.RequiredColumns {
		if !t.HasColumn(c) {
			out = append(out, c)
		}
	}
	return out
}
