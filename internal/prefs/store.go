// Package prefs persists small per-user UI preferences — collapsed project
// and product sets and the project status filter — in a local SQLite
// key-value table. It is a best-effort cache, never a correctness
// dependency: reads fall back to documented defaults and write failures are
// logged and swallowed.
package prefs

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/avelichko/fabplan/internal/board"
	"github.com/avelichko/fabplan/internal/db"
	"github.com/avelichko/fabplan/internal/domain"
)

// Preference kinds; each becomes a key namespace scoped by user id.
const (
	kindCollapsedProjects = "collapsed_projects"
	kindCollapsedProducts = "collapsed_products"
	kindStatusFilters     = "status_filters"
)

// Store reads and writes preference values for one user.
type Store struct {
	db     db.Querier
	userID string
	log    *zap.Logger
}

// NewStore creates a Store scoped to the given user. A nil logger disables
// logging.
func NewStore(conn db.Querier, userID string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: conn, userID: userID, log: log}
}

func (s *Store) key(kind string) string {
	return kind + ":" + s.userID
}

// load reads and JSON-decodes one namespaced value; any miss or decode
// failure reports ok=false and the caller falls back to its default.
func (s *Store) load(ctx context.Context, kind string, out any) bool {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = ?`, s.key(kind)).Scan(&raw)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log.Warn("corrupt preference value, using default",
			zap.String("key", s.key(kind)), zap.Error(err))
		return false
	}
	return true
}

// save JSON-encodes and upserts one namespaced value. Failures are logged
// and swallowed.
func (s *Store) save(ctx context.Context, kind string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("encoding preference failed", zap.String("key", s.key(kind)), zap.Error(err))
		return
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key(kind), string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		s.log.Warn("saving preference failed", zap.String("key", s.key(kind)), zap.Error(err))
	}
}

// LoadCollapsedProjects returns the set of collapsed project ids, empty
// when nothing is stored.
func (s *Store) LoadCollapsedProjects(ctx context.Context) map[string]bool {
	return s.loadSet(ctx, kindCollapsedProjects)
}

// SaveCollapsedProjects persists the collapsed project id set.
func (s *Store) SaveCollapsedProjects(ctx context.Context, set map[string]bool) {
	s.saveSet(ctx, kindCollapsedProjects, set)
}

// LoadCollapsedProducts returns the set of collapsed product ids, empty
// when nothing is stored.
func (s *Store) LoadCollapsedProducts(ctx context.Context) map[string]bool {
	return s.loadSet(ctx, kindCollapsedProducts)
}

// SaveCollapsedProducts persists the collapsed product id set.
func (s *Store) SaveCollapsedProducts(ctx context.Context, set map[string]bool) {
	s.saveSet(ctx, kindCollapsedProducts, set)
}

func (s *Store) loadSet(ctx context.Context, kind string) map[string]bool {
	var idList []string
	if !s.load(ctx, kind, &idList) {
		return map[string]bool{}
	}
	set := make(map[string]bool, len(idList))
	for _, id := range idList {
		set[id] = true
	}
	return set
}

// saveSet stores the set as a sorted JSON array so the stored value is
// stable and human-inspectable.
func (s *Store) saveSet(ctx context.Context, kind string, set map[string]bool) {
	idList := make([]string, 0, len(set))
	for id, on := range set {
		if on {
			idList = append(idList, id)
		}
	}
	sort.Strings(idList)
	s.save(ctx, kind, idList)
}

// LoadStatusFilter returns the stored project status filter, or the
// all-true default.
func (s *Store) LoadStatusFilter(ctx context.Context) board.StatusFilter {
	var raw map[string]bool
	if !s.load(ctx, kindStatusFilters, &raw) {
		return board.DefaultStatusFilter()
	}
	filter := board.DefaultStatusFilter()
	for st, on := range raw {
		if domain.ValidProjectStatuses[st] {
			filter[domain.ProjectStatus(st)] = on
		}
	}
	return filter
}

// SaveStatusFilter persists the project status filter.
func (s *Store) SaveStatusFilter(ctx context.Context, filter board.StatusFilter) {
	raw := make(map[string]bool, len(filter))
	for st, on := range filter {
		raw[string(st)] = on
	}
	s.save(ctx, kindStatusFilters, raw)
}

// Toggle returns a new set with id removed if present, added otherwise.
// The input set is not mutated.
func Toggle(set map[string]bool, id string) map[string]bool {
	out := make(map[string]bool, len(set)+1)
	for k, v := range set {
		if v {
			out[k] = true
		}
	}
	if out[id] {
		delete(out, id)
	} else {
		out[id] = true
	}
	return out
}
