package board

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/avelichko/fabplan/internal/contract"
	"github.com/avelichko/fabplan/internal/domain"
)

// ErrNoBoard is returned when a gesture arrives before any successful fetch.
var ErrNoBoard = errors.New("board has not been fetched")

// DataAccess is the slice of the REST backend the coordinator needs. The
// server treats every reorder payload as a full replacement of sibling
// order, so resubmitting the same payload is safe.
type DataAccess interface {
	FetchBoard(ctx context.Context) ([]*domain.Stage, error)
	ReorderStages(ctx context.Context, productID string, orders []contract.StageOrder) error
	ReorderProducts(ctx context.Context, orders []contract.ProductOrder) error
	ReorderProjects(ctx context.Context, orders []contract.ProjectOrder) error
}

// GestureState tracks one reorder gesture through its lifecycle.
type GestureState string

const (
	StateIdle       GestureState = "idle"
	StateDragging   GestureState = "dragging"
	StateDropped    GestureState = "dropped"
	StatePersisting GestureState = "persisting"
	StateCommitted  GestureState = "committed"
	StateRolledBack GestureState = "rolled_back"
)

// Gesture is the raw outcome of a drop: the grabbed item's token and the
// token of the item it was dropped on. An empty target means the gesture
// was cancelled.
type Gesture struct {
	SourceToken string
	TargetToken string
}

// PersistFunc issues the single persistence request for an applied gesture.
// It is safe to run off the UI goroutine; it touches no coordinator state.
type PersistFunc func(ctx context.Context) error

// Coordinator owns the board state and runs the optimistic reorder
// protocol: apply the move locally first, then persist, and on any
// persistence failure discard local state by re-fetching ground truth.
//
// All methods except the returned PersistFunc must be called from the UI
// event loop; the coordinator itself takes no locks. At most one gesture is
// in flight at a time, which the interaction model of the presentation
// layer already guarantees.
type Coordinator struct {
	data DataAccess
	log  *zap.Logger

	filter StatusFilter
	flat   []*domain.Stage
	snap   *Snapshot
	stale  bool // snap must be rebuilt from flat

	fetched bool
	state   GestureState
	seq     uint64 // gesture counter, for log correlation only
}

// NewCoordinator creates a coordinator over the given backend. A nil logger
// disables logging.
func NewCoordinator(data DataAccess, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{
		data:   data,
		log:    log,
		filter: DefaultStatusFilter(),
		state:  StateIdle,
	}
}

// Refetch replaces the flat collection with the server's current truth and
// marks the snapshot for rebuild. On fetch failure the previous board state
// is left untouched.
func (c *Coordinator) Refetch(ctx context.Context) error {
	flat, err := c.data.FetchBoard(ctx)
	if err != nil {
		return fmt.Errorf("fetching board: %w", err)
	}
	c.flat = flat
	c.fetched = true
	c.stale = true
	return nil
}

// Snapshot returns the current board tree, rebuilding it only when the flat
// collection or the filter has changed since the last build.
func (c *Coordinator) Snapshot() *Snapshot {
	if c.snap == nil || c.stale {
		c.snap = BuildSnapshot(c.flat, c.filter)
		c.stale = false
	}
	return c.snap
}

// Filter returns the active project status filter.
func (c *Coordinator) Filter() StatusFilter { return c.filter }

// SetFilter replaces the project status filter. Filtering is a display
// predicate only; it never changes any order index.
func (c *Coordinator) SetFilter(f StatusFilter) {
	c.filter = f
	c.stale = true
}

// State returns the current gesture state.
func (c *Coordinator) State() GestureState { return c.state }

// BeginDrag marks a grab. Purely bookkeeping; nothing is mutated until the
// drop.
func (c *Coordinator) BeginDrag(token string) {
	c.seq++
	c.state = StateDragging
	c.log.Debug("drag started", zap.Uint64("gesture", c.seq), zap.String("token", token))
}

// CancelDrag returns the coordinator to idle without touching board state.
func (c *Coordinator) CancelDrag() {
	c.state = StateIdle
}

// Drop applies the gesture optimistically and returns the persistence call
// for the presentation layer to run asynchronously. A nil PersistFunc with
// a nil error means the gesture was a no-op (cancelled drop, unknown ids,
// or no movement) and the coordinator is idle again.
func (c *Coordinator) Drop(g Gesture) (PersistFunc, error) {
	c.state = StateDropped

	if g.TargetToken == "" || g.TargetToken == g.SourceToken {
		c.state = StateIdle
		return nil, nil
	}
	if !c.fetched {
		c.state = StateIdle
		return nil, ErrNoBoard
	}

	srcKind, srcID, err := DecodeToken(g.SourceToken)
	if err != nil {
		c.state = StateIdle
		return nil, err
	}
	dstKind, dstID, err := DecodeToken(g.TargetToken)
	if err != nil {
		c.state = StateIdle
		return nil, err
	}
	if srcKind != dstKind {
		// Cross-kind drops never share a drag context; treat as cancelled.
		c.log.Debug("cross-kind drop ignored",
			zap.String("source", g.SourceToken), zap.String("target", g.TargetToken))
		c.state = StateIdle
		return nil, nil
	}

	var persist PersistFunc
	switch srcKind {
	case KindStage:
		persist = c.applyStageMove(srcID, dstID)
	case KindProduct:
		persist = c.applyProductMove(srcID, dstID)
	case KindProject:
		persist = c.applyProjectMove(srcID, dstID)
	}
	if persist == nil {
		c.state = StateIdle
		return nil, nil
	}

	c.state = StatePersisting
	c.log.Info("reorder applied optimistically",
		zap.Uint64("gesture", c.seq),
		zap.String("kind", string(srcKind)),
		zap.String("source", srcID),
		zap.String("target", dstID))
	return persist, nil
}

// OnPersistResult completes the gesture. On success the optimistic state
// becomes authoritative until the next fetch; on failure the whole board is
// re-fetched, which also revalidates anything a stale concurrent response
// may have touched. A late result from a superseded request is harmless for
// the same reason: the refetch restores ground truth.
func (c *Coordinator) OnPersistResult(ctx context.Context, persistErr error) error {
	if persistErr == nil {
		c.state = StateCommitted
		c.log.Debug("reorder committed", zap.Uint64("gesture", c.seq))
		c.state = StateIdle
		return nil
	}

	c.state = StateRolledBack
	c.log.Warn("reorder persistence failed, rolling back",
		zap.Uint64("gesture", c.seq), zap.Error(persistErr))
	err := c.Refetch(ctx)
	c.state = StateIdle
	if err != nil {
		return fmt.Errorf("rollback refetch: %w", err)
	}
	return nil
}

// applyStageMove reorders stages within one product. Both ids must belong
// to the same product; the presentation layer's drag zones already restrict
// gestures to one sibling list.
func (c *Coordinator) applyStageMove(sourceID, targetID string) PersistFunc {
	snap := c.Snapshot()
	_, srcProd := snap.ProductByStage(sourceID)
	_, dstProd := snap.ProductByStage(targetID)
	if srcProd == nil || dstProd == nil || srcProd.ID != dstProd.ID {
		return nil
	}

	reordered := MoveAndReindex(srcProd.Stages, sourceID, targetID)
	if sameIDOrder(reordered, srcProd.Stages, (*domain.Stage).ItemID) {
		return nil
	}
	srcProd.Stages = reordered

	// Patch the flat collection so views built from it stay consistent.
	newOrder := make(map[string]int, len(reordered))
	orders := make([]contract.StageOrder, 0, len(reordered))
	for _, st := range reordered {
		newOrder[st.ID] = *st.OrderIndex
		orders = append(orders, contract.StageOrder{ID: st.ID, Order: *st.OrderIndex})
	}
	for _, st := range c.flat {
		if o, ok := newOrder[st.ID]; ok {
			st.OrderIndex = intPtr(o)
		}
	}

	productID := srcProd.ID
	return func(ctx context.Context) error {
		return c.data.ReorderStages(ctx, productID, orders)
	}
}

// applyProductMove reorders products within one project.
func (c *Coordinator) applyProductMove(sourceID, targetID string) PersistFunc {
	snap := c.Snapshot()
	srcProj := snap.ProjectByProduct(sourceID)
	dstProj := snap.ProjectByProduct(targetID)
	if srcProj == nil || dstProj == nil || srcProj.ID != dstProj.ID {
		return nil
	}

	reordered := MoveAndReindex(srcProj.Products, sourceID, targetID)
	if sameIDOrder(reordered, srcProj.Products, (*ProductRow).ItemID) {
		return nil
	}
	srcProj.Products = reordered

	newOrder := make(map[string]int, len(reordered))
	orders := make([]contract.ProductOrder, 0, len(reordered))
	for _, p := range reordered {
		newOrder[p.ID] = *p.OrderIndex
		orders = append(orders, contract.ProductOrder{ID: p.ID, OrderIndex: *p.OrderIndex})
	}
	for _, st := range c.flat {
		if o, ok := newOrder[st.ProductID]; ok {
			st.ProductOrderIndex = intPtr(o)
		}
	}

	return func(ctx context.Context) error {
		return c.data.ReorderProducts(ctx, orders)
	}
}

// applyProjectMove reorders the top-level project list.
func (c *Coordinator) applyProjectMove(sourceID, targetID string) PersistFunc {
	snap := c.Snapshot()

	reordered := MoveAndReindex(snap.Projects, sourceID, targetID)
	if sameIDOrder(reordered, snap.Projects, (*ProjectRow).ItemID) {
		return nil
	}
	snap.Projects = reordered

	newOrder := make(map[string]int, len(reordered))
	orders := make([]contract.ProjectOrder, 0, len(reordered))
	for _, p := range reordered {
		newOrder[p.ID] = *p.OrderIndex
		orders = append(orders, contract.ProjectOrder{ID: p.ID, OrderIndex: *p.OrderIndex})
	}
	for _, st := range c.flat {
		if o, ok := newOrder[st.ProjectID]; ok {
			st.ProjectOrderIndex = intPtr(o)
		}
	}

	return func(ctx context.Context) error {
		return c.data.ReorderProjects(ctx, orders)
	}
}

// sameIDOrder reports whether two sibling lists carry the same identities
// in the same sequence.
func sameIDOrder[T any](a, b []T, idOf func(T) string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if idOf(a[i]) != idOf(b[i]) {
			return false
		}
	}
	return true
}

func intPtr(v int) *int { return &v }
