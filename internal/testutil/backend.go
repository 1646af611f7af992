package testutil

import (
	"context"
	"sync/atomic"

	"github.com/avelichko/fabplan/internal/board"
	"github.com/avelichko/fabplan/internal/contract"
	"github.com/avelichko/fabplan/internal/domain"
)

// FakeBackend is an in-memory board.DataAccess for coordinator tests. It
// serves a scripted flat stage list, records every reorder payload it
// receives, and can be told to fail the next N persistence calls.
type FakeBackend struct {
	// Flat is returned by FetchBoard. Tests mutate it to simulate the
	// server's ground truth changing between fetches.
	Flat []*domain.Stage

	// FailNext makes that many persistence calls return PersistErr.
	FailNext int32
	// PersistErr is the error injected by FailNext (required when set).
	PersistErr error

	FetchCount atomic.Int32

	StageCalls   []StageReorderCall
	ProductCalls [][]contract.ProductOrder
	ProjectCalls [][]contract.ProjectOrder
}

// StageReorderCall records one ReorderStages invocation.
type StageReorderCall struct {
	ProductID string
	Orders    []contract.StageOrder
}

var _ board.DataAccess = (*FakeBackend)(nil)

func (f *FakeBackend) FetchBoard(ctx context.Context) ([]*domain.Stage, error) {
	f.FetchCount.Add(1)
	// Hand out copies so coordinator mutations never leak into the script.
	out := make([]*domain.Stage, len(f.Flat))
	for i, s := range f.Flat {
		c := *s
		out[i] = &c
	}
	return out, nil
}

func (f *FakeBackend) ReorderStages(ctx context.Context, productID string, orders []contract.StageOrder) error {
	f.StageCalls = append(f.StageCalls, StageReorderCall{ProductID: productID, Orders: orders})
	return f.nextErr()
}

func (f *FakeBackend) ReorderProducts(ctx context.Context, orders []contract.ProductOrder) error {
	f.ProductCalls = append(f.ProductCalls, orders)
	return f.nextErr()
}

func (f *FakeBackend) ReorderProjects(ctx context.Context, orders []contract.ProjectOrder) error {
	f.ProjectCalls = append(f.ProjectCalls, orders)
	return f.nextErr()
}

func (f *FakeBackend) nextErr() error {
	if atomic.AddInt32(&f.FailNext, -1) >= 0 {
		return f.PersistErr
	}
	return nil
}
