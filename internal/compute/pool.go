// Package compute provides the background boundary for geometry synthesis:
// a worker pool that accepts tagged requests and returns results
// asynchronously, plus an inline path running the identical algorithm. The
// two paths share one implementation, so their output is byte-identical for
// the same input; callers fall back to the inline path when the pool is
// saturated, shut down, or times out.
package compute

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SilverlightStudios/voxelpack/internal/geometry"
	"github.com/SilverlightStudios/voxelpack/internal/resolve"
	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
)

// Boundary errors.
var (
	ErrTimeout  = errors.New("geometry compute timed out")
	ErrShutdown = errors.New("compute pool is shut down")
)

// Key identifies one geometry computation. Requests with equal keys are
// interchangeable; a changed key means any pending result must be discarded.
type Key struct {
	Asset assetid.ID
	Props string // canonical "k=v,..." selector
	Seed  int64
	Tint  TintKey
}

// TintKey is the comparable form of an optional tint.
type TintKey struct {
	Set   bool
	Color geometry.RGB
}

// MakeTintKey converts an optional tint pointer to its comparable form.
func MakeTintKey(tint *geometry.RGB) TintKey {
	if tint == nil {
		return TintKey{}
	}
	return TintKey{Set: true, Color: *tint}
}

// Request asks for geometry for one resolved model. ID tags the request so
// unrelated concurrent results cannot be confused with each other.
type Request struct {
	ID    uint64
	Key   Key
	Model *resolve.ResolvedModel
	Tint  *geometry.RGB
}

// Result carries the finished buffers, tagged with the originating request.
type Result struct {
	ID      uint64
	Key     Key
	Buffers *geometry.Buffers
	Err     error
}

// Pool runs geometry computations on background workers.
type Pool struct {
	jobs   chan job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	nextID atomic.Uint64
}

type job struct {
	req Request
	out chan Result
}

// NewPool starts a pool with the given worker count and queue size.
func NewPool(workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobs:   make(chan job, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// NextID allocates a fresh request id.
func (p *Pool) NextID() uint64 {
	return p.nextID.Add(1)
}

// Submit queues a request without blocking. It returns false when the queue
// is full or the pool is shut down; the caller then runs Inline instead.
func (p *Pool) Submit(req Request) (<-chan Result, bool) {
	out := make(chan Result, 1)
	select {
	case <-p.ctx.Done():
		return nil, false
	default:
	}
	select {
	case p.jobs <- job{req: req, out: out}:
		return out, true
	default:
		return nil, false
	}
}

// Await waits for a result with a deadline. On timeout the pending result is
// abandoned (its buffered channel is simply dropped) and the caller falls
// back to the inline path.
func Await(ch <-chan Result, timeout time.Duration) (Result, error) {
	if timeout <= 0 {
		r := <-ch
		return r, r.Err
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case r := <-ch:
		return r, r.Err
	case <-timer.C:
		return Result{}, ErrTimeout
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case j := <-p.jobs:
			j.out <- Inline(j.req)
		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers. Pending submissions fail over to Inline.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// Inline runs the computation synchronously. This is the exact function the
// workers run, so the async and inline paths cannot drift apart.
func Inline(req Request) Result {
	buffers := geometry.ComputeModel(req.Model, req.Tint)
	return Result{ID: req.ID, Key: req.Key, Buffers: buffers}
}
