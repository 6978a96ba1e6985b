// Package session ties the resolution pipeline together for one consumer: a
// catalog reference, the enabled-pack order, the placement seed, the compute
// pool and the texture loader, plus the geometry cache keyed by everything a
// result depends on. Seed and pack-order changes supersede in-flight work;
// stale results are discarded instead of poisoning the cache.
package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SilverlightStudios/voxelpack/internal/assets"
	"github.com/SilverlightStudios/voxelpack/internal/compute"
	"github.com/SilverlightStudios/voxelpack/internal/geometry"
	"github.com/SilverlightStudios/voxelpack/internal/resolve"
	"github.com/SilverlightStudios/voxelpack/internal/texture"
	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
	"github.com/SilverlightStudios/voxelpack/pkg/formats"
)

// Options configures a session. Zero values fall back to sane defaults.
type Options struct {
	Workers   int
	QueueSize int
	// Timeout bounds one async geometry wait before the caller falls back
	// to the inline path.
	Timeout time.Duration
	Log     *zap.Logger
}

// Session owns the per-consumer resolution state.
type Session struct {
	log      *zap.Logger
	catalog  *assets.Catalog
	pool     *compute.Pool
	textures *texture.Loader
	timeout  time.Duration

	mu       sync.Mutex
	enabled  []assets.PackID
	seed     int64
	gen      uint64 // bumped by every supersede event
	cache    map[compute.Key]*geometry.Buffers
	inflight map[compute.Key]*flight
}

// flight is one in-progress geometry computation. Waiters block on done and
// then re-read the cache, so everyone observes the latest result for the key.
type flight struct {
	done chan struct{}
	gen  uint64
}

// New creates a session over the catalog with the given enabled order.
func New(catalog *assets.Catalog, enabled []assets.PackID, opts Options) *Session {
	if opts.Workers == 0 {
		opts.Workers = 2
	}
	if opts.QueueSize == 0 {
		opts.QueueSize = 64
	}
	if opts.Timeout == 0 {
		opts.Timeout = 2 * time.Second
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Session{
		log:      opts.Log,
		catalog:  catalog,
		pool:     compute.NewPool(opts.Workers, opts.QueueSize),
		textures: texture.NewLoader(catalog, enabled),
		timeout:  opts.Timeout,
		enabled:  append([]assets.PackID(nil), enabled...),
		cache:    make(map[compute.Key]*geometry.Buffers),
		inflight: make(map[compute.Key]*flight),
	}
}

// Close shuts the compute pool down. Geometry calls made afterwards still
// succeed through the inline path.
func (s *Session) Close() {
	s.pool.Shutdown()
}

// Textures exposes the session's texture loader.
func (s *Session) Textures() *texture.Loader { return s.textures }

// Seed returns the current placement seed.
func (s *Session) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// SetSeed replaces the placement seed. Every cached buffer depends on the
// seed through its key, so the cache is dropped and in-flight work is
// superseded.
func (s *Session) SetSeed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seed == s.seed {
		return
	}
	s.seed = seed
	s.supersedeLocked()
}

// SetPackOrder replaces the enabled-pack order, superseding everything
// derived from the old winners.
func (s *Session) SetPackOrder(order []assets.PackID) {
	s.mu.Lock()
	s.enabled = append([]assets.PackID(nil), order...)
	s.supersedeLocked()
	s.mu.Unlock()
	s.textures.SetOrder(order)
}

// InvalidateAsset drops cached geometry derived from one asset id, e.g.
// after a live pack reload, and evicts its decoded texture.
func (s *Session) InvalidateAsset(id assetid.ID) {
	s.mu.Lock()
	for key := range s.cache {
		if key.Asset == id {
			delete(s.cache, key)
		}
	}
	// In-flight work for the asset is left to finish; its generation check
	// keeps the stale result out of the cache.
	s.gen++
	s.mu.Unlock()
	s.textures.Invalidate(id)
}

func (s *Session) supersedeLocked() {
	s.gen++
	s.cache = make(map[compute.Key]*geometry.Buffers)
}

// Geometry returns the buffers for a block under the given properties and
// optional tint. Concurrent calls with the same key share a single
// computation; resolution failures degrade to the default cube with the
// placeholder texture and are reported at warn level, never as an error.
func (s *Session) Geometry(block assetid.ID, props map[string]string, tint *geometry.RGB) *geometry.Buffers {
	for {
		s.mu.Lock()
		key := compute.Key{
			Asset: block,
			Props: formats.SelectorKey(props),
			Seed:  s.seed,
			Tint:  compute.MakeTintKey(tint),
		}
		if buf, ok := s.cache[key]; ok {
			s.mu.Unlock()
			return buf
		}
		if fl, ok := s.inflight[key]; ok {
			s.mu.Unlock()
			<-fl.done
			// Re-read: the winner published to the cache, unless a
			// supersede event discarded it, in which case we compute
			// against the new state.
			continue
		}
		fl := &flight{done: make(chan struct{}), gen: s.gen}
		s.inflight[key] = fl
		enabled := s.enabled
		s.mu.Unlock()

		buf := s.compute(key, block, props, tint, enabled)

		s.mu.Lock()
		if s.gen == fl.gen {
			s.cache[key] = buf
		} else {
			s.log.Debug("discarding superseded geometry", zap.Stringer("asset", block))
		}
		delete(s.inflight, key)
		close(fl.done)
		s.mu.Unlock()
		return buf
	}
}

func (s *Session) compute(key compute.Key, block assetid.ID, props map[string]string, tint *geometry.RGB, enabled []assets.PackID) *geometry.Buffers {
	model, err := resolve.New(s.catalog, enabled).ResolveBlockState(block, props, key.Seed)
	if err != nil {
		s.log.Warn("resolution failed, using fallback cube",
			zap.Stringer("asset", block),
			zap.String("props", key.Props),
			zap.Error(err))
		return geometry.Compute(geometry.FallbackElements(), geometry.FallbackTextures(), tint)
	}
	if err := model.UnresolvedErr(); err != nil {
		// Affected faces are skipped; the rest of the model still renders.
		s.log.Warn("dangling texture variables",
			zap.Stringer("asset", block),
			zap.Error(err))
	}

	req := compute.Request{ID: s.pool.NextID(), Key: key, Model: model, Tint: tint}
	if ch, ok := s.pool.Submit(req); ok {
		res, err := compute.Await(ch, s.timeout)
		if err == nil && res.ID == req.ID {
			return res.Buffers
		}
		s.log.Warn("async geometry failed over to inline",
			zap.Stringer("asset", block), zap.Error(err))
	}
	return compute.Inline(req).Buffers
}
