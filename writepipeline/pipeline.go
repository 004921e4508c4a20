package writepipeline

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Enielezi/FlexSearch/internal/engine"
	"github.com/Enielezi/FlexSearch/internal/ferrors"
	"github.com/Enielezi/FlexSearch/router"
)

// Options configures a Pipeline's worker pool.
type Options struct {
	// Workers is the number of cooperative write workers. Default: one
	// per logical CPU (§4.5).
	Workers int
	// Capacity bounds the command queue; producers block (backpressure)
	// once it is full (§4.5, default 1000).
	Capacity int
}

// DefaultOptions returns the spec's defaults: one worker per logical CPU,
// capacity 1000.
func DefaultOptions() Options {
	return Options{Workers: runtime.NumCPU(), Capacity: 1000}
}

// Pipeline is the bounded, ordered write command stream and its worker
// pool.
type Pipeline struct {
	resolve Resolver
	queue   chan Command
	wg      sync.WaitGroup
}

// New starts a Pipeline with opts.Workers workers reading from a
// capacity-bounded queue, resolving index runtimes via resolve.
func New(resolve Resolver, opts Options) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Capacity <= 0 {
		opts.Capacity = 1000
	}
	p := &Pipeline{resolve: resolve, queue: make(chan Command, opts.Capacity)}
	for i := 0; i < opts.Workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues cmd and blocks until it is applied, returning its
// result. Commands with the same id are applied in submission order
// because the queue is a single ordered channel and routing is
// deterministic (§5).
func (p *Pipeline) Submit(cmd Command) Result {
	cmd.reply = make(chan Result, 1)
	p.queue <- cmd
	return <-cmd.reply
}

// SubmitAsync enqueues cmd without waiting for its result; reply, if
// non-nil, is sent the command's Result exactly once.
func (p *Pipeline) SubmitAsync(cmd Command, reply chan Result) {
	cmd.reply = reply
	p.queue <- cmd
}

// Shutdown closes the command queue and waits for all workers to drain
// it.
func (p *Pipeline) Shutdown() {
	close(p.queue)
	p.wg.Wait()
}

func (p *Pipeline) worker() {
	defer p.wg.Done()
	templates := make(map[string]*template) // index name -> this worker's template

	for cmd := range p.queue {
		res := p.apply(cmd, templates)
		if cmd.reply != nil {
			cmd.reply <- res
		}
	}
}

func (p *Pipeline) apply(cmd Command, templates map[string]*template) Result {
	rt, ok := p.resolve(cmd.Index)
	if !ok {
		return fail(ferrors.ErrIndexNotFound)
	}

	switch cmd.Kind {
	case Create:
		return p.applyCreate(rt, cmd, templates)
	case Update:
		return p.applyUpdate(rt, cmd, templates)
	case Delete:
		return p.applyDelete(rt, cmd)
	case DeleteByIndex:
		return p.applyDeleteByIndex(rt)
	case Commit:
		return p.applyCommit(rt)
	default:
		return fail(fmt.Errorf("unknown command kind %d", cmd.Kind))
	}
}

func (p *Pipeline) templateFor(rt IndexRuntime, templates map[string]*template) *template {
	t, ok := templates[rt.Name()]
	if !ok {
		t = newTemplate(rt)
		templates[rt.Name()] = t
	}
	return t
}

func (p *Pipeline) applyCreate(rt IndexRuntime, cmd Command, templates map[string]*template) Result {
	if cmd.ID == "" {
		return fail(ferrors.ErrMissingID)
	}
	if err := rt.ValidateDocument(cmd.Fields); err != nil {
		return fail(err)
	}
	t := p.templateFor(rt, templates)
	doc := t.build(rt, cmd.ID, 1, cmd.Fields)
	rt.Versioning().Add(rt.Name(), cmd.ID, 1)
	s := rt.Shard(router.ShardOf(cmd.ID, rt.ShardCount()))
	s.Add(doc)
	return ok()
}

// applyUpdate implements §4.5's update semantics, including the Open
// Question (b) resolution: whenever a document with this id is already
// present on disk, the push always goes through shard.Update(Term, doc),
// never shard.Add — only a genuine absence (no cache entry and no hit on
// point-query) is treated as a Create.
func (p *Pipeline) applyUpdate(rt IndexRuntime, cmd Command, templates map[string]*template) Result {
	if cmd.ID == "" {
		return fail(ferrors.ErrMissingID)
	}
	if err := rt.ValidateDocument(cmd.Fields); err != nil {
		return fail(err)
	}
	t := p.templateFor(rt, templates)
	s := rt.Shard(router.ShardOf(cmd.ID, rt.ShardCount()))

	if cell, ok := rt.Versioning().Get(rt.Name(), cmd.ID); ok {
		newVersion := cell.Version + 1
		if !rt.Versioning().Update(rt.Name(), cmd.ID, cell.Version, cell.Timestamp, newVersion) {
			return fail(ferrors.ErrVersionMismatch)
		}
		doc := t.build(rt, cmd.ID, newVersion, cmd.Fields)
		s.Update(engine.Term{Field: fieldID, Value: cmd.ID}, doc)
		return ok()
	}

	// Cache miss: fall back to a point query on the index.
	h := s.AcquireSearcher()
	existing, found := h.Get(cmd.ID)
	h.Release()

	if !found {
		doc := t.build(rt, cmd.ID, 1, cmd.Fields)
		rt.Versioning().Add(rt.Name(), cmd.ID, 1)
		s.Add(doc)
		return ok()
	}

	storedVersion := 1
	if fv, ok := existing.Get(fieldVersion); ok {
		storedVersion = int(fv.Int)
	}
	newVersion := storedVersion + 1
	rt.Versioning().Add(rt.Name(), cmd.ID, newVersion)
	doc := t.build(rt, cmd.ID, newVersion, cmd.Fields)
	s.Update(engine.Term{Field: fieldID, Value: cmd.ID}, doc)
	return ok()
}

func (p *Pipeline) applyDelete(rt IndexRuntime, cmd Command) Result {
	if cmd.ID == "" {
		return fail(ferrors.ErrMissingID)
	}
	rt.Versioning().Delete(rt.Name(), cmd.ID)
	s := rt.Shard(router.ShardOf(cmd.ID, rt.ShardCount()))
	s.Delete(engine.Term{Field: fieldID, Value: cmd.ID})
	return ok()
}

func (p *Pipeline) applyDeleteByIndex(rt IndexRuntime) Result {
	for i := 0; i < rt.ShardCount(); i++ {
		rt.Shard(i).DeleteAll()
	}
	rt.Versioning().DeleteIndex(rt.Name())
	return ok()
}

func (p *Pipeline) applyCommit(rt IndexRuntime) Result {
	var firstErr error
	for i := 0; i < rt.ShardCount(); i++ {
		if err := rt.Shard(i).Commit(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return fail(firstErr)
	}
	return ok()
}

func ok() Result { return Result{OK: true} }

func fail(err error) Result { return Result{OK: false, Message: err.Error()} }
