package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/signadot/mkhub/debug"
	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
)

// Store is the shared document tree of one simulated service instance.
type Store struct {
	mu   sync.Mutex // serialises writers
	snap atomic.Pointer[snapshot]
	log  *slog.Logger
	hub  *WatchHub
}

type snapshot struct {
	root    *ir.Node
	version int64
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates a store whose root is an empty container called rootName.
func New(rootName string, opts ...Option) *Store {
	s := &Store{hub: NewWatchHub()}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.log = s.log.With("component", "store")
	s.snap.Store(&snapshot{root: ir.NewContainer(rootName)})
	return s
}

// Version returns the number of committed mutations.
func (s *Store) Version() int64 {
	return s.snap.Load().version
}

// Resolve returns refs to every node p names, possibly none.
func (s *Store) Resolve(p *xpath.Path) ([]Ref, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	snap := s.snap.Load()
	return refs(ir.Select(snap.root, p), snap.version), nil
}

// Get returns a ref to the only node p names. It fails with ir.ErrNotFound
// or ir.ErrAmbiguous otherwise.
func (s *Store) Get(p *xpath.Path) (Ref, error) {
	if err := p.Validate(); err != nil {
		return Ref{}, err
	}
	snap := s.snap.Load()
	n, err := ir.SelectOne(snap.root, p)
	if err != nil {
		return Ref{}, s.selectErr(err)
	}
	return Ref{node: n, version: snap.version}, nil
}

// Read calls f with the node r locates. f must not modify the node.
func (s *Store) Read(r Ref, f func(*ir.Node) error) error {
	if !r.Valid() {
		return fmt.Errorf("%w: empty ref", ir.ErrNotFound)
	}
	if v := s.Version(); r.version != v {
		return fmt.Errorf("%w: ref %s from version %d, store at %d", ErrStaleRef, r, r.version, v)
	}
	return f(r.node)
}

// View calls f with the nodes p names in one consistent snapshot. f must
// not modify the nodes or keep them after returning.
func (s *Store) View(p *xpath.Path, f func([]*ir.Node) error) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return f(ir.Select(s.snap.Load().root, p))
}

// ViewOne is like View for a path that must name exactly one node.
func (s *Store) ViewOne(p *xpath.Path, f func(*ir.Node) error) error {
	if err := p.Validate(); err != nil {
		return err
	}
	n, err := ir.SelectOne(s.snap.Load().root, p)
	if err != nil {
		return s.selectErr(err)
	}
	return f(n)
}

// Mutate applies f to every node p names as one atomic commit. It fails
// with ir.ErrNotFound when p names nothing. If f fails for any node, no
// change is published.
func (s *Store) Mutate(p *xpath.Path, f func(*ir.Node) error) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.commit(func(tx *Tx) error {
		nodes := ir.Select(tx.root, p)
		if len(nodes) == 0 {
			return fmt.Errorf("%w: %s", ir.ErrNotFound, p)
		}
		for _, n := range nodes {
			tx.Changed(n)
			if err := f(n); err != nil {
				return err
			}
		}
		return nil
	})
}

// MutateOne is like Mutate for a path that must name exactly one node.
func (s *Store) MutateOne(p *xpath.Path, f func(*ir.Node) error) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.commit(func(tx *Tx) error {
		n, err := ir.SelectOne(tx.root, p)
		if err != nil {
			return s.selectErr(err)
		}
		tx.Changed(n)
		return f(n)
	})
}

// Update runs f in a transaction over a private copy of the tree and
// publishes the copy if f returns nil.
func (s *Store) Update(f func(*Tx) error) error {
	return s.commit(f)
}

// CreateChild appends child, which must be detached, under the node parent
// locates and returns a ref to it in the new snapshot.
func (s *Store) CreateChild(parent Ref, child *ir.Node) (Ref, error) {
	var res Ref
	err := s.commit(func(tx *Tx) error {
		p, err := tx.rebase(parent)
		if err != nil {
			return err
		}
		res, err = tx.CreateChild(p, child)
		return err
	})
	if err != nil {
		return Ref{}, err
	}
	return res, nil
}

// RemoveChild detaches the node child locates from the node parent
// locates.
func (s *Store) RemoveChild(parent, child Ref) error {
	return s.commit(func(tx *Tx) error {
		p, err := tx.rebase(parent)
		if err != nil {
			return err
		}
		c, err := tx.rebase(child)
		if err != nil {
			return err
		}
		return tx.RemoveChild(p, c)
	})
}

// Watch registers a watcher for commits touching paths with prefix. An
// empty prefix watches everything.
func (s *Store) Watch(prefix string, buffer int) *Watcher {
	w := NewWatcher(prefix, buffer)
	s.hub.Watch(w)
	return w
}

// Unwatch removes a watcher registered with Watch.
func (s *Store) Unwatch(w *Watcher) {
	s.hub.Unwatch(w)
}

func (s *Store) commit(f func(*Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.snap.Load()
	tx := &Tx{root: cur.root.Clone(), version: cur.version + 1}
	if err := f(tx); err != nil {
		if debug.Commit() {
			debug.Logf("commit %d discarded: %v\n", tx.version, err)
		}
		return err
	}
	tx.done = true
	s.snap.Store(&snapshot{root: tx.root, version: tx.version})

	c := &Commit{Version: tx.version, Paths: tx.paths()}
	s.log.Debug("commit", "version", c.Version, "paths", c.Paths)
	s.hub.Broadcast(c)
	return nil
}

func (s *Store) selectErr(err error) error {
	if errors.Is(err, ir.ErrAmbiguous) {
		s.log.Error("identity invariant violated", "error", err)
	}
	return err
}
