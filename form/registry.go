package form

import (
	"container/list"
	"context"
	"github.com/google/uuid"
	"log"
	"sync"
	"time"
)

const (
	DefaultIdleTimeout = 30 * time.Minute
	DefaultMaxForms    = 10000
)

type RegistryOptions struct {
	// IdleTimeout is how long a form may go unused before Sweep drops it.
	IdleTimeout time.Duration
	// MaxForms caps the number of mounted forms; the least recently used
	// one is dropped to make room.
	MaxForms int
}

type session struct {
	id       string
	form     *Form
	lastUsed time.Time
}

// Registry keeps one Form per browser session.
type Registry struct {
	mu     sync.Mutex
	logger *log.Logger
	idle   time.Duration
	max    int
	now    func() time.Time
	forms  map[string]*list.Element
	order  *list.List // most recently used at the front
}

func NewRegistry(logger *log.Logger, opts ...RegistryOptions) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	var o RegistryOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = DefaultIdleTimeout
	}
	if o.MaxForms <= 0 {
		o.MaxForms = DefaultMaxForms
	}
	return &Registry{
		logger: logger,
		idle:   o.IdleTimeout,
		max:    o.MaxForms,
		now:    time.Now,
		forms:  make(map[string]*list.Element),
		order:  list.New(),
	}
}

// Get returns the form mounted under id and marks it as used.
func (r *Registry) Get(id string) (*Form, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	el, ok := r.forms[id]
	if !ok {
		return nil, false
	}
	s := el.Value.(*session)
	s.lastUsed = r.now()
	r.order.MoveToFront(el)
	return s.form, true
}

// New mounts a fresh form under a newly generated session id.
func (r *Registry) New() (string, *Form) {
	id := uuid.NewString()
	f := New(r.logger)
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.order.Len() >= r.max {
		r.remove(r.order.Back())
	}
	r.forms[id] = r.order.PushFront(&session{id: id, form: f, lastUsed: r.now()})
	return id, f
}

// Open returns the form for id, mounting a new one under a fresh id when
// id is empty, malformed or unknown. The returned id is the one to keep.
func (r *Registry) Open(id string) (string, *Form) {
	if _, err := uuid.Parse(id); err == nil {
		if f, ok := r.Get(id); ok {
			return id, f
		}
	}
	return r.New()
}

// Sweep drops every form idle for longer than the idle timeout and
// returns how many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.idle)
	dropped := 0
	for el := r.order.Back(); el != nil; {
		s := el.Value.(*session)
		if s.lastUsed.After(cutoff) {
			break
		}
		prev := el.Prev()
		r.remove(el)
		dropped++
		el = prev
	}
	return dropped
}

// Run sweeps idle forms every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Printf("dropped %d idle cafe forms", n)
			}
		}
	}
}

// remove must be called with mu held.
func (r *Registry) remove(el *list.Element) {
	s := r.order.Remove(el).(*session)
	delete(r.forms, s.id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}
