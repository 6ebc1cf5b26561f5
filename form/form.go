// Package form holds the café registration form state: the facility
// checkboxes, the draft record built from user input, and submission of
// that draft to the cafés endpoint.
package form

import (
	"cafein/model"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

type Status int

const (
	StatusEditing Status = iota
	StatusSubmitted
)

func (s Status) String() string {
	switch s {
	case StatusEditing:
		return "editing"
	case StatusSubmitted:
		return "submitted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Submitter delivers a finished record to the cafés endpoint.
type Submitter interface {
	Submit(ctx context.Context, record model.CafeRecord) (json.RawMessage, error)
}

type SubmitResult struct {
	Record   model.CafeRecord
	Response json.RawMessage
	Err      error
}

func (r SubmitResult) OK() bool { return r.Err == nil }

// Form is one mounted registration form. It is safe for concurrent use.
type Form struct {
	mu         sync.Mutex
	logger     *log.Logger
	facilities []model.Facility
	draft      model.CafeRecord
	status     Status
	last       *SubmitResult
}

func New(logger *log.Logger) *Form {
	if logger == nil {
		logger = log.Default()
	}
	f := &Form{
		logger:     logger,
		facilities: DefaultFacilities(),
		draft:      model.NewCafeRecord(),
	}
	f.deriveFacility()
	return f
}

// deriveFacility must be called with mu held.
func (f *Form) deriveFacility() {
	f.draft.Facility = Project(f.facilities)
}

func (f *Form) Facilities() []model.Facility {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Facility, len(f.facilities))
	copy(out, f.facilities)
	return out
}

// Draft returns a copy of the current draft with its facility field
// re-derived from the checkbox list.
func (f *Form) Draft() model.CafeRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deriveFacility()
	return cloneRecord(f.draft)
}

func (f *Form) Update(u FieldUpdate) model.CafeRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = Apply(f.draft, u)
	f.deriveFacility()
	return cloneRecord(f.draft)
}

// Toggle sets one facility checkbox and reports whether name matched a
// known kind. An unknown name changes nothing.
func (f *Form) Toggle(name string, checked bool) ([]model.Facility, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.facilities = Toggle(f.facilities, name, checked)
	f.deriveFacility()
	out := make([]model.Facility, len(f.facilities))
	copy(out, f.facilities)
	return out, IsFacilityKind(name)
}

func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// LastResult returns the most recently completed submission, if any.
func (f *Form) LastResult() (SubmitResult, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last == nil {
		return SubmitResult{}, false
	}
	return *f.last, true
}

// Submit hands a copy of the current draft to s on its own goroutine and
// returns a channel that yields exactly one result. The draft is kept as
// is afterwards, and editing may continue while the write is in flight.
// Callers that do not wait on the channel should pass a context that
// outlives their own request.
func (f *Form) Submit(ctx context.Context, s Submitter) <-chan SubmitResult {
	f.mu.Lock()
	f.deriveFacility()
	record := cloneRecord(f.draft)
	f.status = StatusSubmitted
	f.mu.Unlock()

	done := make(chan SubmitResult, 1)
	go func() {
		defer close(done)
		res := f.send(ctx, s, record)
		f.mu.Lock()
		f.last = &res
		f.mu.Unlock()
		done <- res
	}()
	return done
}

func (f *Form) send(ctx context.Context, s Submitter, record model.CafeRecord) (res SubmitResult) {
	res.Record = record
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("submit panicked: %v", r)
			f.logger.Printf("cafe submit failed: %v", res.Err)
		}
	}()
	resp, err := s.Submit(ctx, cloneRecord(record))
	if err != nil {
		res.Err = err
		f.logger.Printf("cafe submit failed: %v", err)
		return res
	}
	res.Response = resp
	f.logger.Printf("cafe submitted: %s", resp)
	return res
}

func cloneRecord(r model.CafeRecord) model.CafeRecord {
	if r.Facility != nil {
		r.Facility = append([]model.Facility{}, r.Facility...)
	}
	if r.Post != nil {
		r.Post = append([]json.RawMessage{}, r.Post...)
	}
	if r.Menu != nil {
		r.Menu = append([]model.MenuItem{}, r.Menu...)
	}
	return r
}
