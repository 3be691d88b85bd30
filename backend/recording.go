package backend

import (
	"sync"

	"github.com/AlonBiner/vmtranslate/vmem"
)

// Call records a single invocation of one of the four Backend
// primitives, in the order they were made.
type Call struct {
	Op   string // "read", "write", "restore" or "evict"
	A    vmem.Word
	B    vmem.Word // the word for write, the page number for restore/evict
	Word bool      // true if B holds a word (write); false if it holds a page number
}

// Recording wraps a vmem.Backend and keeps a log of every call made
// through it, so tests can assert on backend traffic (how many writes
// a repeated write performs, whether an out-of-range address reaches
// the backend at all, which page was evicted) without the core having
// to expose any instrumentation of its own.
type Recording struct {
	mu      sync.Mutex
	backend vmem.Backend
	calls   []Call
}

// NewRecording wraps backend.
func NewRecording(backend vmem.Backend) *Recording {
	return &Recording{backend: backend}
}

// Calls returns a copy of every call observed so far.
func (r *Recording) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset clears the call log.
func (r *Recording) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// WriteCount returns the number of Write calls observed to addr.
func (r *Recording) WriteCount(addr vmem.Word) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Op == "write" && c.A == addr {
			n++
		}
	}
	return n
}

// Evictions returns the page numbers passed to Evict, in call order.
func (r *Recording) Evictions() []vmem.Word {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pages []vmem.Word
	for _, c := range r.calls {
		if c.Op == "evict" {
			pages = append(pages, c.B)
		}
	}
	return pages
}

func (r *Recording) record(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

// Read implements vmem.Backend.
func (r *Recording) Read(addr vmem.Word) vmem.Word {
	r.record(Call{Op: "read", A: addr})
	return r.backend.Read(addr)
}

// Write implements vmem.Backend.
func (r *Recording) Write(addr vmem.Word, word vmem.Word) {
	r.record(Call{Op: "write", A: addr, B: word, Word: true})
	r.backend.Write(addr, word)
}

// Restore implements vmem.Backend.
func (r *Recording) Restore(frame vmem.Word, pageNumber vmem.Word) {
	r.record(Call{Op: "restore", A: frame, B: pageNumber})
	r.backend.Restore(frame, pageNumber)
}

// Evict implements vmem.Backend.
func (r *Recording) Evict(frame vmem.Word, pageNumber vmem.Word) {
	r.record(Call{Op: "evict", A: frame, B: pageNumber})
	r.backend.Evict(frame, pageNumber)
}
