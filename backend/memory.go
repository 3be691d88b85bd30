// Package backend provides concrete implementations of vmem.Backend:
// an in-process frame array backed by an in-memory page store, and a
// recording wrapper used by tests to observe which backend calls a
// translation actually made.
package backend

import (
	"sync"

	"github.com/AlonBiner/vmtranslate/vmem"
)

// Memory is a simulated physical memory: a fixed array of
// NumFrames*PageSize words standing in for RAM, and a map keyed by
// page number standing in for the backing store (disk/swap). It
// implements vmem.Backend.
type Memory struct {
	mu sync.Mutex

	pageSize vmem.Word

	frames []vmem.Word
	store  map[vmem.Word][]vmem.Word
}

// New allocates a Memory sized for cfg. All frames start at zero;
// nothing is restored from the backing store until a page is evicted
// into it.
func New(cfg vmem.Config) *Memory {
	return &Memory{
		pageSize: cfg.PageSize,
		frames:   make([]vmem.Word, cfg.NumFrames*cfg.PageSize),
		store:    make(map[vmem.Word][]vmem.Word),
	}
}

// Read returns the word at addr.
func (m *Memory) Read(addr vmem.Word) vmem.Word {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames[addr]
}

// Write stores word at addr.
func (m *Memory) Write(addr vmem.Word, word vmem.Word) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames[addr] = word
}

// Restore copies pageNumber's backing-store contents into frame. A
// page number that was never evicted restores as all-zero words,
// matching a freshly allocated frame.
func (m *Memory) Restore(frame vmem.Word, pageNumber vmem.Word) {
	m.mu.Lock()
	defer m.mu.Unlock()

	base := frame * m.pageSize
	page, ok := m.store[pageNumber]
	if !ok {
		for i := vmem.Word(0); i < m.pageSize; i++ {
			m.frames[base+i] = 0
		}
		return
	}
	copy(m.frames[base:base+m.pageSize], page)
}

// Evict copies frame's current contents out to the backing-store slot
// for pageNumber, overwriting whatever that page previously held.
func (m *Memory) Evict(frame vmem.Word, pageNumber vmem.Word) {
	m.mu.Lock()
	defer m.mu.Unlock()

	base := frame * m.pageSize
	page := make([]vmem.Word, m.pageSize)
	copy(page, m.frames[base:base+m.pageSize])
	m.store[pageNumber] = page
}
