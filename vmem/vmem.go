package vmem

import "errors"

var (
	// ErrAddressOutOfRange is returned when a virtual address is not
	// less than Config.VirtualMemorySize.
	ErrAddressOutOfRange = errors.New("vmem: virtual address out of range")

	// ErrNilOut is returned by Read when out is nil.
	ErrNilOut = errors.New("vmem: read requires a non-nil output word")
)

// VirtualMemory is the hierarchical virtual-memory translation layer
// described by cfg, backed by backend. Every Read and Write re-walks
// the page-table tree from frame 0; there is no translation cache, and
// a VirtualMemory value is not safe for concurrent use by multiple
// goroutines without external serialization.
type VirtualMemory struct {
	cfg     Config
	backend Backend
}

// New constructs a VirtualMemory over backend and zeroes frame 0, the
// permanent root page table. No other frame's contents are assumed.
func New(cfg Config, backend Backend) *VirtualMemory {
	vm := &VirtualMemory{cfg: cfg, backend: backend}
	vm.initialize()
	return vm
}

func (vm *VirtualMemory) initialize() {
	zeroFrame(vm.cfg, vm.backend, 0)
}

// Config returns the geometry this VirtualMemory was constructed with.
func (vm *VirtualMemory) Config() Config {
	return vm.cfg
}

// Read validates virtualAddress and out, translates virtualAddress
// and stores the word found there into *out. On a validation failure
// it returns a non-nil error without touching memory.
func (vm *VirtualMemory) Read(virtualAddress Word, out *Word) error {
	if out == nil {
		return ErrNilOut
	}
	if !vm.inRange(virtualAddress) {
		return ErrAddressOutOfRange
	}

	physAddr := translate(vm.cfg, vm.backend, virtualAddress)
	*out = vm.backend.Read(physAddr)
	return nil
}

// Write validates virtualAddress, translates it and stores word at
// the resulting physical address. On a validation failure it returns
// a non-nil error without touching memory.
func (vm *VirtualMemory) Write(virtualAddress Word, word Word) error {
	if !vm.inRange(virtualAddress) {
		return ErrAddressOutOfRange
	}

	physAddr := translate(vm.cfg, vm.backend, virtualAddress)
	vm.backend.Write(physAddr, word)
	return nil
}

func (vm *VirtualMemory) inRange(virtualAddress Word) bool {
	return virtualAddress >= 0 && virtualAddress < vm.cfg.VirtualMemorySize
}
