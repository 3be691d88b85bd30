// Package vmem implements a hierarchical virtual-memory translation
// layer on top of a simulated physical memory of fixed frame count.
// Virtual addresses are translated into physical addresses by walking
// a multi-level page-table tree rooted at frame 0, materializing
// missing table frames on demand and, once physical memory is
// exhausted, evicting a resident page chosen by a cyclic-distance
// policy.
package vmem

import (
	"errors"

	"github.com/NebulousLabs/Sia/build"
)

// Word is a signed integer wide enough to hold any frame index, page
// number, virtual or physical address, or stored memory word.
type Word int64

// Config bundles the construction-time constants that describe a
// virtual-memory geometry, along with their derived values. A Config
// is immutable once built by NewConfig and is shared by value across
// every pure function in this package.
type Config struct {
	// OffsetWidth is the number of bits in the in-frame offset;
	// PageSize is 2^OffsetWidth words.
	OffsetWidth uint

	// VirtualAddressWidth and PhysicalAddressWidth are the bit widths
	// of virtual and physical addresses respectively.
	VirtualAddressWidth  uint
	PhysicalAddressWidth uint

	// TablesDepth is the number of intermediate page-table levels a
	// virtual address walks through before reaching its leaf.
	TablesDepth uint

	// PageSize, NumFrames, NumPages and VirtualMemorySize are derived
	// from the widths above; see NewConfig.
	PageSize          Word
	NumFrames         Word
	NumPages          Word
	VirtualMemorySize Word
}

// NewConfig validates the supplied widths and returns the Config
// derived from them. It rejects configurations degenerate enough that
// the allocator could never coexist with the root plus one frame per
// table level (NUM_FRAMES must exceed TABLES_DEPTH).
func NewConfig(virtualAddressWidth, physicalAddressWidth, offsetWidth uint) (Config, error) {
	if offsetWidth == 0 {
		return Config{}, errors.New("vmem: OFFSET_WIDTH must be greater than 0")
	}
	if virtualAddressWidth <= offsetWidth {
		return Config{}, errors.New("vmem: VIRTUAL_ADDRESS_WIDTH must exceed OFFSET_WIDTH")
	}

	tablesDepth := ceilDiv(virtualAddressWidth-offsetWidth, offsetWidth)

	cfg := Config{
		OffsetWidth:          offsetWidth,
		VirtualAddressWidth:  virtualAddressWidth,
		PhysicalAddressWidth: physicalAddressWidth,
		TablesDepth:          tablesDepth,
		PageSize:             Word(1) << offsetWidth,
		NumPages:             Word(1) << (virtualAddressWidth - offsetWidth),
		VirtualMemorySize:    Word(1) << virtualAddressWidth,
	}
	cfg.NumFrames = (Word(1) << physicalAddressWidth) / cfg.PageSize

	if cfg.NumFrames <= Word(cfg.TablesDepth) {
		return Config{}, build.ExtendErr("vmem: invalid configuration",
			errors.New("NUM_FRAMES must exceed TABLES_DEPTH"))
	}
	return cfg, nil
}

func ceilDiv(a, b uint) uint {
	return (a + b - 1) / b
}
