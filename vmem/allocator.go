package vmem

// allocate resolves a miss the Translator found in the parent slot at
// targetSlotAddr while walking toward pageNumber, at the given level.
// It runs the Frame Selector once, picks whichever of the three
// installation strategies applies, installs the result into
// targetSlotAddr (unless the Selector already did so while reclaiming
// an empty table) and returns the installed frame.
//
// forbiddenFrame is updated in place: whenever the installed frame
// will itself be used as a table at a deeper level of this same
// translation, it becomes forbidden for the remainder of the walk, so
// the Selector can never choose it again out from under the caller.
func allocate(cfg Config, backend Backend, pageNumber Word, level uint, forbiddenFrame *Word, targetSlotAddr Word) Word {
	st := newSearchState(cfg, backend, pageNumber, *forbiddenFrame, targetSlotAddr)
	st.walk(0, 0, 0, -1)

	var frame Word
	switch {
	case st.emptyTableFound:
		// The Selector already detached the table from its old
		// parent and installed it at targetSlotAddr.
		frame = st.emptyTableFrame

	case st.maxSeenFrame+1 < cfg.NumFrames:
		frame = st.maxSeenFrame + 1
		backend.Write(targetSlotAddr, frame)

	case st.victimFound:
		frame = st.victimFrame
		backend.Evict(frame, st.victimPage)
		// Zero the victim's old parent slot before the new parent
		// slot is populated, so no two parent slots ever reference
		// the same frame simultaneously.
		victimParentSlot := st.victimParentFrame*cfg.PageSize + offset(cfg, st.victimPage)
		backend.Write(victimParentSlot, 0)
		backend.Write(targetSlotAddr, frame)

	default:
		panic("vmem: allocator found no empty table, no free frame and no eviction victim")
	}

	if level == cfg.TablesDepth-1 {
		backend.Restore(frame, pageNumber)
	} else {
		zeroFrame(cfg, backend, frame)
		*forbiddenFrame = frame
	}
	return frame
}

// zeroFrame writes PageSize zero words starting at frame*PageSize.
func zeroFrame(cfg Config, backend Backend, frame Word) {
	base := frame * cfg.PageSize
	for slot := Word(0); slot < cfg.PageSize; slot++ {
		backend.Write(base+slot, 0)
	}
}
