package vmem

// searchState carries the three concurrent searches a single Frame
// Selector walk must resolve: the highest frame index referenced
// anywhere in the tree, the first reclaimable all-zero table frame,
// and the resident leaf page farthest (by cyclic distance) from the
// faulting page. The three are tracked as independent fields rather
// than folded onto a shared sentinel, so an empty-table discovery
// deep in the recursion can never suppress max-frame bookkeeping done
// on the way there.
type searchState struct {
	cfg     Config
	backend Backend

	pageNumber     Word
	forbiddenFrame Word
	targetSlotAddr Word

	maxSeenFrame Word

	emptyTableFound bool
	emptyTableFrame Word

	victimFound       bool
	victimDistance    Word
	victimPage        Word
	victimParentFrame Word
	victimFrame       Word
}

func newSearchState(cfg Config, backend Backend, pageNumber, forbiddenFrame, targetSlotAddr Word) *searchState {
	return &searchState{
		cfg:            cfg,
		backend:        backend,
		pageNumber:     pageNumber,
		forbiddenFrame: forbiddenFrame,
		targetSlotAddr: targetSlotAddr,
		victimDistance: -1,
	}
}

// walk performs one DFS pass over frame at level, with path the
// slot-index path accumulated on the way here and parentSlotAddr the
// physical address of the slot, in frame's parent, that currently
// references frame. It returns true once a reusable empty table has
// been found and installed, telling the caller to unwind without
// visiting any further siblings.
func (s *searchState) walk(frame Word, level uint, path Word, parentSlotAddr Word) bool {
	allZero := true

	for slot := Word(0); slot < s.cfg.PageSize; slot++ {
		entryAddr := frame*s.cfg.PageSize + slot
		child := s.backend.Read(entryAddr)
		if child == 0 {
			continue
		}
		allZero = false

		if child < s.cfg.NumFrames && child > s.maxSeenFrame {
			s.maxSeenFrame = child
		}

		updatedPath := concatenatePath(s.cfg, path, slot)

		if level == s.cfg.TablesDepth-1 {
			// child is a leaf hosting the resident page updatedPath.
			d := cyclicDistance(s.cfg, s.pageNumber, updatedPath)
			if d > s.victimDistance {
				s.victimDistance = d
				s.victimPage = updatedPath
				s.victimParentFrame = frame
				s.victimFrame = child
				s.victimFound = true
			}
			continue
		}

		if s.walk(child, level+1, updatedPath, entryAddr) {
			return true
		}
	}

	if allZero && frame != 0 && frame != s.forbiddenFrame && !s.emptyTableFound {
		s.emptyTableFound = true
		s.emptyTableFrame = frame
		s.backend.Write(parentSlotAddr, 0)
		s.backend.Write(s.targetSlotAddr, frame)
		return true
	}
	return false
}
