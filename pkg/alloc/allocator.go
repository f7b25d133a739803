package alloc

import . "github.com/weberc2/fssim/pkg/types"

// RunAllocator hands out contiguous runs of blocks, addressed as
// `(start, count)` rather than as a chain of individual blocks.
type RunAllocator interface {
	AllocRun(count Block) (Block, bool)
	ReserveRun(start, count Block)
	FreeRun(start, count Block)
	CountFree() Block
	Len() Block
}

var _ RunAllocator = (*Bitmap)(nil)
