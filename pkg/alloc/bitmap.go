package alloc

import (
	"fmt"
	"strings"

	"github.com/weberc2/fssim/pkg/math"
	. "github.com/weberc2/fssim/pkg/types"
)

const bitsPerByte = 8

// Bitmap tracks the used/free state of a fixed number of blocks. It is the
// only record of block usage on a volume.
type Bitmap struct {
	bytes []byte
	len   Block
}

func New(size Block) *Bitmap {
	return &Bitmap{
		bytes: make([]byte, math.DivRoundUp(size, bitsPerByte)),
		len:   size,
	}
}

func (bm *Bitmap) Len() Block { return bm.len }

func (bm *Bitmap) IsSet(b Block) bool {
	bm.check(b, 1)
	return !byteIsZero(bm.bytes[b/bitsPerByte], uint8(b%bitsPerByte))
}

// AllocRun claims the first run of `count` consecutive free blocks, scanning
// left to right, and returns the run's first block. The scan does not wrap
// and nothing is compacted, so a fragmented bitmap can fail a request even
// when enough blocks are free in total. A zero-length run always succeeds
// with `BlockNil`.
func (bm *Bitmap) AllocRun(count Block) (Block, bool) {
	if count <= 0 {
		return BlockNil, count == 0
	}

	start, run := BlockNil, Block(0)
	for b := Block(0); b < bm.len; b++ {
		if bm.IsSet(b) {
			start, run = BlockNil, 0
			continue
		}
		if start == BlockNil {
			start = b
		}
		if run++; run == count {
			bm.ReserveRun(start, count)
			return start, true
		}
	}
	return BlockNil, false
}

// FreeRun clears the bits in `[start, start+count)`. Clearing bits that are
// already free is a no-op; a range outside the bitmap is a programming error
// and panics.
func (bm *Bitmap) FreeRun(start, count Block) {
	bm.check(start, count)
	for b := start; b < start+count; b++ {
		p := &bm.bytes[b/bitsPerByte]
		*p = byteSetLow(*p, uint8(b%bitsPerByte))
	}
}

// ReserveRun sets the bits in `[start, start+count)`.
func (bm *Bitmap) ReserveRun(start, count Block) {
	bm.check(start, count)
	for b := start; b < start+count; b++ {
		p := &bm.bytes[b/bitsPerByte]
		*p = byteSetHigh(*p, uint8(b%bitsPerByte))
	}
}

func (bm *Bitmap) CountFree() Block {
	var free Block
	for b := Block(0); b < bm.len; b++ {
		if !bm.IsSet(b) {
			free++
		}
	}
	return free
}

func (bm *Bitmap) CountUsed() Block { return bm.len - bm.CountFree() }

// Bits returns a copy of the bitmap as one bool per block.
func (bm *Bitmap) Bits() []bool {
	bits := make([]bool, bm.len)
	for b := range bits {
		bits[b] = bm.IsSet(Block(b))
	}
	return bits
}

// Render draws the bitmap as `1`/`0` cells, `perRow` cells to a row, e.g.
// `[1 1 0 0\n 0 0 0 0]` for `perRow == 4`.
func (bm *Bitmap) Render(perRow Block) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for b := Block(0); b < bm.len; b++ {
		switch {
		case b == 0:
		case b%perRow == 0:
			sb.WriteString("\n ")
		default:
			sb.WriteByte(' ')
		}
		if bm.IsSet(b) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func (bm *Bitmap) check(start, count Block) {
	if start < 0 || count < 0 || start+count > bm.len {
		panic(fmt.Sprintf(
			"block range `[%d, %d)` outside of bitmap of length `%d`",
			start,
			start+count,
			bm.len,
		))
	}
}

func byteIsZero(byt byte, bit uint8) bool {
	return byt&(0b1000_0000>>bit) == 0
}

func byteSetHigh(byt byte, bit uint8) byte {
	return byt | (0b1000_0000 >> bit)
}

func byteSetLow(byt byte, bit uint8) byte {
	return byt & ^(0b1000_0000 >> bit)
}
