package inode

import (
	"time"

	"github.com/weberc2/fssim/pkg/math"
	. "github.com/weberc2/fssim/pkg/types"
)

// Inode is one slot of the inode table. A free slot holds the zero values
// below; a bound slot names a file, its size, and the contiguous run of blocks
// `[Start, Start+Count)` holding it.
type Inode struct {
	Ino      Ino       `yaml:"ino"`
	Name     string    `yaml:"name"`
	Size     Byte      `yaml:"size"`
	Start    Block     `yaml:"start"`
	Count    Block     `yaml:"count"`
	Modified time.Time `yaml:"modified"`
	Used     bool      `yaml:"used"`
	Owner    DirID     `yaml:"owner"`
}

func free(ino Ino, now time.Time) Inode {
	return Inode{Ino: ino, Start: BlockNil, Modified: now}
}

// End returns the first block past the inode's run.
func (inode *Inode) End() Block {
	if inode.Count == 0 {
		return BlockNil
	}
	return inode.Start + inode.Count
}

// Blocks lists every block in the inode's run.
func (inode *Inode) Blocks() []Block {
	blocks := make([]Block, inode.Count)
	for i := range blocks {
		blocks[i] = inode.Start + Block(i)
	}
	return blocks
}

// Overlaps reports whether two inodes' runs share a block.
func (inode *Inode) Overlaps(other *Inode) bool {
	if inode.Count == 0 || other.Count == 0 {
		return false
	}
	start := math.Max(inode.Start, other.Start)
	return start < math.Min(inode.End(), other.End())
}

func (inode *Inode) SizeKB() int64 { return int64(inode.Size / KB) }
