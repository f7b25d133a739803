package types

import "github.com/weberc2/fssim/pkg/math"

// Byte is a quantity of bytes.
type Byte int64

// Block is the index of a block on the volume.
type Block int64

const (
	KB Byte = 1024

	BlockSize        Byte  = 1024
	TotalBlocks      Block = 128
	MaxBlocksPerFile Block = 8
	MaxFileSize      Byte  = Byte(MaxBlocksPerFile) * BlockSize
	VolumeSize       Byte  = Byte(TotalBlocks) * BlockSize

	// BlockNil is the starting block of an inode which owns no blocks.
	BlockNil Block = -1
)

// BlocksFor returns the number of blocks required to hold `size` bytes.
func BlocksFor(size Byte) Block {
	return Block(math.DivRoundUp(size, BlockSize))
}
