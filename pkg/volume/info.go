package volume

import (
	"fmt"

	"github.com/weberc2/fssim/pkg/inode"
	. "github.com/weberc2/fssim/pkg/types"
)

// BlocksPerRow is the width of the rendered block map.
const BlocksPerRow Block = 16

type DiskInfo struct {
	TotalBytes  Byte  `yaml:"totalBytes"`
	UsedBytes   Byte  `yaml:"usedBytes"`
	FreeBytes   Byte  `yaml:"freeBytes"`
	TotalBlocks Block `yaml:"totalBlocks"`
	UsedBlocks  Block `yaml:"usedBlocks"`
	FreeBlocks  Block `yaml:"freeBlocks"`
	TotalInodes int   `yaml:"totalInodes"`
	UsedInodes  int   `yaml:"usedInodes"`
	FreeInodes  int   `yaml:"freeInodes"`
}

func (v *Volume) Info() DiskInfo {
	free := v.blocks.CountFree()
	used := v.blocks.Len() - free
	usedInodes := v.inodes.Used()
	return DiskInfo{
		TotalBytes:  Byte(v.blocks.Len()) * BlockSize,
		UsedBytes:   Byte(used) * BlockSize,
		FreeBytes:   Byte(free) * BlockSize,
		TotalBlocks: v.blocks.Len(),
		UsedBlocks:  used,
		FreeBlocks:  free,
		TotalInodes: v.inodes.Len(),
		UsedInodes:  usedInodes,
		FreeInodes:  v.inodes.Len() - usedInodes,
	}
}

// FileInfo looks a file up by name anywhere on the volume.
func (v *Volume) FileInfo(name string) (inode.Inode, error) {
	file, ok := v.inodes.FindByName(name)
	if !ok {
		return inode.Inode{}, fmt.Errorf("file `%s`: %w", name, NotFoundErr)
	}
	return file, nil
}

// BlockMap renders the block bitmap, `BlocksPerRow` blocks to a row.
func (v *Volume) BlockMap() string {
	return v.blocks.Render(BlocksPerRow)
}
