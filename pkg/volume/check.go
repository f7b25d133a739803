package volume

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/weberc2/fssim/pkg/directory"
	"github.com/weberc2/fssim/pkg/inode"
	. "github.com/weberc2/fssim/pkg/types"
)

// Check verifies the volume's invariants and reports every violation:
//   - each slot is either completely free or a well-formed bound file
//   - no two bound files share a block
//   - a block is marked used iff it lies in some bound file's run
//   - every bound file is filed under a directory reachable from the root
func (v *Volume) Check() error {
	var result *multierror.Error

	dirs := make(map[DirID]*directory.Directory)
	v.fs.Walk(func(dir *directory.Directory) { dirs[dir.ID] = dir })

	var bound []inode.Inode
	for _, slot := range v.inodes.Slots() {
		if !slot.Used {
			if slot.Name != "" || slot.Size != 0 || slot.Start != BlockNil ||
				slot.Count != 0 || slot.Owner != DirIDNil {
				result = multierror.Append(result, fmt.Errorf(
					"free inode `%d` holds stale fields",
					slot.Ino,
				))
			}
			continue
		}
		bound = append(bound, slot)
		if err := checkBound(&slot, v.blocks.Len()); err != nil {
			result = multierror.Append(result, err)
		}
		if _, ok := dirs[slot.Owner]; !ok {
			result = multierror.Append(result, fmt.Errorf(
				"inode `%d` (`%s`) is filed under unknown directory `%s`",
				slot.Ino,
				slot.Name,
				slot.Owner,
			))
		}
	}

	for i := range bound {
		for j := i + 1; j < len(bound); j++ {
			if bound[i].Overlaps(&bound[j]) {
				result = multierror.Append(result, fmt.Errorf(
					"inodes `%s` [%d, %d) and `%s` [%d, %d) overlap",
					bound[i].Name,
					bound[i].Start,
					bound[i].End(),
					bound[j].Name,
					bound[j].Start,
					bound[j].End(),
				))
			}
		}
	}

	wanted := make([]bool, v.blocks.Len())
	for i := range bound {
		for _, b := range bound[i].Blocks() {
			if b >= 0 && b < Block(len(wanted)) {
				wanted[b] = true
			}
		}
	}
	for b, set := range v.blocks.Bits() {
		if set != wanted[b] {
			result = multierror.Append(result, fmt.Errorf(
				"block `%d`: bitmap says used=%t, inodes say used=%t",
				b,
				set,
				wanted[b],
			))
		}
	}

	return result.ErrorOrNil()
}

func checkBound(file *inode.Inode, blocks Block) error {
	if err := ValidateName(file.Name); err != nil {
		return fmt.Errorf("inode `%d` name `%s`: %w", file.Ino, file.Name, err)
	}
	if file.Count != BlocksFor(file.Size) || file.Count > MaxBlocksPerFile {
		return fmt.Errorf(
			"inode `%s`: `%d` blocks for `%d` bytes",
			file.Name,
			file.Count,
			file.Size,
		)
	}
	if file.Count == 0 {
		if file.Start != BlockNil {
			return fmt.Errorf(
				"inode `%s`: empty file starts at block `%d`",
				file.Name,
				file.Start,
			)
		}
		return nil
	}
	if file.Start < 0 || file.End() > blocks {
		return fmt.Errorf(
			"inode `%s`: run [%d, %d) outside volume",
			file.Name,
			file.Start,
			file.End(),
		)
	}
	return nil
}
