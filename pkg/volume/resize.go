package volume

import (
	"fmt"

	"github.com/weberc2/fssim/pkg/inode"
	. "github.com/weberc2/fssim/pkg/types"
)

type Mode uint8

const (
	ModeInvalid Mode = iota
	ModeAppend
	ModeReduce
)

func (mode Mode) String() string {
	switch mode {
	case ModeAppend:
		return "append"
	case ModeReduce:
		return "reduce"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(mode))
	}
}

// ParseMode accepts the command line spellings of a resize mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "-a", "a", "append":
		return ModeAppend, nil
	case "-r", "r", "reduce":
		return ModeReduce, nil
	default:
		return ModeInvalid, fmt.Errorf("parsing mode `%s`: %w", s, InvalidModeErr)
	}
}

func (v *Volume) Append(name string, deltaKB int64) (inode.Inode, error) {
	return v.Resize(name, deltaKB, ModeAppend)
}

func (v *Volume) Reduce(name string, deltaKB int64) (inode.Inode, error) {
	return v.Resize(name, deltaKB, ModeReduce)
}

// Resize grows or shrinks the file `name` by `deltaKB` kilobytes. If the new
// size needs a different number of blocks, the file's run is released and a
// new run is claimed first-fit; when no run fits, the previous run is
// claimed back and the file is left exactly as it was.
func (v *Volume) Resize(
	name string,
	deltaKB int64,
	mode Mode,
) (inode.Inode, error) {
	file, ok := v.inodes.FindByName(name)
	if !ok {
		return inode.Inode{}, fmt.Errorf("resizing `%s`: %w", name, NotFoundErr)
	}

	if deltaKB < 0 || deltaKB > int64(MaxFileSize/KB) {
		return file, fmt.Errorf(
			"resizing `%s` by `%d` KB: %w",
			name,
			deltaKB,
			SizeOutOfRangeErr,
		)
	}

	var size Byte
	switch mode {
	case ModeAppend:
		size = file.Size + Byte(deltaKB)*KB
	case ModeReduce:
		size = file.Size - Byte(deltaKB)*KB
	default:
		return file, fmt.Errorf("resizing `%s`: %w", name, InvalidModeErr)
	}
	if size < 0 || size > MaxFileSize {
		return file, fmt.Errorf(
			"resizing `%s` from `%d` to `%d` bytes: %w",
			name,
			file.Size,
			size,
			SizeOutOfRangeErr,
		)
	}

	count := BlocksFor(size)
	if count == file.Count {
		if err := v.inodes.SetSize(file.Ino, size); err != nil {
			return file, fmt.Errorf("resizing `%s`: %w", name, err)
		}
		v.logger.Debug(
			"resized file in place",
			"name", name,
			"mode", mode.String(),
			"size", size,
		)
		file, _ = v.inodes.Get(file.Ino)
		return file, nil
	}

	if file.Count > 0 {
		v.blocks.FreeRun(file.Start, file.Count)
	}
	start, ok := v.blocks.AllocRun(count)
	if !ok {
		if file.Count > 0 {
			v.blocks.ReserveRun(file.Start, file.Count)
		}
		return file, fmt.Errorf(
			"resizing `%s` to `%d` blocks: %w",
			name,
			count,
			InsufficientSpaceErr,
		)
	}

	if err := v.inodes.Rebind(file.Ino, start, count, size); err != nil {
		v.blocks.FreeRun(start, count)
		if file.Count > 0 {
			v.blocks.ReserveRun(file.Start, file.Count)
		}
		return file, fmt.Errorf("resizing `%s`: %w", name, err)
	}

	v.logger.Debug(
		"resized file",
		"name", name,
		"mode", mode.String(),
		"size", size,
		"start", start,
		"count", count,
	)
	file, _ = v.inodes.Get(file.Ino)
	return file, nil
}
