package directory

import (
	"fmt"

	"github.com/weberc2/fssim/pkg/inode"
	. "github.com/weberc2/fssim/pkg/types"
)

// Listing is the content of one directory.
type Listing struct {
	Dirs  []string
	Files []inode.Inode
}

// CreateFile allocates a file of `sizeKB` kilobytes filed under `dir`.
func (dir *Directory) CreateFile(name string, sizeKB int64) (inode.Inode, error) {
	if sizeKB < 0 || sizeKB > int64(MaxFileSize/KB) {
		return inode.Inode{}, fmt.Errorf(
			"creating file `%s` with size `%d` KB: %w",
			name,
			sizeKB,
			SizeOutOfRangeErr,
		)
	}
	file, err := dir.fs.Inodes.Allocate(name, Byte(sizeKB)*KB, dir.ID)
	if err != nil {
		return inode.Inode{}, fmt.Errorf(
			"creating file `%s` in `%s`: %w",
			name,
			dir.Path(),
			err,
		)
	}
	dir.fs.Logger.Debug(
		"created file",
		"dir", dir.Path(),
		"name", name,
		"size", file.Size,
		"start", file.Start,
		"count", file.Count,
	)
	return file, nil
}

// DeleteFile releases the file `name` if it is filed under `dir`.
func (dir *Directory) DeleteFile(name string) error {
	if _, err := dir.File(name); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	if err := dir.fs.Inodes.Release(name); err != nil {
		return fmt.Errorf("deleting file `%s` in `%s`: %w", name, dir.Path(), err)
	}
	dir.fs.Logger.Debug("deleted file", "dir", dir.Path(), "name", name)
	return nil
}

// File returns the inode of the file `name` filed under `dir`.
func (dir *Directory) File(name string) (inode.Inode, error) {
	file, ok := dir.fs.Inodes.FindByName(name)
	if !ok || file.Owner != dir.ID {
		return inode.Inode{}, fmt.Errorf(
			"file `%s` in `%s`: %w",
			name,
			dir.Path(),
			NotFoundErr,
		)
	}
	return file, nil
}

// Files returns the inodes filed under `dir` in inode table order.
func (dir *Directory) Files() []inode.Inode {
	return dir.fs.Inodes.Owned(dir.ID)
}

func (dir *Directory) List() Listing {
	return Listing{Dirs: dir.Children(), Files: dir.Files()}
}
