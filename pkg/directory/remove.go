package directory

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	. "github.com/weberc2/fssim/pkg/types"
)

// DeleteDirectory removes the sub-directory `name` together with its whole
// subtree, releasing every file filed under any of the removed directories.
func (dir *Directory) DeleteDirectory(name string) error {
	child, ok := dir.children[name]
	if !ok {
		return fmt.Errorf(
			"deleting directory `%s` in `%s`: %w",
			name,
			dir.Path(),
			NotFoundErr,
		)
	}

	path := child.Path()
	released, err := child.deleteContents()
	delete(dir.children, name)
	child.parent = nil
	if err != nil {
		return fmt.Errorf("deleting directory `%s`: %w", path, err)
	}

	dir.fs.Logger.Debug(
		"deleted directory",
		"path", path,
		"releasedFiles", released,
	)
	return nil
}

// deleteContents empties the subtree rooted at `dir`, depth first, and
// returns the number of files released.
func (dir *Directory) deleteContents() (int, error) {
	var (
		released int
		result   *multierror.Error
	)
	for _, name := range dir.Children() {
		child := dir.children[name]
		n, err := child.deleteContents()
		released += n
		result = multierror.Append(result, err)
		delete(dir.children, name)
		child.parent = nil
	}

	for _, inode := range dir.fs.Inodes.Owned(dir.ID) {
		if err := dir.fs.Inodes.Release(inode.Name); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		released++
	}
	return released, result.ErrorOrNil()
}
