package directory

import (
	"fmt"
	"regexp"

	"github.com/weberc2/fssim/pkg/inode"
	. "github.com/weberc2/fssim/pkg/types"
)

var copySuffix = regexp.MustCompile(`\(\d+\)$`)

// CopyFile allocates a copy of the file `name` from `dir` in the directory at
// `destPath`. The copy is named after the source with any `(n)` suffix
// replaced by the first free `(1)`, `(2)`, ..., shortening the name when the
// suffix would push it past `MaxNameLength`.
func (dir *Directory) CopyFile(name, destPath string) (inode.Inode, error) {
	dest, err := dir.Resolve(destPath)
	if err != nil {
		return inode.Inode{}, fmt.Errorf("copying file `%s`: %w", name, err)
	}

	src, err := dir.File(name)
	if err != nil {
		return inode.Inode{}, fmt.Errorf("copying file: %w", err)
	}

	copyName := nextCopyName(name, func(candidate string) bool {
		_, taken := dir.fs.Inodes.FindByName(candidate)
		return taken
	})
	file, err := dir.fs.Inodes.Allocate(copyName, src.Size, dest.ID)
	if err != nil {
		return inode.Inode{}, fmt.Errorf(
			"copying file `%s` to `%s` as `%s`: %w",
			name,
			dest.Path(),
			copyName,
			err,
		)
	}

	dir.fs.Logger.Debug(
		"copied file",
		"src", name,
		"dst", copyName,
		"dir", dest.Path(),
		"start", file.Start,
		"count", file.Count,
	)
	return file, nil
}

// nextCopyName cuts the base name short where needed so that the suffixed
// name still fits in `MaxNameLength`.
func nextCopyName(name string, taken func(string) bool) string {
	base := copySuffix.ReplaceAllString(name, "")
	for i := 1; ; i++ {
		suffix := fmt.Sprintf("(%d)", i)
		prefix := base
		if n := MaxNameLength - len(suffix); len(prefix) > n {
			prefix = prefix[:n]
		}
		candidate := prefix + suffix
		if !taken(candidate) {
			return candidate
		}
	}
}
