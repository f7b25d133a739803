package directory

import (
	"fmt"
	"strings"

	. "github.com/weberc2/fssim/pkg/types"
)

// Resolve walks `path` to a directory. Absolute paths start at the root and
// relative ones at `dir`. Empty and `.` segments are skipped, `..` moves to
// the parent (the root is its own parent), and any other segment must name
// an existing child.
func (dir *Directory) Resolve(path string) (*Directory, error) {
	current := dir
	if strings.HasPrefix(path, "/") {
		current = dir.fs.Root
	}

	for _, part := range strings.Split(path, "/") {
		switch part {
		case "", ".":
		case "..":
			if current.parent != nil {
				current = current.parent
			}
		default:
			child, ok := current.children[part]
			if !ok {
				return nil, fmt.Errorf(
					"resolving `%s`: directory `%s`: %w",
					path,
					part,
					NotFoundErr,
				)
			}
			current = child
		}
	}
	return current, nil
}

// splitFilePath splits `dir/.../file` into the directory part and the file
// name. A bare name has an empty directory part.
func splitFilePath(path string) (string, string) {
	i := strings.LastIndexByte(path, '/')
	switch {
	case i < 0:
		return "", path
	case i == 0:
		return "/", path[1:]
	default:
		return path[:i], path[i+1:]
	}
}
