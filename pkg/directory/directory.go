package directory

import (
	"sort"
	"strings"

	. "github.com/weberc2/fssim/pkg/types"
)

// Directory is a node in the namespace tree. It owns its children; the
// parent pointer is only a back-reference used to walk toward the root.
// Files are not stored on the node: an inode belongs to the directory whose
// ID it carries.
type Directory struct {
	ID   DirID
	Name string

	fs       *FileSystem
	parent   *Directory
	children map[string]*Directory
}

func (dir *Directory) FileSystem() *FileSystem { return dir.fs }

func (dir *Directory) Root() *Directory { return dir.fs.Root }

// Parent returns nil for the root and for directories which have been
// deleted.
func (dir *Directory) Parent() *Directory { return dir.parent }

func (dir *Directory) IsRoot() bool { return dir == dir.fs.Root }

func (dir *Directory) Child(name string) (*Directory, bool) {
	child, ok := dir.children[name]
	return child, ok
}

// Children returns the names of the sub-directories in sorted order.
func (dir *Directory) Children() []string {
	names := make([]string, 0, len(dir.children))
	for name := range dir.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Attached reports whether the directory is still reachable from the root.
func (dir *Directory) Attached() bool {
	for d := dir; d != nil; d = d.parent {
		if d == dir.fs.Root {
			return true
		}
	}
	return false
}

// Path returns the absolute path of the directory, e.g. `/` or `/a/b`.
func (dir *Directory) Path() string {
	var parts []string
	for d := dir; d != nil && d.parent != nil; d = d.parent {
		parts = append(parts, d.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/")
}
