package directory

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/weberc2/fssim/pkg/inode"
	. "github.com/weberc2/fssim/pkg/types"
)

const RootName = "root"

// FileSystem is the namespace of a volume: the directory tree plus the one
// inode table every directory in it shares.
type FileSystem struct {
	Inodes *inode.Table
	Root   *Directory
	NewID  func() DirID
	Logger *slog.Logger
}

// New builds a namespace holding only the root directory. `newID` defaults
// to random UUIDs and `logger` to a logger which discards everything.
func New(
	inodes *inode.Table,
	newID func() DirID,
	logger *slog.Logger,
) *FileSystem {
	if newID == nil {
		newID = NewID
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	fs := &FileSystem{Inodes: inodes, NewID: newID, Logger: logger}
	fs.Root = fs.newDirectory(RootName, nil)
	return fs
}

func NewID() DirID { return DirID(uuid.NewString()) }

func (fs *FileSystem) newDirectory(name string, parent *Directory) *Directory {
	return &Directory{
		ID:       fs.NewID(),
		Name:     name,
		fs:       fs,
		parent:   parent,
		children: make(map[string]*Directory),
	}
}

// Walk visits every attached directory, parents before children and
// siblings in name order.
func (fs *FileSystem) Walk(f func(*Directory)) {
	var walk func(*Directory)
	walk = func(dir *Directory) {
		f(dir)
		for _, name := range dir.Children() {
			walk(dir.children[name])
		}
	}
	walk(fs.Root)
}
