package volume

import (
	"io"
	"log/slog"

	"github.com/benbjohnson/clock"
	"github.com/weberc2/fssim/pkg/alloc"
	"github.com/weberc2/fssim/pkg/directory"
	"github.com/weberc2/fssim/pkg/inode"
	. "github.com/weberc2/fssim/pkg/types"
)

type Options struct {
	Clock  clock.Clock
	Logger *slog.Logger
	NewID  func() DirID
}

// Volume is one simulated disk: the block bitmap, the inode table and the
// directory tree on top of them. A volume is not safe for concurrent use;
// resizing in particular frees and re-claims blocks in separate steps.
type Volume struct {
	blocks *alloc.Bitmap
	inodes *inode.Table
	fs     *directory.FileSystem
	logger *slog.Logger
}

func New(opts Options) *Volume {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	blocks := alloc.New(TotalBlocks)
	inodes := inode.NewTable(MaxFiles, blocks, opts.Clock)
	return &Volume{
		blocks: blocks,
		inodes: inodes,
		fs:     directory.New(inodes, opts.NewID, logger),
		logger: logger,
	}
}

func (v *Volume) Root() *directory.Directory { return v.fs.Root }

func (v *Volume) FileSystem() *directory.FileSystem { return v.fs }

func (v *Volume) Inodes() *inode.Table { return v.inodes }

func (v *Volume) FreeBlocks() Block { return v.blocks.CountFree() }

func (v *Volume) UsedInodes() int { return v.inodes.Used() }
