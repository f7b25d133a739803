package inode

import (
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weberc2/fssim/pkg/alloc"
	. "github.com/weberc2/fssim/pkg/types"
)

const (
	rootID  DirID = "root-id"
	otherID DirID = "other-id"
)

func newTable(t *testing.T) (*Table, *alloc.Bitmap, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()
	clk.Set(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	blocks := alloc.New(TotalBlocks)
	return NewTable(MaxFiles, blocks, clk), blocks, clk
}

func TestNewTable(t *testing.T) {
	table, _, clk := newTable(t)
	require.Equal(t, MaxFiles, table.Len())
	require.Equal(t, 0, table.Used())
	for i, slot := range table.Slots() {
		assert.Equal(t, free(Ino(i+1), clk.Now()), slot)
	}
}

func TestTable_Allocate(t *testing.T) {
	type testCase struct {
		name       string
		setup      func(t *testing.T, table *Table, blocks *alloc.Bitmap)
		inputName  string
		inputSize  Byte
		wanted     Inode
		wantedErr  error
		wantedFree Block
	}

	testCases := []testCase{{
		name:      "first-file",
		inputName: "report",
		inputSize: 3 * KB,
		wanted: Inode{
			Ino:   1,
			Name:  "report",
			Size:  3 * KB,
			Start: 0,
			Count: 3,
			Used:  true,
			Owner: rootID,
		},
		wantedFree: TotalBlocks - 3,
	}, {
		name:      "zero-size",
		inputName: "empty",
		inputSize: 0,
		wanted: Inode{
			Ino:   1,
			Name:  "empty",
			Start: BlockNil,
			Used:  true,
			Owner: rootID,
		},
		wantedFree: TotalBlocks,
	}, {
		name:       "max-size",
		inputName:  "big",
		inputSize:  MaxFileSize,
		wanted:     Inode{Ino: 1, Name: "big", Size: MaxFileSize, Count: 8, Used: true, Owner: rootID},
		wantedFree: TotalBlocks - 8,
	}, {
		name:       "nine-blocks",
		inputName:  "huge",
		inputSize:  9 * KB,
		wantedErr:  SizeOutOfRangeErr,
		wantedFree: TotalBlocks,
	}, {
		name:       "negative",
		inputName:  "neg",
		inputSize:  -KB,
		wantedErr:  SizeOutOfRangeErr,
		wantedFree: TotalBlocks,
	}, {
		name: "duplicate",
		setup: func(t *testing.T, table *Table, _ *alloc.Bitmap) {
			_, err := table.Allocate("report", KB, otherID)
			require.NoError(t, err)
		},
		inputName:  "report",
		inputSize:  KB,
		wantedErr:  DuplicateNameErr,
		wantedFree: TotalBlocks - 1,
	}, {
		name:       "name-too-long",
		inputName:  "abcdefghijk",
		inputSize:  KB,
		wantedErr:  NameTooLongErr,
		wantedFree: TotalBlocks,
	}, {
		name: "table-full",
		setup: func(t *testing.T, table *Table, _ *alloc.Bitmap) {
			for i := 0; i < MaxFiles; i++ {
				_, err := table.Allocate(fmt.Sprintf("f%d", i), KB, rootID)
				require.NoError(t, err)
			}
		},
		inputName:  "f16",
		inputSize:  KB,
		wantedErr:  CapacityExceededErr,
		wantedFree: TotalBlocks - Block(MaxFiles),
	}, {
		name: "table-full-and-disk-full",
		setup: func(t *testing.T, table *Table, _ *alloc.Bitmap) {
			for i := 0; i < MaxFiles; i++ {
				_, err := table.Allocate(fmt.Sprintf("f%d", i), MaxFileSize, rootID)
				require.NoError(t, err)
			}
		},
		inputName:  "extra",
		inputSize:  KB,
		wantedErr:  CapacityExceededErr,
		wantedFree: 0,
	}, {
		name: "not-enough-free-blocks",
		setup: func(t *testing.T, _ *Table, blocks *alloc.Bitmap) {
			blocks.ReserveRun(0, TotalBlocks-2)
		},
		inputName:  "report",
		inputSize:  3 * KB,
		wantedErr:  InsufficientSpaceErr,
		wantedFree: 2,
	}, {
		name: "fragmented",
		setup: func(t *testing.T, _ *Table, blocks *alloc.Bitmap) {
			// every other block in use: half the volume free, no run of 2
			for b := Block(0); b < TotalBlocks; b += 2 {
				blocks.ReserveRun(b, 1)
			}
		},
		inputName:  "report",
		inputSize:  2 * KB,
		wantedErr:  InsufficientSpaceErr,
		wantedFree: TotalBlocks / 2,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			table, blocks, clk := newTable(t)
			if tc.setup != nil {
				tc.setup(t, table, blocks)
			}
			used := table.Used()
			clk.Add(time.Minute)

			found, err := table.Allocate(tc.inputName, tc.inputSize, rootID)
			require.Equal(t, tc.wantedFree, blocks.CountFree())
			if tc.wantedErr != nil {
				require.ErrorIs(t, err, tc.wantedErr)
				require.Equal(t, used, table.Used())
				return
			}
			require.NoError(t, err)

			tc.wanted.Modified = clk.Now()
			require.Equal(t, tc.wanted, found)
			got, ok := table.FindByName(tc.inputName)
			require.True(t, ok)
			require.Equal(t, found, got)
		})
	}
}

func TestTable_Release(t *testing.T) {
	table, blocks, clk := newTable(t)
	a, err := table.Allocate("a", 2*KB, rootID)
	require.NoError(t, err)
	b, err := table.Allocate("b", 3*KB, rootID)
	require.NoError(t, err)
	require.Equal(t, Block(2), b.Start)

	clk.Add(time.Hour)
	require.NoError(t, table.Release("a"))
	require.Equal(t, TotalBlocks-3, blocks.CountFree())
	_, ok := table.FindByName("a")
	require.False(t, ok)

	slot := table.Slots()[a.Ino-1]
	require.Equal(t, free(a.Ino, clk.Now()), slot)

	require.ErrorIs(t, table.Release("a"), NotFoundErr)
	require.ErrorIs(t, table.Release("missing"), NotFoundErr)

	// the freed slot and run are reused
	c, err := table.Allocate("c", 2*KB, otherID)
	require.NoError(t, err)
	require.Equal(t, a.Ino, c.Ino)
	require.Equal(t, Block(0), c.Start)
}

func TestTable_Rename(t *testing.T) {
	table, blocks, _ := newTable(t)
	doc, err := table.Allocate("doc", 2*KB, rootID)
	require.NoError(t, err)
	_, err = table.Allocate("notes", KB, rootID)
	require.NoError(t, err)
	freeBlocks := blocks.CountFree()

	require.NoError(t, table.Rename(doc.Ino, "doc", otherID))
	require.NoError(t, table.Rename(doc.Ino, "paper", otherID))

	found, ok := table.FindByName("paper")
	require.True(t, ok)
	require.Equal(t, otherID, found.Owner)
	require.Equal(t, doc.Start, found.Start)
	require.Equal(t, doc.Count, found.Count)
	require.Equal(t, freeBlocks, blocks.CountFree())

	require.ErrorIs(t, table.Rename(doc.Ino, "notes", rootID), DuplicateNameErr)
	require.ErrorIs(t, table.Rename(doc.Ino, "waytoolongname", rootID), NameTooLongErr)
	require.ErrorIs(t, table.Rename(doc.Ino, "", rootID), InvalidNameErr)
	require.ErrorIs(t, table.Rename(InoNil, "x", rootID), NotFoundErr)

	found, _ = table.Get(doc.Ino)
	require.Equal(t, "paper", found.Name)
	require.Equal(t, otherID, found.Owner)
}

func TestTable_SetSizeAndRebind(t *testing.T) {
	table, blocks, _ := newTable(t)
	f, err := table.Allocate("f", 2*KB, rootID)
	require.NoError(t, err)

	require.ErrorIs(t, table.SetSize(f.Ino, 3*KB), SizeOutOfRangeErr)
	require.NoError(t, table.SetSize(f.Ino, 2*KB-100))

	start, ok := blocks.AllocRun(4)
	require.True(t, ok)
	blocks.FreeRun(f.Start, f.Count)
	require.NoError(t, table.Rebind(f.Ino, start, 4, 4*KB))

	found, ok := table.Get(f.Ino)
	require.True(t, ok)
	require.Equal(t, start, found.Start)
	require.Equal(t, Block(4), found.Count)
	require.Equal(t, 4*KB, found.Size)
}

func TestTable_Owned(t *testing.T) {
	table, _, _ := newTable(t)
	for _, f := range []struct {
		name  string
		owner DirID
	}{{"a", rootID}, {"b", otherID}, {"c", rootID}} {
		_, err := table.Allocate(f.name, KB, f.owner)
		require.NoError(t, err)
	}

	var names []string
	for _, inode := range table.Owned(rootID) {
		names = append(names, inode.Name)
	}
	require.Equal(t, []string{"a", "c"}, names)
	require.Len(t, table.Owned(otherID), 1)
	require.Empty(t, table.Owned("nobody"))
}

func TestInode_Overlaps(t *testing.T) {
	a := Inode{Start: 2, Count: 3}
	require.True(t, a.Overlaps(&Inode{Start: 4, Count: 1}))
	require.True(t, a.Overlaps(&Inode{Start: 0, Count: 3}))
	require.False(t, a.Overlaps(&Inode{Start: 5, Count: 2}))
	require.False(t, a.Overlaps(&Inode{Start: BlockNil}))
	require.Equal(t, []Block{2, 3, 4}, a.Blocks())
	require.Equal(t, Block(5), a.End())
}
