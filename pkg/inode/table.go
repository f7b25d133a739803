package inode

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/weberc2/fssim/pkg/alloc"
	. "github.com/weberc2/fssim/pkg/types"
)

// Table is a fixed-capacity array of inode slots. It is flat: every directory
// on the volume shares one table, so file names are unique volume-wide. The
// table never grows or shrinks.
type Table struct {
	slots  []Inode
	blocks alloc.RunAllocator
	clock  clock.Clock
}

func NewTable(
	capacity int,
	blocks alloc.RunAllocator,
	clk clock.Clock,
) *Table {
	if clk == nil {
		clk = clock.New()
	}
	now := clk.Now()
	slots := make([]Inode, capacity)
	for i := range slots {
		slots[i] = free(Ino(i+1), now)
	}
	return &Table{slots: slots, blocks: blocks, clock: clk}
}

func (t *Table) Len() int { return len(t.slots) }

func (t *Table) Used() int {
	var used int
	for i := range t.slots {
		if t.slots[i].Used {
			used++
		}
	}
	return used
}

// FreeBlocks reports the free block count of the allocator backing the
// table.
func (t *Table) FreeBlocks() Block { return t.blocks.CountFree() }

func (t *Table) Get(ino Ino) (Inode, bool) {
	if slot := t.slot(ino); slot != nil {
		return *slot, true
	}
	return Inode{}, false
}

// FindByName returns the bound inode named `name`.
func (t *Table) FindByName(name string) (Inode, bool) {
	if slot := t.find(name); slot != nil {
		return *slot, true
	}
	return Inode{}, false
}

// Each calls `f` with every bound inode in table order.
func (t *Table) Each(f func(Inode)) {
	for i := range t.slots {
		if t.slots[i].Used {
			f(t.slots[i])
		}
	}
}

// Owned returns the bound inodes filed under `owner`, in table order.
func (t *Table) Owned(owner DirID) []Inode {
	var out []Inode
	t.Each(func(inode Inode) {
		if inode.Owner == owner {
			out = append(out, inode)
		}
	})
	return out
}

// Slots returns a copy of every slot, bound or free.
func (t *Table) Slots() []Inode {
	return append([]Inode(nil), t.slots...)
}

// Allocate binds a free slot to a new file of `size` bytes filed under
// `owner`. The checks run before anything is claimed, so a failed allocation
// leaves neither a slot nor any blocks behind.
func (t *Table) Allocate(name string, size Byte, owner DirID) (Inode, error) {
	if err := t.validateName(name, InoNil); err != nil {
		return Inode{}, fmt.Errorf("allocating inode `%s`: %w", name, err)
	}

	count := BlocksFor(size)
	if size < 0 || count > MaxBlocksPerFile {
		return Inode{}, fmt.Errorf(
			"allocating inode `%s` with size `%d`: %w",
			name,
			size,
			SizeOutOfRangeErr,
		)
	}

	slot := t.freeSlot()
	if slot == nil {
		return Inode{}, fmt.Errorf(
			"allocating inode `%s`: %w",
			name,
			CapacityExceededErr,
		)
	}

	if free := t.FreeBlocks(); count > free {
		return Inode{}, fmt.Errorf(
			"allocating inode `%s`: `%d` blocks requested, `%d` free: %w",
			name,
			count,
			free,
			InsufficientSpaceErr,
		)
	}

	start, ok := t.blocks.AllocRun(count)
	if !ok {
		return Inode{}, fmt.Errorf(
			"allocating inode `%s`: no run of `%d` contiguous blocks: %w",
			name,
			count,
			InsufficientSpaceErr,
		)
	}

	*slot = Inode{
		Ino:      slot.Ino,
		Name:     name,
		Size:     size,
		Start:    start,
		Count:    count,
		Modified: t.clock.Now(),
		Used:     true,
		Owner:    owner,
	}
	return *slot, nil
}

// Release frees the blocks of the inode named `name` and returns its slot to
// the free pool.
func (t *Table) Release(name string) error {
	slot := t.find(name)
	if slot == nil {
		return fmt.Errorf("releasing inode `%s`: %w", name, NotFoundErr)
	}
	if slot.Count > 0 {
		t.blocks.FreeRun(slot.Start, slot.Count)
	}
	*slot = free(slot.Ino, t.clock.Now())
	return nil
}

// Rename changes the name and owner of a bound inode. The new name must pass
// the same checks as a newly allocated one; keeping the current name is
// allowed. The inode's blocks are not touched.
func (t *Table) Rename(ino Ino, name string, owner DirID) error {
	slot := t.slot(ino)
	if slot == nil {
		return fmt.Errorf("renaming inode `%d`: %w", ino, NotFoundErr)
	}
	if err := t.validateName(name, ino); err != nil {
		return fmt.Errorf(
			"renaming inode `%d` from `%s` to `%s`: %w",
			ino,
			slot.Name,
			name,
			err,
		)
	}
	slot.Name = name
	slot.Owner = owner
	slot.Modified = t.clock.Now()
	return nil
}

// SetSize updates the size of a bound inode without moving its blocks. The
// caller guarantees the size still fits in the inode's run.
func (t *Table) SetSize(ino Ino, size Byte) error {
	slot := t.slot(ino)
	if slot == nil {
		return fmt.Errorf("setting size of inode `%d`: %w", ino, NotFoundErr)
	}
	if BlocksFor(size) != slot.Count {
		return fmt.Errorf(
			"setting size of inode `%d` to `%d`: needs `%d` blocks, has `%d`: %w",
			ino,
			size,
			BlocksFor(size),
			slot.Count,
			SizeOutOfRangeErr,
		)
	}
	slot.Size = size
	slot.Modified = t.clock.Now()
	return nil
}

// Rebind points a bound inode at a new run of blocks which the caller has
// already claimed from the allocator.
func (t *Table) Rebind(ino Ino, start, count Block, size Byte) error {
	slot := t.slot(ino)
	if slot == nil {
		return fmt.Errorf("rebinding inode `%d`: %w", ino, NotFoundErr)
	}
	slot.Start = start
	slot.Count = count
	slot.Size = size
	slot.Modified = t.clock.Now()
	return nil
}

func (t *Table) validateName(name string, self Ino) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if existing := t.find(name); existing != nil && existing.Ino != self {
		return DuplicateNameErr
	}
	return nil
}

func (t *Table) find(name string) *Inode {
	for i := range t.slots {
		if t.slots[i].Used && t.slots[i].Name == name {
			return &t.slots[i]
		}
	}
	return nil
}

func (t *Table) freeSlot() *Inode {
	for i := range t.slots {
		if !t.slots[i].Used {
			return &t.slots[i]
		}
	}
	return nil
}

func (t *Table) slot(ino Ino) *Inode {
	if ino == InoNil || ino > Ino(len(t.slots)) {
		return nil
	}
	if slot := &t.slots[ino-1]; slot.Used {
		return slot
	}
	return nil
}
