package types

import "strings"

// Ino identifies a slot in the inode table. Slot `n` has ino `n+1` so the zero
// value never names a slot.
type Ino uint64

const (
	MaxFiles      int = 16
	MaxNameLength int = 10

	InoNil Ino = 0
)

// DirID is the stable identity of a directory. Inodes reference the directory
// they are filed under by ID, never by display name.
type DirID string

const DirIDNil DirID = ""

// ValidateName checks the constraints shared by file and directory names.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, "/ \t\n") {
		return InvalidNameErr
	}
	if len(name) > MaxNameLength {
		return NameTooLongErr
	}
	return nil
}
