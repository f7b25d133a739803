package types

type ConstError string

func (err ConstError) Error() string { return string(err) }

const (
	DuplicateNameErr     ConstError = "name already exists"
	NotFoundErr          ConstError = "not found"
	CapacityExceededErr  ConstError = "inode table is full"
	InsufficientSpaceErr ConstError = "insufficient space"
	SizeOutOfRangeErr    ConstError = "size out of range"
	NameTooLongErr       ConstError = "name too long"
	InvalidNameErr       ConstError = "invalid name"
	InvalidModeErr       ConstError = "invalid resize mode"
)
