package directory

import (
	"fmt"

	. "github.com/weberc2/fssim/pkg/types"
)

// CreateDirectory adds an empty sub-directory named `name`.
func (dir *Directory) CreateDirectory(name string) (*Directory, error) {
	if err := ValidateName(name); err != nil {
		return nil, fmt.Errorf(
			"creating directory `%s` in `%s`: %w",
			name,
			dir.Path(),
			err,
		)
	}
	if _, exists := dir.children[name]; exists {
		return nil, fmt.Errorf(
			"creating directory `%s` in `%s`: %w",
			name,
			dir.Path(),
			DuplicateNameErr,
		)
	}

	child := dir.fs.newDirectory(name, dir)
	dir.children[name] = child
	dir.fs.Logger.Debug(
		"created directory",
		"path", child.Path(),
		"id", child.ID,
	)
	return child, nil
}
