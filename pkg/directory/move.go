package directory

import (
	"fmt"

	. "github.com/weberc2/fssim/pkg/types"
)

// MoveFile refiles the file at `srcPath` (`dir/.../name` or a bare name in
// `dir`) under the directory at `destPath`, renaming it to `newName` unless
// `newName` is empty. Only inode metadata changes; the file keeps its
// blocks.
func (dir *Directory) MoveFile(srcPath, destPath, newName string) error {
	srcDirPath, name := splitFilePath(srcPath)
	if name == "" {
		return fmt.Errorf("moving `%s`: %w", srcPath, InvalidNameErr)
	}

	srcDir := dir
	if srcDirPath != "" {
		var err error
		if srcDir, err = dir.Resolve(srcDirPath); err != nil {
			return fmt.Errorf("moving `%s`: source: %w", srcPath, err)
		}
	}

	dest, err := dir.Resolve(destPath)
	if err != nil {
		return fmt.Errorf("moving `%s`: destination: %w", srcPath, err)
	}

	file, err := srcDir.File(name)
	if err != nil {
		return fmt.Errorf("moving `%s`: %w", srcPath, err)
	}

	if newName == "" {
		newName = name
	}
	if err := dir.fs.Inodes.Rename(file.Ino, newName, dest.ID); err != nil {
		return fmt.Errorf(
			"moving `%s` to `%s`: %w",
			srcPath,
			dest.Path(),
			err,
		)
	}

	dir.fs.Logger.Debug(
		"moved file",
		"src", srcPath,
		"dir", dest.Path(),
		"name", newName,
	)
	return nil
}
