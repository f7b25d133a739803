package volume

import (
	"fmt"
	"strings"

	"github.com/weberc2/fssim/pkg/directory"
	"github.com/weberc2/fssim/pkg/inode"
	. "github.com/weberc2/fssim/pkg/types"
	"gopkg.in/yaml.v2"
)

// Snapshot is a point-in-time description of a volume, meant for humans and
// tests rather than for loading back.
type Snapshot struct {
	Disk        DiskInfo      `yaml:"disk"`
	Bitmap      []string      `yaml:"bitmap"`
	Directories []DirSnapshot `yaml:"directories"`
	Inodes      []inode.Inode `yaml:"inodes"`
}

type DirSnapshot struct {
	Path  string   `yaml:"path"`
	ID    DirID    `yaml:"id"`
	Files []string `yaml:"files,omitempty"`
}

func (v *Volume) Snapshot() Snapshot {
	snapshot := Snapshot{Disk: v.Info()}

	for _, row := range strings.Split(v.BlockMap(), "\n") {
		snapshot.Bitmap = append(
			snapshot.Bitmap,
			strings.Trim(row, "[] "),
		)
	}

	v.fs.Walk(func(dir *directory.Directory) {
		entry := DirSnapshot{Path: dir.Path(), ID: dir.ID}
		for _, file := range dir.Files() {
			entry.Files = append(entry.Files, file.Name)
		}
		snapshot.Directories = append(snapshot.Directories, entry)
	})

	v.inodes.Each(func(file inode.Inode) {
		snapshot.Inodes = append(snapshot.Inodes, file)
	})
	return snapshot
}

// YAML renders the snapshot as a YAML document.
func (snapshot *Snapshot) YAML() ([]byte, error) {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshaling volume snapshot: %w", err)
	}
	return data, nil
}
