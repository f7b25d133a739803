package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	. "github.com/weberc2/fssim/pkg/types"
	"github.com/weberc2/fssim/pkg/volume"
)

const (
	appName    = "fssim"
	timeLayout = "2006/01/02 15:04:05"

	UsageErr ConstError = "usage"
)

func (sh *Shell) app() *cli.App {
	return &cli.App{
		Name:        appName,
		Usage:       "an in-memory block, inode and directory simulator",
		HideVersion: true,
		Writer:      sh.Out,
		ErrWriter:   sh.Out,
		// errors are reported by the caller; never exit the process
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(ctx *cli.Context) error {
			if ctx.Args().Present() {
				return fmt.Errorf(
					"unknown command `%s`; type 'help' for a list of commands",
					ctx.Args().First(),
				)
			}
			return nil
		},
		Commands: []*cli.Command{{
			Name:   "ls",
			Usage:  "list directory contents",
			Action: sh.ls,
		}, {
			Name:      "cd",
			Usage:     "change directory; no argument returns to the root",
			ArgsUsage: "[path]",
			Action:    sh.cd,
		}, {
			Name:   "pwd",
			Usage:  "print working directory",
			Action: sh.pwd,
		}, {
			Name:      "mkfile",
			Usage:     "create a file of the given size in KB",
			ArgsUsage: "<name> <size>",
			Action:    sh.mkfile,
		}, {
			Name:      "rmfile",
			Usage:     "remove a file",
			ArgsUsage: "<name>",
			Action:    sh.rmfile,
		}, {
			Name:      "mkdir",
			Usage:     "create a directory",
			ArgsUsage: "<name>",
			Action:    sh.mkdir,
		}, {
			Name:      "rmdir",
			Usage:     "remove a directory and everything in it",
			ArgsUsage: "<name>",
			Action:    sh.rmdir,
		}, {
			Name:      "cpfile",
			Usage:     "copy a file into a directory, e.g. `cpfile myfile /dest`",
			ArgsUsage: "<source> <destination>",
			Action:    sh.cpfile,
		}, {
			Name: "mvfile",
			Usage: "move a file to another directory and optionally rename " +
				"it, e.g. `mvfile dir/myfile /dest newfile`",
			ArgsUsage: "<source> <destination> [newName]",
			Action:    sh.mvfile,
		}, {
			Name:      "writefile",
			Usage:     "grow (-a) or shrink (-r) a file by the given KB",
			ArgsUsage: "<-a|-r> <name> <size>",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "a", Usage: "append"},
				&cli.BoolFlag{Name: "r", Usage: "reduce"},
			},
			Action: sh.writefile,
		}, {
			Name:   "diskinfo",
			Usage:  "display disk usage",
			Action: sh.diskinfo,
		}, {
			Name:      "fileinfo",
			Usage:     "display information about a file",
			ArgsUsage: "<name>",
			Action:    sh.fileinfo,
		}, {
			Name:   "showsystem",
			Usage:  "show the block bitmap",
			Action: sh.showsystem,
		}, {
			Name:   "dump",
			Usage:  "print a YAML snapshot of the volume",
			Action: sh.dump,
		}, {
			Name:   "fsck",
			Usage:  "check the volume's invariants",
			Action: sh.fsck,
		}},
	}
}

func (sh *Shell) ls(ctx *cli.Context) error {
	listing := sh.Cwd.List()
	sh.printf("Contents of directory '%s':\n", sh.Cwd.Name)
	for _, name := range listing.Dirs {
		sh.printf("[Dir] %s\n", name)
	}
	for _, file := range listing.Files {
		sh.printf(
			"Name: %s, Size: %dKB, Last Modified: %s\n",
			file.Name,
			file.SizeKB(),
			file.Modified.Format(timeLayout),
		)
	}
	return nil
}

func (sh *Shell) cd(ctx *cli.Context) error {
	if !ctx.Args().Present() {
		sh.Cwd = sh.Volume.Root()
		sh.printf("Returned to root directory.\n")
		return nil
	}
	dir, err := sh.Cwd.Resolve(ctx.Args().First())
	if err != nil {
		return err
	}
	sh.Cwd = dir
	return nil
}

func (sh *Shell) pwd(ctx *cli.Context) error {
	sh.printf("%s\n", sh.Cwd.Path())
	return nil
}

func (sh *Shell) mkfile(ctx *cli.Context) error {
	if err := requireArgs(ctx, 2); err != nil {
		return err
	}
	name := ctx.Args().Get(0)
	size, err := parseKB(ctx.Args().Get(1))
	if err != nil {
		return err
	}
	if _, err := sh.Cwd.CreateFile(name, size); err != nil {
		return err
	}
	sh.printf("File '%s' created with size %dKB.\n", name, size)
	return nil
}

func (sh *Shell) rmfile(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	name := ctx.Args().First()
	if err := sh.Cwd.DeleteFile(name); err != nil {
		return err
	}
	sh.printf("File '%s' deleted.\n", name)
	return nil
}

func (sh *Shell) mkdir(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	name := ctx.Args().First()
	if _, err := sh.Cwd.CreateDirectory(name); err != nil {
		return err
	}
	sh.printf("Directory '%s' created.\n", name)
	return nil
}

func (sh *Shell) rmdir(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	name := ctx.Args().First()
	if err := sh.Cwd.DeleteDirectory(name); err != nil {
		return err
	}
	sh.printf("Directory '%s' deleted.\n", name)
	return nil
}

func (sh *Shell) cpfile(ctx *cli.Context) error {
	if err := requireArgs(ctx, 2); err != nil {
		return err
	}
	src, dest := ctx.Args().Get(0), ctx.Args().Get(1)
	file, err := sh.Cwd.CopyFile(src, dest)
	if err != nil {
		return err
	}
	sh.printf(
		"File '%s' copied to '%s' in directory '%s'.\n",
		src,
		file.Name,
		dest,
	)
	return nil
}

func (sh *Shell) mvfile(ctx *cli.Context) error {
	if err := requireArgs(ctx, 2); err != nil {
		return err
	}
	src, dest, name := ctx.Args().Get(0), ctx.Args().Get(1), ctx.Args().Get(2)
	if err := sh.Cwd.MoveFile(src, dest, name); err != nil {
		return err
	}
	if name == "" {
		_, name = splitName(src)
	}
	sh.printf(
		"File '%s' moved to '%s' in directory '%s'.\n",
		src,
		name,
		dest,
	)
	return nil
}

func (sh *Shell) writefile(ctx *cli.Context) error {
	var flag string
	switch {
	case ctx.Bool("a") && !ctx.Bool("r"):
		flag = "-a"
	case ctx.Bool("r") && !ctx.Bool("a"):
		flag = "-r"
	default:
		return fmt.Errorf(
			"%w: writefile <-a|-r> <name> <size>: exactly one of -a or -r",
			UsageErr,
		)
	}
	mode, err := volume.ParseMode(flag)
	if err != nil {
		return err
	}
	if err := requireArgs(ctx, 2); err != nil {
		return err
	}
	name := ctx.Args().Get(0)
	delta, err := parseKB(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	before, err := sh.Volume.FileInfo(name)
	if err != nil {
		return err
	}
	after, err := sh.Volume.Resize(name, delta, mode)
	if err != nil {
		return err
	}

	switch {
	case after.Count == before.Count:
		sh.printf("File size updated without reallocating blocks.\n")
	case mode == volume.ModeAppend:
		sh.printf("File '%s' updated: %d KB allocated.\n", name, delta)
	default:
		sh.printf("File '%s' updated: %d KB deallocated.\n", name, delta)
	}
	return nil
}

func (sh *Shell) diskinfo(ctx *cli.Context) error {
	info := sh.Volume.Info()
	sh.printf("Disk Information:\n")
	sh.printf("Total Disk Space: %s\n", formatBytes(info.TotalBytes))
	sh.printf("Used Disk Space: %s\n", formatBytes(info.UsedBytes))
	sh.printf("Remaining Disk Space: %s\n", formatBytes(info.FreeBytes))
	sh.printf("Total Blocks: %d\n", info.TotalBlocks)
	sh.printf("Free Blocks: %d\n", info.FreeBlocks)
	sh.printf("Used Blocks: %d\n", info.UsedBlocks)
	sh.printf("Total Inodes: %d\n", info.TotalInodes)
	sh.printf("Used Inodes: %d\n", info.UsedInodes)
	sh.printf("Free Inodes: %d\n", info.FreeInodes)
	return nil
}

func (sh *Shell) fileinfo(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	file, err := sh.Volume.FileInfo(ctx.Args().First())
	if err != nil {
		return err
	}
	blocks := make([]string, 0, file.Count)
	for _, b := range file.Blocks() {
		blocks = append(blocks, strconv.FormatInt(int64(b), 10))
	}
	sh.printf("File Information for '%s':\n", file.Name)
	sh.printf("File size: %s\n", formatBytes(file.Size))
	sh.printf("Blocks used: [%s]\n", strings.Join(blocks, ", "))
	sh.printf("Last Modified Time: %s\n", file.Modified.Format(timeLayout))
	sh.printf("Used: %s\n", yesNo(file.Used))
	return nil
}

func (sh *Shell) showsystem(ctx *cli.Context) error {
	sh.printf("%s\n", sh.Volume.BlockMap())
	return nil
}

func (sh *Shell) dump(ctx *cli.Context) error {
	snapshot := sh.Volume.Snapshot()
	data, err := snapshot.YAML()
	if err != nil {
		return err
	}
	sh.printf("%s", data)
	return nil
}

func (sh *Shell) fsck(ctx *cli.Context) error {
	if err := sh.Volume.Check(); err != nil {
		return fmt.Errorf("volume is inconsistent: %w", err)
	}
	sh.printf("Volume is consistent.\n")
	return nil
}

func requireArgs(ctx *cli.Context, n int) error {
	if ctx.NArg() < n {
		return fmt.Errorf(
			"%w: %s %s",
			UsageErr,
			ctx.Command.Name,
			ctx.Command.ArgsUsage,
		)
	}
	return nil
}

func parseKB(s string) (int64, error) {
	kb, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing size `%s`: %w", s, err)
	}
	return kb, nil
}

func splitName(path string) (string, string) {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[:i], path[i+1:]
	}
	return "", path
}

func formatBytes(b Byte) string {
	return fmt.Sprintf("%d Bytes (%s)", b, humanize.IBytes(uint64(b)))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
