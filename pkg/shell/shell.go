package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/weberc2/fssim/pkg/directory"
	"github.com/weberc2/fssim/pkg/log"
	. "github.com/weberc2/fssim/pkg/types"
	"github.com/weberc2/fssim/pkg/volume"
)

const (
	DefaultPrompt = "fssim> "

	// ExitErr is returned by `Execute` for the `exit` command.
	ExitErr ConstError = "exit"
)

// Shell is the interactive front end of a volume. It keeps the current
// directory and turns each command line into calls on the volume.
type Shell struct {
	Volume *volume.Volume
	Cwd    *directory.Directory
	Out    io.Writer
	Prompt string
}

func New(v *volume.Volume, out io.Writer) *Shell {
	return &Shell{Volume: v, Cwd: v.Root(), Out: out, Prompt: DefaultPrompt}
}

// Execute runs one command line. Blank lines are ignored.
func (sh *Shell) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return nil
	}
	fields[0] = strings.ToLower(fields[0])
	if fields[0] == "exit" {
		return ExitErr
	}
	return sh.app().RunContext(ctx, append([]string{appName}, fields...))
}

// Run reads commands from `in` until `exit` or end of input. Failed commands
// are reported and the loop carries on with the next line.
func (sh *Shell) Run(ctx context.Context, in io.Reader, interactive bool) error {
	logger := log.FromContext(ctx)
	if interactive {
		sh.printf(
			"Welcome to the Filesystem Simulator. " +
				"Type 'help' for a list of commands.\n",
		)
	}

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			sh.printf("%s", sh.Prompt)
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if err := sh.Execute(ctx, line); err != nil {
			if errors.Is(err, ExitErr) {
				sh.printf("Exiting simulator.\n")
				return nil
			}
			logger.Info("command failed", "line", line, "err", err.Error())
			sh.printf("Error: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading commands: %w", err)
	}
	return nil
}

func (sh *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(sh.Out, format, args...)
}
