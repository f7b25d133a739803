package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/weberc2/fssim/pkg/log"
	"github.com/weberc2/fssim/pkg/shell"
	"github.com/weberc2/fssim/pkg/volume"
)

func main() {
	app := cli.App{
		Name:        appName,
		Usage:       "an in-memory block, inode and directory simulator",
		Description: "starts an interactive session on a fresh 128KB volume",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage: "the YAML config file. Defaults to " +
					"`$FSSIM_CONFIG_FILE` or ~/.config/fssim.yaml.",
			},
		},
		Action: withShell(func(c *Config, sh *shell.Shell, ctx *cli.Context) error {
			if c.Script != "" {
				if err := runScript(ctx.Context, sh, c.Script); err != nil {
					return err
				}
			}
			return sh.Run(ctx.Context, os.Stdin, true)
		}),
		Commands: []*cli.Command{{
			Name:        "run",
			Usage:       "run the commands in a script file and exit",
			ArgsUsage:   "[file]",
			Description: "defaults to the configured `script`",
			Action: withShell(func(c *Config, sh *shell.Shell, ctx *cli.Context) error {
				script := c.Script
				if ctx.Args().Present() {
					script = ctx.Args().First()
				}
				if script == "" {
					return fmt.Errorf("run: no script file given")
				}
				return runScript(ctx.Context, sh, script)
			}),
		}},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func withShell(
	f func(*Config, *shell.Shell, *cli.Context) error,
) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		configFile := ctx.String("config")
		c, err := LoadConfig(
			func() string {
				if configFile != "" {
					return configFile
				}
				return DefaultConfigFile()
			}(),
			configFile != "",
		)
		if err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}

		logger, err := log.New(os.Stderr, c.LogLevel, c.LogFormat)
		if err != nil {
			return err
		}
		ctx.Context = log.Context(ctx.Context, logger)

		sh := shell.New(volume.New(volume.Options{Logger: logger}), os.Stdout)
		sh.Prompt = c.Prompt
		return f(c, sh, ctx)
	}
}

func runScript(ctx context.Context, sh *shell.Shell, script string) error {
	file, err := os.Open(script)
	if err != nil {
		return fmt.Errorf("opening script: %w", err)
	}
	defer file.Close()

	log.FromContext(ctx).Debug("running script", "script", script)
	return sh.Run(ctx, file, false)
}
