// Package main is the entry point for xprompt, a tool that prints a
// colorized shell prompt reflecting the current git repository state.
// The output is consumed through command substitution (PS1="$(xprompt
// ps1 ...)"), so the contract is strict: always print something usable,
// never let a failure reach the prompt.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/56quarters/xprompt/internal/config"
	"github.com/56quarters/xprompt/internal/environment"
	"github.com/56quarters/xprompt/internal/logging"
	"github.com/56quarters/xprompt/internal/prompt"
	"github.com/56quarters/xprompt/internal/shell"
	"github.com/56quarters/xprompt/internal/terminal"
	"github.com/56quarters/xprompt/internal/vcs"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches on the mode argument. Only malformed invocations return
// nonzero; everything the ps1/ps2 pipeline can get wrong degrades inside
// the pipeline instead.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "ps1":
		return runPS1(args[1:], stdout, stderr)
	case "ps2":
		return runPS2(args[1:], stdout, stderr)
	case "init":
		return runInit(args[1:], stdout, stderr)
	case "-version", "--version":
		_, _ = fmt.Fprintf(stdout, "xprompt %s\n", version)
		return 0
	case "-h", "-help", "--help":
		printUsage(stderr)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "Error: unknown mode %q\n", args[0])
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	_, _ = fmt.Fprintf(w, `Usage: %s <mode> [flags]

Modes:
  ps1      Print the primary prompt.
             -exit-status N   exit status of the previous command (default 0)
             -path DIR        directory to render instead of the working directory
  ps2      Print the continuation prompt.
  init     Print shell statements wiring PS1/PS2 to this tool.
             -shell NAME      target shell: bash or zsh (default: detect from $SHELL)

  -version Print the version and exit.
`, name)
}

// startup loads the configuration and installs logging. Both degrade
// rather than fail: the returned config is always usable and cleanup is
// never nil. Config problems are reported through the logger once it is
// up, the only place they may appear.
func startup() (*config.Config, func()) {
	cfg, cfgErr := config.LoadSystem()

	level, err := cfg.LogLevel.ToSlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}

	cleanup, logErr := logging.Setup(logging.Options{
		Level:    level,
		FilePath: cfg.LogFile,
		RunID:    logging.GenerateRunID(),
	})
	// A broken log file leaves the discard handler installed. There is
	// nowhere safe to report it: stdout and stderr both end up in the
	// prompt stream.
	_ = logErr

	if cfgErr != nil {
		slog.Warn("config file ignored, using defaults", "error", cfgErr)
	}

	return cfg, cleanup
}

// colorEnabled resolves the color decision for this invocation: the
// config's explicit mode first, then environment preference and terminal
// capability detection.
func colorEnabled(cfg *config.Config) bool {
	caps := terminal.NewCapabilities(terminal.Options{
		ForceColor:   cfg.Color == config.ColorModeAlways,
		DisableColor: cfg.Color == config.ColorModeNever,
	})
	return caps.SupportsColor()
}

func runPS1(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ps1", flag.ContinueOnError)
	fs.SetOutput(stderr)
	exitStatus := fs.Int("exit-status", 0, "Exit status of the previously executed command")
	path := fs.String("path", "", "Directory to render instead of the working directory")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg, cleanup := startup()
	defer cleanup()

	snap := environment.Capture(environment.Options{
		ExitStatus: *exitStatus,
		WorkDir:    *path,
	})

	inspector := vcs.NewInspector(vcs.Options{Timeout: cfg.GitTimeout()})
	status, found := inspector.Inspect(context.Background(), snap.WorkDir)

	slog.Debug("composing primary prompt",
		"dir", snap.WorkDir,
		"exit_status", snap.ExitStatus,
		"repo_found", found,
	)

	segments := prompt.NewComposer().ComposePS1(snap, status, found)
	_, _ = fmt.Fprint(stdout, prompt.Render(segments, colorEnabled(cfg)))
	return 0
}

func runPS2(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ps2", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg, cleanup := startup()
	defer cleanup()

	segments := prompt.NewComposer().ComposePS2()
	_, _ = fmt.Fprint(stdout, prompt.Render(segments, colorEnabled(cfg)))
	return 0
}

func runInit(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	shellName := fs.String("shell", "", "Target shell: bash or zsh (default: detect from $SHELL)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	var (
		sh  shell.Shell
		err error
	)
	if *shellName != "" {
		sh, err = shell.Parse(*shellName)
	} else {
		sh, err = shell.Detect()
	}
	if err != nil {
		// Unlike a VCS hiccup, this cannot degrade: emitting statements
		// for the wrong shell would break the user's session
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	script, err := shell.InitScript(sh, shell.ExecutablePath())
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	_, _ = fmt.Fprint(stdout, script)
	return 0
}
