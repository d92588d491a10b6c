package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/onewaylang/oneway"
)

// Version is set at build time.
var Version = "0.1.0"

// errExit signals a failure that has already been reported on stderr.
var errExit = errors.New("exit")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ow [script]",
		Short: "ow runs ONE WAY programs",
		Long: `ow is the interpreter for ONE WAY, a stack-based esoteric language
with two stacks, typed values, and indentation-structured control
blocks. Given a script, ow loads it and runs it top to bottom.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE:          runScript,
	}
	root.PersistentFlags().String("config", "", "config file (default: ./ow.yaml)")
	root.PersistentFlags().Int64("seed", 0, "random seed, 0 for time-based")
	root.PersistentFlags().BoolP("verbose", "v", false, "log diagnostics to stderr")
	root.AddCommand(newReplCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command. Errors are reported on stderr here;
// the caller only chooses the exit status.
func Execute() error {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return err
	}
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Verbose)
	stderr := cmd.ErrOrStderr()

	// Argument validation and the file-open failure message belong to
	// this wrapper, not to the machine.
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Pass the location of the script to run as a command-line argument.")
		return errExit
	}
	if len(args) > 1 {
		fmt.Fprintln(stderr, "Unknown command-line arguments passed.")
		return errExit
	}
	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintln(stderr, "There was an issue accessing the file you requested.")
		return errExit
	}
	defer f.Close()

	p, err := oneway.Parse(f)
	if err != nil {
		// Load errors report the header only: nothing ran, so there
		// are no stacks worth dumping.
		fmt.Fprintln(stderr, err.Error())
		return errExit
	}
	logger.Debug("program loaded", "script", args[0])

	vm := oneway.NewVM()
	if cfg.Seed != 0 {
		vm.Seed(cfg.Seed)
	}
	start := time.Now()
	if err := vm.Run(p); err != nil {
		vm.Report(stderr, err)
		return errExit
	}
	logger.Debug("program finished", "elapsed", time.Since(start))
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the interpreter version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ow %s\n", Version)
		},
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
