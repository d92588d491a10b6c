package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/onewaylang/oneway"
)

// repl styling; disabled with --color=false or by a dumb terminal.
var (
	bannerStyle = lipgloss.NewStyle().Bold(true)
	promptStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `repl reads ONE WAY statements interactively. Block statements (if,
while, second) keep reading indented lines until a blank line closes
the entry. The stacks persist between entries; failures are reported
and the session continues.`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
	cmd.Flags().String("ps1", "ow> ", "primary prompt")
	cmd.Flags().String("ps2", "... ", "continuation prompt")
	cmd.Flags().Bool("color", true, "styled diagnostics")
	return cmd
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	banner, dim, errhdr := bannerStyle, promptStyle, errorStyle
	if !cfg.Color {
		banner, dim, errhdr = lipgloss.NewStyle(), lipgloss.NewStyle(), lipgloss.NewStyle()
	}

	rl, err := readline.New(cfg.PS1)
	if err != nil {
		return err
	}
	defer rl.Close()

	out := cmd.OutOrStdout()
	vm := oneway.NewVM()
	vm.Output = out
	if cfg.Seed != 0 {
		vm.Seed(cfg.Seed)
	}
	fmt.Fprintln(out, banner.Render("ONE WAY "+Version))
	fmt.Fprintln(out, "Blocks close on a blank line. Ctrl-D exits.")

	var buf []string
	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			// Ctrl-C abandons the pending entry.
			buf = buf[:0]
			rl.SetPrompt(cfg.PS1)
			continue
		case err != nil: // io.EOF
			fmt.Fprintln(out)
			return nil
		}

		if len(buf) == 0 {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if opensBlock(line) {
				buf = append(buf, line)
				rl.SetPrompt(cfg.PS2)
				continue
			}
			runEntry(vm, line, out, dim, errhdr)
			continue
		}
		if strings.TrimSpace(line) != "" {
			buf = append(buf, line)
			continue
		}
		entry := strings.Join(buf, "\n")
		buf = buf[:0]
		rl.SetPrompt(cfg.PS1)
		runEntry(vm, entry, out, dim, errhdr)
	}
}

// opensBlock reports whether a top-level line starts a control block
// and therefore a multi-line entry.
func opensBlock(line string) bool {
	switch line {
	case "if", "while", "second":
		return true
	}
	return false
}

// runEntry executes one entry against the persistent stacks and echoes
// a stack summary. Errors keep the session alive; an entry that fails
// at run time has still performed its pops, exactly as a script would.
func runEntry(vm *oneway.VM, src string, out io.Writer, dim, errhdr lipgloss.Style) {
	p, err := oneway.ParseString(src)
	if err != nil {
		fmt.Fprintln(out, errhdr.Render(err.Error()))
		return
	}
	if err := vm.Exec(p); err != nil {
		fmt.Fprintln(out, errhdr.Render(err.Error()))
		vm.DumpStacks(out)
		return
	}
	fmt.Fprintln(out, dim.Render(summarize("primary", vm.Primary)+"  "+summarize("secondary", vm.Secondary)))
}

// summarize renders a stack on one line, top first.
func summarize(name string, s *oneway.Stack) string {
	vals := s.TopFirst()
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = oneway.Repr(v)
	}
	return name + ": [" + strings.Join(parts, " ") + "]"
}
