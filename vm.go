package oneway

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"
)

// VM is a machine for running ONE WAY programs. It owns the two
// stacks, the program's input and output streams, and the random
// source for the random command. A single VM runs one program at a
// time; it is not safe for concurrent use.
type VM struct {
	// Primary is the default operand stack.
	Primary *Stack
	// Secondary is the auxiliary stack, reachable through flip and
	// second blocks.
	Secondary *Stack

	// Output receives the bytes written by print, with no added
	// separators.
	Output io.Writer

	in   *bufio.Reader
	rand *rand.Rand
}

// NewVM prepares a machine wired to standard input and output, with a
// time-seeded random source.
func NewVM() *VM {
	return &VM{
		Primary:   &Stack{},
		Secondary: &Stack{},
		Output:    os.Stdout,
		in:        bufio.NewReader(os.Stdin),
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetInput redirects the input command to read from r.
func (vm *VM) SetInput(r io.Reader) {
	vm.in = bufio.NewReader(r)
}

// Seed makes the random command deterministic. Tests use this.
func (vm *VM) Seed(seed int64) {
	vm.rand = rand.New(rand.NewSource(seed))
}

// Run executes a program from the top against fresh empty stacks. On a
// run-time failure it returns the *Exception, with both stacks left in
// the state the failing statement saw after its pops, ready for
// DumpStacks.
func (vm *VM) Run(p *Program) error {
	vm.Primary.Reset()
	vm.Secondary.Reset()
	return vm.Exec(p)
}

// Exec executes a program against the stacks as they are. The REPL
// uses this to carry stack state from one entry to the next.
func (vm *VM) Exec(p *Program) error {
	return p.root.Run(vm, vm.Primary)
}

// RunString parses and runs source text. The error is an *Error if the
// source is malformed, an *Exception if the run fails.
func (vm *VM) RunString(source string) error {
	p, err := ParseString(source)
	if err != nil {
		return err
	}
	return vm.Run(p)
}

// DumpStacks writes both stacks to w, top first, in the diagnostic
// format:
//
//	Primary stack [
//	  "a value"
//	]
//	Secondary stack [
//	]
func (vm *VM) DumpStacks(w io.Writer) {
	dumpStack(w, "Primary stack", vm.Primary)
	dumpStack(w, "Secondary stack", vm.Secondary)
}

func dumpStack(w io.Writer, name string, s *Stack) {
	fmt.Fprintf(w, "%s [\n", name)
	for _, v := range s.TopFirst() {
		fmt.Fprintf(w, "  %s\n", Repr(v))
	}
	fmt.Fprintln(w, "]")
}

// Report writes the full diagnostic for a failed load or run to w: the
// Name#line: description header, plus both stack dumps when the
// failure happened at run time.
func (vm *VM) Report(w io.Writer, err error) {
	fmt.Fprintln(w, err.Error())
	var ex *Exception
	if errors.As(err, &ex) {
		vm.DumpStacks(w)
	}
}
