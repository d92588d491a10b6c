// Package testutils provides utilities for testing ONE WAY code in Go.
package testutils

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/onewaylang/oneway"
)

// VM is a machine wired to in-memory streams for tests: output is
// captured in Out, input comes from a fixed string, and the random
// source is seeded so runs are reproducible.
type VM struct {
	*oneway.VM
	Out bytes.Buffer
}

// NewVM returns a test machine reading the given text as its input.
func NewVM(input string) *VM {
	vm := &VM{VM: oneway.NewVM()}
	vm.Output = &vm.Out
	vm.SetInput(strings.NewReader(input))
	vm.Seed(1)
	return vm
}

// A SourceTestCase is a test case containing ONE WAY source code and a
// predicate to check the result of running it on a fresh test machine.
type SourceTestCase struct {
	// Source is the ONE WAY source code to load and run.
	Source string
	// Input is the text available to the input command.
	Input string
	// Pass is a predicate taking the machine after the run and the
	// error the run produced. If Pass returns false, the test fails.
	Pass func(vm *VM, err error) bool
}

// TestFunc returns a test function for the test case.
func (c SourceTestCase) TestFunc() func(*testing.T) {
	return func(t *testing.T) {
		vm := NewVM(c.Input)
		err := vm.RunString(c.Source)
		if !c.Pass(vm, err) {
			var dump bytes.Buffer
			vm.DumpStacks(&dump)
			t.Errorf("%q produced wrong result: err=%v output=%q\n%s", c.Source, err, vm.Out.String(), dump.String())
		}
	}
}

// PassSuccess returns a Pass predicate that is satisfied by any run
// that completes without a failure.
func PassSuccess() func(*VM, error) bool {
	return func(_ *VM, err error) bool { return err == nil }
}

// PassOutput returns a Pass predicate on the exact program output.
func PassOutput(want string) func(*VM, error) bool {
	return func(vm *VM, err error) bool {
		return err == nil && vm.Out.String() == want
	}
}

// PassPrimary returns a Pass predicate on the exact contents of the
// primary stack, given top first.
func PassPrimary(want ...oneway.Value) func(*VM, error) bool {
	return func(vm *VM, err error) bool {
		return err == nil && stackIs(vm.Primary, want)
	}
}

// PassSecondary is PassPrimary for the secondary stack.
func PassSecondary(want ...oneway.Value) func(*VM, error) bool {
	return func(vm *VM, err error) bool {
		return err == nil && stackIs(vm.Secondary, want)
	}
}

// PassException returns a Pass predicate satisfied when the run fails
// with the named run-time exception.
func PassException(name string) func(*VM, error) bool {
	return func(_ *VM, err error) bool {
		var ex *oneway.Exception
		return errors.As(err, &ex) && ex.Name == name
	}
}

// PassLoadError returns a Pass predicate satisfied when loading fails
// with the named load error, before anything executes.
func PassLoadError(name string) func(*VM, error) bool {
	return func(vm *VM, err error) bool {
		var le *oneway.Error
		return errors.As(err, &le) && le.Name == name && vm.Out.Len() == 0
	}
}

func stackIs(s *oneway.Stack, want []oneway.Value) bool {
	got := s.TopFirst()
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !oneway.Equal(got[i], want[i]) {
			return false
		}
	}
	return true
}
