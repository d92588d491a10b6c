package oneway

import (
	"io"
	"math/big"
	"strings"
	"unicode/utf8"
)

// A Command is one executable step of a program. Built-ins and blocks
// both implement it. s is the active stack: the primary stack
// normally, the secondary stack inside a second block.
type Command interface {
	Run(vm *VM, s *Stack) error
}

// builtin adapts a function to the Command interface.
type builtin func(vm *VM, s *Stack) error

func (f builtin) Run(vm *VM, s *Stack) error { return f(vm, s) }

// push is the command compiled from a push statement. The captured
// value is shared across executions; values are immutable, so that is
// safe even inside a while block.
type push struct {
	v Value
}

func (p push) Run(vm *VM, s *Stack) error {
	s.Push(p.v)
	return nil
}

// builtins maps command names to implementations. The block-opening
// names if, while, and second are absent: the parser constructs a
// fresh Block for each occurrence of those.
var builtins = map[string]Command{
	"add":      builtin(cmdAdd),
	"and":      builtin(cmdAnd),
	"chr":      builtin(cmdChr),
	"concat":   builtin(cmdConcat),
	"divide":   builtin(cmdDivide),
	"drop":     builtin(cmdDrop),
	"dupe":     builtin(cmdDupe),
	"equal":    builtin(cmdEqual),
	"eval":     builtin(cmdEval),
	"flip":     builtin(cmdFlip),
	"greater":  builtin(cmdGreater),
	"input":    builtin(cmdInput),
	"len":      builtin(cmdLen),
	"less":     builtin(cmdLess),
	"multiply": builtin(cmdMultiply),
	"not":      builtin(cmdNot),
	"or":       builtin(cmdOr),
	"ord":      builtin(cmdOrd),
	"print":    builtin(cmdPrint),
	"random":   builtin(cmdRandom),
	"repr":     builtin(cmdRepr),
	"split":    builtin(cmdSplit),
	"subtract": builtin(cmdSubtract),
	"typeof":   builtin(cmdTypeof),
}

// popNums pops the operands of a binary numeric operation. The right
// operand is on top; the left operand was pushed first.
func popNums(s *Stack) (left, right Num, err error) {
	right, err = s.PopNum()
	if err != nil {
		return
	}
	left, err = s.PopNum()
	return
}

func cmdAdd(vm *VM, s *Stack) error {
	a, b, err := popNums(s)
	if err != nil {
		return err
	}
	s.Push(Num{Rat: new(big.Rat).Add(a.Rat, b.Rat)})
	return nil
}

func cmdSubtract(vm *VM, s *Stack) error {
	a, b, err := popNums(s)
	if err != nil {
		return err
	}
	s.Push(Num{Rat: new(big.Rat).Sub(a.Rat, b.Rat)})
	return nil
}

func cmdMultiply(vm *VM, s *Stack) error {
	a, b, err := popNums(s)
	if err != nil {
		return err
	}
	s.Push(Num{Rat: new(big.Rat).Mul(a.Rat, b.Rat)})
	return nil
}

func cmdDivide(vm *VM, s *Stack) error {
	a, b, err := popNums(s)
	if err != nil {
		return err
	}
	if b.Rat.Sign() == 0 {
		return newException("ZeroDivisionException", "cannot divide by 0")
	}
	s.Push(Num{Rat: new(big.Rat).Quo(a.Rat, b.Rat)})
	return nil
}

// cmdAnd short-circuits: when the first boolean popped is false, the
// result is false and the second operand stays on the stack.
func cmdAnd(vm *VM, s *Stack) error {
	a, err := s.PopBool()
	if err != nil {
		return err
	}
	if !a {
		s.Push(Bool(false))
		return nil
	}
	b, err := s.PopBool()
	if err != nil {
		return err
	}
	s.Push(b)
	return nil
}

// cmdOr short-circuits like cmdAnd, on a true first operand.
func cmdOr(vm *VM, s *Stack) error {
	a, err := s.PopBool()
	if err != nil {
		return err
	}
	if a {
		s.Push(Bool(true))
		return nil
	}
	b, err := s.PopBool()
	if err != nil {
		return err
	}
	s.Push(b)
	return nil
}

func cmdNot(vm *VM, s *Stack) error {
	a, err := s.PopBool()
	if err != nil {
		return err
	}
	s.Push(!a)
	return nil
}

func cmdEqual(vm *VM, s *Stack) error {
	a, err := s.Pop()
	if err != nil {
		return err
	}
	b, err := s.Pop()
	if err != nil {
		return err
	}
	s.Push(Bool(Equal(a, b)))
	return nil
}

func cmdGreater(vm *VM, s *Stack) error {
	a, b, err := popNums(s)
	if err != nil {
		return err
	}
	s.Push(Bool(a.Rat.Cmp(b.Rat) > 0))
	return nil
}

func cmdLess(vm *VM, s *Stack) error {
	a, b, err := popNums(s)
	if err != nil {
		return err
	}
	s.Push(Bool(a.Rat.Cmp(b.Rat) < 0))
	return nil
}

func cmdConcat(vm *VM, s *Stack) error {
	b, err := s.PopStr()
	if err != nil {
		return err
	}
	a, err := s.PopStr()
	if err != nil {
		return err
	}
	s.Push(a + b)
	return nil
}

// cmdSplit pushes the characters of a string last to first, so the
// leftmost character ends up on top.
func cmdSplit(vm *VM, s *Stack) error {
	t, err := s.PopStr()
	if err != nil {
		return err
	}
	runes := []rune(t)
	for i := len(runes) - 1; i >= 0; i-- {
		s.Push(Str(runes[i]))
	}
	return nil
}

func cmdLen(vm *VM, s *Stack) error {
	t, err := s.PopStr()
	if err != nil {
		return err
	}
	s.Push(NumFromInt(int64(utf8.RuneCountInString(string(t)))))
	return nil
}

const maxCodePoint = 0x10FFFF

func cmdChr(vm *VM, s *Stack) error {
	n, err := s.PopNum()
	if err != nil {
		return err
	}
	if !n.Rat.IsInt() || !n.Rat.Num().IsInt64() || n.Rat.Num().Int64() < 0 || n.Rat.Num().Int64() > maxCodePoint {
		return newExceptionf("UnicodeException", `"%s" is not a valid Unicode code point`, Repr(n))
	}
	s.Push(Str(rune(n.Rat.Num().Int64())))
	return nil
}

func cmdOrd(vm *VM, s *Stack) error {
	t, err := s.PopStr()
	if err != nil {
		return err
	}
	runes := []rune(t)
	if len(runes) != 1 {
		return newExceptionf("LengthException", "recieved string of length %d (expected 1)", len(runes))
	}
	s.Push(NumFromInt(int64(runes[0])))
	return nil
}

func cmdDupe(vm *VM, s *Stack) error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	s.Push(v)
	s.Push(v)
	return nil
}

func cmdDrop(vm *VM, s *Stack) error {
	_, err := s.Pop()
	return err
}

// cmdFlip moves the top of the primary stack onto the secondary stack.
// It addresses the two stacks directly, so inside a second block it
// still moves primary to secondary.
func cmdFlip(vm *VM, s *Stack) error {
	v, err := vm.Primary.Pop()
	if err != nil {
		return err
	}
	vm.Secondary.Push(v)
	return nil
}

func cmdTypeof(vm *VM, s *Stack) error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	s.Push(v.Type())
	return nil
}

func cmdRepr(vm *VM, s *Stack) error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	s.Push(Str(Repr(v)))
	return nil
}

func cmdEval(vm *VM, s *Stack) error {
	t, err := s.PopStr()
	if err != nil {
		return err
	}
	v, err := EvalLiteral(string(t))
	if err != nil {
		return newExceptionf("LiteralException", `"%s" is not a valid literal`, t)
	}
	s.Push(v)
	return nil
}

func cmdPrint(vm *VM, s *Stack) error {
	t, err := s.PopStr()
	if err != nil {
		return err
	}
	io.WriteString(vm.Output, string(t))
	return nil
}

// cmdInput reads one line from the machine's input, without its
// terminator. At end of input it pushes the empty string.
func cmdInput(vm *VM, s *Stack) error {
	line, _ := vm.in.ReadString('\n')
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	s.Push(Str(line))
	return nil
}

// cmdRandom pops the step, then the upper bound, then the lower bound,
// and pushes lower + r*step for a uniform integer r below
// ceil((upper-lower)/step). The arithmetic is exact, so arbitrarily
// fine steps and arbitrarily wide bounds work.
func cmdRandom(vm *VM, s *Stack) error {
	step, err := s.PopNum()
	if err != nil {
		return err
	}
	upper, err := s.PopNum()
	if err != nil {
		return err
	}
	lower, err := s.PopNum()
	if err != nil {
		return err
	}
	diff := new(big.Rat).Sub(upper.Rat, lower.Rat)
	if diff.Sign() == 0 {
		return newException("RangeException", "random range is of size 0")
	}
	if step.Rat.Sign() == 0 {
		return newException("StepSizeException", "step size cannot be 0")
	}
	if (diff.Sign() > 0) != (step.Rat.Sign() > 0) {
		return newException("StepSizeException", "step size sign must match boundary difference sign")
	}
	q := new(big.Rat).Quo(diff, step.Rat)
	r := new(big.Int).Rand(vm.rand, ratCeil(q))
	res := new(big.Rat).Mul(new(big.Rat).SetInt(r), step.Rat)
	res.Add(res, lower.Rat)
	s.Push(Num{Rat: res})
	return nil
}

// ratCeil computes the ceiling of a positive rational as an integer.
func ratCeil(q *big.Rat) *big.Int {
	n := new(big.Int).Add(q.Num(), q.Denom())
	n.Sub(n, big.NewInt(1))
	return n.Div(n, q.Denom())
}
