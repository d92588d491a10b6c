package oneway_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onewaylang/oneway"
	"github.com/onewaylang/oneway/testutils"
)

func TestArithmetic(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Add":          {Source: "push 6\npush 7\nadd", Pass: testutils.PassPrimary(num(13, 1))},
		"AddFractions": {Source: "push 1/2\npush 1/3\nadd", Pass: testutils.PassPrimary(num(5, 6))},
		// The earlier-pushed value is the left operand.
		"Subtract":       {Source: "push 5\npush 3\nsubtract", Pass: testutils.PassPrimary(num(2, 1))},
		"SubtractBelow":  {Source: "push 3\npush 5\nsubtract", Pass: testutils.PassPrimary(num(-2, 1))},
		"Multiply":       {Source: "push 6\npush 7\nmultiply", Pass: testutils.PassPrimary(num(42, 1))},
		"Divide":         {Source: "push 6\npush 3\ndivide", Pass: testutils.PassPrimary(num(2, 1))},
		"DivideExact":    {Source: "push 1\npush 3\ndivide", Pass: testutils.PassPrimary(num(1, 3))},
		"DivideByZero":   {Source: "push 1\npush 0\ndivide", Pass: testutils.PassException("ZeroDivisionException")},
		"AddTypeError":   {Source: "push 1\npush true\nadd", Pass: testutils.PassException("TypeException")},
		"AddUnderflow":   {Source: "push 1\nadd", Pass: testutils.PassException("PopException")},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc())
	}
}

func TestDivideByZeroLeavesPops(t *testing.T) {
	vm := testutils.NewVM("")
	err := vm.RunString("push 7\npush 1\npush 0\ndivide")
	var ex *oneway.Exception
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, "ZeroDivisionException", ex.Name)
	// Both operands were popped before the failure; the rest of the
	// stack is untouched.
	got := vm.Primary.TopFirst()
	require.Len(t, got, 1)
	assert.True(t, oneway.Equal(num(7, 1), got[0]))
	assert.Equal(t, 0, vm.Secondary.Len())
}

func TestBooleans(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"AndTrue":  {Source: "push true\npush true\nand", Pass: testutils.PassPrimary(oneway.Bool(true))},
		"AndFalse": {Source: "push true\npush false\nand", Pass: testutils.PassPrimary(oneway.Bool(false))},
		"OrFalse":  {Source: "push false\npush false\nor", Pass: testutils.PassPrimary(oneway.Bool(false))},
		"OrTrue":   {Source: "push false\npush true\nor", Pass: testutils.PassPrimary(oneway.Bool(true))},
		"NotTrue":  {Source: "push true\nnot", Pass: testutils.PassPrimary(oneway.Bool(false))},
		"NotFalse": {Source: "push false\nnot", Pass: testutils.PassPrimary(oneway.Bool(true))},
		// and and or short-circuit: a decisive first operand leaves
		// the second value in place, whatever its type.
		"AndShortCircuit": {Source: "push 5\npush false\nand", Pass: testutils.PassPrimary(oneway.Bool(false), num(5, 1))},
		"OrShortCircuit":  {Source: "push 5\npush true\nor", Pass: testutils.PassPrimary(oneway.Bool(true), num(5, 1))},
		"AndChecksSecond": {Source: "push 5\npush true\nand", Pass: testutils.PassException("TypeException")},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc())
	}
}

func TestComparisons(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Greater":      {Source: "push 2\npush 1\ngreater", Pass: testutils.PassPrimary(oneway.Bool(true))},
		"NotGreater":   {Source: "push 1\npush 2\ngreater", Pass: testutils.PassPrimary(oneway.Bool(false))},
		"Less":         {Source: "push 1\npush 2\nless", Pass: testutils.PassPrimary(oneway.Bool(true))},
		"NotLess":      {Source: "push 2\npush 1\nless", Pass: testutils.PassPrimary(oneway.Bool(false))},
		"EqualNums":    {Source: "push 3\npush 3\nequal", Pass: testutils.PassPrimary(oneway.Bool(true))},
		"EqualReduced": {Source: "push 1/2\npush 2/4\nequal", Pass: testutils.PassPrimary(oneway.Bool(true))},
		"EqualMixed":   {Source: `push 3
push "3"
equal`, Pass: testutils.PassPrimary(oneway.Bool(false))},
		"EqualBoolNum": {Source: "push true\npush 1\nequal", Pass: testutils.PassPrimary(oneway.Bool(false))},
		"EqualTypes":   {Source: "push num\npush num\nequal", Pass: testutils.PassPrimary(oneway.Bool(true))},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc())
	}
}

func TestStrings(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Concat": {Source: `push "a"
push "b"
concat
print`, Pass: testutils.PassOutput("ab")},
		"ConcatTop": {Source: `push "one"
push "way"
concat`, Pass: testutils.PassPrimary(oneway.Str("oneway"))},
		// split leaves the leftmost character on top.
		"Split": {Source: `push "abc"
split`, Pass: testutils.PassPrimary(oneway.Str("a"), oneway.Str("b"), oneway.Str("c"))},
		"SplitEmpty": {Source: `push ""
split`, Pass: testutils.PassPrimary()},
		"Len": {Source: `push "hello"
len`, Pass: testutils.PassPrimary(num(5, 1))},
		"LenUnicode": {Source: `push "héllo"
len`, Pass: testutils.PassPrimary(num(5, 1))},
		"LenEmpty": {Source: `push ""
len`, Pass: testutils.PassPrimary(num(0, 1))},
		"Chr":         {Source: "push 97\nchr", Pass: testutils.PassPrimary(oneway.Str("a"))},
		"ChrMax":      {Source: "push 1114111\nchr", Pass: testutils.PassSuccess()},
		"ChrPastMax":  {Source: "push 1114112\nchr", Pass: testutils.PassException("UnicodeException")},
		"ChrNegative": {Source: "push -1\nchr", Pass: testutils.PassException("UnicodeException")},
		"ChrFraction": {Source: "push 1/2\nchr", Pass: testutils.PassException("UnicodeException")},
		"Ord": {Source: `push "a"
ord`, Pass: testutils.PassPrimary(num(97, 1))},
		"OrdUnicode": {Source: `push "é"
ord`, Pass: testutils.PassPrimary(num(233, 1))},
		"OrdTooLong": {Source: `push "ab"
ord`, Pass: testutils.PassException("LengthException")},
		"OrdEmpty": {Source: `push ""
ord`, Pass: testutils.PassException("LengthException")},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc())
	}
}

func TestStackCommands(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Dupe":      {Source: "push 1\ndupe", Pass: testutils.PassPrimary(num(1, 1), num(1, 1))},
		"Drop":      {Source: "push 1\npush 2\ndrop", Pass: testutils.PassPrimary(num(1, 1))},
		"DropEmpty": {Source: "drop", Pass: testutils.PassException("PopException")},
		"Flip": {Source: "push 1\npush 2\nflip", Pass: func(vm *testutils.VM, err error) bool {
			return err == nil && stackEquals(vm.Primary, num(1, 1)) && stackEquals(vm.Secondary, num(2, 1))
		}},
		"FlipEmpty": {Source: "flip", Pass: testutils.PassException("PopException")},
		"Typeof":    {Source: "push 1\ntypeof", Pass: testutils.PassPrimary(oneway.NumType)},
		"TypeofStr": {Source: `push "x"
typeof`, Pass: testutils.PassPrimary(oneway.StrType)},
		"TypeofType": {Source: "push num\ntypeof", Pass: testutils.PassPrimary(oneway.TypeType)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc())
	}
}

func TestReflection(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"ReprNum":  {Source: "push 1/3\nrepr", Pass: testutils.PassPrimary(oneway.Str("1/3"))},
		"ReprBool": {Source: "push true\nrepr", Pass: testutils.PassPrimary(oneway.Str("true"))},
		"ReprStr": {Source: `push "a"
repr`, Pass: testutils.PassPrimary(oneway.Str(`"a`))},
		"EvalNum": {Source: `push "5"
eval`, Pass: testutils.PassPrimary(num(5, 1))},
		"EvalBool": {Source: `push "true"
eval`, Pass: testutils.PassPrimary(oneway.Bool(true))},
		"EvalBad": {Source: `push "nope"
eval`, Pass: testutils.PassException("LiteralException")},
		// repr then eval round-trips through the stack.
		"ReprEval": {Source: "push 2/6\nrepr\neval", Pass: testutils.PassPrimary(num(1, 3))},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc())
	}
}

func TestIO(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Print": {Source: `push "hi"
print`, Pass: testutils.PassOutput("hi")},
		"PrintNoNewline": {Source: `push "a"
print
push "b"
print`, Pass: testutils.PassOutput("ab")},
		"PrintEscapes": {Source: `push "a\nb"
print`, Pass: testutils.PassOutput("a\nb")},
		"PrintNum":  {Source: "push 1\nprint", Pass: testutils.PassException("TypeException")},
		"Input":     {Source: "input\nprint", Input: "hello\nrest", Pass: testutils.PassOutput("hello")},
		"InputRaw":  {Source: "input\nprint", Input: `a\nb` + "\n", Pass: testutils.PassOutput(`a\nb`)},
		"InputEOF":  {Source: "input", Input: "", Pass: testutils.PassPrimary(oneway.Str(""))},
		"TwoInputs": {Source: "input\ninput\nconcat\nprint", Input: "a\nb\n", Pass: testutils.PassOutput("ab")},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc())
	}
}

func TestRandomErrors(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"EqualBounds":  {Source: "push 1\npush 1\npush 1\nrandom", Pass: testutils.PassException("RangeException")},
		"ZeroStep":     {Source: "push 1\npush 5\npush 0\nrandom", Pass: testutils.PassException("StepSizeException")},
		"SignMismatch": {Source: "push 1\npush 5\npush -1\nrandom", Pass: testutils.PassException("StepSizeException")},
		"Descending":   {Source: "push 5\npush 1\npush -1\nrandom", Pass: testutils.PassSuccess()},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc())
	}
}

func TestRandomRange(t *testing.T) {
	// random(5, 1, -1) draws from the step-aligned set {5, 4, 3, 2}.
	want := []oneway.Value{num(5, 1), num(4, 1), num(3, 1), num(2, 1)}
	vm := testutils.NewVM("")
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		err := vm.RunString("push 5\npush 1\npush -1\nrandom")
		require.NoError(t, err)
		got := vm.Primary.TopFirst()
		require.Len(t, got, 1)
		ok := false
		for _, w := range want {
			if oneway.Equal(w, got[0]) {
				ok = true
			}
		}
		require.True(t, ok, "random produced %s", oneway.Repr(got[0]))
		seen[oneway.Repr(got[0])] = true
	}
	assert.Greater(t, len(seen), 1, "50 draws never varied")
}

func TestRandomFractionalStep(t *testing.T) {
	// random(0, 1, 1/4) draws from {0, 1/4, 1/2, 3/4}.
	want := []oneway.Value{num(0, 1), num(1, 4), num(1, 2), num(3, 4)}
	vm := testutils.NewVM("")
	for i := 0; i < 20; i++ {
		err := vm.RunString("push 0\npush 1\npush 1/4\nrandom")
		require.NoError(t, err)
		got := vm.Primary.TopFirst()
		require.Len(t, got, 1)
		ok := false
		for _, w := range want {
			if oneway.Equal(w, got[0]) {
				ok = true
			}
		}
		assert.True(t, ok, "random produced %s", oneway.Repr(got[0]))
	}
}

func stackEquals(s *oneway.Stack, want ...oneway.Value) bool {
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
