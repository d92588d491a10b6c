/*
Package oneway implements the ONE WAY programming language.

ONE WAY is a small stack-based esoteric language. A program operates on
two stacks of typed values and is written one statement per line, with
two-space indentation forming control blocks. There are four runtime
types: booleans, exact rational numbers, strings of Unicode scalar
values, and type descriptors, which are themselves first-class values.

The interpreter can be embedded in another program. Use NewVM to create
a machine, Parse or ParseString to load source text into a Program, and
VM.Run to execute it. The VM's input, output, and random source are all
replaceable, which is how the tests in this repository drive it.

ONE WAY Primer

Hello World in ONE WAY:

	push "Hello, world!\n"
	print

Every statement is either push followed by a literal, a bare command
name, or else. Commands pop their operands from the active stack and
push their results back. For example,

	push 6
	push 7
	multiply

leaves the number 42 on the primary stack. Binary operations take the
earlier-pushed value as the left operand, so

	push "a"
	push "b"
	concat

leaves "ab".

The block-introducing commands if, while, and second collect the
following more-deeply-indented lines as their children. An if pops a
boolean and runs its children when it is true; an else line following
the if at the same indentation captures the subsequent siblings as the
alternative branch. A while pops a boolean before every iteration and
keeps running its children while it pops true, so the children must
push the next iteration's condition themselves. There is no jump, no
function call, and no way to revisit a statement otherwise; the program
runs one way, top to bottom.

The second stack is reachable in exactly two ways: flip moves the top
of the primary stack onto the secondary stack, and a second block runs
its children with every stack operation redirected to the secondary
stack. Nesting one second block inside another is a load-time error.

Failures come in two kinds. Malformed programs (bad indentation, an
unrecognized command, a bad literal, a misplaced else, nested second
blocks) are load errors: they are reported with the offending source
line and nothing executes. Failures of a running program (popping an
empty stack, operand type mismatches, division by zero, and the like)
are exceptions: execution halts, the failure is reported with the line
of the failing statement, and both stacks are dumped top-first for
diagnosis. Neither kind is recoverable from within the program.
*/
package oneway
