package oneway

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// A Program is a loaded ONE WAY program: the root of the block tree.
// It is immutable once Parse returns it and may be run any number of
// times.
type Program struct {
	root *Block
}

// Parse loads ONE WAY source text into a program. Statements are one
// per line; two leading spaces per nesting level attach a statement to
// the block introduced by the nearest preceding shallower line. Blank
// and whitespace-only lines are dropped, but still count for line
// numbering. On a malformed program Parse returns an *Error naming the
// fault and the offending line, and no program. A failure reading the
// source reports the same way, as a ReadError.
func Parse(source io.Reader) (*Program, error) {
	root := NewBlock()
	sc := bufio.NewScanner(source)
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := parseLine(root, line, ln); err != nil {
			return nil, withLine(err, ln)
		}
	}
	if err := sc.Err(); err != nil {
		// Read failures are load errors too: the line that could not
		// be read is the one after the last that could.
		return nil, &Error{Name: "ReadError", Desc: err.Error(), Line: ln + 1}
	}
	return &Program{root: root}, nil
}

// ParseString loads a program from a string.
func ParseString(source string) (*Program, error) {
	return Parse(strings.NewReader(source))
}

func parseLine(root *Block, line string, ln int) error {
	// Each two-space unit descends into the last-appended child of the
	// current container, which must itself be a block.
	target := root
	for strings.HasPrefix(line, "  ") {
		last, ok := target.lastBlock()
		if !ok {
			return newError("IndentationError", "unexpected indent")
		}
		target = last
		line = line[2:]
	}
	switch {
	case strings.HasPrefix(line, "push "):
		tok := line[len("push "):]
		v, err := EvalLiteral(tok)
		if err != nil {
			return newError("LiteralError", fmt.Sprintf(`"%s" is not a valid literal`, tok))
		}
		return target.Append(push{v: v}, ln)
	case line == "else":
		if !target.markElse() {
			return newError("ElseError", "else must have a matching if")
		}
		return nil
	case line == "if":
		return target.Append(NewIf(), ln)
	case line == "while":
		return target.Append(NewWhile(), ln)
	case line == "second":
		return target.Append(NewSecond(), ln)
	}
	cmd, ok := builtins[line]
	if !ok {
		return newError("CommandError", fmt.Sprintf(`"%s" is not a recognized command`, line))
	}
	return target.Append(cmd, ln)
}
