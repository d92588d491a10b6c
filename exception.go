package oneway

import "fmt"

// An Error is a load-time fault in a ONE WAY program: the source is
// malformed and nothing executes. Line is the 1-based source line on
// which the fault was found.
type Error struct {
	Name string
	Desc string
	Line int
}

// newError creates a load error with no line; the parser stamps the
// line once it knows it.
func newError(name, desc string) *Error {
	return &Error{Name: name, Desc: desc}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s#%d: %s", e.Name, e.Line, e.Desc)
}

// An Exception is a run-time failure of a ONE WAY program. Execution
// halts at the statement that raised it; Line is that statement's
// 1-based source line.
type Exception struct {
	Name string
	Desc string
	Line int
}

func newException(name, desc string) *Exception {
	return &Exception{Name: name, Desc: desc}
}

func newExceptionf(name, format string, args ...interface{}) *Exception {
	return &Exception{Name: name, Desc: fmt.Sprintf(format, args...)}
}

func (e *Exception) Error() string {
	return fmt.Sprintf("%s#%d: %s", e.Name, e.Line, e.Desc)
}

// withLine stamps the source line of the failing statement onto a
// fault that does not carry one yet. Faults raised by nested commands
// keep the innermost line.
func withLine(err error, line int) error {
	switch e := err.(type) {
	case *Exception:
		if e.Line == 0 {
			e.Line = line
		}
	case *Error:
		if e.Line == 0 {
			e.Line = line
		}
	}
	return err
}
