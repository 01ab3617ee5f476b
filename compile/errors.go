package compile

import "fmt"

// Error is a semantic problem detected before evaluation: an undefined
// reference, bad method arity, the reserved-but-unimplemented
// selectMany(min, max) form, or a non-positive weight. It carries the list name (or "" for program-level
// problems) and source line where the problem was found.
type Error struct {
	List    string
	Line    int
	Message string
}

func (e *Error) Error() string {
	if e.List != "" {
		return fmt.Sprintf("compile error in list %q at line %d: %s", e.List, e.Line, e.Message)
	}
	return fmt.Sprintf("compile error at line %d: %s", e.Line, e.Message)
}

func errIn(list string, line int, format string, args ...interface{}) *Error {
	return &Error{List: list, Line: line, Message: fmt.Sprintf(format, args...)}
}
