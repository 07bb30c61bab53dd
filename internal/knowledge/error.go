package knowledge

import "fmt"

/*
ContradictionError reports a knowledge state that cannot describe any
real minefield. It means either the board supplied an inconsistent
hint or an inference rule is defective; neither can be repaired
locally, so the error is surfaced to the caller.
*/
type ContradictionError struct {
	message string
}

// [ContradictionError] implements [error]
func (e ContradictionError) Error() string {
	return e.message
}

func contradictionf(format string, args ...any) ContradictionError {
	return ContradictionError{fmt.Sprintf(format, args...)}
}
