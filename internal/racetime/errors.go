package racetime

import "fmt"

// NonFinishError marks a result that carries no time (DNS, DNF, scratch).
// Callers treat it as "nothing to compare", not as a failure.
type NonFinishError struct {
	Raw string
}

func (e *NonFinishError) Error() string {
	return fmt.Sprintf("no finish time: %q", e.Raw)
}

// MalformedTimeError reports a result that does not have the M:SS.hh shape.
type MalformedTimeError struct {
	Raw    string
	Reason string
}

func (e *MalformedTimeError) Error() string {
	return fmt.Sprintf("malformed race time %q: %s", e.Raw, e.Reason)
}
