package monthgrid

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for a week start or grid coordinate outside its range.
var ErrInvalidArgument = errors.New("invalid argument")

// RangeError reports which argument was out of range.
type RangeError struct {
	What  string
	Value int
	Lo    int
	Hi    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range (%d-%d)", e.What, e.Value, e.Lo, e.Hi)
}

func (e *RangeError) Unwrap() error { return ErrInvalidArgument }

func checkRange(what string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &RangeError{What: what, Value: v, Lo: lo, Hi: hi}
	}
	return nil
}
