package fixed

import "github.com/zeebo/errs"

var (
	// Error is the class of all errors returned by this package.
	Error = errs.Class("fixed")

	// ErrDivisionByZero is returned or panicked with when a divisor is zero.
	ErrDivisionByZero = Error.New("division by zero")
	// ErrRange reports a value that does not fit the target format.
	ErrRange = Error.New("value out of range")
	// ErrBadFloat reports an infinity or a not-a-number.
	ErrBadFloat = Error.New("bad float number")
)
