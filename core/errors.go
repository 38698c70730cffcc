package core

import (
	"github.com/go-faster/errors"
)

var (
	// ErrInvalidParameter is returned when a channel parameter is outside its domain.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrNumericDomain is returned when a solver leaves the real domain for an
	// input that should have produced real coefficients.
	ErrNumericDomain = errors.New("numeric domain error")
	// ErrDegenerateInput marks inputs that are answered by an exact boundary branch.
	ErrDegenerateInput = errors.New("degenerate input")
)

func InvalidParameterf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidParameter, format, args...)
}

func NumericDomainf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNumericDomain, format, args...)
}

func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsNumericDomain(err error) bool {
	return errors.Is(err, ErrNumericDomain)
}
