package conversion

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	ErrInvalidInput          = errors.New("invalid conversion input")
	ErrOutOfRange            = errors.New("conversion result out of range")
)
