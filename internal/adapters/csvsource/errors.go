package csvsource

import "errors"

// Sentinel kinds for CSV loading errors.
var (
	ErrOpen  = errors.New("csv open failed")
	ErrParse = errors.New("csv parse failed")
)
