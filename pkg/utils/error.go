package utils

import "fmt"

var (
	ErrBadRequest  = fmt.Errorf("Bad request")
	ErrNotFound    = fmt.Errorf("Not found")
	ErrParse       = fmt.Errorf("Parse error")
	ErrMassDelete  = fmt.Errorf("Mass deletion guard tripped")
	ErrNoScheduler = fmt.Errorf("No stage scheduler registered")
)

type DetailedError interface {
	error
	Details() string
}
