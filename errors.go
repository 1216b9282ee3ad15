package restriction

import "fmt"

// InvalidValueError is returned when a value assigned to a numeric
// restriction does not parse as a floating-point number.
type InvalidValueError struct {
	Slot  int
	Value string
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid numeric value for slot %d: %q", e.Slot, e.Value)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}
