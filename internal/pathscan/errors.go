package pathscan

import "fmt"

// InvalidGlobError is returned when an include/exclude pattern cannot be compiled.
type InvalidGlobError struct {
	Pattern string
	Message string
}

func (e *InvalidGlobError) Error() string {
	return fmt.Sprintf("invalid glob %q: %s", e.Pattern, e.Message)
}
