// file: pkg/diskimg/validation.go

package diskimg

import (
	"fmt"
	"strings"
)

// ValidationError represents a single consistency problem on the disk
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error - %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// normalizeFilename trims name and cuts it to the significant bytes that a
// directory slot can hold
func normalizeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty filename", ErrInvalidFilename)
	}
	if strings.IndexByte(name, 0) >= 0 {
		return "", fmt.Errorf("%w: %q contains NUL", ErrInvalidFilename, name)
	}
	if len(name) > MaxNameLength {
		name = strings.TrimSpace(name[:MaxNameLength])
	}
	return name, nil
}
