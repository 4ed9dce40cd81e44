package cleaner

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ErrorReason categorizes why a deletion failed
type ErrorReason int

const (
	ErrorPermissionDenied ErrorReason = iota
	ErrorFileInUse
	ErrorFileNotFound
	ErrorIsDirectory
	ErrorInvalidPath
	ErrorUnknown
)

// String returns a human-readable error reason
func (e ErrorReason) String() string {
	switch e {
	case ErrorPermissionDenied:
		return "Permission denied"
	case ErrorFileInUse:
		return "File is in use"
	case ErrorFileNotFound:
		return "File not found"
	case ErrorIsDirectory:
		return "Is a directory"
	case ErrorInvalidPath:
		return "Invalid path"
	case ErrorUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

// DeletionError represents a detailed deletion error
type DeletionError struct {
	Path     string
	Reason   ErrorReason
	Original error
}

// Error implements the error interface
func (e *DeletionError) Error() string {
	return fmt.Sprintf("%s: %s (%v)", e.Path, e.Reason, e.Original)
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *DeletionError) Unwrap() error {
	return e.Original
}

// CategorizeError analyzes an error and returns a categorized DeletionError
func CategorizeError(path string, err error) *DeletionError {
	if err == nil {
		return nil
	}

	delErr := &DeletionError{
		Path:     path,
		Original: err,
		Reason:   ErrorUnknown,
	}

	if os.IsNotExist(err) {
		delErr.Reason = ErrorFileNotFound
		return delErr
	}

	if os.IsPermission(err) {
		delErr.Reason = ErrorPermissionDenied
		return delErr
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EACCES, syscall.EPERM:
			delErr.Reason = ErrorPermissionDenied
		case syscall.EBUSY, syscall.ETXTBSY:
			delErr.Reason = ErrorFileInUse
		case syscall.ENOENT:
			delErr.Reason = ErrorFileNotFound
		case syscall.EISDIR:
			delErr.Reason = ErrorIsDirectory
		default:
			delErr.Reason = ErrorUnknown
		}
		return delErr
	}

	return delErr
}

// GroupErrors groups deletion errors by reason
func GroupErrors(errs []*DeletionError) map[ErrorReason][]*DeletionError {
	grouped := make(map[ErrorReason][]*DeletionError)
	for _, err := range errs {
		grouped[err.Reason] = append(grouped[err.Reason], err)
	}
	return grouped
}

// FormatErrorSummary creates a user-friendly summary of errors
func FormatErrorSummary(errs []*DeletionError) string {
	if len(errs) == 0 {
		return ""
	}

	grouped := GroupErrors(errs)
	summary := "\nIssues encountered:\n"

	if perms, ok := grouped[ErrorPermissionDenied]; ok {
		summary += fmt.Sprintf("   Permission denied: %d files\n", len(perms))
	}
	if busy, ok := grouped[ErrorFileInUse]; ok {
		summary += fmt.Sprintf("   File in use: %d files\n", len(busy))
	}
	if notFound, ok := grouped[ErrorFileNotFound]; ok {
		summary += fmt.Sprintf("   Already gone: %d files\n", len(notFound))
	}
	if dirs, ok := grouped[ErrorIsDirectory]; ok {
		summary += fmt.Sprintf("   Directories: %d items\n", len(dirs))
	}
	if invalid, ok := grouped[ErrorInvalidPath]; ok {
		summary += fmt.Sprintf("   Invalid paths: %d files\n", len(invalid))
	}
	if unknown, ok := grouped[ErrorUnknown]; ok {
		summary += fmt.Sprintf("   Other errors: %d files\n", len(unknown))
	}

	return summary
}
