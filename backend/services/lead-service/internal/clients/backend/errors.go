package backend

import (
	"errors"
	"fmt"
)

// SubmissionErrorKind classifies a failed call to the tree-services backend.
type SubmissionErrorKind int

const (
	// KindRejected is a 400: the backend did not accept the input.
	KindRejected SubmissionErrorKind = iota
	// KindServerError is a 500.
	KindServerError
	// KindUnreachable means no response was received at all.
	KindUnreachable
	// KindFailed covers every other status or an unexpected body.
	KindFailed
)

func (k SubmissionErrorKind) String() string {
	switch k {
	case KindRejected:
		return "rejected"
	case KindServerError:
		return "server_error"
	case KindUnreachable:
		return "unreachable"
	case KindFailed:
		return "failed"
	default:
		return fmt.Sprintf("SubmissionErrorKind(%d)", int(k))
	}
}

// User-facing messages for each kind when the backend gives none.
const (
	MsgRejected    = "Please check your input and try again"
	MsgServerError = "Server error. Please try again later."
	MsgUnreachable = "Unable to connect to server. Please check your internet connection."
	MsgFailed      = "Failed to submit request. Please try again."
)

// SubmissionError is returned by every backend call that did not succeed.
// Message is safe to show to the visitor.
type SubmissionError struct {
	Kind       SubmissionErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend %s (status %d): %s: %v", e.Kind, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("backend %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// IsUnreachable reports whether err is a SubmissionError of KindUnreachable.
func IsUnreachable(err error) bool {
	var sErr *SubmissionError
	return errors.As(err, &sErr) && sErr.Kind == KindUnreachable
}
