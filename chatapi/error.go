package chatapi

import "fmt"

// ErrorType classifies why a request failed
type ErrorType int

// ErrorTypes
const (
	ErrorTypeNetwork ErrorType = iota
	ErrorTypeStatus
	ErrorTypeDecode
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeNetwork:
		return "Network"
	case ErrorTypeStatus:
		return "Status"
	case ErrorTypeDecode:
		return "Decode"
	}
	return "Unknown"
}

// Error wraps a failed chat request. StatusCode is set for ErrorTypeStatus.
type Error struct {
	Description string
	Type        ErrorType
	StatusCode  int
	Err         error
}

func (e *Error) Error() string {
	if e.Type == ErrorTypeStatus {
		return fmt.Sprintf("%s Error: %s (status %d): %v", e.Type, e.Description, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s Error: %s: %v", e.Type, e.Description, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
