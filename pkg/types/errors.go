package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure surfaced to the host
type ErrorKind string

const (
	ErrorKindUnknown                      ErrorKind = "Unknown"
	ErrorKindInvalidKeyMaterial           ErrorKind = "InvalidKeyMaterial"
	ErrorKindInvalidAddress               ErrorKind = "InvalidAddress"
	ErrorKindEndpointUnreachableOrInvalid ErrorKind = "EndpointUnreachableOrInvalid"
	ErrorKindRpc                          ErrorKind = "RpcError"
	ErrorKindSubmission                   ErrorKind = "SubmissionError"
	ErrorKindConfirmation                 ErrorKind = "ConfirmationError"
	ErrorKindExecutorInit                 ErrorKind = "ExecutorInitError"
	ErrorKindHostDelivery                 ErrorKind = "HostDeliveryError"
)

func (k ErrorKind) String() string {
	return string(k)
}

// BridgeError is the error type every host facing operation returns
type BridgeError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *BridgeError) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *BridgeError) Unwrap() error {
	return e.Err
}

// Is matches any BridgeError of the same kind, so the sentinels below can be
// used with errors.Is.
func (e *BridgeError) Is(target error) bool {
	t, ok := target.(*BridgeError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidKeyMaterial           = &BridgeError{Kind: ErrorKindInvalidKeyMaterial}
	ErrInvalidAddress               = &BridgeError{Kind: ErrorKindInvalidAddress}
	ErrEndpointUnreachableOrInvalid = &BridgeError{Kind: ErrorKindEndpointUnreachableOrInvalid}
	ErrRpc                          = &BridgeError{Kind: ErrorKindRpc}
	ErrSubmission                   = &BridgeError{Kind: ErrorKindSubmission}
	ErrConfirmation                 = &BridgeError{Kind: ErrorKindConfirmation}
	ErrExecutorInit                 = &BridgeError{Kind: ErrorKindExecutorInit}
	ErrHostDelivery                 = &BridgeError{Kind: ErrorKindHostDelivery}
)

// NewError wraps err with a kind. An err that is already a BridgeError keeps
// its original kind and only gains the op if it had none.
func NewError(kind ErrorKind, op string, err error) error {
	var existing *BridgeError
	if errors.As(err, &existing) {
		if existing.Op == "" && op != "" {
			return &BridgeError{Kind: existing.Kind, Op: op, Err: existing.Err}
		}
		return err
	}
	return &BridgeError{Kind: kind, Op: op, Err: err}
}

// Errorf is NewError with a formatted cause
func Errorf(kind ErrorKind, op string, format string, args ...interface{}) error {
	return &BridgeError{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first BridgeError in err's chain
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var be *BridgeError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ErrorKindUnknown
}
