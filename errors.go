package lazybones

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danpasecinic/lazybones/internal/dispatch"
)

type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeInitializationFailed
	ErrCodeReceiverFailed
	ErrCodeUnsupportedPhase
	ErrCodeFrozen
	ErrCodeJobRejected
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:              "UNKNOWN",
	ErrCodeInitializationFailed: "INITIALIZATION_FAILED",
	ErrCodeReceiverFailed:       "RECEIVER_FAILED",
	ErrCodeUnsupportedPhase:     "UNSUPPORTED_PHASE",
	ErrCodeFrozen:               "FROZEN",
	ErrCodeJobRejected:          "JOB_REJECTED",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

type Error struct {
	Code     ErrorCode
	Message  string
	Binding  string
	Phase    Phase
	HasPhase bool
	Cause    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))

	if e.Binding != "" {
		b.WriteString(fmt.Sprintf(" binding=%q", e.Binding))
	}
	if e.HasPhase {
		b.WriteString(fmt.Sprintf(" phase=%s", e.Phase))
	}
	if e.Binding != "" || e.HasPhase {
		b.WriteString(":")
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) WithBinding(binding string) *Error {
	e.Binding = binding
	return e
}

func (e *Error) WithPhase(p Phase) *Error {
	e.Phase = p
	e.HasPhase = true
	return e
}

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func errInitializationFailed(cause error) *Error {
	return newError(ErrCodeInitializationFailed, "initializer returned error", cause)
}

func errReceiverFailed(p Phase, cause error) *Error {
	return newError(
		ErrCodeReceiverFailed,
		fmt.Sprintf("receiver failed during %s dispatch", p),
		cause,
	).WithPhase(p)
}

func errUnsupportedPhase(p Phase) *Error {
	return newError(
		ErrCodeUnsupportedPhase,
		fmt.Sprintf("phase %s is not emitted by this lifecycle", p),
		nil,
	).WithPhase(p)
}

func errFrozen(p Phase) *Error {
	return newError(ErrCodeFrozen, "property was built and no longer accepts receivers", nil).WithPhase(p)
}

func errJobRejected(cause error) *Error {
	return newError(ErrCodeJobRejected, "goroutine pool rejected lifecycle job", cause)
}

// wrapDispatchError turns a dispatch failure into an *Error tagged with the
// phase being dispatched.
func wrapDispatchError(binding string, p Phase, err error) error {
	if err == nil {
		return nil
	}

	var recvErr *dispatch.ReceiverError
	if errors.As(err, &recvErr) {
		return errReceiverFailed(p, recvErr).WithBinding(binding)
	}

	var e *Error
	if errors.As(err, &e) {
		return e.WithBinding(binding).WithPhase(p)
	}

	return newError(ErrCodeUnknown, "dispatch failed", err).WithBinding(binding).WithPhase(p)
}

// hasCode reports whether any *Error in err's chain carries code.
func hasCode(err error, code ErrorCode) bool {
	return err != nil && errors.Is(err, &Error{Code: code})
}

func IsInitializationFailed(err error) bool {
	return hasCode(err, ErrCodeInitializationFailed)
}

func IsReceiverFailed(err error) bool {
	return hasCode(err, ErrCodeReceiverFailed)
}

func IsUnsupportedPhase(err error) bool {
	return hasCode(err, ErrCodeUnsupportedPhase)
}

func IsFrozen(err error) bool {
	return hasCode(err, ErrCodeFrozen)
}

func IsJobRejected(err error) bool {
	return hasCode(err, ErrCodeJobRejected)
}
