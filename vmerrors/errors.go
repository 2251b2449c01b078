package vmerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Machine (M) Errors
var (
	ErrInvalidAddress = errors.New("M1|InvalidAddress: Negative address dereferenced by an operand or jump target.")
	ErrUnknownOpcode  = errors.New("M2|UnknownOpcode: Decoded opcode is not a defined instruction.")
	ErrInvalidMode    = errors.New("M3|InvalidMode: Parameter mode digit is not position, immediate or relative.")
	ErrImmediateWrite = errors.New("M4|ImmediateWrite: Destination operand uses immediate mode.")
	ErrTerminated     = errors.New("M5|Terminated: Machine already halted or faulted.")
	ErrStepLimit      = errors.New("M6|StepLimit: Step limit reached before a suspension point.")
	ErrInputExhausted = errors.New("M7|InputExhausted: Machine needs input but none was supplied.")
)

// Network (N) Errors
var (
	ErrDeadlock = errors.New("N1|Deadlock: Topology exceeded its round bound without halting or quiescing.")
	ErrNoOutput = errors.New("N2|NoOutput: Machine halted without producing the expected output.")
	ErrNoAnswer = errors.New("N3|NoAnswer: Search space exhausted without an answer.")
)

// Program (P) and Storage (S) Errors
var (
	ErrMalformedProgram = errors.New("P1|MalformedProgram: Program text is not a comma separated list of integers.")
	ErrSnapshotNotFound = errors.New("S1|SnapshotNotFound: No snapshot stored under the requested name.")
)

var catalog = []error{
	ErrInvalidAddress, ErrUnknownOpcode, ErrInvalidMode, ErrImmediateWrite, ErrTerminated, ErrStepLimit, ErrInputExhausted,
	ErrDeadlock, ErrNoOutput, ErrNoAnswer,
	ErrMalformedProgram, ErrSnapshotNotFound,
}

// Fault is the error recorded when an instance transitions to Faulted.
type Fault struct {
	IP    int64 // instruction pointer of the faulting instruction
	Word  int64 // instruction word at IP
	Value int64 // offending address or opcode
	Err   error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s (ip=%d word=%d value=%d)", GetErrorName(f.Err), f.IP, f.Word, f.Value)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// IsFatal reports whether err transitions a machine to Faulted.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidAddress) ||
		errors.Is(err, ErrUnknownOpcode) ||
		errors.Is(err, ErrInvalidMode) ||
		errors.Is(err, ErrImmediateWrite)
}

// sentinel returns the catalog entry err wraps, or nil.
func sentinel(err error) error {
	for _, s := range catalog {
		if errors.Is(err, s) {
			return s
		}
	}
	return nil
}

// GetErrorName extracts the error name from the error message.
func GetErrorName(err error) string {
	if err == nil {
		return "No Error"
	}
	if s := sentinel(err); s != nil {
		err = s
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "|") || !strings.Contains(errStr, ":") {
		return errStr
	}
	parts := strings.SplitN(errStr, "|", 2)
	nameParts := strings.SplitN(parts[1], ":", 2)
	return strings.TrimSpace(nameParts[0])
}

// GetErrorCode extracts the error code from the error message.
func GetErrorCode(err error) string {
	s := sentinel(err)
	if s == nil {
		return ""
	}
	parts := strings.SplitN(s.Error(), "|", 2)
	return strings.TrimSpace(parts[0])
}

// GetErrorCodeWithName returns the error code and name in the format "Code_ErrorName".
func GetErrorCodeWithName(err error) string {
	code := GetErrorCode(err)
	name := GetErrorName(err)
	if code == "" || name == "" {
		return ""
	}
	return code + "_" + name
}

// GetErrorDesc extracts the error description from the error message.
func GetErrorDesc(err error) string {
	s := sentinel(err)
	if s == nil {
		return "DESC NOT SET"
	}
	parts := strings.SplitN(s.Error(), ":", 2)
	return strings.TrimSpace(parts[1])
}

// FromCode returns the catalog entry with the given code ("M1"), or nil.
func FromCode(code string) error {
	for _, s := range catalog {
		if GetErrorCode(s) == code {
			return s
		}
	}
	return nil
}
