package dbc

import (
	"errors"
	"fmt"
	"github.com/wyfbw07/godbc/internal/utils"
)

var (
	// ErrByteOrderUnrecognised is returned when a signal's `@<order><sign>`
	// token names a byte order other than 0 (Motorola) or 1 (Intel).
	ErrByteOrderUnrecognised = errors.New("dbc: byte order not recognised")
	// ErrValueTypeUnrecognised is returned when a signal's sign character
	// is neither `+` nor `-`.
	ErrValueTypeUnrecognised = errors.New("dbc: value type not recognised")
	// ErrValueTypeIdentifierUnrecognised is returned when a SIG_VALTYPE_
	// line names an identifier other than 1 (float) or 2 (double).
	ErrValueTypeIdentifierUnrecognised = errors.New("dbc: value type identifier not recognised")
)

// IoError wraps a failure to open or read a DBC file from disk.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("dbc: could not open database file %q: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// DuplicateMessageError is returned when a BO_ line names a message id
// that has already been parsed.
type DuplicateMessageError struct {
	Name string
	ID   uint32
}

func (e *DuplicateMessageError) Error() string {
	return fmt.Sprintf("dbc: duplicate message %q (id %d)", e.Name, e.ID)
}

// DuplicateSignalError is returned when a message has two SG_ lines with
// the same signal name.
type DuplicateSignalError struct {
	Message string
	Signal  string
}

func (e *DuplicateSignalError) Error() string {
	return fmt.Sprintf("dbc: duplicate signal %q in message %q", e.Signal, e.Message)
}

// DuplicateValueDescriptionError is returned when a VAL_ line repeats a
// raw value already described for the same signal.
type DuplicateValueDescriptionError struct {
	Signal string
	Value  float64
}

func (e *DuplicateValueDescriptionError) Error() string {
	return fmt.Sprintf("dbc: duplicate value description %v for signal %q", e.Value, e.Signal)
}

// UnknownMessageError is returned by Decode/Encode when the database has
// no message with the given id.
type UnknownMessageError struct {
	ID uint32
}

func (e *UnknownMessageError) Error() string {
	return fmt.Sprintf("dbc: unknown message id %d", e.ID)
}

// UnknownSignalError is returned when an encode assignment or a VAL_/BA_
// line names a signal the message does not have.
type UnknownSignalError struct {
	Message string
	Signal  string
}

func (e *UnknownSignalError) Error() string {
	return fmt.Sprintf("dbc: unknown signal %q in message %q", e.Signal, e.Message)
}

// LengthMismatchError is returned by Decode when the supplied payload
// length (dlc) does not match the message's declared size.
type LengthMismatchError struct {
	Expected int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("dbc: length mismatch, expected %d bytes, got %d", e.Expected, e.Actual)
}

// MultiplexedSignalError is returned when the parser encounters a
// multiplexor or multiplexed signal, which this library does not support.
type MultiplexedSignalError struct {
	Signal string
}

func (e *MultiplexedSignalError) Error() string {
	return fmt.Sprintf("dbc: multiplexed signal %q is not supported", e.Signal)
}

// InconsistentInitialValueError is returned by the post-parse consistency
// check when a signal's (or the database's global) initial value falls
// outside the signal's [min, max] range.
type InconsistentInitialValueError struct {
	Signal string
	Value  float64
	Min    float64
	Max    float64
}

func (e *InconsistentInitialValueError) Error() string {
	return fmt.Sprintf("dbc: initial value %v for signal %q outside range [%v, %v]",
		e.Value, e.Signal, e.Min, e.Max)
}

// UnknownBusTypeError is returned when a BA_ "BusType" line names a value
// other than "CAN", "CAN FD" or "Unknown".
type UnknownBusTypeError struct {
	Token string
}

func (e *UnknownBusTypeError) Error() string {
	return fmt.Sprintf("dbc: unknown bus type %q", e.Token)
}

// MessageSizeError is returned when a BO_ line's declared size exceeds
// the ceiling permitted by the database's bus type.
type MessageSizeError struct {
	Message string
	Size    int
	Max     int
}

func (e *MessageSizeError) Error() string {
	return fmt.Sprintf("dbc: message %q size %d exceeds maximum %d bytes for its bus type", e.Message, e.Size, e.Max)
}

// ParseError wraps a lower-level error with the line number and raw line
// content that triggered it, so a caller can locate the defect in the
// source file without re-scanning it.
type ParseError struct {
	Line    int
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dbc: parse error at line %d (%q): %v", e.Line, utils.FormatSpaces([]byte(e.Content)), e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
