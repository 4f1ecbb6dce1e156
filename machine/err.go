package machine

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// ErrBlocked is returned by Run when a read instruction found no input.
	// It is a resumable condition, not a failure.
	ErrBlocked = errors.New(f("blocked on input"))

	// Instruction decode errors
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrModeInvalid        = errors.New(f("parameter mode invalid"))
	ErrModeImmediateWrite = errors.New(f("immediate mode write target"))
)

// ErrOpcode is an instruction word with an unknown opcode.
type ErrOpcode int64

func (eo ErrOpcode) Error() string {
	return f("bad opcode %v in word %v", int64(eo)%100, int64(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	if err == ErrOpcodeInvalid {
		return true
	}
	_, ok = err.(ErrOpcode)
	return
}

// ErrParam identifies the parameter position (from 1) of a decode error.
type ErrParam int

func (ep ErrParam) Error() string {
	return f("param %d", int(ep))
}

// ErrRuntime indicates the location of a fatal execution error.
type ErrRuntime struct {
	Ip   int64 // Position of the failing instruction.
	Word int64 // Instruction word fetched at Ip.
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("ip %v word %v: %v", err.Ip, err.Word, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
