package machine

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Instruction is a decoded instruction word. It is rebuilt every time the
// IP reaches a cell and never outlives a single Step.
type Instruction struct {
	Opcode Opcode
	Modes  [3]Mode
}

// Decode splits an instruction word into its opcode and parameter modes.
//
// Only the modes of parameters the opcode actually takes are validated; any
// digits beyond them are ignored.
func Decode(word int64) (inst Instruction, err error) {
	if word < 0 {
		err = ErrOpcode(word)
		return
	}

	inst.Opcode = Opcode(word % 100)
	if !inst.Opcode.Valid() {
		err = ErrOpcode(word)
		return
	}

	modes := word / 100
	for n := range inst.Modes {
		inst.Modes[n] = Mode(modes % 10)
		modes /= 10
	}

	write := inst.Opcode.Writes()
	for n := range inst.Opcode.Params() {
		mode := inst.Modes[n]
		if !mode.Valid() {
			err = errors.Join(ErrModeInvalid, ErrParam(n+1))
			return
		}
		if n == write && mode == MODE_IMMEDIATE {
			err = errors.Join(ErrModeImmediateWrite, ErrParam(n+1))
			return
		}
	}

	return
}

// Encode returns the instruction word for the instruction.
func (inst Instruction) Encode() (word int64) {
	scale := int64(100)
	word = int64(inst.Opcode)
	for _, mode := range inst.Modes {
		word += int64(mode) * scale
		scale *= 10
	}
	return
}

// Format renders the instruction and its raw parameters as assembler text.
func (inst Instruction) Format(params []int64) string {
	var sb strings.Builder

	sb.WriteString(inst.Opcode.String())
	for n, param := range params {
		if n >= len(inst.Modes) {
			break
		}
		if n == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v%d", inst.Modes[n].prefix(), param)
	}

	return sb.String()
}

// Disassemble writes an assembler listing of cells to w, one instruction
// per line prefixed with its address. Words that do not decode, or whose
// parameters run past the end of cells, are written as .data.
func Disassemble(w io.Writer, cells []int64) (err error) {
	for ip := 0; ip < len(cells); {
		inst, derr := Decode(cells[ip])
		length := inst.Opcode.Length()
		if derr != nil || ip+length > len(cells) {
			_, err = fmt.Fprintf(w, "%6d: .data %d\n", ip, cells[ip])
			if err != nil {
				return
			}
			ip++
			continue
		}

		_, err = fmt.Fprintf(w, "%6d: %v\n", ip, inst.Format(cells[ip+1:ip+length]))
		if err != nil {
			return
		}
		ip += length
	}

	return
}
