package machine

import (
	"fmt"
)

// Opcode is the operation selector of an instruction word.
type Opcode int

const (
	OP_BLOCKED = Opcode(-1) // blocked
	OP_ADD     = Opcode(1)  // add
	OP_MUL     = Opcode(2)  // mul
	OP_IN      = Opcode(3)  // in
	OP_OUT     = Opcode(4)  // out
	OP_JT      = Opcode(5)  // jt
	OP_JF      = Opcode(6)  // jf
	OP_LT      = Opcode(7)  // lt
	OP_EQ      = Opcode(8)  // eq
	OP_ARB     = Opcode(9)  // arb
	OP_HALT    = Opcode(99) // hlt
)

// opcodeInfo describes the static shape of an opcode.
type opcodeInfo struct {
	name   string
	length int // Words, including the opcode word.
	write  int // Parameter index of the write target, or -1.
}

var _opcodes = map[Opcode]opcodeInfo{
	OP_ADD:  {"add", 4, 2},
	OP_MUL:  {"mul", 4, 2},
	OP_IN:   {"in", 2, 0},
	OP_OUT:  {"out", 2, -1},
	OP_JT:   {"jt", 3, -1},
	OP_JF:   {"jf", 3, -1},
	OP_LT:   {"lt", 4, 2},
	OP_EQ:   {"eq", 4, 2},
	OP_ARB:  {"arb", 2, -1},
	OP_HALT: {"hlt", 1, -1},
}

// OpcodeByName returns the opcode for an assembler mnemonic.
func OpcodeByName(name string) (op Opcode, ok bool) {
	for code, info := range _opcodes {
		if info.name == name {
			return code, true
		}
	}
	return
}

// Valid returns true for the ten opcodes of the instruction set.
func (op Opcode) Valid() (ok bool) {
	_, ok = _opcodes[op]
	return
}

// Length returns the instruction length in words, or 0 for an invalid opcode.
func (op Opcode) Length() int {
	return _opcodes[op].length
}

// Params returns the number of parameters the opcode takes.
func (op Opcode) Params() int {
	if !op.Valid() {
		return 0
	}
	return op.Length() - 1
}

// Writes returns the index of the parameter written by the opcode, or -1.
func (op Opcode) Writes() int {
	info, ok := _opcodes[op]
	if !ok {
		return -1
	}
	return info.write
}

func (op Opcode) String() string {
	if op == OP_BLOCKED {
		return "blocked"
	}
	info, ok := _opcodes[op]
	if !ok {
		return fmt.Sprintf("Opcode(%d)", int(op))
	}
	return info.name
}

// Mode is a parameter addressing mode.
type Mode int

const (
	MODE_POSITION  = Mode(0) // pos
	MODE_IMMEDIATE = Mode(1) // imm
	MODE_RELATIVE  = Mode(2) // rel
)

// Valid returns true for the three addressing modes.
func (mode Mode) Valid() bool {
	return mode >= MODE_POSITION && mode <= MODE_RELATIVE
}

func (mode Mode) String() string {
	switch mode {
	case MODE_POSITION:
		return "pos"
	case MODE_IMMEDIATE:
		return "imm"
	case MODE_RELATIVE:
		return "rel"
	}
	return fmt.Sprintf("Mode(%d)", int(mode))
}

// prefix is the assembler operand prefix of the mode.
func (mode Mode) prefix() string {
	switch mode {
	case MODE_IMMEDIATE:
		return "#"
	case MODE_RELATIVE:
		return "@"
	}
	return ""
}
