package machine

import (
	"errors"
	"log"

	"github.com/ezrec/intcode/tape"
)

// Step decodes and executes the instruction at the IP.
//
// It returns the opcode executed, OP_BLOCKED when an OP_IN found the input
// queue empty (nothing is consumed and the IP is left on the instruction),
// or OP_HALT. A halted machine keeps returning OP_HALT.
//
// Fatal errors are returned as *ErrRuntime.
func (m *Machine) Step() (op Opcode, err error) {
	if m.halted {
		op = OP_HALT
		return
	}

	ip := m.Ip
	var word int64

	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, Word: word, Err: err}
		}
	}()

	word, err = m.tape.Read(ip)
	if err != nil {
		return
	}

	inst, err := Decode(word)
	if err != nil {
		return
	}

	length := int64(inst.Opcode.Length())
	params, err := m.tape.ReadRange(ip+1, ip+length)
	if err != nil {
		return
	}

	if m.Verbose {
		log.Printf("machine: %d: %v", ip, inst.Format(params))
	}

	// Resolve every parameter before executing.
	var args [3]int64
	write := inst.Opcode.Writes()
	for n, param := range params {
		if n == write {
			args[n], err = m.address(inst.Modes[n], param)
		} else {
			args[n], err = m.value(inst.Modes[n], param)
		}
		if err != nil {
			err = errors.Join(err, ErrParam(n+1))
			return
		}
	}

	next := ip + length

	switch inst.Opcode {
	case OP_ADD:
		err = m.tape.Write(args[2], args[0]+args[1])
	case OP_MUL:
		err = m.tape.Write(args[2], args[0]*args[1])
	case OP_IN:
		err = m.tape.Grow(args[0])
		if err != nil {
			return
		}
		value, ok := m.Input.Pop()
		if !ok {
			if m.Verbose {
				log.Printf("machine: %d: waiting for input", ip)
			}
			op = OP_BLOCKED
			return
		}
		err = m.tape.Write(args[0], value)
	case OP_OUT:
		m.Output.Push(args[0])
	case OP_JT:
		if args[0] != 0 {
			next = args[1]
		}
	case OP_JF:
		if args[0] == 0 {
			next = args[1]
		}
	case OP_LT:
		err = m.tape.Write(args[2], boolCell(args[0] < args[1]))
	case OP_EQ:
		err = m.tape.Write(args[2], boolCell(args[0] == args[1]))
	case OP_ARB:
		m.RelativeBase += args[0]
	case OP_HALT:
		if m.Verbose {
			log.Printf("machine: %d: halted", ip)
		}
		m.halted = true
		m.Ticks++
		op = OP_HALT
		return
	}
	if err != nil {
		return
	}

	// An instruction that overwrote its own word has the new word executed
	// next, from the same position.
	now, err := m.tape.Read(ip)
	if err != nil {
		return
	}
	if now != word {
		if m.Verbose {
			log.Printf("machine: %d: word %d rewritten to %d", ip, word, now)
		}
		next -= length
	}

	if next < 0 {
		err = &tape.ErrAddress{Index: next, Err: tape.ErrAddressNegative}
		return
	}

	m.Ip = next
	m.Ticks++
	op = inst.Opcode

	return
}

// value resolves a read parameter to its operand value.
func (m *Machine) value(mode Mode, param int64) (value int64, err error) {
	switch mode {
	case MODE_POSITION:
		value, err = m.tape.Read(param)
	case MODE_IMMEDIATE:
		value = param
	case MODE_RELATIVE:
		value, err = m.tape.Read(m.RelativeBase + param)
	default:
		err = ErrModeInvalid
	}
	return
}

// address resolves a write parameter to its target cell.
func (m *Machine) address(mode Mode, param int64) (index int64, err error) {
	switch mode {
	case MODE_POSITION:
		index = param
	case MODE_RELATIVE:
		index = m.RelativeBase + param
	case MODE_IMMEDIATE:
		err = ErrModeImmediateWrite
	default:
		err = ErrModeInvalid
	}
	return
}

func boolCell(cond bool) int64 {
	if cond {
		return 1
	}
	return 0
}
