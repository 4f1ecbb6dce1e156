package machine

import (
	"fmt"

	"github.com/ezrec/intcode/tape"
)

// Machine is the execution context of one Intcode program.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Ip           int64 // Current instruction pointer.
	RelativeBase int64 // Base added to relative mode parameters.
	Input        Queue // Values consumed by OP_IN.
	Output       Queue // Values produced by OP_OUT.

	Ticks int // Instructions executed.

	halted bool
	tape   *tape.Tape
}

// New creates a machine running a copy of cells, with inputs queued in order.
func New(cells []int64, inputs ...int64) (m *Machine) {
	m = &Machine{
		tape: tape.New(cells),
	}
	m.Input.Push(inputs...)

	return
}

// SetMemoryLimit caps the tape size in cells; 0 means tape.MaxCells.
func (m *Machine) SetMemoryLimit(cells int64) {
	m.tape.SetLimit(cells)
}

// PushInput appends values to the input queue.
func (m *Machine) PushInput(values ...int64) {
	m.Input.Push(values...)
}

// PopOutput removes and returns the oldest output value.
func (m *Machine) PopOutput() (value int64, ok bool) {
	return m.Output.Pop()
}

// Halted returns true once OP_HALT has executed.
func (m *Machine) Halted() bool {
	return m.halted
}

// Read returns the tape cell at index, growing the tape as needed.
func (m *Machine) Read(index int64) (value int64, err error) {
	return m.tape.Read(index)
}

// Write stores value in the tape cell at index, growing the tape as needed.
func (m *Machine) Write(index int64, value int64) (err error) {
	return m.tape.Write(index, value)
}

// Len returns the current physical size of the tape.
func (m *Machine) Len() int {
	return m.tape.Len()
}

// Cells returns a copy of the tape.
func (m *Machine) Cells() []int64 {
	return m.tape.Cells()
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	word, _ := m.tape.Read(m.Ip)

	text += fmt.Sprintf("% 7s: %d\n", "ip", m.Ip)
	text += fmt.Sprintf("% 7s: %d\n", "word", word)
	text += fmt.Sprintf("% 7s: %d\n", "rb", m.RelativeBase)
	text += fmt.Sprintf("% 7s: %v\n", "input", m.Input.Data)
	text += fmt.Sprintf("% 7s: %v\n", "output", m.Output.Data)
	text += fmt.Sprintf("% 7s: %v\n", "halted", m.halted)
	text += fmt.Sprintf("% 7s: %d\n", "ticks", m.Ticks)
	text += fmt.Sprintf("% 7s: %d\n", "cells", m.tape.Len())

	return
}
