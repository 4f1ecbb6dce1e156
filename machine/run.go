package machine

// Run steps the machine until it halts, returning a copy of everything in
// the output queue, or until an OP_IN finds no input, returning ErrBlocked
// with all state left ready to resume.
//
// Running off the end of the program decodes zero cells, which is an
// invalid opcode and reported as a runtime error.
func (m *Machine) Run() (output []int64, err error) {
	for {
		var op Opcode
		op, err = m.Step()
		if err != nil {
			return
		}

		switch op {
		case OP_HALT:
			output = m.Output.Values()
			return
		case OP_BLOCKED:
			err = ErrBlocked
			return
		}
	}
}
