// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs an Intcode machine against byte streams, feeding
// input on demand and writing every output value as it is produced.
package emulator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"unicode"

	"github.com/ezrec/intcode/machine"
)

// Emulator state. Machine + input and output streams.
type Emulator struct {
	Verbose          bool    // If set, enables verbose logging.
	*machine.Machine         // Reference to the machine simulation.
	Program          []int64 // Initial tape loaded by Reset.
	Patch            map[int64]int64

	// Input supplies values when the program blocks on input. Integers are
	// separated by white space or commas; with ASCII set every byte is one
	// value.
	Input io.Reader
	// Output receives each value on its own line; with ASCII set values
	// below 128 are written as characters.
	Output io.Writer
	ASCII  bool

	reader *bufio.Reader
}

// NewEmulator creates a new emulator for a program.
func NewEmulator(program []int64) (emu *Emulator) {
	emu = &Emulator{
		Program: program,
	}
	emu.Machine = machine.New(program)

	return
}

// Reset reloads the program into a fresh machine and applies the patches.
func (emu *Emulator) Reset() (err error) {
	emu.Machine = machine.New(emu.Program)
	emu.Machine.Verbose = emu.Verbose
	emu.reader = nil

	for addr, value := range emu.Patch {
		err = emu.Machine.Write(addr, value)
		if err != nil {
			return
		}
		if emu.Verbose {
			log.Printf("emulator: patch [%d] = %d", addr, value)
		}
	}

	return
}

// Tick performs a single step of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Machine.Verbose = emu.Verbose

	op, err := emu.Machine.Step()
	if err != nil {
		return
	}

	switch op {
	case machine.OP_BLOCKED:
		err = emu.feed()
	case machine.OP_HALT:
		done = true
	}
	if err != nil {
		return
	}

	err = emu.flush()
	return
}

// Run runs the program until it halts, feeding input whenever it blocks.
func (emu *Emulator) Run() (err error) {
	emu.Machine.Verbose = emu.Verbose

	for {
		_, err = emu.Machine.Run()
		ferr := emu.flush()
		if errors.Is(err, machine.ErrBlocked) {
			err = ferr
			if err == nil {
				err = emu.feed()
			}
			if err != nil {
				return
			}
			continue
		}
		if err == nil {
			err = ferr
		}
		return
	}
}

// feed pushes the next input value into the machine.
func (emu *Emulator) feed() (err error) {
	if emu.Input == nil {
		err = ErrInputExhausted
		return
	}
	if emu.reader == nil {
		emu.reader = bufio.NewReader(emu.Input)
	}

	var value int64
	if emu.ASCII {
		var b byte
		b, err = emu.reader.ReadByte()
		if err == io.EOF {
			err = ErrInputExhausted
		}
		if err != nil {
			return
		}
		value = int64(b)
	} else {
		var word string
		word, err = emu.token()
		if err != nil {
			return
		}
		value, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			err = ErrParseInput(word)
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: input %d", value)
	}
	emu.Machine.PushInput(value)

	return
}

// token reads the next integer token from the input.
func (emu *Emulator) token() (word string, err error) {
	var sb strings.Builder

	for {
		r, _, rerr := emu.reader.ReadRune()
		if rerr == io.EOF && sb.Len() > 0 {
			break
		}
		if rerr == io.EOF {
			err = ErrInputExhausted
			return
		}
		if rerr != nil {
			err = rerr
			return
		}
		if unicode.IsSpace(r) || r == ',' {
			if sb.Len() > 0 {
				break
			}
			continue
		}
		sb.WriteRune(r)
	}

	word = sb.String()
	return
}

// flush drains the output queue to Output.
func (emu *Emulator) flush() (err error) {
	for value, ok := emu.Machine.PopOutput(); ok; value, ok = emu.Machine.PopOutput() {
		if emu.Output == nil {
			continue
		}
		if emu.ASCII && value >= 0 && value < 128 {
			_, err = emu.Output.Write([]byte{byte(value)})
		} else {
			_, err = fmt.Fprintf(emu.Output, "%d\n", value)
		}
		if err != nil {
			return
		}
	}

	return
}
