// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm implements an assembler producing Intcode tapes.
//
// Each line holds an optional run of labels, then one statement:
//
//	loop:  add #1, count, count   ; count += 1
//	       jt  more, loop
//	       hlt
//	count: .data 0
//	.equ   LIMIT 10
//
// Operands are written in position mode (v), immediate mode (#v) or relative
// mode (@v). A value is a number, a character ('a'), an equate, a label, or a
// $(...) expression evaluated with starlark over the equates and the labels
// defined so far.
package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/intcode/machine"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// fixup is a cell that holds the address of a label.
type fixup struct {
	index  int
	label  string
	lineno int
	line   string
}

// Assembler is a single pass assembler for Intcode.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Label  map[string]int64  // Map of labels to tape addresses.
	Equate map[string]string // Map of equates.

	predefine map[string]string
	cells     []int64
	fixups    []fixup
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var (
	reChar  = regexp.MustCompile(`'\\?[^']'`)
	reParen = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
)

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v, verr := asm.valueOf(str)
		if verr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt64(addr)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// expand replaces character literals and $(...) expressions with numbers.
func (asm *Assembler) expand(line string) (out string, err error) {
	out = reChar.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "t":
				str = "\t"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%d", str[0])
	})

	out = reParen.ReplaceAllStringFunc(out, func(str string) string {
		value, perr := asm.parenEval(str[2 : len(str)-1])
		if perr != nil {
			err = perr
		}
		return fmt.Sprintf("%d", value)
	})

	return
}

// Parse assembles an input stream into a tape.
func (asm *Assembler) Parse(input io.Reader) (cells []int64, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			var serr *ErrSyntax
			if !errors.As(err, &serr) {
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			}
		}
	}()

	asm.Label = make(map[string]int64, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.cells = asm.cells[:0]
	asm.fixups = asm.fixups[:0]

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v", lineno, text)
		}

		line = strings.TrimSpace(strings.SplitN(text, ";", 2)[0])
		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	for _, fix := range asm.fixups {
		addr, ok := asm.Label[fix.label]
		if !ok {
			err = &ErrSyntax{LineNo: fix.lineno, Line: fix.line, Err: ErrLabelMissing(fix.label)}
			return
		}
		asm.cells[fix.index] += addr
	}

	cells = slices.Clone(asm.cells)

	return
}

// parseLine assembles a single line.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ NAME VALUE
	if words[0] == ".equ" {
		if len(words) < 3 {
			err = ErrEquateSyntax
			return
		}
		if _, ok := asm.Equate[words[1]]; ok {
			err = ErrEquateDuplicate
			return
		}
		var value string
		value, err = asm.expand(strings.Join(words[2:], " "))
		if err != nil {
			return
		}
		if len(strings.Fields(value)) != 1 {
			err = ErrEquateSyntax
			return
		}
		asm.Equate[words[1]] = value
		return
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		if !reLabel.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		if _, ok := asm.Label[label]; ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = int64(len(asm.cells))
		words = words[1:]
	}
	if len(words) == 0 {
		return
	}

	// Expressions may see the labels of this line.
	rest, err := asm.expand(strings.Join(words[1:], " "))
	if err != nil {
		return
	}
	operands := strings.FieldsFunc(rest, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	if words[0] == ".data" {
		if len(operands) == 0 {
			err = ErrDataMissing
			return
		}
		for _, operand := range operands {
			var value int64
			value, err = asm.operand(operand, lineno, line)
			if err != nil {
				return
			}
			asm.cells = append(asm.cells, value)
		}
		return
	}

	op, ok := machine.OpcodeByName(words[0])
	if !ok {
		err = ErrInstructionInvalid
		return
	}
	if len(operands) != op.Params() {
		err = ErrOperandCount
		return
	}

	inst := machine.Instruction{Opcode: op}
	at := len(asm.cells)
	asm.cells = append(asm.cells, 0)
	for n, operand := range operands {
		switch operand[0] {
		case '#':
			inst.Modes[n] = machine.MODE_IMMEDIATE
			operand = operand[1:]
		case '@':
			inst.Modes[n] = machine.MODE_RELATIVE
			operand = operand[1:]
		}
		if len(operand) == 0 {
			err = ErrOperandInvalid
			return
		}
		if n == op.Writes() && inst.Modes[n] == machine.MODE_IMMEDIATE {
			err = machine.ErrModeImmediateWrite
			return
		}

		var value int64
		value, err = asm.operand(operand, lineno, line)
		if err != nil {
			return
		}
		asm.cells = append(asm.cells, value)
	}
	asm.cells[at] = inst.Encode()

	return
}

// operand returns the value of an operand word, recording a fixup when the
// word is a label. It must be called just before the value is appended.
func (asm *Assembler) operand(word string, lineno int, line string) (value int64, err error) {
	if equate, ok := asm.Equate[word]; ok {
		word = equate
	}

	value, err = asm.valueOf(word)
	if err == nil {
		return
	}
	if !reLabel.MatchString(word) {
		return
	}

	err = nil
	value = 0
	asm.fixups = append(asm.fixups, fixup{
		index:  len(asm.cells),
		label:  word,
		lineno: lineno,
		line:   line,
	})

	return
}
