package asm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/machine"
)

func assemble(t *testing.T, program []string) (cells []int64) {
	asm := &Assembler{}
	cells, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	cells, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(cells))
	assert.Equal("0", asm.Equate["LINENO"])
}

func TestAssembler_Quine(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"arb #1          ; relative base walks the tape",
		"out @-1",
		"add 100, #1, 100",
		"eq 100, #16, 101",
		"jf 101, #0",
		"hlt",
	}

	cells := assemble(t, program)
	assert.Equal([]int64{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}, cells)

	output, err := machine.New(cells).Run()
	assert.NoError(err)
	assert.Equal(cells, output)
}

func TestAssembler_Labels(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".equ LIMIT 3",
		"start:  out count",
		"        add count, #1, count",
		"        lt count, #LIMIT, flag",
		"        jt flag, #start",
		"        hlt",
		"count:  .data 0",
		"flag:   .data 0",
	}

	cells := assemble(t, program)
	assert.Equal([]int64{4, 14, 1001, 14, 1, 14, 1007, 14, 3, 15, 1005, 15, 0, 99, 0, 0}, cells)

	output, err := machine.New(cells).Run()
	assert.NoError(err)
	assert.Equal([]int64{0, 1, 2}, output)
}

func TestAssembler_Data(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".equ LIMIT 3",
		".equ DOUBLE $(LIMIT * 2)",
		"here: .data $(LIMIT * 2), 'A', '\\n', 0x10, -1",
		".data DOUBLE $(here + 1) LINENO",
		"a: b: .data ' ', ','",
	}

	cells := assemble(t, program)
	assert.Equal([]int64{6, 65, 10, 16, -1, 6, 1, 4, 32, 44}, cells)
}

func TestAssembler_Modes(t *testing.T) {
	assert := assert.New(t)

	cells := assemble(t, []string{
		"in @3",
		"mul @1, #-2, @4",
		"jt 7, @-1",
		"jf #0, #0",
		"eq #1, 2, @3",
		"arb 9",
		"out #LINENO",
	})
	assert.Equal([]int64{
		203, 3,
		21202, 1, -2, 4,
		2005, 7, -1,
		1106, 0, 0,
		20108, 1, 2, 3,
		9, 9,
		104, 7,
	}, cells)
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("NOUN", "12")
	asm.Predefine("NOUN", "13")
	asm.Predefine("VERB", "2")

	cells, err := asm.Parse(strings.NewReader("add #NOUN, #VERB, 0\nhlt"))
	assert.NoError(err)
	assert.Equal([]int64{1101, 13, 2, 0, 99}, cells)
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		lineno  int
		target  error
	}){
		{"instruction", []string{"hlt", "nop"}, 2, ErrInstructionInvalid},
		{"label_missing", []string{"jt #1, #nowhere", "hlt"}, 1, ErrLabelMissing("nowhere")},
		{"label_duplicate", []string{"a: hlt", "a: hlt"}, 2, ErrLabelDuplicate},
		{"label_invalid", []string{"1a: hlt"}, 1, ErrLabelInvalid},
		{"operand_count", []string{"add #1, #2"}, 1, ErrOperandCount},
		{"operand_empty", []string{"out #"}, 1, ErrOperandInvalid},
		{"immediate_write", []string{"add #1, #2, #3"}, 1, machine.ErrModeImmediateWrite},
		{"equ_syntax", []string{".equ A"}, 1, ErrEquateSyntax},
		{"equ_duplicate", []string{".equ A 1", ".equ A 2"}, 2, ErrEquateDuplicate},
		{"data_missing", []string{".data"}, 1, ErrDataMissing},
		{"number", []string{"out 1x"}, 1, ErrParseNumber("1x")},
		{"expression", []string{"out $(\"a\")"}, 1, ErrParseExpression("\"a\"")},
	}

	for _, entry := range table {
		asm := &Assembler{}
		cells, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.Nil(cells, entry.name)
		assert.True(errors.Is(err, entry.target), entry.name)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}
}

func TestAssembler_ExpressionError(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("hlt\n.data $(1 +)"))
	assert.Error(err)

	var syntax *ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(2, syntax.LineNo)
}
