package program

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		text  string
		cells []int64
	}){
		{"single", "99", []int64{99}},
		{"newline", "1,0,0,3,99\n", []int64{1, 0, 0, 3, 99}},
		{"spaces", " 1101, -5 ,3,0 ,99 ", []int64{1101, -5, 3, 0, 99}},
		{"large", "104,1125899906842624,99", []int64{104, 1125899906842624, 99}},
		{"crlf", "3,0,4,0,99\r\n", []int64{3, 0, 4, 0, 99}},
	}

	for _, entry := range table {
		cells, err := Parse(strings.NewReader(entry.text))
		assert.NoError(err, entry.name)
		assert.Equal(entry.cells, cells, entry.name)
	}
}

func TestParse_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		text  string
		index int
		token string
	}){
		{"word", "1,two,3", 1, "two"},
		{"empty_cell", "1,,3", 1, ""},
		{"leading_comma", ",1", 0, ""},
		{"trailing_comma", "1,2,", 2, ""},
		{"float", "1.5", 0, "1.5"},
		{"overflow", "99999999999999999999", 0, "99999999999999999999"},
	}

	for _, entry := range table {
		cells, err := Parse(strings.NewReader(entry.text))
		assert.Nil(cells, entry.name)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.index, syntax.Index, entry.name)
		}
		var number ErrParseNumber
		if assert.True(errors.As(err, &number), entry.name) {
			assert.Equal(entry.token, string(number), entry.name)
		}
	}

	_, err := Parse(strings.NewReader(" \n"))
	assert.True(errors.Is(err, ErrEmpty))
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	name := filepath.Join(dir, "prog.ic")
	assert.NoError(os.WriteFile(name, []byte("1101,5,3,0,99\n"), 0o644))

	cells, err := Load(name)
	assert.NoError(err)
	assert.Equal([]int64{1101, 5, 3, 0, 99}, cells)

	bad := filepath.Join(dir, "bad.ic")
	assert.NoError(os.WriteFile(bad, []byte("1,x"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(err, bad)
	var number ErrParseNumber
	assert.True(errors.As(err, &number))

	_, err = Load(filepath.Join(dir, "missing.ic"))
	assert.True(errors.Is(err, os.ErrNotExist))
}

func TestFormat(t *testing.T) {
	assert := assert.New(t)

	buf := &bytes.Buffer{}
	assert.NoError(Format(buf, []int64{109, -1, 204, 99}))
	assert.Equal("109,-1,204,99\n", buf.String())

	cells, err := Parse(buf)
	assert.NoError(err)
	assert.Equal([]int64{109, -1, 204, 99}, cells)
}
