// Package program reads and writes Intcode program listings: signed
// integers separated by commas.
package program

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrEmpty = errors.New(f("empty program"))
)

// ErrParseNumber is a listing token that is not an integer.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrSyntax locates a malformed token in a listing.
type ErrSyntax struct {
	Index int // Cell index of the token.
	Err   error
}

func (err *ErrSyntax) Error() string {
	return f("cell %d %v", err.Index, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// Parse reads a comma separated listing. Whitespace around tokens is ignored,
// so a trailing newline is accepted.
func Parse(input io.Reader) (cells []int64, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	text := strings.TrimSpace(string(data))
	if len(text) == 0 {
		err = ErrEmpty
		return
	}

	words := strings.Split(text, ",")
	cells = make([]int64, 0, len(words))
	for n, word := range words {
		word = strings.TrimSpace(word)

		var value int64
		value, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			cells = nil
			err = &ErrSyntax{Index: n, Err: ErrParseNumber(word)}
			return
		}
		cells = append(cells, value)
	}

	return
}

// Load parses the listing stored in the named file.
func Load(name string) (cells []int64, err error) {
	inf, err := os.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	cells, err = Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", name, err)
	}

	return
}

// Format writes cells as a listing followed by a newline.
func Format(output io.Writer, cells []int64) (err error) {
	w := bufio.NewWriter(output)

	for n, cell := range cells {
		if n > 0 {
			w.WriteByte(',')
		}
		w.WriteString(strconv.FormatInt(cell, 10))
	}
	w.WriteByte('\n')

	return w.Flush()
}
