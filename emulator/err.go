package emulator

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrInputExhausted = errors.New(f("input exhausted while program waits for input"))
)

// ErrParseInput is an input token that is not an integer.
type ErrParseInput string

func (err ErrParseInput) Error() string {
	return f("input '%v' is not a number", string(err))
}
