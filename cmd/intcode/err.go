package main

import (
	"strings"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

// ErrConfigKeys lists configuration keys that are not understood.
type ErrConfigKeys []string

func (ek ErrConfigKeys) Error() string {
	return f("unknown configuration keys %v", strings.Join(ek, ", "))
}

// ErrPatchAddress is a patch address that is not a non-negative integer.
type ErrPatchAddress string

func (ea ErrPatchAddress) Error() string {
	return f("patch address '%v' invalid", string(ea))
}

// ErrPatchSyntax is a -set value that is not addr=value.
type ErrPatchSyntax string

func (es ErrPatchSyntax) Error() string {
	return f("'%v' is not addr=value", string(es))
}
