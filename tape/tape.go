// Package tape implements the growable memory of the Intcode machine.
//
// A Tape behaves as if it were infinitely long: any access past the current
// end extends it with zero cells first. The tape never shrinks.
package tape

import (
	"errors"
	"slices"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrAddressNegative = errors.New(f("negative address"))
	ErrRangeInvalid    = errors.New(f("invalid range"))
	ErrAddressLimit    = errors.New(f("address beyond memory limit"))
)

// ErrAddress records the address that failed an access.
type ErrAddress struct {
	Index int64
	Err   error
}

func (err *ErrAddress) Error() string {
	return f("address %v: %v", err.Index, err.Err)
}

func (err *ErrAddress) Unwrap() error {
	return err.Err
}

// MaxCells is the largest tape, in cells, that any limit allows.
const MaxCells = 1 << 28

// Tape is the addressable memory of a machine.
type Tape struct {
	cells []int64
	limit int64 // Maximum number of cells, 0 for MaxCells.
}

// New creates a tape holding a copy of cells.
func New(cells []int64) *Tape {
	return &Tape{cells: slices.Clone(cells)}
}

// Len returns the physical size of the tape. It does not bound the valid
// addresses.
func (t *Tape) Len() int {
	return len(t.cells)
}

// SetLimit caps the number of cells the tape may grow to. A limit of 0,
// the default, or one above MaxCells caps the tape at MaxCells.
func (t *Tape) SetLimit(limit int64) {
	t.limit = limit
}

// Cells returns a copy of the current contents.
func (t *Tape) Cells() []int64 {
	return slices.Clone(t.cells)
}

// Grow extends the tape with zeros so that index is a valid cell.
func (t *Tape) Grow(index int64) (err error) {
	if index < 0 {
		err = &ErrAddress{Index: index, Err: ErrAddressNegative}
		return
	}
	limit := int64(MaxCells)
	if t.limit > 0 && t.limit < limit {
		limit = t.limit
	}
	if index >= limit {
		err = &ErrAddress{Index: index, Err: ErrAddressLimit}
		return
	}

	if need := int(index) + 1 - len(t.cells); need > 0 {
		t.cells = append(t.cells, make([]int64, need)...)
	}

	return
}

// Read returns the cell at index.
func (t *Tape) Read(index int64) (value int64, err error) {
	err = t.Grow(index)
	if err != nil {
		return
	}

	value = t.cells[index]
	return
}

// Write stores value at index.
func (t *Tape) Write(index int64, value int64) (err error) {
	err = t.Grow(index)
	if err != nil {
		return
	}

	t.cells[index] = value
	return
}

// ReadRange returns a copy of the cells in [start, end).
func (t *Tape) ReadRange(start, end int64) (values []int64, err error) {
	if start < 0 {
		err = &ErrAddress{Index: start, Err: ErrAddressNegative}
		return
	}
	if end < start {
		err = &ErrAddress{Index: end, Err: ErrRangeInvalid}
		return
	}
	if end == start {
		values = []int64{}
		return
	}

	err = t.Grow(end - 1)
	if err != nil {
		return
	}

	values = slices.Clone(t.cells[start:end])
	return
}
