// Package machine implements the Intcode virtual machine.
//
// A Machine owns a growable tape of 64-bit cells, an instruction pointer (IP),
// a relative base register and a pair of FIFO queues for input and output.
// Instruction words are decoded on demand into an opcode (the two low
// decimal digits) and up to three parameter modes (the remaining digits,
// least significant first).
//
// Execution never blocks the calling goroutine. A read instruction that finds
// the input queue empty leaves the IP on itself and reports OP_BLOCKED from
// Step, or ErrBlocked from Run; the caller pushes more input and resumes.
package machine
