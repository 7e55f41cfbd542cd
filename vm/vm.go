// Package vm emulates the LC-3, a 16-bit word-addressed register machine.
// A VM owns 64Ki words of memory with the keyboard mapped at KBSR/KBDR,
// eight general purpose registers, and a condition flag register. Programs
// are loaded from big-endian image files and run from address 0x3000 until
// a HALT trap.
package vm

import "io"

// VM is one machine instance. The key channel and output writer are the
// only host resources it touches; tests pass a buffered channel and a
// bytes.Buffer, the CLI passes the console.
type VM struct {
	// Verbose enables instruction tracing through the log package.
	// Set before Run.
	Verbose bool

	memory *memory
	cpu    *cpu
}

// New creates a zeroed machine with PC at 0x3000 and the condition flag at
// zero. keys feeds both the memory-mapped keyboard device and the GETC/IN
// traps; out receives all trap output.
func New(keys <-chan byte, out io.Writer) *VM {
	mem := newMemory(keys)
	return &VM{
		memory: mem,
		cpu:    newCpu(mem, keys, out),
	}
}

// Run executes instructions until a HALT trap. An image must be loaded at
// 0x3000 first; running empty memory executes BR-never words forever.
func (vm *VM) Run() {
	vm.cpu.verbose = vm.Verbose
	vm.cpu.run()
}
