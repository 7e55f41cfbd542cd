package vm

import "fmt"

const (
	TRAP_GETC  word = 0x20 /* get character from keyboard, not echoed onto the terminal */
	TRAP_OUT   word = 0x21 /* output a character */
	TRAP_PUTS  word = 0x22 /* output a word string */
	TRAP_IN    word = 0x23 /* get character from keyboard, echoed onto the terminal */
	TRAP_PUTSP word = 0x24 /* output a byte string */
	TRAP_HALT  word = 0x25 /* halt the program */
)

// executeTrap runs one of the six OS services. The caller has already saved
// the return address in R7. Unknown vectors are ignored.
func (cpu *cpu) executeTrap(vector word) {
	switch vector {
	case TRAP_GETC:
		cpu.reg[R0] = word(<-cpu.keys)
		cpu.updateFlags(R0)

	case TRAP_OUT:
		cpu.out.Write([]byte{byte(cpu.reg[R0])})

	case TRAP_PUTS:
		// one character per word, low byte only, zero word terminates
		for addr := cpu.reg[R0]; ; addr++ {
			c := cpu.memory.read(addr)
			if c == 0 {
				break
			}
			cpu.out.Write([]byte{byte(c)})
		}

	case TRAP_IN:
		cpu.out.Write([]byte("Enter a character: "))
		c := <-cpu.keys
		cpu.out.Write([]byte{c})
		cpu.reg[R0] = word(c)
		cpu.updateFlags(R0)

	case TRAP_PUTSP:
		// two characters packed per word, low byte first, high byte only
		// when non-zero, zero word terminates
		for addr := cpu.reg[R0]; ; addr++ {
			w := cpu.memory.read(addr)
			if w == 0 {
				break
			}
			cpu.out.Write([]byte{byte(w)})
			if w>>8 != 0 {
				cpu.out.Write([]byte{byte(w >> 8)})
			}
		}

	case TRAP_HALT:
		fmt.Fprintln(cpu.out, "HALT")
		cpu.running = false

	default:
		cpu.trace("trap 0x%02x: ignored", vector)
	}
}
