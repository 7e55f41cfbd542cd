package vm

import (
	"io"
	"log"
)

type word uint16

type cpu_flag word

// general purpose registers
const (
	R0 = 0b000
	R1 = 0b001
	R2 = 0b010
	R3 = 0b011
	R4 = 0b100
	R5 = 0b101
	R6 = 0b110
	R7 = 0b111
)

// condition flags, exactly one set after every register-defining instruction
const (
	FLAG_POS cpu_flag = 0b001
	FLAG_ZRO cpu_flag = 0b010
	FLAG_NEG cpu_flag = 0b100
)

// opcodes
const (
	OP_BR word = iota
	OP_ADD
	OP_LD
	OP_ST
	OP_JSR
	OP_AND
	OP_LDR
	OP_STR
	OP_RTI
	OP_NOT
	OP_LDI
	OP_STI
	OP_JMP
	OP_RES
	OP_LEA
	OP_TRAP
)

type cpu struct {
	running bool
	verbose bool
	memory  *memory
	reg     [8]word
	pc      word
	cond    cpu_flag
	keys    <-chan byte
	out     io.Writer
}

func newCpu(memory *memory, keys <-chan byte, out io.Writer) *cpu {
	return &cpu{
		memory: memory,
		pc:     UserSpaceStart,
		cond:   FLAG_ZRO,
		keys:   keys,
		out:    out,
	}
}

// run drives fetch, decode, execute until a HALT trap clears running.
func (cpu *cpu) run() {
	cpu.running = true
	for cpu.running {
		cpu.step()
	}
}

// step fetches the word at PC, increments PC, and executes it. PC-relative
// offsets are therefore always relative to the address after the fetch.
func (cpu *cpu) step() {
	instr := instruction(cpu.memory.read(cpu.pc))
	cpu.pc++
	cpu.execute(instr)
}

func (cpu *cpu) execute(instr instruction) {
	switch instr.opcode() {
	case OP_ADD:
		dr, sr1 := instr.dr(), instr.sr1()
		if instr.immediate() {
			cpu.trace("0x%04x ADD: dr=%03b sr1=%03b imm5=0x%04x", cpu.pc, dr, sr1, instr.imm5())
			cpu.reg[dr] = cpu.reg[sr1] + instr.imm5()
		} else {
			cpu.trace("0x%04x ADD: dr=%03b sr1=%03b sr2=%03b", cpu.pc, dr, sr1, instr.sr2())
			cpu.reg[dr] = cpu.reg[sr1] + cpu.reg[instr.sr2()]
		}
		cpu.updateFlags(dr)

	case OP_AND:
		dr, sr1 := instr.dr(), instr.sr1()
		if instr.immediate() {
			cpu.trace("0x%04x AND: dr=%03b sr1=%03b imm5=0x%04x", cpu.pc, dr, sr1, instr.imm5())
			cpu.reg[dr] = cpu.reg[sr1] & instr.imm5()
		} else {
			cpu.trace("0x%04x AND: dr=%03b sr1=%03b sr2=%03b", cpu.pc, dr, sr1, instr.sr2())
			cpu.reg[dr] = cpu.reg[sr1] & cpu.reg[instr.sr2()]
		}
		cpu.updateFlags(dr)

	case OP_NOT:
		dr, sr := instr.dr(), instr.sr1()
		cpu.trace("0x%04x NOT: dr=%03b sr=%03b", cpu.pc, dr, sr)
		cpu.reg[dr] = ^cpu.reg[sr]
		cpu.updateFlags(dr)

	case OP_BR:
		cpu.trace("0x%04x BR: nzp=%03b pcoffset9=0x%03x", cpu.pc, instr.nzp(), word(instr)&0x1FF)
		if instr.nzp()&word(cpu.cond) != 0 {
			cpu.pc += instr.pcoffset9()
		}

	case OP_JMP:
		cpu.trace("0x%04x JMP: baseR=%03b", cpu.pc, instr.baseR())
		cpu.pc = cpu.reg[instr.baseR()]

	case OP_JSR:
		cpu.reg[R7] = cpu.pc
		if instr.longJump() {
			cpu.trace("0x%04x JSR: pcoffset11=0x%03x", cpu.pc, word(instr)&0x7FF)
			cpu.pc += instr.pcoffset11()
		} else {
			cpu.trace("0x%04x JSRR: baseR=%03b", cpu.pc, instr.baseR())
			cpu.pc = cpu.reg[instr.baseR()]
		}

	case OP_LD:
		dr := instr.dr()
		cpu.trace("0x%04x LD: dr=%03b pcoffset9=0x%03x", cpu.pc, dr, word(instr)&0x1FF)
		cpu.reg[dr] = cpu.memory.read(cpu.pc + instr.pcoffset9())
		cpu.updateFlags(dr)

	case OP_LDI:
		dr := instr.dr()
		cpu.trace("0x%04x LDI: dr=%03b pcoffset9=0x%03x", cpu.pc, dr, word(instr)&0x1FF)
		cpu.reg[dr] = cpu.memory.read(cpu.memory.read(cpu.pc + instr.pcoffset9()))
		cpu.updateFlags(dr)

	case OP_LDR:
		dr, baseR := instr.dr(), instr.baseR()
		cpu.trace("0x%04x LDR: dr=%03b baseR=%03b offset6=0x%02x", cpu.pc, dr, baseR, word(instr)&0x3F)
		cpu.reg[dr] = cpu.memory.read(cpu.reg[baseR] + instr.offset6())
		cpu.updateFlags(dr)

	case OP_LEA:
		dr := instr.dr()
		cpu.trace("0x%04x LEA: dr=%03b pcoffset9=0x%03x", cpu.pc, dr, word(instr)&0x1FF)
		cpu.reg[dr] = cpu.pc + instr.pcoffset9()
		cpu.updateFlags(dr)

	case OP_ST:
		sr := instr.dr()
		cpu.trace("0x%04x ST: sr=%03b pcoffset9=0x%03x", cpu.pc, sr, word(instr)&0x1FF)
		cpu.memory.write(cpu.pc+instr.pcoffset9(), cpu.reg[sr])

	case OP_STI:
		sr := instr.dr()
		cpu.trace("0x%04x STI: sr=%03b pcoffset9=0x%03x", cpu.pc, sr, word(instr)&0x1FF)
		cpu.memory.write(cpu.memory.read(cpu.pc+instr.pcoffset9()), cpu.reg[sr])

	case OP_STR:
		sr, baseR := instr.dr(), instr.baseR()
		cpu.trace("0x%04x STR: sr=%03b baseR=%03b offset6=0x%02x", cpu.pc, sr, baseR, word(instr)&0x3F)
		cpu.memory.write(cpu.reg[baseR]+instr.offset6(), cpu.reg[sr])

	case OP_TRAP:
		cpu.trace("0x%04x TRAP: 0x%02x", cpu.pc, instr.trapvect8())
		cpu.reg[R7] = cpu.pc
		cpu.executeTrap(instr.trapvect8())

	case OP_RTI, OP_RES:
		// Not part of the user-mode instruction set. The original machine
		// ignores them, so do we.
		cpu.trace("0x%04x RTI/RES: ignored", cpu.pc)
	}
}

func (cpu *cpu) updateFlags(r word) {
	if cpu.reg[r] == 0 {
		cpu.cond = FLAG_ZRO
	} else if cpu.reg[r]>>15 != 0 {
		cpu.cond = FLAG_NEG
	} else {
		cpu.cond = FLAG_POS
	}
}

func (cpu *cpu) trace(format string, args ...any) {
	if cpu.verbose {
		log.Printf(format, args...)
	}
}
