package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrapGetc(t *testing.T) {
	assert := assert.New(t)
	machine, keys, out := newTestMachine()
	cpu := machine.cpu

	keys <- 0x41 // 'A'
	cpu.execute(encTrap(TRAP_GETC))
	assert.Equal(word(0x41), cpu.reg[R0])
	assert.Equal(FLAG_POS, cpu.cond)
	assert.Empty(out.String(), "GETC does not echo")
}

func TestTrapOut(t *testing.T) {
	assert := assert.New(t)
	machine, _, out := newTestMachine()
	cpu := machine.cpu

	cpu.reg[R0] = 0x2A41 // only the low byte is written
	cpu.execute(encTrap(TRAP_OUT))
	assert.Equal("A", out.String())
}

func TestTrapPuts(t *testing.T) {
	assert := assert.New(t)
	machine, _, out := newTestMachine()
	cpu := machine.cpu

	for i, w := range []word{0x0048, 0x0049, 0x0000, 0x0058} {
		machine.memory.write(0x4000+word(i), w)
	}
	cpu.reg[R0] = 0x4000
	cpu.execute(encTrap(TRAP_PUTS))
	assert.Equal("HI", out.String(), "stops at the zero word")
}

func TestTrapIn(t *testing.T) {
	assert := assert.New(t)
	machine, keys, out := newTestMachine()
	cpu := machine.cpu

	keys <- 'Z'
	cpu.execute(encTrap(TRAP_IN))
	assert.Equal("Enter a character: Z", out.String())
	assert.Equal(word('Z'), cpu.reg[R0])
	assert.Equal(FLAG_POS, cpu.cond)
}

func TestTrapPutsp(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name  string
		words []word
		want  string
	}{
		{"even_length", []word{0x4948, 0x0000}, "HI"},        // 'H' low, 'I' high
		{"odd_length", []word{0x4948, 0x0021, 0x0000}, "HI!"}, // high byte zero skipped
		{"empty", []word{0x0000}, ""},
	}

	for _, entry := range table {
		machine, _, out := newTestMachine()
		cpu := machine.cpu
		for i, w := range entry.words {
			machine.memory.write(0x4000+word(i), w)
		}
		cpu.reg[R0] = 0x4000
		cpu.execute(encTrap(TRAP_PUTSP))
		assert.Equal(entry.want, out.String(), entry.name)
	}
}

func TestTrapHalt(t *testing.T) {
	assert := assert.New(t)
	machine, _, out := newTestMachine()
	cpu := machine.cpu

	cpu.running = true
	cpu.execute(encTrap(TRAP_HALT))
	assert.False(cpu.running)
	assert.Equal("HALT\n", out.String())
}

func TestTrapSavesLinkRegister(t *testing.T) {
	assert := assert.New(t)
	machine, _, _ := newTestMachine()
	cpu := machine.cpu

	machine.memory.write(0x3000, word(encTrap(TRAP_HALT)))
	cpu.pc = 0x3000
	cpu.running = true
	cpu.step()
	assert.Equal(word(0x3001), cpu.reg[R7])
}

func TestTrapUnknownVectorIgnored(t *testing.T) {
	assert := assert.New(t)
	machine, _, out := newTestMachine()
	cpu := machine.cpu

	cpu.running = true
	before := cpu.reg
	cpu.executeTrap(0x30)
	assert.True(cpu.running)
	assert.Equal(before, cpu.reg)
	assert.Empty(out.String())
}
