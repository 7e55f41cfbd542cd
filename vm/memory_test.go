package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryReadWrite(t *testing.T) {
	assert := assert.New(t)
	keys := make(chan byte, 1)
	mem := newMemory(keys)

	assert.Equal(word(0), mem.read(0x1234), "memory starts zeroed")

	mem.write(0x1234, 0xABCD)
	assert.Equal(word(0xABCD), mem.read(0x1234))

	// addresses are exhaustive, the top word is plain storage too
	mem.write(0xFFFF, 0x0001)
	assert.Equal(word(0x0001), mem.read(0xFFFF))
}

func TestKeyboardStatusRead(t *testing.T) {
	assert := assert.New(t)
	keys := make(chan byte, 1)
	mem := newMemory(keys)

	// no key pending: status reads clear
	assert.Equal(word(0), mem.read(KBSR))

	// pending key: status read latches the byte into KBDR
	keys <- 0x41
	assert.Equal(kbsrReady, mem.read(KBSR))
	assert.Equal(word(0x41), mem.read(KBDR))

	// the byte was consumed; the next status read clears again but the
	// data register keeps its last value
	assert.Equal(word(0), mem.read(KBSR))
	assert.Equal(word(0x41), mem.read(KBDR))
}

func TestKeyboardWriteIsPlainStore(t *testing.T) {
	assert := assert.New(t)
	keys := make(chan byte, 1)
	mem := newMemory(keys)

	// writes have no device side effects in this design
	mem.write(KBSR, 0x1234)
	mem.write(KBDR, 0x5678)
	assert.Equal(word(0x5678), mem.read(KBDR))
	// reading KBSR polls and overwrites the stored value
	assert.Equal(word(0), mem.read(KBSR))
}
