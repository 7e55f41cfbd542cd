package vm

const MemorySize = 1 << 16

const (
	TrapVectorTableStart       = 0x0000
	InterruptVectorTableStart  = 0x0100
	SystemSpaceStart           = 0x0200
	UserSpaceStart             = 0x3000
	MemoryMappedRegistersStart = 0xFE00
)

// memory mapped register addresses
const (
	KBSR word = MemoryMappedRegistersStart          /* keyboard status register */
	KBDR word = MemoryMappedRegistersStart + 0x0002 /* keyboard data register */
)

// KBSR high bit: a byte is waiting in KBDR.
const kbsrReady word = 0x8000

// deviceHandler runs before an intercepted address is read, so a device can
// refresh the word the program is about to see.
type deviceHandler func(mem *memory)

type memory struct {
	ram    [MemorySize]word
	onRead map[word]deviceHandler
}

// newMemory builds the bus with the keyboard device mapped at KBSR/KBDR.
// A read of KBSR polls the key buffer without blocking: if a byte is
// pending, KBSR gets its ready bit set and KBDR the byte; otherwise KBSR
// reads back as zero.
func newMemory(keys <-chan byte) *memory {
	mem := &memory{}
	mem.onRead = map[word]deviceHandler{
		KBSR: func(m *memory) {
			select {
			case b := <-keys:
				m.ram[KBSR] = kbsrReady
				m.ram[KBDR] = word(b)
			default:
				m.ram[KBSR] = 0
			}
		},
	}
	return mem
}

func (mem *memory) read(addr word) word {
	if handler, ok := mem.onRead[addr]; ok {
		handler(mem)
	}
	return mem.ram[addr]
}

func (mem *memory) write(addr, value word) {
	mem.ram[addr] = value
}
