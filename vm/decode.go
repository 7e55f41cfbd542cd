package vm

// instruction is a fetched 16-bit instruction word. The top 4 bits select
// the opcode; the accessors below extract the operand fields each opcode
// defines from the remaining 12 bits.
type instruction word

func (i instruction) opcode() word { return word(i) >> 12 }

// dr is the destination register field; for ST/STI/STR the same bits name
// the source register instead.
func (i instruction) dr() word  { return (word(i) >> 9) & 0b111 }
func (i instruction) sr1() word { return (word(i) >> 6) & 0b111 }
func (i instruction) sr2() word { return word(i) & 0b111 }

// immediate reports whether ADD/AND use the imm5 form instead of SR2.
func (i instruction) immediate() bool { return (word(i)>>5)&0b1 == 1 }

func (i instruction) imm5() word       { return sext(word(i)&0x1F, 5) }
func (i instruction) pcoffset9() word  { return sext(word(i)&0x1FF, 9) }
func (i instruction) pcoffset11() word { return sext(word(i)&0x7FF, 11) }
func (i instruction) offset6() word    { return sext(word(i)&0x3F, 6) }

func (i instruction) baseR() word { return (word(i) >> 6) & 0b111 }

// nzp is the BR condition mask, same bit order as the cpu_flag values.
func (i instruction) nzp() word { return (word(i) >> 9) & 0b111 }

// longJump reports whether JSR uses the PCoffset11 form instead of baseR.
func (i instruction) longJump() bool { return (word(i)>>11)&0b1 == 1 }

func (i instruction) trapvect8() word { return word(i) & 0xFF }

// sign extend
func sext(x, bit_count word) word {
	if ((x >> (bit_count - 1)) & 0b1) != 0 {
		x |= 0xFFFF << bit_count
	}
	return x
}
