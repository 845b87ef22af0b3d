package riscv

// A extension: atomic memory operations.

// Ordering is the aq/rl pair of an atomic memory operation.
type Ordering uint8

const (
	Relaxed Ordering = 0b00
	Release Ordering = 0b01
	Acquire Ordering = 0b10
	AcqRel  Ordering = 0b11
)

// AMO operation selectors, the funct5 field.
const (
	amoADD  uint8 = 0b00000
	amoSWAP uint8 = 0b00001
	amoLR   uint8 = 0b00010
	amoSC   uint8 = 0b00011
	amoXOR  uint8 = 0b00100
	amoOR   uint8 = 0b01000
	amoAND  uint8 = 0b01100
	amoMIN  uint8 = 0b10000
	amoMAX  uint8 = 0b10100
	amoMINU uint8 = 0b11000
	amoMAXU uint8 = 0b11100
)

const (
	widthW uint8 = 0b010
	widthD uint8 = 0b011
)

// Pack an AMO. The address is in rs1 and the source operand in rs2.
func AMO(funct5, width uint8, ord Ordering, rd, rs1, rs2 Reg) Inst {
	return R(OpAMO, rd, width, rs1, rs2, funct5<<2|uint8(ord&3))
}

func LR_W(ord Ordering, rd, rs1 Reg) Inst { return AMO(amoLR, widthW, ord, rd, rs1, 0) }
func LR_D(ord Ordering, rd, rs1 Reg) Inst { return AMO(amoLR, widthD, ord, rd, rs1, 0) }

func SC_W(ord Ordering, rd, rs1, rs2 Reg) Inst      { return AMO(amoSC, widthW, ord, rd, rs1, rs2) }
func SC_D(ord Ordering, rd, rs1, rs2 Reg) Inst      { return AMO(amoSC, widthD, ord, rd, rs1, rs2) }
func AMOSWAP_W(ord Ordering, rd, rs1, rs2 Reg) Inst { return AMO(amoSWAP, widthW, ord, rd, rs1, rs2) }
func AMOSWAP_D(ord Ordering, rd, rs1, rs2 Reg) Inst { return AMO(amoSWAP, widthD, ord, rd, rs1, rs2) }
func AMOADD_W(ord Ordering, rd, rs1, rs2 Reg) Inst  { return AMO(amoADD, widthW, ord, rd, rs1, rs2) }
func AMOADD_D(ord Ordering, rd, rs1, rs2 Reg) Inst  { return AMO(amoADD, widthD, ord, rd, rs1, rs2) }
func AMOXOR_W(ord Ordering, rd, rs1, rs2 Reg) Inst  { return AMO(amoXOR, widthW, ord, rd, rs1, rs2) }
func AMOXOR_D(ord Ordering, rd, rs1, rs2 Reg) Inst  { return AMO(amoXOR, widthD, ord, rd, rs1, rs2) }
func AMOAND_W(ord Ordering, rd, rs1, rs2 Reg) Inst  { return AMO(amoAND, widthW, ord, rd, rs1, rs2) }
func AMOAND_D(ord Ordering, rd, rs1, rs2 Reg) Inst  { return AMO(amoAND, widthD, ord, rd, rs1, rs2) }
func AMOOR_W(ord Ordering, rd, rs1, rs2 Reg) Inst   { return AMO(amoOR, widthW, ord, rd, rs1, rs2) }
func AMOOR_D(ord Ordering, rd, rs1, rs2 Reg) Inst   { return AMO(amoOR, widthD, ord, rd, rs1, rs2) }
func AMOMIN_W(ord Ordering, rd, rs1, rs2 Reg) Inst  { return AMO(amoMIN, widthW, ord, rd, rs1, rs2) }
func AMOMIN_D(ord Ordering, rd, rs1, rs2 Reg) Inst  { return AMO(amoMIN, widthD, ord, rd, rs1, rs2) }
func AMOMAX_W(ord Ordering, rd, rs1, rs2 Reg) Inst  { return AMO(amoMAX, widthW, ord, rd, rs1, rs2) }
func AMOMAX_D(ord Ordering, rd, rs1, rs2 Reg) Inst  { return AMO(amoMAX, widthD, ord, rd, rs1, rs2) }
func AMOMINU_W(ord Ordering, rd, rs1, rs2 Reg) Inst { return AMO(amoMINU, widthW, ord, rd, rs1, rs2) }
func AMOMINU_D(ord Ordering, rd, rs1, rs2 Reg) Inst { return AMO(amoMINU, widthD, ord, rd, rs1, rs2) }
func AMOMAXU_W(ord Ordering, rd, rs1, rs2 Reg) Inst { return AMO(amoMAXU, widthW, ord, rd, rs1, rs2) }
func AMOMAXU_D(ord Ordering, rd, rs1, rs2 Reg) Inst { return AMO(amoMAXU, widthD, ord, rd, rs1, rs2) }
