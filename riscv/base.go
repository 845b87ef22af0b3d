package riscv

// RV32I and RV64I base instructions, with the Zicsr and Zifencei extensions.

func LUI(rd Reg, imm uint32) Inst   { return U(OpLUI, rd, imm) }
func AUIPC(rd Reg, imm uint32) Inst { return U(OpAUIPC, rd, imm) }

func JAL(rd Reg, offset int32) Inst        { return J(OpJAL, rd, offset) }
func JALR(rd, rs1 Reg, offset int32) Inst  { return I(OpJALR, rd, 0b000, rs1, offset) }
func BEQ(rs1, rs2 Reg, offset int32) Inst  { return B(OpBranch, FunctBEQ, rs1, rs2, offset) }
func BNE(rs1, rs2 Reg, offset int32) Inst  { return B(OpBranch, FunctBNE, rs1, rs2, offset) }
func BLT(rs1, rs2 Reg, offset int32) Inst  { return B(OpBranch, FunctBLT, rs1, rs2, offset) }
func BGE(rs1, rs2 Reg, offset int32) Inst  { return B(OpBranch, FunctBGE, rs1, rs2, offset) }
func BLTU(rs1, rs2 Reg, offset int32) Inst { return B(OpBranch, FunctBLTU, rs1, rs2, offset) }
func BGEU(rs1, rs2 Reg, offset int32) Inst { return B(OpBranch, FunctBGEU, rs1, rs2, offset) }

// Branch condition selectors, the funct3 field of a conditional branch.
const (
	FunctBEQ  uint8 = 0b000
	FunctBNE  uint8 = 0b001
	FunctBLT  uint8 = 0b100
	FunctBGE  uint8 = 0b101
	FunctBLTU uint8 = 0b110
	FunctBGEU uint8 = 0b111
)

func LB(rd, rs1 Reg, offset int32) Inst  { return I(OpLoad, rd, 0b000, rs1, offset) }
func LH(rd, rs1 Reg, offset int32) Inst  { return I(OpLoad, rd, 0b001, rs1, offset) }
func LW(rd, rs1 Reg, offset int32) Inst  { return I(OpLoad, rd, 0b010, rs1, offset) }
func LD(rd, rs1 Reg, offset int32) Inst  { return I(OpLoad, rd, 0b011, rs1, offset) }
func LBU(rd, rs1 Reg, offset int32) Inst { return I(OpLoad, rd, 0b100, rs1, offset) }
func LHU(rd, rs1 Reg, offset int32) Inst { return I(OpLoad, rd, 0b101, rs1, offset) }
func LWU(rd, rs1 Reg, offset int32) Inst { return I(OpLoad, rd, 0b110, rs1, offset) }

// Stores take the base register first: SD(base, src, offset) stores src at offset(base).
func SB(rs1, rs2 Reg, offset int32) Inst { return S(OpStore, 0b000, rs1, rs2, offset) }
func SH(rs1, rs2 Reg, offset int32) Inst { return S(OpStore, 0b001, rs1, rs2, offset) }
func SW(rs1, rs2 Reg, offset int32) Inst { return S(OpStore, 0b010, rs1, rs2, offset) }
func SD(rs1, rs2 Reg, offset int32) Inst { return S(OpStore, 0b011, rs1, rs2, offset) }

func ADDI(rd, rs1 Reg, imm int32) Inst  { return I(OpOpImm, rd, 0b000, rs1, imm) }
func SLTI(rd, rs1 Reg, imm int32) Inst  { return I(OpOpImm, rd, 0b010, rs1, imm) }
func SLTIU(rd, rs1 Reg, imm int32) Inst { return I(OpOpImm, rd, 0b011, rs1, imm) }
func XORI(rd, rs1 Reg, imm int32) Inst  { return I(OpOpImm, rd, 0b100, rs1, imm) }
func ORI(rd, rs1 Reg, imm int32) Inst   { return I(OpOpImm, rd, 0b110, rs1, imm) }
func ANDI(rd, rs1 Reg, imm int32) Inst  { return I(OpOpImm, rd, 0b111, rs1, imm) }

// Shift amounts are six bits wide on RV64.
func SLLI(rd, rs1 Reg, shamt uint8) Inst {
	return I(OpOpImm, rd, 0b001, rs1, int32(shamt&0x3f))
}
func SRLI(rd, rs1 Reg, shamt uint8) Inst {
	return I(OpOpImm, rd, 0b101, rs1, int32(shamt&0x3f))
}
func SRAI(rd, rs1 Reg, shamt uint8) Inst {
	return I(OpOpImm, rd, 0b101, rs1, 0x400|int32(shamt&0x3f))
}

func ADD(rd, rs1, rs2 Reg) Inst  { return R(OpOp, rd, 0b000, rs1, rs2, 0) }
func SUB(rd, rs1, rs2 Reg) Inst  { return R(OpOp, rd, 0b000, rs1, rs2, 0b0100000) }
func SLL(rd, rs1, rs2 Reg) Inst  { return R(OpOp, rd, 0b001, rs1, rs2, 0) }
func SLT(rd, rs1, rs2 Reg) Inst  { return R(OpOp, rd, 0b010, rs1, rs2, 0) }
func SLTU(rd, rs1, rs2 Reg) Inst { return R(OpOp, rd, 0b011, rs1, rs2, 0) }
func XOR(rd, rs1, rs2 Reg) Inst  { return R(OpOp, rd, 0b100, rs1, rs2, 0) }
func SRL(rd, rs1, rs2 Reg) Inst  { return R(OpOp, rd, 0b101, rs1, rs2, 0) }
func SRA(rd, rs1, rs2 Reg) Inst  { return R(OpOp, rd, 0b101, rs1, rs2, 0b0100000) }
func OR(rd, rs1, rs2 Reg) Inst   { return R(OpOp, rd, 0b110, rs1, rs2, 0) }
func AND(rd, rs1, rs2 Reg) Inst  { return R(OpOp, rd, 0b111, rs1, rs2, 0) }

func ADDIW(rd, rs1 Reg, imm int32) Inst { return I(OpOpImm32, rd, 0b000, rs1, imm) }
func SLLIW(rd, rs1 Reg, shamt uint8) Inst {
	return I(OpOpImm32, rd, 0b001, rs1, int32(shamt&0x1f))
}
func SRLIW(rd, rs1 Reg, shamt uint8) Inst {
	return I(OpOpImm32, rd, 0b101, rs1, int32(shamt&0x1f))
}
func SRAIW(rd, rs1 Reg, shamt uint8) Inst {
	return I(OpOpImm32, rd, 0b101, rs1, 0x400|int32(shamt&0x1f))
}

func ADDW(rd, rs1, rs2 Reg) Inst { return R(OpOp32, rd, 0b000, rs1, rs2, 0) }
func SUBW(rd, rs1, rs2 Reg) Inst { return R(OpOp32, rd, 0b000, rs1, rs2, 0b0100000) }
func SLLW(rd, rs1, rs2 Reg) Inst { return R(OpOp32, rd, 0b001, rs1, rs2, 0) }
func SRLW(rd, rs1, rs2 Reg) Inst { return R(OpOp32, rd, 0b101, rs1, rs2, 0) }
func SRAW(rd, rs1, rs2 Reg) Inst { return R(OpOp32, rd, 0b101, rs1, rs2, 0b0100000) }

// Memory-ordering sets for FENCE: device input, device output, memory reads, memory writes.
const (
	FenceI uint8 = 1 << 3
	FenceO uint8 = 1 << 2
	FenceR uint8 = 1 << 1
	FenceW uint8 = 1 << 0

	FenceRW   = FenceR | FenceW
	FenceIORW = FenceI | FenceO | FenceR | FenceW
)

// Order the pred set of accesses before the succ set.
func FENCE(pred, succ uint8) Inst {
	return I(OpMiscMem, 0, 0b000, 0, int32(pred&0xf)<<4|int32(succ&0xf))
}

// Synchronize the instruction and data streams.
func FENCE_I() Inst { return I(OpMiscMem, 0, 0b001, 0, 0) }

func ECALL() Inst  { return I(OpSystem, 0, 0b000, 0, 0) }
func EBREAK() Inst { return I(OpSystem, 0, 0b000, 0, 1) }

// Control and status registers are addressed by a 12-bit number.
type CSR uint16

// Unprivileged counters and floating-point status.
const (
	CSR_FFLAGS  CSR = 0x001
	CSR_FRM     CSR = 0x002
	CSR_FCSR    CSR = 0x003
	CSR_CYCLE   CSR = 0xc00
	CSR_TIME    CSR = 0xc01
	CSR_INSTRET CSR = 0xc02
)

func csr(rd Reg, funct3 uint8, src uint32, c CSR) Inst {
	return I(OpSystem, rd, funct3, Reg(src&0x1f), int32(c&0xfff))
}

func CSRRW(rd Reg, c CSR, rs1 Reg) Inst { return csr(rd, 0b001, rs1.Num(), c) }
func CSRRS(rd Reg, c CSR, rs1 Reg) Inst { return csr(rd, 0b010, rs1.Num(), c) }
func CSRRC(rd Reg, c CSR, rs1 Reg) Inst { return csr(rd, 0b011, rs1.Num(), c) }

// The immediate forms take a 5-bit unsigned value in place of rs1.
func CSRRWI(rd Reg, c CSR, uimm uint8) Inst { return csr(rd, 0b101, uint32(uimm), c) }
func CSRRSI(rd Reg, c CSR, uimm uint8) Inst { return csr(rd, 0b110, uint32(uimm), c) }
func CSRRCI(rd Reg, c CSR, uimm uint8) Inst { return csr(rd, 0b111, uint32(uimm), c) }
