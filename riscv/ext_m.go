package riscv

// M extension: integer multiplication and division.

const functMulDiv uint8 = 0b0000001

func MUL(rd, rs1, rs2 Reg) Inst    { return R(OpOp, rd, 0b000, rs1, rs2, functMulDiv) }
func MULH(rd, rs1, rs2 Reg) Inst   { return R(OpOp, rd, 0b001, rs1, rs2, functMulDiv) }
func MULHSU(rd, rs1, rs2 Reg) Inst { return R(OpOp, rd, 0b010, rs1, rs2, functMulDiv) }
func MULHU(rd, rs1, rs2 Reg) Inst  { return R(OpOp, rd, 0b011, rs1, rs2, functMulDiv) }
func DIV(rd, rs1, rs2 Reg) Inst    { return R(OpOp, rd, 0b100, rs1, rs2, functMulDiv) }
func DIVU(rd, rs1, rs2 Reg) Inst   { return R(OpOp, rd, 0b101, rs1, rs2, functMulDiv) }
func REM(rd, rs1, rs2 Reg) Inst    { return R(OpOp, rd, 0b110, rs1, rs2, functMulDiv) }
func REMU(rd, rs1, rs2 Reg) Inst   { return R(OpOp, rd, 0b111, rs1, rs2, functMulDiv) }

func MULW(rd, rs1, rs2 Reg) Inst  { return R(OpOp32, rd, 0b000, rs1, rs2, functMulDiv) }
func DIVW(rd, rs1, rs2 Reg) Inst  { return R(OpOp32, rd, 0b100, rs1, rs2, functMulDiv) }
func DIVUW(rd, rs1, rs2 Reg) Inst { return R(OpOp32, rd, 0b101, rs1, rs2, functMulDiv) }
func REMW(rd, rs1, rs2 Reg) Inst  { return R(OpOp32, rd, 0b110, rs1, rs2, functMulDiv) }
func REMUW(rd, rs1, rs2 Reg) Inst { return R(OpOp32, rd, 0b111, rs1, rs2, functMulDiv) }
