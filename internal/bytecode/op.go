// Package bytecode defines the stack-machine instruction set produced by the
// CatScript compiler: opcodes, instructions, labels, and the class unit that
// groups fields and methods.
package bytecode

// Op is an instruction opcode. Names and operand conventions follow the
// JVM instruction set.
type Op uint8

const (
	OpInvalid Op = iota

	// Pseudo-instruction marking a jump target; Aux = *Label
	OpLabel

	// Constants
	OpAConstNull // push null
	OpIConst0    // push int 0 (false)
	OpIConst1    // push int 1 (true)
	OpLdc        // push constant; Aux = int32 or string

	// Locals; AuxInt = slot
	OpILoad  // push int local
	OpALoad  // push reference local
	OpIStore // pop int into local
	OpAStore // pop reference into local

	// Fields; Aux = MemberRef
	OpGetField // objectref → value
	OpPutField // objectref, value →

	// Integer arithmetic
	OpIAdd
	OpISub
	OpIMul
	OpIDiv
	OpINeg
	OpIXor

	// Stack
	OpDup
	OpPop

	// Objects; Aux = internal class name
	OpNew
	OpCheckCast

	// Calls; Aux = MemberRef
	OpInvokeStatic
	OpInvokeVirtual
	OpInvokeSpecial
	OpInvokeInterface

	// Jumps; Aux = *Label
	OpGoto
	OpIfEq    // pop int, jump if zero
	OpIfNe    // pop int, jump if non-zero
	OpIfICmpEq
	OpIfICmpNe
	OpIfICmpLt
	OpIfICmpLe
	OpIfICmpGt
	OpIfICmpGe

	// Returns
	OpReturn  // void
	OpIReturn // int or bool
	OpAReturn // reference

	opCount // sentinel; must be last
)

// OpInfo holds metadata about an opcode.
type OpInfo struct {
	Name   string // JVM mnemonic
	Pop    int    // operands consumed; -1 if it depends on a descriptor
	Push   int    // results produced; -1 if it depends on a descriptor
	IsJump bool   // Aux is a jump target
	IsTerm bool   // control never falls through
}

var opInfoTable = [opCount]OpInfo{
	OpInvalid: {Name: "INVALID"},
	OpLabel:   {Name: "LABEL"},

	OpAConstNull: {Name: "ACONST_NULL", Push: 1},
	OpIConst0:    {Name: "ICONST_0", Push: 1},
	OpIConst1:    {Name: "ICONST_1", Push: 1},
	OpLdc:        {Name: "LDC", Push: 1},

	OpILoad:  {Name: "ILOAD", Push: 1},
	OpALoad:  {Name: "ALOAD", Push: 1},
	OpIStore: {Name: "ISTORE", Pop: 1},
	OpAStore: {Name: "ASTORE", Pop: 1},

	OpGetField: {Name: "GETFIELD", Pop: 1, Push: 1},
	OpPutField: {Name: "PUTFIELD", Pop: 2},

	OpIAdd: {Name: "IADD", Pop: 2, Push: 1},
	OpISub: {Name: "ISUB", Pop: 2, Push: 1},
	OpIMul: {Name: "IMUL", Pop: 2, Push: 1},
	OpIDiv: {Name: "IDIV", Pop: 2, Push: 1},
	OpINeg: {Name: "INEG", Pop: 1, Push: 1},
	OpIXor: {Name: "IXOR", Pop: 2, Push: 1},

	OpDup: {Name: "DUP", Pop: 1, Push: 2},
	OpPop: {Name: "POP", Pop: 1},

	OpNew:       {Name: "NEW", Push: 1},
	OpCheckCast: {Name: "CHECKCAST", Pop: 1, Push: 1},

	OpInvokeStatic:    {Name: "INVOKESTATIC", Pop: -1, Push: -1},
	OpInvokeVirtual:   {Name: "INVOKEVIRTUAL", Pop: -1, Push: -1},
	OpInvokeSpecial:   {Name: "INVOKESPECIAL", Pop: -1, Push: -1},
	OpInvokeInterface: {Name: "INVOKEINTERFACE", Pop: -1, Push: -1},

	OpGoto:     {Name: "GOTO", IsJump: true, IsTerm: true},
	OpIfEq:     {Name: "IFEQ", Pop: 1, IsJump: true},
	OpIfNe:     {Name: "IFNE", Pop: 1, IsJump: true},
	OpIfICmpEq: {Name: "IF_ICMPEQ", Pop: 2, IsJump: true},
	OpIfICmpNe: {Name: "IF_ICMPNE", Pop: 2, IsJump: true},
	OpIfICmpLt: {Name: "IF_ICMPLT", Pop: 2, IsJump: true},
	OpIfICmpLe: {Name: "IF_ICMPLE", Pop: 2, IsJump: true},
	OpIfICmpGt: {Name: "IF_ICMPGT", Pop: 2, IsJump: true},
	OpIfICmpGe: {Name: "IF_ICMPGE", Pop: 2, IsJump: true},

	OpReturn:  {Name: "RETURN", IsTerm: true},
	OpIReturn: {Name: "IRETURN", Pop: 1, IsTerm: true},
	OpAReturn: {Name: "ARETURN", Pop: 1, IsTerm: true},
}

// String returns the mnemonic of the op.
func (o Op) String() string {
	if int(o) < len(opInfoTable) {
		return opInfoTable[o].Name
	}
	return "unknown"
}

// Info returns the OpInfo for this op.
func (o Op) Info() OpInfo {
	if int(o) < len(opInfoTable) {
		return opInfoTable[o]
	}
	return OpInfo{Name: "unknown"}
}

// IsJump reports whether o transfers control to a label.
func (o Op) IsJump() bool { return o.Info().IsJump }

// IsInvoke reports whether o is a method invocation.
func (o Op) IsInvoke() bool {
	return o >= OpInvokeStatic && o <= OpInvokeInterface
}

// IsTerm reports whether control never falls through o.
func (o Op) IsTerm() bool { return o.Info().IsTerm }
