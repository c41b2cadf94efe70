package bytecode

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes a textual disassembly of c to w.
//
// Format:
//
//	class Prog extends catscript/runtime/ProgramBase
//	  field x I
//
//	  method execute()V [stack=2 locals=1]
//	       0: ALOAD 0
//	       1: LDC 42
//	       2: PUTFIELD Prog.x I
//	    L0:
//	       4: RETURN
func Fprint(w io.Writer, c *Class) {
	fmt.Fprintf(w, "class %s extends %s\n", c.Name, c.Super)
	for _, f := range c.Fields {
		fmt.Fprintf(w, "  field %s %s\n", f.Name, f.Desc)
	}
	for _, m := range c.Methods {
		fmt.Fprintln(w)
		fprintMethod(w, m)
	}
}

func fprintMethod(w io.Writer, m *Method) {
	fmt.Fprintf(w, "  method %s%s", m.Name, m.Desc)
	if m.MaxStack > 0 || m.MaxLocals > 0 {
		fmt.Fprintf(w, " [stack=%d locals=%d]", m.MaxStack, m.MaxLocals)
	}
	fmt.Fprintln(w)
	for pc, inst := range m.Code {
		if inst.Op == OpLabel {
			fmt.Fprintf(w, "    %s:\n", inst.Label())
			continue
		}
		fmt.Fprintf(w, "    %4d: %s\n", pc, FormatInst(inst))
	}
}

// FormatInst formats a single instruction with its operand.
func FormatInst(inst Inst) string {
	var sb strings.Builder
	sb.WriteString(inst.Op.String())

	switch {
	case inst.Op == OpLdc:
		sb.WriteByte(' ')
		switch v := inst.Aux.(type) {
		case string:
			sb.WriteString(strconv.Quote(v))
		default:
			fmt.Fprintf(&sb, "%v", v)
		}
	case inst.Op >= OpILoad && inst.Op <= OpAStore:
		fmt.Fprintf(&sb, " %d", inst.AuxInt)
	case inst.Op.IsJump(), inst.Op == OpLabel:
		fmt.Fprintf(&sb, " %s", inst.Label())
	case inst.Op == OpNew || inst.Op == OpCheckCast:
		fmt.Fprintf(&sb, " %s", inst.Aux)
	case inst.Op == OpGetField || inst.Op == OpPutField || inst.Op.IsInvoke():
		fmt.Fprintf(&sb, " %s", inst.Member())
	}
	return sb.String()
}

// Sprint returns the disassembly of c as a string.
func Sprint(c *Class) string {
	var sb strings.Builder
	Fprint(&sb, c)
	return sb.String()
}
