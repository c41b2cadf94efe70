package bytecode

import (
	"fmt"
	"strings"
)

// Verify checks every method of c and computes its MaxStack and MaxLocals.
// It returns an error describing all violations found, or nil if valid.
//
// A method is valid when every label it jumps to is placed exactly once,
// every operand is well formed, and the operand stack has the same depth
// on every path into an instruction, never underflows, and control never
// runs off the end of the code.
func Verify(c *Class) error {
	var errs []string
	for _, m := range c.Methods {
		errs = append(errs, verifyMethod(m)...)
	}
	return combineErrors(c.Name, errs)
}

func verifyMethod(m *Method) []string {
	var errs []string
	add := func(pc int, format string, args ...interface{}) {
		errs = append(errs, fmt.Sprintf("%s%s, pc %d: %s", m.Name, m.Desc, pc, fmt.Sprintf(format, args...)))
	}

	params, _, err := ParseMethodDesc(m.Desc)
	if err != nil {
		return []string{fmt.Sprintf("%s: %v", m.Name, err)}
	}
	maxLocals := len(params) + 1 // this + parameters

	// 1. Operands are well formed; labels are placed once.
	placed := make(map[*Label]int)
	for pc, inst := range m.Code {
		info := inst.Op.Info()
		switch {
		case inst.Op == OpInvalid || int(inst.Op) >= int(opCount):
			add(pc, "invalid opcode %d", inst.Op)
		case inst.Op == OpLabel:
			l := inst.Label()
			if l == nil {
				add(pc, "label pseudo-instruction without label")
				continue
			}
			placed[l]++
			if l.PC != pc {
				add(pc, "label %s placed at pc %d but records pc %d", l, pc, l.PC)
			}
		case info.IsJump:
			if inst.Label() == nil {
				add(pc, "%s without target", inst.Op)
			}
		case inst.Op == OpLdc:
			switch inst.Aux.(type) {
			case int32, string:
			default:
				add(pc, "LDC of unsupported constant %T", inst.Aux)
			}
		case inst.Op >= OpILoad && inst.Op <= OpAStore:
			if inst.AuxInt < 0 {
				add(pc, "%s of negative slot %d", inst.Op, inst.AuxInt)
			}
			if n := int(inst.AuxInt) + 1; n > maxLocals {
				maxLocals = n
			}
		case inst.Op == OpNew || inst.Op == OpCheckCast:
			if s, ok := inst.Aux.(string); !ok || s == "" {
				add(pc, "%s without class name", inst.Op)
			}
		case inst.Op == OpGetField || inst.Op == OpPutField || inst.Op.IsInvoke():
			if ref, ok := inst.Aux.(MemberRef); !ok || ref.Owner == "" || ref.Name == "" {
				add(pc, "%s without member reference", inst.Op)
			}
		}
	}
	for pc, inst := range m.Code {
		if l := inst.Label(); l != nil && inst.Op.IsJump() && placed[l] == 0 {
			add(pc, "jump to unplaced label %s", l)
		}
	}
	for l, n := range placed {
		if n > 1 {
			add(l.PC, "label %s placed %d times", l, n)
		}
	}
	if len(errs) > 0 {
		return errs
	}

	// 2. Stack depths, by flow over reachable instructions.
	depth := make([]int, len(m.Code)+1)
	for i := range depth {
		depth[i] = -1
	}
	maxStack := 0
	work := []int{0}
	depth[0] = 0

	flow := func(from, to, d int) {
		if to == len(m.Code) {
			add(from, "control falls off the end of the method")
			return
		}
		switch {
		case depth[to] < 0:
			depth[to] = d
			work = append(work, to)
		case depth[to] != d:
			add(to, "stack depth %d on one path and %d on another", depth[to], d)
		}
	}

	if len(m.Code) == 0 {
		add(0, "empty method body")
		return errs
	}

	for len(work) > 0 {
		pc := work[len(work)-1]
		work = work[:len(work)-1]
		inst := m.Code[pc]

		pop, push, err := stackEffect(inst)
		if err != nil {
			add(pc, "%v", err)
			continue
		}
		d := depth[pc]
		if d < pop {
			add(pc, "%s needs %d operands, stack has %d", inst.Op, pop, d)
			continue
		}
		d += push - pop
		if d > maxStack {
			maxStack = d
		}

		if inst.Op.IsJump() {
			flow(pc, inst.Label().PC, d)
		}
		if !inst.Op.IsTerm() {
			flow(pc, pc+1, d)
		}
	}

	m.MaxStack = maxStack
	m.MaxLocals = maxLocals
	return errs
}

// stackEffect returns the number of operands inst pops and pushes.
func stackEffect(inst Inst) (pop, push int, err error) {
	info := inst.Op.Info()
	if !inst.Op.IsInvoke() {
		return info.Pop, info.Push, nil
	}
	ref := inst.Member()
	params, result, err := ParseMethodDesc(ref.Desc)
	if err != nil {
		return 0, 0, err
	}
	pop = len(params)
	if inst.Op != OpInvokeStatic {
		pop++ // receiver
	}
	if result != "V" {
		push = 1
	}
	return pop, push, nil
}

func combineErrors(class string, errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("bytecode verification of %s failed:\n  %s", class, strings.Join(errs, "\n  "))
}
