package bytecode

import "fmt"

// Inst is a single instruction. Which operand is used depends on Op:
// AuxInt holds a local slot; Aux holds a constant, class name, MemberRef
// or *Label.
type Inst struct {
	Op     Op
	AuxInt int64
	Aux    interface{}
}

// Label returns the jump target or label definition of inst, or nil.
func (inst Inst) Label() *Label {
	l, _ := inst.Aux.(*Label)
	return l
}

// Member returns the field or method reference of inst.
func (inst Inst) Member() MemberRef {
	m, _ := inst.Aux.(MemberRef)
	return m
}

// Label is a jump target within a method. Its PC is the index of its
// OpLabel instruction, set when the label is placed.
type Label struct {
	ID int
	PC int // -1 until placed
}

func (l *Label) String() string {
	return fmt.Sprintf("L%d", l.ID)
}

// MemberRef names a field or method of a class.
type MemberRef struct {
	Owner string // internal class name
	Name  string
	Desc  string // type or method descriptor
}

// Key returns owner.name:desc, which identifies the member uniquely.
func (m MemberRef) Key() string {
	return m.Owner + "." + m.Name + ":" + m.Desc
}

func (m MemberRef) String() string {
	return m.Owner + "." + m.Name + " " + m.Desc
}
