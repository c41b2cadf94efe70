package rtabi

// Entry points of a compiled program
const (
	Init     = "<init>"
	Execute  = "execute"  // statement programs
	Evaluate = "evaluate" // expression programs

	ExecuteDesc  = "()V"
	EvaluateDesc = "()" + DescObject
)

// Invoke kinds
const (
	Static = iota
	Virtual
	Special
	Interface
)

// HostMethod describes a method implemented by the VM rather than by
// compiled code.
type HostMethod struct {
	Owner string
	Name  string
	Desc  string
	Kind  int // Static, Virtual, Special or Interface
}

// Host methods used by compiled code.
var (
	ProgramInit  = HostMethod{ProgramBase, Init, "()V", Special}
	ProgramPrint = HostMethod{ProgramBase, "print", "(" + DescObject + ")V", Virtual}

	IntegerValueOf = HostMethod{ClassInteger, "valueOf", "(I)" + DescInteger, Static}
	IntValue       = HostMethod{ClassInteger, "intValue", "()I", Virtual}
	BooleanValueOf = HostMethod{ClassBoolean, "valueOf", "(Z)" + DescBoxBool, Static}
	BooleanValue   = HostMethod{ClassBoolean, "booleanValue", "()Z", Virtual}

	StringValueOf = HostMethod{ClassString, "valueOf", "(" + DescObject + ")" + DescString, Static}
	StringConcat  = HostMethod{ClassString, "concat", "(" + DescString + ")" + DescString, Virtual}

	ObjectsEquals = HostMethod{ClassObjects, "equals", "(" + DescObject + DescObject + ")Z", Static}

	ArrayListInit = HostMethod{ClassArrayList, Init, "()V", Special}
	ArrayListAdd  = HostMethod{ClassArrayList, "add", "(" + DescObject + ")Z", Virtual}
	ListIterator  = HostMethod{ClassList, "iterator", "()" + DescIter, Interface}
	IterHasNext   = HostMethod{ClassIterator, "hasNext", "()Z", Interface}
	IterNext      = HostMethod{ClassIterator, "next", "()" + DescObject, Interface}
)

// HostMethods returns every host method the VM must provide.
func HostMethods() []HostMethod {
	return []HostMethod{
		ProgramInit,
		ProgramPrint,
		IntegerValueOf,
		IntValue,
		BooleanValueOf,
		BooleanValue,
		StringValueOf,
		StringConcat,
		ObjectsEquals,
		ArrayListInit,
		ArrayListAdd,
		ListIterator,
		IterHasNext,
		IterNext,
	}
}

// Key returns owner.name:desc, matching bytecode.MemberRef.Key.
func (h HostMethod) Key() string {
	return h.Owner + "." + h.Name + ":" + h.Desc
}
