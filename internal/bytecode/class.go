package bytecode

// Class is a compiled unit: a named class holding fields and methods.
type Class struct {
	Name    string // internal name
	Super   string // internal name of the superclass
	Fields  []*Field
	Methods []*Method
}

// NewClass creates an empty class.
func NewClass(name, super string) *Class {
	return &Class{Name: name, Super: super}
}

// Field is an instance field.
type Field struct {
	Name string
	Desc string
}

// AddField declares a field. Declaring an existing name again returns the
// existing field.
func (c *Class) AddField(name, desc string) *Field {
	if f := c.Field(name); f != nil {
		return f
	}
	f := &Field{Name: name, Desc: desc}
	c.Fields = append(c.Fields, f)
	return f
}

// Field returns the field with the given name, or nil.
func (c *Class) Field(name string) *Field {
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// AddMethod creates a method and appends it to the class.
func (c *Class) AddMethod(name, desc string) *Method {
	m := &Method{Name: name, Desc: desc, Owner: c}
	c.Methods = append(c.Methods, m)
	return m
}

// Method returns the method with the given name and descriptor, or nil.
func (c *Class) Method(name, desc string) *Method {
	for _, m := range c.Methods {
		if m.Name == name && m.Desc == desc {
			return m
		}
	}
	return nil
}

// Method is a method body under construction or complete.
type Method struct {
	Name  string
	Desc  string
	Owner *Class
	Code  []Inst

	// Set by Verify.
	MaxStack  int
	MaxLocals int

	labels []*Label
}

// NewLabel allocates a label that is placed later with Mark.
func (m *Method) NewLabel() *Label {
	l := &Label{ID: len(m.labels), PC: -1}
	m.labels = append(m.labels, l)
	return l
}

// Labels returns the labels allocated in m.
func (m *Method) Labels() []*Label { return m.labels }

// Mark places l at the current end of the code.
func (m *Method) Mark(l *Label) {
	l.PC = len(m.Code)
	m.Code = append(m.Code, Inst{Op: OpLabel, Aux: l})
}

// Emit appends an instruction without operands.
func (m *Method) Emit(op Op) {
	m.Code = append(m.Code, Inst{Op: op})
}

// EmitLdc appends LDC of an int32 or string constant.
func (m *Method) EmitLdc(v interface{}) {
	m.Code = append(m.Code, Inst{Op: OpLdc, Aux: v})
}

// EmitVar appends a local load or store.
func (m *Method) EmitVar(op Op, slot int) {
	m.Code = append(m.Code, Inst{Op: op, AuxInt: int64(slot)})
}

// EmitType appends NEW or CHECKCAST of the given internal class name.
func (m *Method) EmitType(op Op, class string) {
	m.Code = append(m.Code, Inst{Op: op, Aux: class})
}

// EmitMember appends a field access or invocation.
func (m *Method) EmitMember(op Op, owner, name, desc string) {
	m.Code = append(m.Code, Inst{Op: op, Aux: MemberRef{Owner: owner, Name: name, Desc: desc}})
}

// EmitJump appends a jump to l.
func (m *Method) EmitJump(op Op, l *Label) {
	m.Code = append(m.Code, Inst{Op: op, Aux: l})
}
