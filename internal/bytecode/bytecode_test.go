package bytecode

import (
	"reflect"
	"strings"
	"testing"
)

func TestOpNames(t *testing.T) {
	for op := OpInvalid; op < opCount; op++ {
		if op.String() == "" {
			t.Errorf("op %d has no name", op)
		}
	}
	if got := Op(200).String(); got != "unknown" {
		t.Errorf("Op(200).String() = %q", got)
	}
	if !OpIfICmpLt.IsJump() || OpIAdd.IsJump() {
		t.Error("IsJump misclassified")
	}
	if !OpGoto.IsTerm() || !OpAReturn.IsTerm() || OpIfEq.IsTerm() {
		t.Error("IsTerm misclassified")
	}
}

func TestParseMethodDesc(t *testing.T) {
	tests := []struct {
		desc   string
		params []string
		result string
		ok     bool
	}{
		{"()V", nil, "V", true},
		{"(I)Ljava/lang/Integer;", []string{"I"}, "Ljava/lang/Integer;", true},
		{"(IZLjava/lang/String;Ljava/util/List;)Z",
			[]string{"I", "Z", "Ljava/lang/String;", "Ljava/util/List;"}, "Z", true},
		{"", nil, "", false},
		{"I", nil, "", false},
		{"(I", nil, "", false},
		{"(Ljava/lang/String)V", nil, "", false},
		{"(D)V", nil, "", false},
		{"()", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			params, result, err := ParseMethodDesc(tt.desc)
			if (err == nil) != tt.ok {
				t.Fatalf("err = %v, want ok=%v", err, tt.ok)
			}
			if !tt.ok {
				return
			}
			if !reflect.DeepEqual(params, tt.params) || result != tt.result {
				t.Errorf("got %v %s, want %v %s", params, result, tt.params, tt.result)
			}
		})
	}
}

// buildMax builds max(a, b) : int with a conditional branch.
func buildMax(c *Class) *Method {
	m := c.AddMethod("max", "(II)I")
	second := m.NewLabel()
	m.EmitVar(OpILoad, 1)
	m.EmitVar(OpILoad, 2)
	m.EmitJump(OpIfICmpLt, second)
	m.EmitVar(OpILoad, 1)
	m.Emit(OpIReturn)
	m.Mark(second)
	m.EmitVar(OpILoad, 2)
	m.Emit(OpIReturn)
	return m
}

func TestVerify(t *testing.T) {
	c := NewClass("Prog", "catscript/runtime/ProgramBase")
	c.AddField("x", "I")
	m := buildMax(c)

	exec := c.AddMethod("execute", "()V")
	exec.EmitVar(OpALoad, 0)
	exec.EmitVar(OpALoad, 0)
	exec.EmitLdc(int32(3))
	exec.EmitLdc(int32(4))
	exec.EmitMember(OpInvokeVirtual, "Prog", "max", "(II)I")
	exec.EmitMember(OpPutField, "Prog", "x", "I")
	exec.EmitLdc(int32(7))
	exec.EmitVar(OpIStore, 3)
	exec.Emit(OpReturn)

	if err := Verify(c); err != nil {
		t.Fatal(err)
	}
	if m.MaxStack != 2 || m.MaxLocals != 3 {
		t.Errorf("max: stack=%d locals=%d, want 2 3", m.MaxStack, m.MaxLocals)
	}
	if exec.MaxStack != 4 || exec.MaxLocals != 4 {
		t.Errorf("execute: stack=%d locals=%d, want 4 4", exec.MaxStack, exec.MaxLocals)
	}
}

func TestVerifyErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(m *Method)
		want  string
	}{
		{"underflow", func(m *Method) {
			m.Emit(OpIAdd)
			m.Emit(OpReturn)
		}, "IADD needs 2 operands, stack has 0"},
		{"falls off end", func(m *Method) {
			m.Emit(OpIConst0)
			m.Emit(OpPop)
		}, "falls off the end"},
		{"unplaced label", func(m *Method) {
			m.EmitJump(OpGoto, m.NewLabel())
		}, "jump to unplaced label L0"},
		{"placed twice", func(m *Method) {
			l := m.NewLabel()
			m.Mark(l)
			m.Mark(l)
			m.Emit(OpReturn)
		}, "placed at pc 0 but records pc 1"},
		{"depth mismatch", func(m *Method) {
			join := m.NewLabel()
			m.Emit(OpIConst1)
			m.EmitJump(OpIfEq, join)
			m.Emit(OpIConst1)
			m.Mark(join)
			m.Emit(OpReturn)
		}, "stack depth"},
		{"bad ldc", func(m *Method) {
			m.EmitLdc(1.5)
			m.Emit(OpReturn)
		}, "LDC of unsupported constant float64"},
		{"bad invoke", func(m *Method) {
			m.EmitMember(OpInvokeStatic, "A", "f", "(X)V")
			m.Emit(OpReturn)
		}, "bad method descriptor"},
		{"empty", func(m *Method) {}, "empty method body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClass("Bad", "java/lang/Object")
			tt.build(c.AddMethod("m", "()V"))
			err := Verify(c)
			if err == nil {
				t.Fatal("Verify succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestUnreachableCodeIsIgnored(t *testing.T) {
	c := NewClass("Prog", "java/lang/Object")
	m := c.AddMethod("f", "()I")
	end := m.NewLabel()
	m.Emit(OpIConst1)
	m.Emit(OpIReturn)
	m.EmitJump(OpGoto, end) // unreachable
	m.Mark(end)

	if err := Verify(c); err != nil {
		t.Fatal(err)
	}
}

func TestFprint(t *testing.T) {
	c := NewClass("Prog", "catscript/runtime/ProgramBase")
	c.AddField("s", "Ljava/lang/String;")
	buildMax(c)
	exec := c.AddMethod("execute", "()V")
	exec.EmitVar(OpALoad, 0)
	exec.EmitLdc("hi\n")
	exec.EmitMember(OpPutField, "Prog", "s", "Ljava/lang/String;")
	exec.Emit(OpReturn)
	if err := Verify(c); err != nil {
		t.Fatal(err)
	}

	want := `class Prog extends catscript/runtime/ProgramBase
  field s Ljava/lang/String;

  method max(II)I [stack=2 locals=3]
       0: ILOAD 1
       1: ILOAD 2
       2: IF_ICMPLT L0
       3: ILOAD 1
       4: IRETURN
    L0:
       6: ILOAD 2
       7: IRETURN

  method execute()V [stack=2 locals=1]
       0: ALOAD 0
       1: LDC "hi\n"
       2: PUTFIELD Prog.s Ljava/lang/String;
       3: RETURN
`
	if got := Sprint(c); got != want {
		t.Errorf("Sprint:\n%s\nwant:\n%s", got, want)
	}
}

func TestClassLookup(t *testing.T) {
	c := NewClass("Prog", "java/lang/Object")
	f := c.AddField("x", "I")
	if again := c.AddField("x", "Z"); again != f || again.Desc != "I" {
		t.Error("AddField redeclared an existing field")
	}
	if c.Field("y") != nil {
		t.Error("Field(y) found a missing field")
	}
	m := c.AddMethod("f", "()V")
	if c.Method("f", "()V") != m || c.Method("f", "()I") != nil {
		t.Error("Method lookup mismatch")
	}
}
