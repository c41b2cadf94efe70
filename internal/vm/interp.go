package vm

import (
	"fmt"

	"github.com/you-not-fish/catscript/internal/bytecode"
	"github.com/you-not-fish/catscript/internal/rtabi"
)

// frame is the activation of one method.
type frame struct {
	m      *bytecode.Method
	locals []Value
	stack  []Value
	pc     int // index of the executing instruction
}

func (f *frame) push(v Value) { f.stack = append(f.stack, v) }

func (f *frame) pop() Value {
	v := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return v
}

// popN pops n values, returning them in push order.
func (f *frame) popN(n int) []Value {
	args := make([]Value, n)
	copy(args, f.stack[len(f.stack)-n:])
	f.stack = f.stack[:len(f.stack)-n]
	return args
}

// errorf builds an Error at the executing instruction.
func (f *frame) errorf(format string, args ...interface{}) *Error {
	return &Error{
		Method: f.m.Name + f.m.Desc,
		PC:     f.pc,
		Op:     f.m.Code[f.pc].Op,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// popInt pops a primitive.
func (f *frame) popInt() (int32, error) {
	v := f.pop()
	i, ok := v.(int32)
	if !ok {
		return 0, f.errorf("expected int operand, found %s", className(v))
	}
	return i, nil
}

// call runs method m with args, where args[0] is the receiver.
func (vm *Machine) call(m *bytecode.Method, args []Value) (Value, error) {
	if vm.depth >= vm.conf.MaxDepth {
		return nil, fmt.Errorf("vm: stack overflow in %s%s (depth %d)", m.Name, m.Desc, vm.depth)
	}
	vm.depth++
	defer func() { vm.depth-- }()

	locals := make([]Value, max(m.MaxLocals, len(args)))
	copy(locals, args)
	f := &frame{
		m:      m,
		locals: locals,
		stack:  make([]Value, 0, m.MaxStack),
	}
	return vm.run(f)
}

// run interprets f until it returns.
func (vm *Machine) run(f *frame) (Value, error) {
	code := f.m.Code
	for {
		if f.pc >= len(code) {
			return nil, fmt.Errorf("vm: %s%s: control fell off the end", f.m.Name, f.m.Desc)
		}
		inst := code[f.pc]
		vm.steps++
		if vm.conf.MaxSteps > 0 && vm.steps > vm.conf.MaxSteps {
			return nil, f.errorf("step limit of %d exceeded", vm.conf.MaxSteps)
		}

		next := f.pc + 1
		switch inst.Op {
		case bytecode.OpLabel:

		case bytecode.OpAConstNull:
			f.push(nil)
		case bytecode.OpIConst0:
			f.push(int32(0))
		case bytecode.OpIConst1:
			f.push(int32(1))
		case bytecode.OpLdc:
			f.push(inst.Aux)

		case bytecode.OpILoad, bytecode.OpALoad:
			f.push(f.locals[inst.AuxInt])
		case bytecode.OpIStore, bytecode.OpAStore:
			f.locals[inst.AuxInt] = f.pop()

		case bytecode.OpGetField:
			obj, err := vm.object(f, f.pop())
			if err != nil {
				return nil, err
			}
			f.push(obj.Fields[inst.Member().Name])
		case bytecode.OpPutField:
			v := f.pop()
			obj, err := vm.object(f, f.pop())
			if err != nil {
				return nil, err
			}
			obj.Fields[inst.Member().Name] = v

		case bytecode.OpIAdd, bytecode.OpISub, bytecode.OpIMul, bytecode.OpIDiv, bytecode.OpIXor:
			y, err := f.popInt()
			if err != nil {
				return nil, err
			}
			x, err := f.popInt()
			if err != nil {
				return nil, err
			}
			switch inst.Op {
			case bytecode.OpIAdd:
				f.push(x + y)
			case bytecode.OpISub:
				f.push(x - y)
			case bytecode.OpIMul:
				f.push(x * y)
			case bytecode.OpIXor:
				f.push(x ^ y)
			default:
				if y == 0 {
					return nil, f.errorf("/ by zero")
				}
				f.push(x / y)
			}
		case bytecode.OpINeg:
			x, err := f.popInt()
			if err != nil {
				return nil, err
			}
			f.push(-x)

		case bytecode.OpDup:
			v := f.pop()
			f.push(v)
			f.push(v)
		case bytecode.OpPop:
			f.pop()

		case bytecode.OpNew:
			class := inst.Aux.(string)
			if class != rtabi.ClassArrayList {
				return nil, f.errorf("cannot instantiate %s", class)
			}
			f.push(&List{})
		case bytecode.OpCheckCast:
			v := f.pop()
			class := inst.Aux.(string)
			if v != nil && !vm.instanceOf(v, class) {
				return nil, f.errorf("class cast: %s cannot be cast to %s", className(v), class)
			}
			f.push(v)

		case bytecode.OpInvokeStatic, bytecode.OpInvokeVirtual, bytecode.OpInvokeSpecial, bytecode.OpInvokeInterface:
			if err := vm.invoke(f, inst); err != nil {
				return nil, err
			}

		case bytecode.OpGoto:
			next = inst.Label().PC
		case bytecode.OpIfEq, bytecode.OpIfNe:
			x, err := f.popInt()
			if err != nil {
				return nil, err
			}
			if (x == 0) == (inst.Op == bytecode.OpIfEq) {
				next = inst.Label().PC
			}
		case bytecode.OpIfICmpEq, bytecode.OpIfICmpNe, bytecode.OpIfICmpLt,
			bytecode.OpIfICmpLe, bytecode.OpIfICmpGt, bytecode.OpIfICmpGe:
			y, err := f.popInt()
			if err != nil {
				return nil, err
			}
			x, err := f.popInt()
			if err != nil {
				return nil, err
			}
			if compare(inst.Op, x, y) {
				next = inst.Label().PC
			}

		case bytecode.OpReturn:
			return nil, nil
		case bytecode.OpIReturn, bytecode.OpAReturn:
			return f.pop(), nil

		default:
			return nil, f.errorf("unimplemented opcode")
		}
		f.pc = next
	}
}

func compare(op bytecode.Op, x, y int32) bool {
	switch op {
	case bytecode.OpIfICmpEq:
		return x == y
	case bytecode.OpIfICmpNe:
		return x != y
	case bytecode.OpIfICmpLt:
		return x < y
	case bytecode.OpIfICmpLe:
		return x <= y
	case bytecode.OpIfICmpGt:
		return x > y
	}
	return x >= y
}

// object checks that v is the program object.
func (vm *Machine) object(f *frame, v Value) (*Object, error) {
	obj, ok := v.(*Object)
	if !ok {
		return nil, f.errorf("field access on %s", className(v))
	}
	return obj, nil
}

// invoke pops the receiver and arguments of a call, runs the method and
// pushes its result, if any. Methods of the compiled class run as new
// frames; everything else is a host method.
func (vm *Machine) invoke(f *frame, inst bytecode.Inst) error {
	ref := inst.Member()
	s, err := vm.sigOf(ref)
	if err != nil {
		return f.errorf("%v", err)
	}
	n := s.params
	static := inst.Op == bytecode.OpInvokeStatic
	if !static {
		n++
	}
	args := f.popN(n)

	if !static {
		recv := args[0]
		if recv == nil {
			return f.errorf("null pointer: %s.%s on null", ref.Owner, ref.Name)
		}
		if !vm.instanceOf(recv, ref.Owner) {
			return f.errorf("class cast: %s is not a %s", className(recv), ref.Owner)
		}
	}

	var result Value
	if m, ok := vm.methods[ref.Key()]; ok {
		result, err = vm.call(m, args)
		if err != nil {
			return err
		}
	} else {
		h, ok := hosts[ref.Key()]
		if !ok {
			return f.errorf("no such method %s", ref)
		}
		result, err = h(vm, args)
		if err != nil {
			if _, isVM := err.(*Error); !isVM {
				err = f.errorf("%v", err)
			}
			return err
		}
	}
	if s.result {
		f.push(result)
	}
	return nil
}
