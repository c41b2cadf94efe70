package vm

import (
	"fmt"

	"github.com/you-not-fish/catscript/internal/rtabi"
)

// hostFunc implements a host method. For instance methods args[0] is the
// receiver, which is never nil.
type hostFunc func(vm *Machine, args []Value) (Value, error)

var hosts = map[string]hostFunc{
	rtabi.ProgramInit.Key(): func(*Machine, []Value) (Value, error) {
		return nil, nil
	},
	rtabi.ProgramPrint.Key(): func(vm *Machine, args []Value) (Value, error) {
		_, err := fmt.Fprintln(vm.conf.Stdout, Format(args[1]))
		return nil, err
	},

	rtabi.IntegerValueOf.Key(): func(_ *Machine, args []Value) (Value, error) {
		return Integer(args[0].(int32)), nil
	},
	rtabi.IntValue.Key(): func(_ *Machine, args []Value) (Value, error) {
		return int32(args[0].(Integer)), nil
	},
	rtabi.BooleanValueOf.Key(): func(_ *Machine, args []Value) (Value, error) {
		return args[0].(int32) != 0, nil
	},
	rtabi.BooleanValue.Key(): func(_ *Machine, args []Value) (Value, error) {
		if args[0].(bool) {
			return int32(1), nil
		}
		return int32(0), nil
	},

	rtabi.StringValueOf.Key(): func(_ *Machine, args []Value) (Value, error) {
		return Format(args[0]), nil
	},
	rtabi.StringConcat.Key(): func(_ *Machine, args []Value) (Value, error) {
		s, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("null pointer: concat argument")
		}
		return args[0].(string) + s, nil
	},

	rtabi.ObjectsEquals.Key(): func(_ *Machine, args []Value) (Value, error) {
		if Equals(args[0], args[1]) {
			return int32(1), nil
		}
		return int32(0), nil
	},

	rtabi.ArrayListInit.Key(): func(*Machine, []Value) (Value, error) {
		return nil, nil
	},
	rtabi.ArrayListAdd.Key(): func(_ *Machine, args []Value) (Value, error) {
		l := args[0].(*List)
		l.Elems = append(l.Elems, args[1])
		return int32(1), nil
	},
	rtabi.ListIterator.Key(): func(_ *Machine, args []Value) (Value, error) {
		return &Iterator{list: args[0].(*List)}, nil
	},
	rtabi.IterHasNext.Key(): func(_ *Machine, args []Value) (Value, error) {
		it := args[0].(*Iterator)
		if it.next < len(it.list.Elems) {
			return int32(1), nil
		}
		return int32(0), nil
	},
	rtabi.IterNext.Key(): func(_ *Machine, args []Value) (Value, error) {
		it := args[0].(*Iterator)
		if it.next >= len(it.list.Elems) {
			return nil, fmt.Errorf("no such element")
		}
		v := it.list.Elems[it.next]
		it.next++
		return v, nil
	},
}
