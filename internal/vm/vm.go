// Package vm executes compiled CatScript classes on a managed stack
// machine.
package vm

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/you-not-fish/catscript/internal/bytecode"
	"github.com/you-not-fish/catscript/internal/rtabi"
)

// DefaultMaxDepth is the call depth limit used when Config.MaxDepth is zero.
const DefaultMaxDepth = 10000

// Config configures a Machine.
type Config struct {
	Stdout   io.Writer    // print output; os.Stdout if nil
	Logger   *slog.Logger // debug tracing; discarded if nil
	MaxSteps int64        // instruction budget; 0 means unlimited
	MaxDepth int          // call depth limit; DefaultMaxDepth if 0
}

// Machine runs one compiled class.
type Machine struct {
	class *bytecode.Class
	conf  Config
	log   *slog.Logger
	this  *Object

	methods map[string]*bytecode.Method // by MemberRef key
	arity   map[string]sig              // parsed descriptors by key

	steps int64
	depth int
}

// sig is the stack shape of a method descriptor.
type sig struct {
	params int
	result bool
}

// New verifies class and prepares a machine to run it.
func New(class *bytecode.Class, conf *Config) (*Machine, error) {
	if err := bytecode.Verify(class); err != nil {
		return nil, err
	}
	var c Config
	if conf != nil {
		c = *conf
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	log := c.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	vm := &Machine{
		class:   class,
		conf:    c,
		log:     log,
		methods: make(map[string]*bytecode.Method),
		arity:   make(map[string]sig),
	}
	for _, m := range class.Methods {
		vm.methods[bytecode.MemberRef{Owner: class.Name, Name: m.Name, Desc: m.Desc}.Key()] = m
	}

	vm.this = &Object{Class: class, Fields: make(map[string]Value)}
	for _, f := range class.Fields {
		if bytecode.IsPrimitiveDesc(f.Desc) {
			vm.this.Fields[f.Name] = int32(0)
		} else {
			vm.this.Fields[f.Name] = nil
		}
	}
	return vm, nil
}

// Steps returns the number of instructions executed so far.
func (vm *Machine) Steps() int64 { return vm.steps }

// Field returns the current value of a field of the program object.
func (vm *Machine) Field(name string) (Value, bool) {
	v, ok := vm.this.Fields[name]
	return v, ok
}

// Execute constructs the program object and runs execute()V.
func (vm *Machine) Execute() error {
	_, err := vm.entry(rtabi.Execute, rtabi.ExecuteDesc)
	return err
}

// Evaluate constructs the program object and returns the result of
// evaluate().
func (vm *Machine) Evaluate() (Value, error) {
	return vm.entry(rtabi.Evaluate, rtabi.EvaluateDesc)
}

func (vm *Machine) entry(name, desc string) (Value, error) {
	m := vm.class.Method(name, desc)
	if m == nil {
		return nil, fmt.Errorf("vm: class %s has no method %s%s", vm.class.Name, name, desc)
	}
	vm.log.Debug("run", "class", vm.class.Name, "method", name+desc)

	if init := vm.class.Method(rtabi.Init, "()V"); init != nil {
		if _, err := vm.call(init, []Value{vm.this}); err != nil {
			return nil, err
		}
	}
	v, err := vm.call(m, []Value{vm.this})
	vm.log.Debug("done", "class", vm.class.Name, "steps", vm.steps, "err", err)
	return v, err
}

// sigOf returns the parsed descriptor of ref, caching it.
func (vm *Machine) sigOf(ref bytecode.MemberRef) (sig, error) {
	key := ref.Key()
	if s, ok := vm.arity[key]; ok {
		return s, nil
	}
	params, result, err := bytecode.ParseMethodDesc(ref.Desc)
	if err != nil {
		return sig{}, err
	}
	s := sig{params: len(params), result: result != rtabi.DescVoid}
	vm.arity[key] = s
	return s, nil
}

// instanceOf reports whether the reference v is an instance of class.
func (vm *Machine) instanceOf(v Value, class string) bool {
	switch class {
	case rtabi.ClassObject:
		return v != nil
	case rtabi.ClassInteger:
		_, ok := v.(Integer)
		return ok
	case rtabi.ClassBoolean:
		_, ok := v.(bool)
		return ok
	case rtabi.ClassString:
		_, ok := v.(string)
		return ok
	case rtabi.ClassList, rtabi.ClassArrayList:
		_, ok := v.(*List)
		return ok
	case rtabi.ClassIterator:
		_, ok := v.(*Iterator)
		return ok
	case rtabi.ProgramBase, vm.class.Name:
		o, ok := v.(*Object)
		return ok && o.Class == vm.class
	}
	return false
}
