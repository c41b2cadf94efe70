// Package rtabi defines the ABI shared between the bytecode compiler and the
// VM: internal class names, type descriptors, and the host methods compiled
// code may invoke.
package rtabi

// Internal class names
const (
	ClassObject    = "java/lang/Object"
	ClassString    = "java/lang/String"
	ClassInteger   = "java/lang/Integer"
	ClassBoolean   = "java/lang/Boolean"
	ClassObjects   = "java/util/Objects"
	ClassList      = "java/util/List"
	ClassArrayList = "java/util/ArrayList"
	ClassIterator  = "java/util/Iterator"

	// ProgramBase is the superclass of every compiled program. It provides
	// the constructor and print.
	ProgramBase = "catscript/runtime/ProgramBase"

	// DefaultClassName is the class name used when none is configured.
	DefaultClassName = "CatScriptProgram"
)

// Field and value descriptors
const (
	DescInt     = "I"
	DescBoolean = "Z"
	DescVoid    = "V"
	DescString  = "L" + ClassString + ";"
	DescList    = "L" + ClassList + ";"
	DescObject  = "L" + ClassObject + ";"
	DescInteger = "L" + ClassInteger + ";"
	DescBoxBool = "L" + ClassBoolean + ";"
	DescIter    = "L" + ClassIterator + ";"
)

// MethodDesc builds a method descriptor from parameter and result
// descriptors.
func MethodDesc(result string, params ...string) string {
	d := "("
	for _, p := range params {
		d += p
	}
	return d + ")" + result
}
