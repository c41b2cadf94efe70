package bytecode

import "fmt"

// ParseMethodDesc splits a method descriptor such as
// "(ILjava/lang/String;)Z" into its parameter and result descriptors.
func ParseMethodDesc(desc string) (params []string, result string, err error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, "", fmt.Errorf("bad method descriptor %q", desc)
	}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		n, err := fieldDescLen(desc[i:])
		if err != nil {
			return nil, "", fmt.Errorf("bad method descriptor %q: %v", desc, err)
		}
		params = append(params, desc[i:i+n])
		i += n
	}
	if i >= len(desc) {
		return nil, "", fmt.Errorf("bad method descriptor %q: missing )", desc)
	}
	result = desc[i+1:]
	if result != "V" {
		if n, err := fieldDescLen(result); err != nil || n != len(result) {
			return nil, "", fmt.Errorf("bad method descriptor %q: bad result", desc)
		}
	}
	return params, result, nil
}

// fieldDescLen returns the length of the field descriptor at the start of s.
func fieldDescLen(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty descriptor")
	}
	switch s[0] {
	case 'I', 'Z':
		return 1, nil
	case 'L':
		for i := 1; i < len(s); i++ {
			if s[i] == ';' {
				return i + 1, nil
			}
		}
		return 0, fmt.Errorf("unterminated class descriptor %q", s)
	}
	return 0, fmt.Errorf("unsupported descriptor %q", s)
}

// IsPrimitiveDesc reports whether desc denotes an int or boolean value.
func IsPrimitiveDesc(desc string) bool {
	return desc == "I" || desc == "Z"
}
