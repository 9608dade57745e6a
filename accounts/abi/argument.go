// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package abi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Argument holds the name of the argument and the corresponding type.
// Types are used when packing and testing arguments.
// Argument 结构体保存参数的名称和对应的类型。
type Argument struct {
	Name string
	Type Type
}

// Arguments is an ordered parameter list, encoded as one tuple.
type Arguments []Argument

// ArgumentMarshaling is the JSON form of an argument in a Solidity ABI.
type ArgumentMarshaling struct {
	Name         string
	Type         string
	InternalType string
	Components   []ArgumentMarshaling
	Indexed      bool
}

// UnmarshalJSON implements json.Unmarshaler interface.
// UnmarshalJSON 方法实现了 json.Unmarshaler 接口。
func (argument *Argument) UnmarshalJSON(data []byte) error {
	var arg ArgumentMarshaling
	err := json.Unmarshal(data, &arg)
	if err != nil {
		return fmt.Errorf("argument json err: %v", err)
	}
	argument.Type, err = NewType(arg.Type, arg.InternalType, arg.Components)
	if err != nil {
		return err
	}
	argument.Name = arg.Name
	return nil
}

// NewArguments builds an unnamed argument list from types.
func NewArguments(types ...Type) Arguments {
	args := make(Arguments, len(types))
	for i, t := range types {
		args[i] = Argument{Type: t}
	}
	return args
}

// Types returns the argument types in order.
func (arguments Arguments) Types() []Type {
	types := make([]Type, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type
	}
	return types
}

// TupleType returns the argument list as one tuple type.
func (arguments Arguments) TupleType() Type {
	names := make([]string, len(arguments))
	for i, arg := range arguments {
		names[i] = arg.Name
	}
	return newTuple(names, arguments.Types())
}

// canonical returns the comma separated canonical type list.
func (arguments Arguments) canonical() string {
	kinds := make([]string, len(arguments))
	for i, arg := range arguments {
		kinds[i] = arg.Type.String()
	}
	return strings.Join(kinds, ",")
}

// isLoneDynamicTuple reports whether the list is exactly one dynamic tuple,
// the case in which two encodings are in circulation.
func (arguments Arguments) isLoneDynamicTuple() bool {
	return len(arguments) == 1 && arguments[0].Type.T == TupleTy && isDynamicType(arguments[0].Type)
}

// Pack performs the operation values -> ABI bytes.
// Pack 方法将值打包为 ABI 编码的数据。
func (arguments Arguments) Pack(values ...Value) ([]byte, error) {
	// Make sure arguments match up and pack them
	if len(values) != len(arguments) {
		return nil, &TypeMismatchError{
			Expected: arguments.TupleType(),
			Actual:   InferType(TupleValue(values...)),
			Reason:   fmt.Sprintf("argument count mismatch: got %d for %d", len(values), len(arguments)),
		}
	}
	for i, arg := range arguments {
		if err := typeCheck(arg.Type, values[i]); err != nil {
			return nil, err
		}
	}
	types := make([]*Type, len(arguments))
	for i := range arguments {
		types[i] = &arguments[i].Type
	}
	return packSequence(types, values)
}

// Unpack performs the operation ABI bytes -> values. Failures are reported as
// *MismatchedTypeError.
//
// A list made of a single dynamic tuple is ambiguous: producers emit either
// the whole tuple behind one offset word, as Solidity does, or the
// components directly as the top level head/tail region. A reading that
// re-encodes to exactly the input is kept, the wrapped one first since both
// can for empty dynamic fields. Otherwise any successful reading wins, again
// wrapped before direct.
// Unpack 方法将 ABI 编码的数据解包为值列表。
func (arguments Arguments) Unpack(data []byte) ([]Value, error) {
	if len(data) == 0 && getTypeSize(arguments.TupleType()) > 0 {
		return nil, arguments.mismatch(data, errors.New("abi: attempting to unmarshal an empty string while arguments are expected"))
	}
	if !arguments.isLoneDynamicTuple() {
		values, err := arguments.UnpackValues(data)
		if err != nil {
			return nil, arguments.mismatch(data, err)
		}
		return values, nil
	}
	typ := arguments[0].Type

	wrapped, wrappedErr := arguments.UnpackValues(data)
	if wrappedErr == nil {
		if enc, err := arguments.Pack(wrapped...); err == nil && bytes.Equal(enc, data) {
			return wrapped, nil
		}
	}
	direct, directErr := forTupleUnpack(typ, data)
	if directErr == nil {
		if enc, err := typ.packChecked(direct); err == nil && bytes.Equal(enc, data) {
			return []Value{direct}, nil
		}
	}
	if wrappedErr == nil {
		return wrapped, nil
	}
	if directErr == nil {
		return []Value{direct}, nil
	}
	return nil, arguments.mismatch(data, fmt.Errorf("direct: %v, wrapped: %w", directErr, wrappedErr))
}

func (arguments Arguments) mismatch(data []byte, err error) error {
	expected := arguments.TupleType()
	if len(arguments) == 1 {
		expected = arguments[0].Type
	}
	return &MismatchedTypeError{Expected: expected, Actual: rawShape(data), Err: err}
}

// UnpackValues decodes data as a plain head/tail region, one value per
// argument, without the lone tuple fallback.
// UnpackValues 方法根据 ABI 规范解包数据，不做单一元组的回退处理。
func (arguments Arguments) UnpackValues(data []byte) ([]Value, error) {
	retval := make([]Value, 0, len(arguments))
	offset := 0
	for _, arg := range arguments {
		v, err := toValue(offset, arg.Type, data)
		if err != nil {
			return nil, err
		}
		// Static arrays and tuples are coded inline and take more than one word.
		offset += getTypeSize(arg.Type)
		retval = append(retval, v)
	}
	return retval, nil
}

// UnpackIntoMap performs the operation ABI bytes -> mapping of argument name
// to value.
// UnpackIntoMap 方法将数据解包为参数名到值的映射。
func (arguments Arguments) UnpackIntoMap(v map[string]Value, data []byte) error {
	if v == nil {
		return errors.New("abi: cannot unpack into a nil map")
	}
	values, err := arguments.Unpack(data)
	if err != nil {
		return err
	}
	for i, arg := range arguments {
		v[arg.Name] = values[i]
	}
	return nil
}

// ToCamelCase converts an under-score string to a camel-case string.
// ToCamelCase 方法将下划线分隔的字符串转换为驼峰命名法的字符串。
func ToCamelCase(input string) string {
	parts := strings.Split(input, "_")
	for i, s := range parts {
		if len(s) > 0 {
			parts[i] = strings.ToUpper(s[:1]) + s[1:]
		}
	}
	return strings.Join(parts, "")
}
