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
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Type enumerator
const (
	IntTy byte = iota
	UintTy
	BoolTy
	StringTy
	SliceTy
	ArrayTy
	TupleTy
	AddressTy
	FixedBytesTy
	BytesTy
)

// Type is a closed description of one ABI type. Values of Type are built by
// the constructors below or parsed by NewType and never change afterwards.
// Type 是对单个 ABI 类型的封闭描述，构造之后不可变。
type Type struct {
	Elem *Type // 数组或切片的元素类型
	Size int   // 整数位宽、定长字节长度或定长数组长度
	T    byte  // 类型标签 Our own type checking

	stringKind string // 规范类型名，用于派生签名 canonical name used for signatures

	// Tuple relative fields
	TupleRawName  string   // Raw struct name defined in source code, may be empty.
	TupleElems    []*Type  // Type information of all tuple fields
	TupleRawNames []string // Raw field name of all tuple fields, may contain empty names
}

var (
	// typeRegex parses the abi sub types
	// typeRegex 解析 ABI 子类型
	typeRegex = regexp.MustCompile("^([a-zA-Z]+)(([0-9]+)(x([0-9]+))?)?$")

	// sliceSizeRegex grab the slice size
	// sliceSizeRegex 获取切片大小
	sliceSizeRegex = regexp.MustCompile("[0-9]+")
)

// Frequently used elementary types.
var (
	Uint256 = NewUint(256)
	Int256  = NewInt(256)
	Address = Type{T: AddressTy, Size: 20, stringKind: "address"}
	Bool    = Type{T: BoolTy, stringKind: "bool"}
	String  = Type{T: StringTy, stringKind: "string"}
	Bytes   = Type{T: BytesTy, stringKind: "bytes"}
	Bytes32 = NewFixedBytes(32)
)

// NewUint returns the uint<bits> type. It panics if bits is not a multiple
// of 8 in the range [8, 256].
func NewUint(bits int) Type {
	if bits <= 0 || bits > 256 || bits%8 != 0 {
		panic(fmt.Sprintf("abi: invalid uint size %d", bits))
	}
	return Type{T: UintTy, Size: bits, stringKind: "uint" + strconv.Itoa(bits)}
}

// NewInt returns the int<bits> type. It panics if bits is not a multiple
// of 8 in the range [8, 256].
func NewInt(bits int) Type {
	if bits <= 0 || bits > 256 || bits%8 != 0 {
		panic(fmt.Sprintf("abi: invalid int size %d", bits))
	}
	return Type{T: IntTy, Size: bits, stringKind: "int" + strconv.Itoa(bits)}
}

// NewFixedBytes returns the bytes<n> type, 1 <= n <= 32.
func NewFixedBytes(n int) Type {
	if n <= 0 || n > 32 {
		panic(fmt.Sprintf("abi: invalid fixed bytes size %d", n))
	}
	return Type{T: FixedBytesTy, Size: n, stringKind: "bytes" + strconv.Itoa(n)}
}

// NewArray returns the fixed size array type elem[n].
func NewArray(elem Type, n int) Type {
	if n < 0 {
		panic(fmt.Sprintf("abi: negative array size %d", n))
	}
	e := elem
	return Type{T: ArrayTy, Size: n, Elem: &e, stringKind: fmt.Sprintf("%s[%d]", elem.stringKind, n)}
}

// NewSlice returns the dynamic array type elem[].
func NewSlice(elem Type) Type {
	e := elem
	return Type{T: SliceTy, Elem: &e, stringKind: elem.stringKind + "[]"}
}

// NewTuple returns an anonymous tuple of the given component types. The
// number of components is fixed once the type is created.
func NewTuple(elems ...Type) Type {
	return newTuple(make([]string, len(elems)), elems)
}

// NewNamedTuple is like NewTuple but records a name for each component.
// Names only serve documentation and code generation.
func NewNamedTuple(names []string, elems []Type) (Type, error) {
	if len(names) != len(elems) {
		return Type{}, fmt.Errorf("abi: tuple has %d names for %d components", len(names), len(elems))
	}
	return newTuple(append([]string(nil), names...), elems), nil
}

func newTuple(names []string, elems []Type) Type {
	typ := Type{T: TupleTy, TupleRawNames: names, TupleElems: make([]*Type, len(elems))}
	kinds := make([]string, len(elems))
	for i := range elems {
		e := elems[i]
		typ.TupleElems[i] = &e
		kinds[i] = e.stringKind
	}
	typ.stringKind = "(" + strings.Join(kinds, ",") + ")"
	return typ
}

// NewType creates a new abi type given in t. Tuple components are taken from
// components; internalType is the optional solidity level type name.
// NewType 根据给定的 t 创建一个新的 ABI 类型。
func NewType(t string, internalType string, components []ArgumentMarshaling) (typ Type, err error) {
	// check that array brackets are equal if they exist
	// 检查数组括号是否存在且数量相等
	if strings.Count(t, "[") != strings.Count(t, "]") {
		return Type{}, errors.New("invalid arg type in abi")
	}
	typ.stringKind = t

	// if there are brackets, get ready to go into slice/array mode and
	// recursively create the type
	// 如果有括号，准备进入切片/数组模式并递归创建类型
	if strings.Count(t, "[") != 0 {
		// Note internalType can be empty here.
		subInternal := internalType
		if i := strings.LastIndex(internalType, "["); i != -1 {
			subInternal = subInternal[:i]
		}
		i := strings.LastIndex(t, "[")
		embeddedType, err := NewType(t[:i], subInternal, components)
		if err != nil {
			return Type{}, err
		}
		// grab the last cell and create a type from there
		sliced := t[i:]
		if !strings.HasSuffix(sliced, "]") {
			return Type{}, errors.New("invalid formatting of array type")
		}
		intz := sliceSizeRegex.FindAllString(sliced, -1)

		switch {
		case sliced == "[]":
			return NewSlice(embeddedType), nil
		case len(intz) == 1 && sliced == "["+intz[0]+"]":
			size, err := strconv.Atoi(intz[0])
			if err != nil {
				return Type{}, fmt.Errorf("abi: error parsing variable size: %v", err)
			}
			return NewArray(embeddedType, size), nil
		default:
			return Type{}, errors.New("invalid formatting of array type")
		}
	}
	// parse the type and size of the abi-type.
	// 解析 ABI 类型的类型和大小。
	parsedType := typeRegex.FindStringSubmatch(t)
	if len(parsedType) == 0 {
		return Type{}, fmt.Errorf("invalid type '%v'", t)
	}
	// varSize is the size of the variable
	var varSize int
	if len(parsedType[3]) > 0 {
		if len(parsedType[4]) > 0 {
			// fixed point types are not part of the supported set
			return Type{}, fmt.Errorf("unsupported arg type: %s", t)
		}
		varSize, err = strconv.Atoi(parsedType[2])
		if err != nil {
			return Type{}, fmt.Errorf("abi: error parsing variable size: %v", err)
		}
	} else if parsedType[1] == "uint" || parsedType[1] == "int" {
		// this should fail because it means that there's something wrong with
		// the abi type (the compiler should always format it to the size...always)
		return Type{}, fmt.Errorf("unsupported arg type: %s", t)
	}
	switch varType := parsedType[1]; varType {
	case "int", "uint":
		if varSize == 0 || varSize > 256 || varSize%8 != 0 {
			return Type{}, fmt.Errorf("unsupported arg type: %s", t)
		}
		if varType == "int" {
			return NewInt(varSize), nil
		}
		return NewUint(varSize), nil
	case "bool":
		if varSize != 0 {
			return Type{}, fmt.Errorf("unsupported arg type: %s", t)
		}
		return Bool, nil
	case "address":
		if varSize != 0 {
			return Type{}, fmt.Errorf("unsupported arg type: %s", t)
		}
		return Address, nil
	case "string":
		if varSize != 0 {
			return Type{}, fmt.Errorf("unsupported arg type: %s", t)
		}
		return String, nil
	case "bytes":
		if varSize == 0 {
			if len(parsedType[3]) > 0 {
				return Type{}, fmt.Errorf("unsupported arg type: %s", t)
			}
			return Bytes, nil
		}
		if varSize > 32 {
			return Type{}, fmt.Errorf("unsupported arg type: %s", t)
		}
		return NewFixedBytes(varSize), nil
	case "tuple":
		names := make([]string, len(components))
		elems := make([]Type, len(components))
		for idx, c := range components {
			cType, err := NewType(c.Type, c.InternalType, c.Components)
			if err != nil {
				return Type{}, err
			}
			names[idx] = c.Name
			elems[idx] = cType
		}
		typ = newTuple(names, elems)

		const structPrefix = "struct "
		// After solidity 0.5.10, a new field of abi "internalType"
		// is introduced. From that we can obtain the struct name
		// user defined in the source code.
		// 在 Solidity 0.5.10 之后，引入了新的 ABI 字段 "internalType"，
		// 从中我们可以获取用户在源代码中定义的结构体名称。
		if internalType != "" && strings.HasPrefix(internalType, structPrefix) {
			// Foo.Bar type definition is not allowed in golang,
			// convert the format to FooBar
			typ.TupleRawName = strings.ReplaceAll(internalType[len(structPrefix):], ".", "")
		}
		return typ, nil
	default:
		if strings.HasPrefix(internalType, "contract ") {
			return Address, nil
		}
		return Type{}, fmt.Errorf("unsupported arg type: %s", t)
	}
}

// String implements Stringer. It returns the canonical type name used in
// signatures, e.g. "(uint256,bytes)[2]".
// String 返回用于签名的规范类型名。
func (t Type) String() (out string) {
	return t.stringKind
}

// Equal reports whether two types describe the same ABI type. Component
// names are ignored.
func (t Type) Equal(other Type) bool {
	return t.stringKind == other.stringKind
}

// Components returns the component types of a tuple, nil for other types.
func (t Type) Components() []Type {
	if t.T != TupleTy {
		return nil
	}
	elems := make([]Type, len(t.TupleElems))
	for i, e := range t.TupleElems {
		elems[i] = *e
	}
	return elems
}

// requiresLengthPrefix returns whether the type requires any sort of length
// prefixing.
// requiresLengthPrefix 返回该类型是否需要某种长度前缀。
func (t Type) requiresLengthPrefix() bool {
	return t.T == StringTy || t.T == BytesTy || t.T == SliceTy
}

// IsDynamic reports whether the type is encoded out of place.
func (t Type) IsDynamic() bool {
	return isDynamicType(t)
}

// isDynamicType returns true if the type is dynamic.
// The following types are called “dynamic”:
// * bytes
// * string
// * T[] for any T
// * T[k] for any dynamic T and any k >= 0
// * (T1,...,Tk) if Ti is dynamic for some 1 <= i <= k
// isDynamicType 如果类型是动态的，则返回 true。
func isDynamicType(t Type) bool {
	switch t.T {
	case TupleTy:
		for _, elem := range t.TupleElems {
			if isDynamicType(*elem) {
				return true
			}
		}
		return false
	case StringTy, BytesTy, SliceTy:
		return true
	case ArrayTy:
		return isDynamicType(*t.Elem)
	case IntTy, UintTy, BoolTy, AddressTy, FixedBytesTy:
		return false
	default:
		panic(fmt.Sprintf("abi: unknown type tag %d", t.T))
	}
}

// getTypeSize returns the size that this type needs to occupy.
// We distinguish static and dynamic types. Static types are encoded in-place
// and dynamic types are encoded at a separately allocated location after the
// current block.
// So for a static variable, the size returned represents the size that the
// variable actually occupies.
// For a dynamic variable, the returned size is fixed 32 bytes, which is used
// to store the location reference for actual value storage.
// getTypeSize 返回此类型在头部区域占用的空间大小。
func getTypeSize(t Type) int {
	if t.T == ArrayTy && !isDynamicType(*t.Elem) {
		// Recursively calculate type size if it is a nested array
		if t.Elem.T == ArrayTy || t.Elem.T == TupleTy {
			return t.Size * getTypeSize(*t.Elem)
		}
		return t.Size * 32
	} else if t.T == TupleTy && !isDynamicType(t) {
		total := 0
		for _, elem := range t.TupleElems {
			total += getTypeSize(*elem)
		}
		return total
	}
	return 32
}
