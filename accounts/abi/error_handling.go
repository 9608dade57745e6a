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
)

var (
	// ErrTypeMismatch is matched by every *TypeMismatchError.
	ErrTypeMismatch = errors.New("abi: type mismatch")

	// ErrMismatchedType is matched by every *MismatchedTypeError.
	ErrMismatchedType = errors.New("abi: mismatched type")

	// errBadBool is returned when a boolean value is improperly encoded.
	// errBadBool 在布尔值编码不正确时返回。
	errBadBool = errors.New("abi: improperly encoded boolean value")

	// errBadAddress is returned when an address word has non-zero high bytes.
	errBadAddress = errors.New("abi: improperly encoded address value")

	// errBadFixedBytes is returned when a bytesN word has non-zero padding.
	errBadFixedBytes = errors.New("abi: improperly encoded fixed bytes value")
)

// TypeMismatchError is returned when a value handed to the encoder does not
// have the shape of the type it is encoded for.
// TypeMismatchError 在待编码值的形状与声明类型不一致时返回。
type TypeMismatchError struct {
	Expected Type   // declared type
	Actual   Type   // inferred from the offending value
	Reason   string // what exactly disagrees
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("abi: cannot use %v as type %v as argument: %s", e.Actual, e.Expected, e.Reason)
}

// Is makes errors.Is(err, ErrTypeMismatch) hold.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// MismatchedTypeError is returned when a buffer cannot be decoded against the
// expected type, or when a decoded value cannot be reconciled with it.
// Actual is a best-effort description of what was found instead.
// MismatchedTypeError 在解码失败或解码结果与期望类型不符时返回。
type MismatchedTypeError struct {
	Expected Type
	Actual   Type
	Err      error // underlying decoding failure, may be nil
}

func (e *MismatchedTypeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("abi: mismatched type: expected %v, got %v", e.Expected, e.Actual)
	}
	return fmt.Sprintf("abi: mismatched type: expected %v, got %v: %v", e.Expected, e.Actual, e.Err)
}

func (e *MismatchedTypeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMismatchedType) hold.
func (e *MismatchedTypeError) Is(target error) bool {
	return target == ErrMismatchedType
}

// typeErr returns a formatted type mismatch error.
// typeErr 返回格式化的类型不匹配错误。
func typeErr(expected Type, got Value, format string, args ...interface{}) error {
	return &TypeMismatchError{Expected: expected, Actual: InferType(got), Reason: fmt.Sprintf(format, args...)}
}

// rawShape describes an undecodable buffer as a sequence of words.
func rawShape(data []byte) Type {
	if len(data)%32 == 0 {
		return NewArray(Bytes32, len(data)/32)
	}
	return Bytes
}

// typeCheck checks that the given value can be encoded as t. Container
// elements are checked recursively.
// typeCheck 检查给定的值是否可以按类型 t 编码，容器元素递归检查。
func typeCheck(t Type, v Value) error {
	switch t.T {
	case UintTy:
		if v.kind != UintKind {
			return typeErr(t, v, "want unsigned integer, have %s", v.kind)
		}
		if v.num.BitLen() > t.Size {
			return typeErr(t, v, "value %s overflows %d bits", v.num.Dec(), t.Size)
		}
	case IntTy:
		if v.kind != IntKind {
			return typeErr(t, v, "want signed integer, have %s", v.kind)
		}
		if !fitsSigned(v.inum, t.Size) {
			return typeErr(t, v, "value %s overflows %d bits", v.inum, t.Size)
		}
	case AddressTy:
		if v.kind != AddressKind {
			return typeErr(t, v, "want address, have %s", v.kind)
		}
	case BoolTy:
		if v.kind != BoolKind {
			return typeErr(t, v, "want bool, have %s", v.kind)
		}
	case FixedBytesTy:
		if v.kind != FixedBytesKind {
			return typeErr(t, v, "want fixed bytes, have %s", v.kind)
		}
		if len(v.data) != t.Size {
			return typeErr(t, v, "want %d bytes, have %d", t.Size, len(v.data))
		}
	case BytesTy:
		if v.kind != BytesKind {
			return typeErr(t, v, "want bytes, have %s", v.kind)
		}
	case StringTy:
		if v.kind != StringKind {
			return typeErr(t, v, "want string, have %s", v.kind)
		}
	case ArrayTy, SliceTy:
		if v.kind != ArrayKind {
			return typeErr(t, v, "want array, have %s", v.kind)
		}
		if t.T == ArrayTy && len(v.elems) != t.Size {
			return typeErr(t, v, "want %d elements, have %d", t.Size, len(v.elems))
		}
		for _, e := range v.elems {
			if err := typeCheck(*t.Elem, e); err != nil {
				return err
			}
		}
	case TupleTy:
		if v.kind != TupleKind {
			return typeErr(t, v, "want tuple, have %s", v.kind)
		}
		if len(v.elems) != len(t.TupleElems) {
			return typeErr(t, v, "want %d components, have %d", len(t.TupleElems), len(v.elems))
		}
		for i, e := range v.elems {
			if err := typeCheck(*t.TupleElems[i], e); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("abi: unknown type %v", t.T)
	}
	return nil
}

// Check reconciles a decoded value with the requested type. It returns a
// *MismatchedTypeError carrying both schemas when they disagree.
// Check 校验解码所得的值是否符合请求的类型。
func Check(t Type, v Value) error {
	err := typeCheck(t, v)
	if err == nil {
		return nil
	}
	var tm *TypeMismatchError
	if errors.As(err, &tm) {
		err = errors.New(tm.Reason)
	}
	return &MismatchedTypeError{Expected: t, Actual: InferType(v), Err: err}
}
