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
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-evmabi/common"
	"github.com/sunyihoo/go-evmabi/common/hexutil"
)

// Kind is the kind of a Value. It mirrors the type tag of the schema the
// value is encoded for.
type Kind int

const (
	UintKind Kind = iota
	IntKind
	AddressKind
	BoolKind
	FixedBytesKind
	BytesKind
	StringKind
	ArrayKind
	TupleKind
)

var kindStrings = []string{
	"Uint",
	"Int",
	"Address",
	"Bool",
	"FixedBytes",
	"Bytes",
	"String",
	"Array",
	"Tuple",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindStrings) {
		return kindStrings[k]
	}
	return "<unknown abi.Kind>"
}

// Value holds one concrete ABI value. The zero Value is the uint 0.
// Values are immutable: constructors copy their inputs and accessors return
// copies of mutable data.
// Value 保存一个具体的 ABI 值，构造后不可变。
type Value struct {
	kind  Kind
	num   uint256.Int // UintKind
	inum  *big.Int    // IntKind
	addr  common.Address
	flag  bool
	data  []byte // FixedBytesKind, BytesKind
	str   string
	elems []Value // ArrayKind, TupleKind
}

// UintValue returns a Value for an unsigned integer. A nil x is zero.
func UintValue(x *uint256.Int) Value {
	v := Value{kind: UintKind}
	if x != nil {
		v.num.Set(x)
	}
	return v
}

// Uint64Value returns a Value for an unsigned integer.
func Uint64Value(x uint64) Value {
	v := Value{kind: UintKind}
	v.num.SetUint64(x)
	return v
}

// IntValue returns a Value for a signed integer. A nil x is zero.
func IntValue(x *big.Int) Value {
	v := Value{kind: IntKind, inum: new(big.Int)}
	if x != nil {
		v.inum.Set(x)
	}
	return v
}

// AddressValue returns a Value for a 20 byte address.
func AddressValue(a common.Address) Value {
	return Value{kind: AddressKind, addr: a}
}

// BoolValue returns a Value for a bool.
func BoolValue(b bool) Value {
	return Value{kind: BoolKind, flag: b}
}

// FixedBytesValue returns a Value for a bytesN, where N is len(b).
func FixedBytesValue(b []byte) Value {
	return Value{kind: FixedBytesKind, data: common.CopyBytes(b)}
}

// BytesValue returns a Value for dynamic bytes.
func BytesValue(b []byte) Value {
	return Value{kind: BytesKind, data: common.CopyBytes(b)}
}

// StringValue returns a Value for a string.
func StringValue(s string) Value {
	return Value{kind: StringKind, str: s}
}

// ArrayValue returns a Value for an array, fixed or dynamic.
func ArrayValue(elems ...Value) Value {
	return Value{kind: ArrayKind, elems: append([]Value(nil), elems...)}
}

// TupleValue returns a Value for a tuple.
func TupleValue(elems ...Value) Value {
	return Value{kind: TupleKind, elems: append([]Value(nil), elems...)}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// Uint returns the value of a UintKind Value. It panics for other kinds.
func (v Value) Uint() *uint256.Int {
	v.must(UintKind)
	return new(uint256.Int).Set(&v.num)
}

// Int returns the value of an IntKind Value. It panics for other kinds.
func (v Value) Int() *big.Int {
	v.must(IntKind)
	return new(big.Int).Set(v.inum)
}

// Address returns the value of an AddressKind Value. It panics for other kinds.
func (v Value) Address() common.Address {
	v.must(AddressKind)
	return v.addr
}

// Bool returns the value of a BoolKind Value. It panics for other kinds.
func (v Value) Bool() bool {
	v.must(BoolKind)
	return v.flag
}

// Bytes returns the content of a BytesKind or FixedBytesKind Value. It
// panics for other kinds.
func (v Value) Bytes() []byte {
	if v.kind != BytesKind && v.kind != FixedBytesKind {
		panic(fmt.Sprintf("abi: Value kind is %s, not Bytes", v.kind))
	}
	return common.CopyBytes(v.data)
}

// Text returns the content of a StringKind Value. It panics for other kinds.
func (v Value) Text() string {
	v.must(StringKind)
	return v.str
}

// Len returns the number of elements of an ArrayKind or TupleKind Value and
// the byte length of a BytesKind or FixedBytesKind Value.
func (v Value) Len() int {
	switch v.kind {
	case ArrayKind, TupleKind:
		return len(v.elems)
	case BytesKind, FixedBytesKind:
		return len(v.data)
	case StringKind:
		return len(v.str)
	default:
		panic(fmt.Sprintf("abi: Len of %s Value", v.kind))
	}
}

// Index returns the i'th element of an ArrayKind or TupleKind Value.
func (v Value) Index(i int) Value {
	if v.kind != ArrayKind && v.kind != TupleKind {
		panic(fmt.Sprintf("abi: Index of %s Value", v.kind))
	}
	return v.elems[i]
}

// Elems returns the elements of an ArrayKind or TupleKind Value.
func (v Value) Elems() []Value {
	if v.kind != ArrayKind && v.kind != TupleKind {
		panic(fmt.Sprintf("abi: Elems of %s Value", v.kind))
	}
	return append([]Value(nil), v.elems...)
}

func (v Value) must(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("abi: Value kind is %s, not %s", v.kind, k))
	}
}

// Equal reports whether v and w hold the same kind and content.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case UintKind:
		return v.num.Eq(&w.num)
	case IntKind:
		return v.inum.Cmp(w.inum) == 0
	case AddressKind:
		return v.addr == w.addr
	case BoolKind:
		return v.flag == w.flag
	case FixedBytesKind, BytesKind:
		return bytes.Equal(v.data, w.data)
	case StringKind:
		return v.str == w.str
	case ArrayKind, TupleKind:
		if len(v.elems) != len(w.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(w.elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders the value as text. Integers are decimal, byte sequences are
// 0x-prefixed hex, strings are quoted, arrays use brackets and tuples use
// parentheses.
func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.kind {
	case UintKind:
		b.WriteString(v.num.Dec())
	case IntKind:
		b.WriteString(v.inum.String())
	case AddressKind:
		b.WriteString(v.addr.Hex())
	case BoolKind:
		b.WriteString(strconv.FormatBool(v.flag))
	case FixedBytesKind, BytesKind:
		b.WriteString(hexutil.Encode(v.data))
	case StringKind:
		b.WriteString(strconv.Quote(v.str))
	case ArrayKind, TupleKind:
		open, closing := "[", "]"
		if v.kind == TupleKind {
			open, closing = "(", ")"
		}
		b.WriteString(open)
		for i, e := range v.elems {
			if i > 0 {
				b.WriteString(", ")
			}
			e.write(b)
		}
		b.WriteString(closing)
	}
}

// InferType returns a best-effort schema for v. Integers are reported at
// their widest size, arrays as dynamic arrays typed after their first
// element. It is meant for diagnostics.
// InferType 根据值推断一个尽力而为的类型，仅用于诊断。
func InferType(v Value) Type {
	switch v.kind {
	case UintKind:
		return Uint256
	case IntKind:
		return Int256
	case AddressKind:
		return Address
	case BoolKind:
		return Bool
	case FixedBytesKind:
		if n := len(v.data); n > 0 && n <= 32 {
			return NewFixedBytes(n)
		}
		return Type{T: FixedBytesTy, Size: len(v.data), stringKind: "bytes" + strconv.Itoa(len(v.data))}
	case BytesKind:
		return Bytes
	case StringKind:
		return String
	case ArrayKind:
		if len(v.elems) == 0 {
			return NewSlice(NewTuple())
		}
		return NewSlice(InferType(v.elems[0]))
	case TupleKind:
		elems := make([]Type, len(v.elems))
		for i, e := range v.elems {
			elems[i] = InferType(e)
		}
		return NewTuple(elems...)
	default:
		return NewTuple()
	}
}

// Zero returns the zero value of t. Arrays get their declared number of
// zero elements, dynamic arrays are empty.
func Zero(t Type) Value {
	switch t.T {
	case UintTy:
		return Uint64Value(0)
	case IntTy:
		return IntValue(nil)
	case AddressTy:
		return AddressValue(common.Address{})
	case BoolTy:
		return BoolValue(false)
	case FixedBytesTy:
		return FixedBytesValue(make([]byte, t.Size))
	case BytesTy:
		return BytesValue(nil)
	case StringTy:
		return StringValue("")
	case ArrayTy:
		elems := make([]Value, t.Size)
		for i := range elems {
			elems[i] = Zero(*t.Elem)
		}
		return Value{kind: ArrayKind, elems: elems}
	case SliceTy:
		return ArrayValue()
	case TupleTy:
		elems := make([]Value, len(t.TupleElems))
		for i, e := range t.TupleElems {
			elems[i] = Zero(*e)
		}
		return Value{kind: TupleKind, elems: elems}
	default:
		panic(fmt.Sprintf("abi: unknown type tag %d", t.T))
	}
}
