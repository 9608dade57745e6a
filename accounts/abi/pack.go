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
	"fmt"
	"math/big"

	"github.com/sunyihoo/go-evmabi/common"
	"github.com/sunyihoo/go-evmabi/common/math"
)

// 字节对齐：ABI 要求所有数据对齐到 32 字节，整数与地址左填充，bytesN 右填充。
// 动态类型（string、bytes、T[]）在尾部区域编码，头部只保存偏移量。

// packBytesSlice packs the given bytes as [L, V] as the canonical representation
// bytes slice.
// packBytesSlice 将给定的字节数据打包为 [L, V] 的规范表示形式。
func packBytesSlice(bytes []byte, l int) []byte {
	len := packNum(l)
	return append(len, common.RightPadBytes(bytes, (l+31)/32*32)...)
}

// packNum packs a non-negative length or offset as a 32 byte word.
func packNum(n int) []byte {
	return math.U256Bytes(big.NewInt(int64(n)))
}

// fitsSigned reports whether x is representable as a two's complement
// integer of the given bit width.
func fitsSigned(x *big.Int, bits int) bool {
	if x.Sign() >= 0 {
		return x.BitLen() < bits
	}
	// -2^(bits-1) is the smallest value, its magnitude has bits bits.
	abs := new(big.Int).Neg(x)
	return abs.BitLen() < bits || (abs.BitLen() == bits && abs.TrailingZeroBits() == uint(bits-1))
}

// packElement packs a value of elementary type t. The value has already been
// type checked.
// packElement 根据类型 t 打包一个已通过类型检查的基础值。
func packElement(t Type, v Value) ([]byte, error) {
	switch t.T {
	case UintTy:
		word := v.num.Bytes32()
		return word[:], nil
	case IntTy:
		// U256Bytes is destructive, hand it a copy.
		return math.U256Bytes(new(big.Int).Set(v.inum)), nil
	case StringTy:
		return packBytesSlice([]byte(v.str), len(v.str)), nil
	case AddressTy:
		return common.LeftPadBytes(v.addr.Bytes(), 32), nil
	case BoolTy:
		if v.flag {
			return math.PaddedBigBytes(common.Big1, 32), nil
		}
		return math.PaddedBigBytes(common.Big0, 32), nil
	case BytesTy:
		return packBytesSlice(v.data, len(v.data)), nil
	case FixedBytesTy:
		return common.RightPadBytes(v.data, 32), nil
	default:
		return nil, fmt.Errorf("could not pack element, unknown type: %v", t.T)
	}
}

// pack encodes v as t. Dynamic containers emit their own head/tail region,
// offsets are relative to the start of that region.
func (t Type) pack(v Value) ([]byte, error) {
	if err := typeCheck(t, v); err != nil {
		return nil, err
	}
	return t.packChecked(v)
}

func (t Type) packChecked(v Value) ([]byte, error) {
	switch t.T {
	case SliceTy, ArrayTy:
		var ret []byte
		if t.requiresLengthPrefix() {
			// append length
			ret = append(ret, packNum(len(v.elems))...)
		}
		elems := make([]*Type, len(v.elems))
		for i := range elems {
			elems[i] = t.Elem
		}
		body, err := packSequence(elems, v.elems)
		if err != nil {
			return nil, err
		}
		return append(ret, body...), nil
	case TupleTy:
		// (T1,...,Tk) for k >= 0 and any types T1, …, Tk
		// enc(X) = head(X(1)) ... head(X(k)) tail(X(1)) ... tail(X(k))
		// where X = (X(1), ..., X(k)) and head and tail are defined for Ti being a static
		// type as
		//     head(X(i)) = enc(X(i)) and tail(X(i)) = "" (the empty string)
		// and as
		//     head(X(i)) = enc(len(head(X(1)) ... head(X(k)) tail(X(1)) ... tail(X(i-1))))
		//     tail(X(i)) = enc(X(i))
		// otherwise, i.e. if Ti is a dynamic type.
		return packSequence(t.TupleElems, v.elems)
	case IntTy, UintTy, BoolTy, StringTy, AddressTy, FixedBytesTy, BytesTy:
		return packElement(t, v)
	default:
		return nil, fmt.Errorf("abi: unknown type %v", t.T)
	}
}

// packSequence lays out values as one head/tail region. Static members go
// into the head in place, dynamic members leave an offset in the head and
// append their encoding to the tail in declaration order.
// packSequence 将一组值编码为一个头部/尾部区域。
func packSequence(types []*Type, values []Value) ([]byte, error) {
	// Calculate prefix occupied size.
	offset := 0
	for _, typ := range types {
		offset += getTypeSize(*typ)
	}
	var ret, tail []byte
	for i, typ := range types {
		val, err := typ.packChecked(values[i])
		if err != nil {
			return nil, err
		}
		if isDynamicType(*typ) {
			ret = append(ret, packNum(offset)...)
			tail = append(tail, val...)
			offset += len(val)
		} else {
			ret = append(ret, val...)
		}
	}
	return append(ret, tail...), nil
}

// Encode encodes v as a single argument of type t. Static values occupy their
// in-place words, dynamic values are preceded by one offset word.
// Encode 将 v 作为类型 t 的单个参数进行编码。
func Encode(t Type, v Value) ([]byte, error) {
	return Arguments{{Type: t}}.Pack(v)
}
