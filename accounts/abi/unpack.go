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

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-evmabi/common"
	"github.com/sunyihoo/go-evmabi/common/math"
)

var (
	// MaxUint256 is the maximum value that can be represented by a uint256.
	// MaxUint256 是 uint256 可以表示的最大值。
	MaxUint256 = new(uint256.Int).SetAllOne()
	// MaxInt256 is the maximum value that can be represented by a int256.
	// MaxInt256 是 int256 可以表示的最大值。
	MaxInt256 = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 255), common.Big1)
)

// readInteger reads a 32 byte word as an integer of the given type. Words
// that are not the canonical extension of a value of that width are
// rejected.
// readInteger 按类型读取整数，拒绝非规范扩展的字。
func readInteger(typ Type, word []byte) (Value, error) {
	if typ.T == UintTy {
		var x uint256.Int
		x.SetBytes32(word)
		if x.BitLen() > typ.Size {
			return Value{}, fmt.Errorf("abi: improperly encoded uint%d value", typ.Size)
		}
		return UintValue(&x), nil
	}
	// big.SetBytes can't tell if a number is negative or positive in itself.
	// On EVM, if the returned number > max int256, it is negative.
	ret := math.S256(new(big.Int).SetBytes(word))
	if !fitsSigned(ret, typ.Size) {
		return Value{}, fmt.Errorf("abi: improperly encoded int%d value", typ.Size)
	}
	return Value{kind: IntKind, inum: ret}, nil
}

// readBool reads a bool.
// readBool 读取布尔值。
func readBool(word []byte) (Value, error) {
	for _, b := range word[:31] {
		if b != 0 {
			return Value{}, errBadBool
		}
	}
	switch word[31] {
	case 0:
		return BoolValue(false), nil
	case 1:
		return BoolValue(true), nil
	default:
		return Value{}, errBadBool
	}
}

// readAddress reads an address, the 12 leading bytes must be zero.
func readAddress(word []byte) (Value, error) {
	for _, b := range word[:12] {
		if b != 0 {
			return Value{}, errBadAddress
		}
	}
	return AddressValue(common.BytesToAddress(word[12:])), nil
}

// readFixedBytes reads a bytesN, the right padding must be zero.
func readFixedBytes(t Type, word []byte) (Value, error) {
	for _, b := range word[t.Size:] {
		if b != 0 {
			return Value{}, errBadFixedBytes
		}
	}
	return FixedBytesValue(word[:t.Size]), nil
}

// maxEmptyElems caps the declared length of a slice of zero sized elements,
// e.g. ()[] or uint256[0][].
const maxEmptyElems = 1 << 16

// forEachUnpack iteratively unpack elements.
// forEachUnpack 迭代解包元素。
func forEachUnpack(t Type, output []byte, start, size int) (Value, error) {
	if size < 0 {
		return Value{}, fmt.Errorf("cannot marshal input to array, size is negative (%d)", size)
	}
	// Arrays have packed elements, resulting in longer unpack steps.
	// Slices have just 32 bytes per element (pointing to the contents).
	// 数组具有打包的元素，切片每个元素只有 32 字节（指向内容）。
	elemSize := getTypeSize(*t.Elem)
	if elemSize > 0 && size > (len(output)-start)/elemSize {
		return Value{}, fmt.Errorf("abi: cannot marshal into array: %d elements of %d bytes would go over slice boundary (len=%d)", size, elemSize, len(output)-start)
	}
	// Zero sized elements take no input, so only the count limits them.
	// 零大小的元素不占用输入，只能靠数量上限约束。
	if elemSize == 0 && size > maxEmptyElems {
		return Value{}, fmt.Errorf("abi: cannot marshal into array: %d empty elements exceed the limit of %d", size, maxEmptyElems)
	}
	elems := make([]Value, size)
	for i, j := start, 0; j < size; i, j = i+elemSize, j+1 {
		elem, err := toValue(i, *t.Elem, output)
		if err != nil {
			return Value{}, err
		}
		elems[j] = elem
	}
	return Value{kind: ArrayKind, elems: elems}, nil
}

// forTupleUnpack decodes the components of a tuple whose head region starts
// at output[0]. Static arrays and static tuples are coded inline, e.g.
// [2][3]uint256 takes six words, so every component advances the head by
// its full static size.
func forTupleUnpack(t Type, output []byte) (Value, error) {
	elems := make([]Value, len(t.TupleElems))
	offset := 0
	for index, elem := range t.TupleElems {
		v, err := toValue(offset, *elem, output)
		if err != nil {
			return Value{}, err
		}
		elems[index] = v
		offset += getTypeSize(*elem)
	}
	return Value{kind: TupleKind, elems: elems}, nil
}

// toValue parses the output bytes at index and recursively builds the value
// of type t in accordance with the ABI spec.
// toValue 解析 index 处的字节并按照 ABI 规范递归构建类型 t 的值。
func toValue(index int, t Type, output []byte) (Value, error) {
	if getTypeSize(t) == 0 {
		// empty static tuples and zero length arrays occupy no words
		return Zero(t), nil
	}
	if index < 0 || index+32 > len(output) {
		return Value{}, fmt.Errorf("abi: cannot marshal in to go type: length insufficient %d require %d", len(output), index+32)
	}

	var (
		returnOutput  []byte
		begin, length int
		err           error
	)

	// if we require a length prefix, find the beginning word and size returned.
	// 如果我们需要长度前缀，找到返回的起始单词和大小。
	if t.requiresLengthPrefix() {
		begin, length, err = lengthPrefixPointsTo(index, output, t.T != SliceTy)
		if err != nil {
			return Value{}, err
		}
	} else {
		returnOutput = output[index : index+32]
	}

	switch t.T {
	case TupleTy:
		if isDynamicType(t) {
			begin, err := tuplePointsTo(index, output)
			if err != nil {
				return Value{}, err
			}
			return forTupleUnpack(t, output[begin:])
		}
		return forTupleUnpack(t, output[index:])
	case SliceTy:
		return forEachUnpack(t, output[begin:], 0, length)
	case ArrayTy:
		if isDynamicType(*t.Elem) {
			begin, err := tuplePointsTo(index, output)
			if err != nil {
				return Value{}, err
			}
			return forEachUnpack(t, output[begin:], 0, t.Size)
		}
		return forEachUnpack(t, output[index:], 0, t.Size)
	case StringTy: // variable arrays are written at the end of the return bytes
		return StringValue(string(output[begin : begin+length])), nil
	case IntTy, UintTy:
		return readInteger(t, returnOutput)
	case BoolTy:
		return readBool(returnOutput)
	case AddressTy:
		return readAddress(returnOutput)
	case BytesTy:
		return BytesValue(output[begin : begin+length]), nil
	case FixedBytesTy:
		return readFixedBytes(t, returnOutput)
	default:
		return Value{}, fmt.Errorf("abi: unknown type %v", t.T)
	}
}

// lengthPrefixPointsTo follows the offset word at index to a length prefix
// and returns where the payload starts and the length it declares. For bytes
// and string the length counts bytes and must fit in output; for slices it
// counts elements, which forEachUnpack bounds by their size.
// lengthPrefixPointsTo 读取偏移量处的长度前缀，返回内容起点和声明的长度。
func lengthPrefixPointsTo(index int, output []byte, byteLength bool) (start int, length int, err error) {
	bigOffsetEnd := new(big.Int).SetBytes(output[index : index+32])
	bigOffsetEnd.Add(bigOffsetEnd, common.Big32)
	outputLength := big.NewInt(int64(len(output)))

	if bigOffsetEnd.Cmp(outputLength) > 0 {
		return 0, 0, fmt.Errorf("abi: cannot marshal in to go slice: offset %v would go over slice boundary (len=%v)", bigOffsetEnd, outputLength)
	}
	offsetEnd := int(bigOffsetEnd.Uint64())
	lengthBig := new(big.Int).SetBytes(output[offsetEnd-32 : offsetEnd])

	totalSize := new(big.Int).Add(bigOffsetEnd, lengthBig)
	if totalSize.BitLen() > 63 {
		return 0, 0, fmt.Errorf("abi: length larger than int64: %v", totalSize)
	}
	if byteLength && totalSize.Cmp(outputLength) > 0 {
		return 0, 0, fmt.Errorf("abi: cannot marshal in to go type: length insufficient %v require %v", outputLength, totalSize)
	}
	return offsetEnd, int(lengthBig.Uint64()), nil
}

// tuplePointsTo resolves the location reference for dynamic tuple.
// tuplePointsTo 解析动态元组的位置引用。
func tuplePointsTo(index int, output []byte) (start int, err error) {
	offset := new(big.Int).SetBytes(output[index : index+32])
	outputLen := big.NewInt(int64(len(output)))

	if offset.Cmp(outputLen) > 0 {
		return 0, fmt.Errorf("abi: cannot marshal in to go slice: offset %v would go over slice boundary (len=%v)", offset, outputLen)
	}
	if offset.BitLen() > 63 {
		return 0, fmt.Errorf("abi offset larger than int64: %v", offset)
	}
	return int(offset.Uint64()), nil
}

// Decode decodes data as a single argument of type t. A lone dynamic tuple
// is accepted both inline and behind one offset word, see Arguments.Unpack.
// Decode 将 data 解码为类型 t 的单个参数。
func Decode(t Type, data []byte) (Value, error) {
	out, err := Arguments{{Type: t}}.Unpack(data)
	if err != nil {
		return Value{}, err
	}
	return out[0], nil
}
