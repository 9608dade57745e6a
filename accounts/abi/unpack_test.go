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
	"math/big"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-evmabi/common"
)

var roundTripTests = []struct {
	typ Type
	val Value
}{
	{Uint256, Uint64Value(42)},
	{Uint256, UintValue(MaxUint256)},
	{NewUint(8), Uint64Value(255)},
	{NewInt(16), IntValue(big.NewInt(-32768))},
	{Int256, IntValue(MaxInt256)},
	{Address, AddressValue(common.HexToAddress("0x00000000219ab540356cBB839Cbe05303d7705Fa"))},
	{Bool, BoolValue(false)},
	{Bytes32, FixedBytesValue(common.FromHex("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"))},
	{NewFixedBytes(3), FixedBytesValue([]byte{1, 2, 3})},
	{Bytes, BytesValue(nil)},
	{Bytes, BytesValue([]byte(strings.Repeat("x", 33)))},
	{String, StringValue("")},
	{String, StringValue("héllo wörld")},
	{NewSlice(Address), ArrayValue()},
	{NewSlice(Bytes32), ArrayValue(FixedBytesValue(make([]byte, 32)), FixedBytesValue(common.FromHex(strings.Repeat("ab", 32))))},
	{NewArray(NewArray(NewUint(8), 3), 2), ArrayValue(
		ArrayValue(Uint64Value(1), Uint64Value(2), Uint64Value(3)),
		ArrayValue(Uint64Value(4), Uint64Value(5), Uint64Value(6)),
	)},
	{NewSlice(String), ArrayValue(StringValue("a"), StringValue(""), StringValue(strings.Repeat("long", 20)))},
	{NewArray(String, 2), ArrayValue(StringValue("first"), StringValue("second"))},
	{NewTuple(Uint256, Bool, Address), TupleValue(Uint64Value(7), BoolValue(true), AddressValue(common.HexToAddress("0x1111111111111111111111111111111111111111")))},
	{NewTuple(String, NewSlice(Uint256)), TupleValue(StringValue("hi"), ArrayValue(Uint64Value(1), Uint64Value(2)))},
	{NewArray(NewTuple(Uint256, String), 2), ArrayValue(
		TupleValue(Uint64Value(1), StringValue("one")),
		TupleValue(Uint64Value(2), StringValue("two")),
	)},
	{NewSlice(NewTuple(Address, NewSlice(NewTuple(Bool, Bytes)))), ArrayValue(
		TupleValue(
			AddressValue(common.HexToAddress("0x2222222222222222222222222222222222222222")),
			ArrayValue(TupleValue(BoolValue(true), BytesValue([]byte{0xca, 0xfe}))),
		),
	)},
	{NewTuple(), TupleValue()},
}

func TestRoundTrip(t *testing.T) {
	for i, test := range roundTripTests {
		packed, err := Encode(test.typ, test.val)
		require.NoError(t, err, "test %d (%v)", i, test.typ)
		require.Zero(t, len(packed)%32, "test %d (%v) not word aligned", i, test.typ)

		unpacked, err := Decode(test.typ, packed)
		require.NoError(t, err, "test %d (%v)", i, test.typ)
		require.True(t, test.val.Equal(unpacked), "test %d (%v): have %v want %v", i, test.typ, unpacked, test.val)
		require.NoError(t, Check(test.typ, unpacked), "test %d (%v)", i, test.typ)
	}
}

func TestArgumentsRoundTrip(t *testing.T) {
	args := NewArguments(Uint256, String, NewSlice(Address), NewArray(Bool, 2), Bytes)
	values := []Value{
		Uint64Value(1),
		StringValue("two"),
		ArrayValue(AddressValue(common.HexToAddress("0x3333333333333333333333333333333333333333"))),
		ArrayValue(BoolValue(true), BoolValue(false)),
		BytesValue([]byte{4}),
	}
	packed, err := args.Pack(values...)
	require.NoError(t, err)
	// five heads, bool[2] takes two words in place
	require.Equal(t, hexWords(word(1)), packed[:32])
	require.Equal(t, hexWords(word(6*32)), packed[32:64])

	unpacked, err := args.Unpack(packed)
	require.NoError(t, err)
	require.Len(t, unpacked, len(values))
	for i := range values {
		require.True(t, values[i].Equal(unpacked[i]), "value %d: %s", i, spew.Sdump(unpacked[i]))
	}
}

func TestUnpackStrict(t *testing.T) {
	for i, test := range []struct {
		typ  Type
		data []byte
		want Value // zero Kind check skipped when err is set
		err  string
	}{
		{Bool, hexWords(word(2)), Value{}, "improperly encoded boolean"},
		{Bool, hexWords(word(1)), BoolValue(true), ""},
		{Address, hexWords(strings.Repeat("f", 64)), Value{}, "improperly encoded address"},
		{NewUint(8), hexWords(word(256)), Value{}, "improperly encoded uint8"},
		{NewUint(8), hexWords(word(255)), Uint64Value(255), ""},
		{NewInt(8), hexWords(word(128)), Value{}, "improperly encoded int8"},
		{NewInt(8), hexWords(strings.Repeat("f", 64)), IntValue(big.NewInt(-1)), ""},
		{NewInt(8), hexWords(strings.Repeat("f", 62) + "7f"), Value{}, "improperly encoded int8"},
		{NewFixedBytes(2), hexWords(rightWord("aabbcc")), Value{}, "improperly encoded fixed bytes"},
		{NewFixedBytes(2), hexWords(rightWord("aabb")), FixedBytesValue([]byte{0xaa, 0xbb}), ""},
	} {
		have, err := Decode(test.typ, test.data)
		if test.err != "" {
			require.Error(t, err, "test %d", i)
			require.ErrorIs(t, err, ErrMismatchedType, "test %d", i)
			require.Contains(t, err.Error(), test.err, "test %d", i)
			continue
		}
		require.NoError(t, err, "test %d", i)
		require.True(t, test.want.Equal(have), "test %d: have %v want %v", i, have, test.want)
	}
}

func TestUnpackTruncated(t *testing.T) {
	typ := NewTuple(Uint256, Bytes)
	packed, err := Encode(typ, TupleValue(Uint64Value(42), BytesValue([]byte{0xde, 0xad, 0xbe, 0xef})))
	require.NoError(t, err)
	require.Len(t, packed, 160)

	for _, n := range []int{0, 16, 31, 32, 48, 63, 64, 96, 128, 131} {
		_, err := Decode(typ, packed[:n])
		require.Error(t, err, "prefix %d", n)

		var mismatch *MismatchedTypeError
		require.True(t, errors.As(err, &mismatch), "prefix %d: %v", n, err)
		require.True(t, mismatch.Expected.Equal(typ), "prefix %d", n)
		require.NotNil(t, mismatch.Err, "prefix %d", n)
	}

	// Offset word of the second argument is cut in half.
	args := NewArguments(Uint256, Bytes)
	packed, err = args.Pack(Uint64Value(1), BytesValue([]byte{1}))
	require.NoError(t, err)
	_, err = args.Unpack(packed[:48])
	require.ErrorIs(t, err, ErrMismatchedType)

	// An offset pointing far beyond the buffer.
	_, err = Decode(String, hexWords(strings.Repeat("f", 64), word(1)))
	require.ErrorIs(t, err, ErrMismatchedType)

	// A length claiming more elements than the buffer holds.
	_, err = Decode(NewSlice(Uint256), hexWords(word(32), word(1<<40)))
	require.ErrorIs(t, err, ErrMismatchedType)
}

func TestUnpackEmpty(t *testing.T) {
	_, err := NewArguments(Uint256).Unpack(nil)
	require.ErrorIs(t, err, ErrMismatchedType)

	values, err := Arguments{}.Unpack(nil)
	require.NoError(t, err)
	require.Empty(t, values)
}

func TestDualDecoding(t *testing.T) {
	for i, test := range []struct {
		typ Type
		val Value
	}{
		{NewTuple(Uint256, Bytes), TupleValue(Uint64Value(42), BytesValue([]byte{0xde, 0xad, 0xbe, 0xef}))},
		{NewTuple(String, NewSlice(Uint256)), TupleValue(StringValue("hi"), ArrayValue(Uint64Value(1), Uint64Value(2)))},
		{NewTuple(Address, String), TupleValue(AddressValue(common.HexToAddress("0x4444444444444444444444444444444444444444")), StringValue("wrapped"))},
		{NewTuple(NewSlice(Address)), TupleValue(ArrayValue(AddressValue(common.HexToAddress("0x5555555555555555555555555555555555555555"))))},
		// The wrapped encoding of an empty field also reads directly as one
		// padded word of zeros.
		{NewTuple(String), TupleValue(StringValue(""))},
		{NewTuple(Bytes), TupleValue(BytesValue([]byte{}))},
		{NewTuple(NewSlice(Uint256)), TupleValue(ArrayValue())},
	} {
		inline, err := NewArguments(test.typ.Components()...).Pack(test.val.Elems()...)
		require.NoError(t, err, "test %d", i)
		wrapped, err := Encode(test.typ, test.val)
		require.NoError(t, err, "test %d", i)
		require.Equal(t, append(hexWords(word(32)), inline...), wrapped, "test %d", i)

		fromInline, err := Decode(test.typ, inline)
		require.NoError(t, err, "test %d inline", i)
		require.True(t, test.val.Equal(fromInline), "test %d inline: have %v", i, fromInline)

		fromWrapped, err := Decode(test.typ, wrapped)
		require.NoError(t, err, "test %d wrapped", i)
		require.True(t, test.val.Equal(fromWrapped), "test %d wrapped: have %v", i, fromWrapped)
	}
}

func TestDualDecodingFailure(t *testing.T) {
	typ := NewTuple(Uint256, Bytes)
	_, err := Decode(typ, hexWords(word(1), word(1<<20)))

	var mismatch *MismatchedTypeError
	require.True(t, errors.As(err, &mismatch))
	require.Contains(t, mismatch.Err.Error(), "direct:")
	require.Contains(t, mismatch.Err.Error(), "wrapped:")
	require.Equal(t, "bytes32[2]", mismatch.Actual.String())
}

func TestZeroSizeElements(t *testing.T) {
	for i, test := range []struct {
		typ Type
		val Value
	}{
		{NewSlice(NewTuple()), ArrayValue(TupleValue(), TupleValue())},
		{NewSlice(NewArray(Uint256, 0)), ArrayValue(ArrayValue())},
		{NewTuple(Uint256, NewSlice(NewTuple())), TupleValue(Uint64Value(7), ArrayValue(TupleValue(), TupleValue(), TupleValue()))},
	} {
		enc, err := Encode(test.typ, test.val)
		require.NoError(t, err, "test %d", i)
		dec, err := Decode(test.typ, enc)
		require.NoError(t, err, "test %d", i)
		require.True(t, test.val.Equal(dec), "test %d: have %v", i, dec)
	}
	// Only the offset and the count are encoded.
	enc, err := Encode(NewSlice(NewTuple()), ArrayValue(TupleValue(), TupleValue()))
	require.NoError(t, err)
	require.Equal(t, hexWords(word(32), word(2)), enc)

	_, err = Decode(NewSlice(NewTuple()), hexWords(word(32), word(maxEmptyElems+1)))
	require.ErrorIs(t, err, ErrMismatchedType)
	require.ErrorContains(t, err, "empty elements exceed the limit")

	// Byte lengths are still bounded by the input.
	_, err = Decode(Bytes, hexWords(word(32), word(33), word(0)))
	require.ErrorContains(t, err, "length insufficient")
}

func TestRevertPayload(t *testing.T) {
	callFailed, err := ParseError("CallFailed(uint256 callIndex, address callContract, bytes err)")
	require.NoError(t, err)
	require.Equal(t, "CallFailed(uint256,address,bytes)", callFailed.Sig)

	reason, err := errorStringABI.Pack(StringValue("insufficient balance"))
	require.NoError(t, err)

	contract := common.HexToAddress("0x6666666666666666666666666666666666666666")
	payload, err := callFailed.Pack(Uint64Value(3), AddressValue(contract), BytesValue(reason))
	require.NoError(t, err)

	decoded, err := callFailed.Unpack(payload)
	require.NoError(t, err)
	require.Equal(t, 3, decoded.Len())
	require.Equal(t, uint64(3), decoded.Index(0).Uint().Uint64())
	require.Equal(t, contract, decoded.Index(1).Address())
	require.Equal(t, reason, decoded.Index(2).Bytes())

	// The same arguments decoded against a 3-tuple schema.
	tuple, err := Decode(NewTuple(Uint256, Address, Bytes), payload[4:])
	require.NoError(t, err)
	require.True(t, decoded.Equal(tuple))

	msg, err := UnpackRevert(decoded.Index(2).Bytes())
	require.NoError(t, err)
	require.Equal(t, "insufficient balance", msg)
}

func TestCheck(t *testing.T) {
	require.NoError(t, Check(NewSlice(Uint256), ArrayValue(Uint64Value(1))))

	err := Check(Uint256, StringValue("x"))
	var mismatch *MismatchedTypeError
	require.True(t, errors.As(err, &mismatch))
	require.Equal(t, "uint256", mismatch.Expected.String())
	require.Equal(t, "string", mismatch.Actual.String())
	require.False(t, errors.Is(err, ErrTypeMismatch))

	err = Check(NewTuple(Uint256, Bool), TupleValue(Uint64Value(1), Uint64Value(2)))
	require.ErrorIs(t, err, ErrMismatchedType)
	require.Contains(t, err.Error(), "expected (uint256,bool), got (uint256,uint256)")
}

func TestUnpackIntoMap(t *testing.T) {
	args := Arguments{{Name: "amount", Type: Uint256}, {Name: "memo", Type: String}}
	packed, err := args.Pack(Uint64Value(10), StringValue("rent"))
	require.NoError(t, err)

	out := make(map[string]Value)
	require.NoError(t, args.UnpackIntoMap(out, packed))
	require.Equal(t, "rent", out["memo"].Text())
	require.Equal(t, uint64(10), out["amount"].Uint().Uint64())
	require.Error(t, args.UnpackIntoMap(nil, packed))
}
