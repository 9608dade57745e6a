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
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-evmabi/common"
)

// word renders x as one 32 byte hex word.
func word(x uint64) string {
	return fmt.Sprintf("%064x", x)
}

// addrWord renders a 40 character hex address as a left padded word.
func addrWord(addr string) string {
	return strings.Repeat("0", 24) + addr
}

// rightWord right pads hex data to a full word.
func rightWord(data string) string {
	return data + strings.Repeat("0", 64-len(data))
}

func hexWords(words ...string) []byte {
	return common.FromHex(strings.Join(words, ""))
}

func TestPack(t *testing.T) {
	addr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	for i, test := range []struct {
		typ    Type
		input  Value
		output []byte
	}{
		{
			NewUint(8),
			Uint64Value(2),
			hexWords(word(2)),
		},
		{
			Uint256,
			UintValue(MaxUint256),
			hexWords(strings.Repeat("f", 64)),
		},
		{
			NewInt(8),
			IntValue(big.NewInt(-1)),
			hexWords(strings.Repeat("f", 64)),
		},
		{
			Int256,
			IntValue(big.NewInt(-2)),
			hexWords(strings.Repeat("f", 63) + "e"),
		},
		{
			Bool,
			BoolValue(true),
			hexWords(word(1)),
		},
		{
			Address,
			AddressValue(addr),
			hexWords(addrWord("1111111111111111111111111111111111111111")),
		},
		{
			NewFixedBytes(4),
			FixedBytesValue([]byte{0xde, 0xad, 0xbe, 0xef}),
			hexWords(rightWord("deadbeef")),
		},
		{
			Bytes,
			BytesValue([]byte{0xde, 0xad, 0xbe, 0xef}),
			hexWords(word(32), word(4), rightWord("deadbeef")),
		},
		{
			String,
			StringValue("hello"),
			hexWords(word(32), word(5), rightWord("68656c6c6f")),
		},
		{
			NewSlice(NewUint(8)),
			ArrayValue(Uint64Value(1), Uint64Value(2)),
			hexWords(word(32), word(2), word(1), word(2)),
		},
		{
			NewArray(Uint256, 2),
			ArrayValue(Uint64Value(1), Uint64Value(2)),
			hexWords(word(1), word(2)),
		},
		{
			NewSlice(Address),
			ArrayValue(),
			hexWords(word(32), word(0)),
		},
		{
			NewTuple(Uint256, Bool),
			TupleValue(Uint64Value(1), BoolValue(true)),
			hexWords(word(1), word(1)),
		},
		{
			NewTuple(Uint256, Bytes),
			TupleValue(Uint64Value(42), BytesValue([]byte{0xde, 0xad, 0xbe, 0xef})),
			hexWords(word(32), word(42), word(64), word(4), rightWord("deadbeef")),
		},
		{
			NewSlice(String),
			ArrayValue(StringValue("a"), StringValue("b")),
			hexWords(word(32), word(2), word(64), word(128), word(1), rightWord("61"), word(1), rightWord("62")),
		},
		{
			NewArray(NewArray(Uint256, 2), 2),
			ArrayValue(
				ArrayValue(Uint64Value(1), Uint64Value(2)),
				ArrayValue(Uint64Value(3), Uint64Value(4)),
			),
			hexWords(word(1), word(2), word(3), word(4)),
		},
		{
			NewTuple(),
			TupleValue(),
			nil,
		},
	} {
		packed, err := Encode(test.typ, test.input)
		require.NoError(t, err, "test %d (%v)", i, test.typ)
		require.Equal(t, test.output, packed, "test %d (%v)", i, test.typ)
		require.Zero(t, len(packed)%32, "test %d (%v) not word aligned", i, test.typ)
	}
}

func TestPackAddressAndAmount(t *testing.T) {
	addr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	args := NewArguments(Address, Uint256)

	packed, err := args.Pack(AddressValue(addr), Uint64Value(42))
	require.NoError(t, err)
	require.Len(t, packed, 64)
	require.Equal(t, make([]byte, 12), packed[:12])
	require.Equal(t, addr.Bytes(), packed[12:32])
	require.Equal(t, uint256.NewInt(42).Bytes32(), [32]byte(packed[32:64]))
}

func TestPackEmptyAddressSlice(t *testing.T) {
	packed, err := Encode(NewSlice(Address), ArrayValue())
	require.NoError(t, err)
	require.Len(t, packed, 64)
	require.Equal(t, hexWords(word(32), word(0)), packed)
}

func TestPackTypeMismatch(t *testing.T) {
	for i, test := range []struct {
		typ    Type
		input  Value
		reason string
	}{
		{Uint256, BoolValue(true), "want unsigned integer"},
		{Int256, Uint64Value(1), "want signed integer"},
		{NewUint(8), Uint64Value(256), "overflows 8 bits"},
		{NewInt(8), IntValue(big.NewInt(128)), "overflows 8 bits"},
		{NewInt(8), IntValue(big.NewInt(-129)), "overflows 8 bits"},
		{NewFixedBytes(4), FixedBytesValue([]byte{1, 2, 3}), "want 4 bytes"},
		{Bytes, FixedBytesValue([]byte{1}), "want bytes"},
		{NewArray(Uint256, 2), ArrayValue(Uint64Value(1)), "want 2 elements"},
		{NewSlice(Address), ArrayValue(Uint64Value(1)), "want address"},
		{NewTuple(Uint256, Bool), TupleValue(Uint64Value(1)), "want 2 components"},
		{NewTuple(Uint256), ArrayValue(Uint64Value(1)), "want tuple"},
	} {
		_, err := Encode(test.typ, test.input)
		require.Error(t, err, "test %d", i)
		require.True(t, errors.Is(err, ErrTypeMismatch), "test %d: %v", i, err)
		var mismatch *TypeMismatchError
		require.True(t, errors.As(err, &mismatch), "test %d", i)
		require.Contains(t, mismatch.Reason, test.reason, "test %d", i)
	}
}

func TestPackArgumentCount(t *testing.T) {
	_, err := NewArguments(Address, Uint256).Pack(Uint64Value(1))
	require.ErrorIs(t, err, ErrTypeMismatch)
	require.Contains(t, err.Error(), "argument count mismatch")
}

func TestSignedRange(t *testing.T) {
	require.True(t, fitsSigned(big.NewInt(127), 8))
	require.True(t, fitsSigned(big.NewInt(-128), 8))
	require.False(t, fitsSigned(big.NewInt(128), 8))
	require.False(t, fitsSigned(big.NewInt(-129), 8))
	require.True(t, fitsSigned(MaxInt256, 256))
	require.False(t, fitsSigned(new(big.Int).Add(MaxInt256, common.Big1), 256))
}
