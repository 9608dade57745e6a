// Copyright 2015 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-evmabi/accounts/abi"
	"github.com/sunyihoo/go-evmabi/common"
)

func TestParseValue(t *testing.T) {
	addr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	tests := []struct {
		typ   abi.Type
		input string
		want  abi.Value
	}{
		{abi.Uint256, "42", abi.Uint64Value(42)},
		{abi.Uint256, "0x2a", abi.Uint64Value(42)},
		{abi.NewUint(8), " 255 ", abi.Uint64Value(255)},
		{abi.Int256, "-1", abi.IntValue(big.NewInt(-1))},
		{abi.Address, addr.Hex(), abi.AddressValue(addr)},
		{abi.Bool, "true", abi.BoolValue(true)},
		{abi.String, "hello, world", abi.StringValue("hello, world")},
		{abi.String, `"quoted"`, abi.StringValue("quoted")},
		{abi.Bytes, "0xdeadbeef", abi.BytesValue([]byte{0xde, 0xad, 0xbe, 0xef})},
		{abi.NewFixedBytes(4), "0xdead", abi.FixedBytesValue([]byte{0xde, 0xad, 0, 0})},
		{abi.NewSlice(abi.Uint256), "[1, 2, 3]", abi.ArrayValue(abi.Uint64Value(1), abi.Uint64Value(2), abi.Uint64Value(3))},
		{abi.NewSlice(abi.Address), "[]", abi.ArrayValue()},
		{abi.NewArray(abi.Bool, 2), "[true,false]", abi.ArrayValue(abi.BoolValue(true), abi.BoolValue(false))},
		{
			abi.NewTuple(abi.Uint256, abi.String, abi.NewSlice(abi.Bytes)),
			`(7, "a, (b)", [0x01, 0x])`,
			abi.TupleValue(abi.Uint64Value(7), abi.StringValue("a, (b)"), abi.ArrayValue(abi.BytesValue([]byte{1}), abi.BytesValue([]byte{}))),
		},
		{
			abi.NewSlice(abi.NewTuple(abi.Uint256, abi.Bool)),
			"[(1, true), (2, false)]",
			abi.ArrayValue(
				abi.TupleValue(abi.Uint64Value(1), abi.BoolValue(true)),
				abi.TupleValue(abi.Uint64Value(2), abi.BoolValue(false)),
			),
		},
	}
	for _, tt := range tests {
		got, err := parseValue(tt.typ, tt.input)
		require.NoError(t, err, "%s %q", tt.typ, tt.input)
		require.True(t, tt.want.Equal(got), "%s %q: have %v, want %v", tt.typ, tt.input, got, tt.want)
	}
}

func TestParseValueErrors(t *testing.T) {
	tests := []struct {
		typ   abi.Type
		input string
	}{
		{abi.Uint256, ""},
		{abi.Uint256, "-1"},
		{abi.Uint256, "12ab"},
		{abi.Int256, "0x"},
		{abi.Address, "0x1234"},
		{abi.Bool, "yes"},
		{abi.Bytes, "dead"},
		{abi.NewFixedBytes(2), "0xdeadbeef"},
		{abi.NewSlice(abi.Uint256), "1, 2"},
		{abi.NewSlice(abi.Uint256), "[1, [2]"},
		{abi.NewArray(abi.Uint256, 3), "[1, 2]"},
		{abi.NewTuple(abi.Uint256, abi.Bool), "(1)"},
		{abi.NewTuple(abi.String), `("open)`},
	}
	for _, tt := range tests {
		_, err := parseValue(tt.typ, tt.input)
		require.Error(t, err, "%s %q", tt.typ, tt.input)
	}
}

func TestParseArgs(t *testing.T) {
	fn, err := abi.ParseSignature("transfer(address to, uint256 amount)")
	require.NoError(t, err)

	values, err := parseArgs(fn.Inputs, []string{"0x1111111111111111111111111111111111111111", "42"})
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(42), values[1].Uint())

	_, err = parseArgs(fn.Inputs, []string{"0x1111111111111111111111111111111111111111"})
	require.EqualError(t, err, "argument count mismatch: got 1 for 2")

	_, err = parseArgs(fn.Inputs, []string{"0x11", "42"})
	require.EqualError(t, err, `argument to (address): invalid address "0x11"`)
}

func TestSplitList(t *testing.T) {
	items, err := splitList(`[a, "b,]", [c, d], (e, f)]`, '[', ']')
	require.NoError(t, err)
	require.Equal(t, []string{"a", `"b,]"`, "[c, d]", "(e, f)"}, items)

	items, err = splitList("[ ]", '[', ']')
	require.NoError(t, err)
	require.Empty(t, items)

	_, err = splitList("(a, b]", '(', ')')
	require.Error(t, err)
}
