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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewType(t *testing.T) {
	for i, test := range []struct {
		blob       string
		components []ArgumentMarshaling
		kind       byte
		canonical  string
	}{
		{"uint256", nil, UintTy, "uint256"},
		{"uint8", nil, UintTy, "uint8"},
		{"int16", nil, IntTy, "int16"},
		{"bool", nil, BoolTy, "bool"},
		{"address", nil, AddressTy, "address"},
		{"bytes", nil, BytesTy, "bytes"},
		{"bytes1", nil, FixedBytesTy, "bytes1"},
		{"bytes32", nil, FixedBytesTy, "bytes32"},
		{"string", nil, StringTy, "string"},
		{"uint8[]", nil, SliceTy, "uint8[]"},
		{"address[2]", nil, ArrayTy, "address[2]"},
		{"uint256[2][]", nil, SliceTy, "uint256[2][]"},
		{"string[][3]", nil, ArrayTy, "string[][3]"},
		{"tuple", []ArgumentMarshaling{{Name: "a", Type: "uint256"}, {Name: "b", Type: "bytes"}}, TupleTy, "(uint256,bytes)"},
		{"tuple[]", []ArgumentMarshaling{{Name: "a", Type: "uint256"}, {Name: "b", Type: "bytes"}}, SliceTy, "(uint256,bytes)[]"},
		{"tuple", []ArgumentMarshaling{{Type: "tuple", Components: []ArgumentMarshaling{{Type: "bool"}}}, {Type: "address[]"}}, TupleTy, "((bool),address[])"},
		{"tuple", nil, TupleTy, "()"},
	} {
		typ, err := NewType(test.blob, "", test.components)
		require.NoError(t, err, "test %d (%s)", i, test.blob)
		require.Equal(t, test.kind, typ.T, "test %d (%s)", i, test.blob)
		require.Equal(t, test.canonical, typ.String(), "test %d (%s)", i, test.blob)
	}
}

func TestNewTypeInvalid(t *testing.T) {
	for _, blob := range []string{
		"uint", "int", "uint7", "uint264", "int0", "bytes0", "bytes33", "bool8",
		"fixed128x18", "function", "foo", "uint8[", "uint8]", "uint8[a]", "uint8[2", "",
	} {
		_, err := NewType(blob, "", nil)
		require.Error(t, err, "type %q", blob)
	}
}

func TestNewTypeInternal(t *testing.T) {
	typ, err := NewType("tuple", "struct Pool.Key", []ArgumentMarshaling{{Name: "id", Type: "uint256"}})
	require.NoError(t, err)
	require.Equal(t, "PoolKey", typ.TupleRawName)
	require.Equal(t, []string{"id"}, typ.TupleRawNames)

	typ, err = NewType("Token", "contract Token", nil)
	require.NoError(t, err)
	require.Equal(t, Address, typ)
}

func TestConstructors(t *testing.T) {
	require.Equal(t, "uint64", NewUint(64).String())
	require.Equal(t, "int128", NewInt(128).String())
	require.Equal(t, "bytes20", NewFixedBytes(20).String())
	require.Equal(t, "(address,(bool,string)[])[4]", NewArray(NewTuple(Address, NewSlice(NewTuple(Bool, String))), 4).String())
	require.Panics(t, func() { NewUint(12) })
	require.Panics(t, func() { NewFixedBytes(33) })

	named, err := NewNamedTuple([]string{"to", "amount"}, []Type{Address, Uint256})
	require.NoError(t, err)
	require.True(t, named.Equal(NewTuple(Address, Uint256)))
	require.Equal(t, []Type{Address, Uint256}, named.Components())
	_, err = NewNamedTuple([]string{"to"}, []Type{Address, Uint256})
	require.Error(t, err)

	parsed, err := NewType("uint256[]", "", nil)
	require.NoError(t, err)
	require.True(t, parsed.Equal(NewSlice(Uint256)))
}

func TestTypeLayout(t *testing.T) {
	for i, test := range []struct {
		typ     Type
		dynamic bool
		size    int
	}{
		{Uint256, false, 32},
		{String, true, 32},
		{Bytes, true, 32},
		{NewSlice(Uint256), true, 32},
		{NewArray(Uint256, 3), false, 96},
		{NewArray(NewArray(Uint256, 3), 2), false, 192},
		{NewArray(String, 2), true, 32},
		{NewTuple(Uint256, Bool), false, 64},
		{NewTuple(Uint256, NewArray(Bool, 2)), false, 96},
		{NewTuple(Uint256, Bytes), true, 32},
		{NewArray(NewTuple(Address, Bool), 2), false, 128},
		{NewTuple(), false, 0},
	} {
		require.Equal(t, test.dynamic, test.typ.IsDynamic(), "test %d (%v)", i, test.typ)
		require.Equal(t, test.size, getTypeSize(test.typ), "test %d (%v)", i, test.typ)
	}
}
