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
	"github.com/sunyihoo/go-evmabi/common"
	"github.com/sunyihoo/go-evmabi/crypto"
)

func TestSelector(t *testing.T) {
	require.Equal(t, [4]byte{0xa9, 0x05, 0x9c, 0xbb}, Selector("transfer", Address, Uint256))
	require.Equal(t, [4]byte{0x70, 0xa0, 0x82, 0x31}, Selector("balanceOf", Address))
	require.Equal(t, [4]byte{0x18, 0x16, 0x0d, 0xdd}, Selector("totalSupply"))
	require.Equal(t, [4]byte{0x08, 0xc3, 0x79, 0xa0}, errorStringABI.Selector())
	require.Equal(t, [4]byte{0x4e, 0x48, 0x7b, 0x71}, panicABI.Selector())

	// Deterministic and sensitive to the canonical type list.
	require.Equal(t, Selector("f", Uint256), Selector("f", NewUint(256)))
	require.NotEqual(t, Selector("f", Uint256), Selector("f", NewUint(128)))
	require.NotEqual(t, Selector("f", Uint256, Bool), Selector("f", Bool, Uint256))
}

func TestSignature(t *testing.T) {
	typs := []Type{NewTuple(Uint256, NewSlice(Bytes)), NewArray(Address, 2)}
	sig := Signature("f", typs...)
	require.Equal(t, "f((uint256,bytes[]),address[2])", sig)

	var want [4]byte
	copy(want[:], crypto.Keccak256([]byte(sig)))
	require.Equal(t, want, Selector("f", typs...))
	require.Equal(t, "g()", Signature("g"))
}

func TestParseSignature(t *testing.T) {
	for i, test := range []struct {
		input   string
		name    string
		sig     string
		outputs string
	}{
		{"transfer(address,uint256)", "transfer", "transfer(address,uint256)", ""},
		{"  transfer( address to , uint amount )", "transfer", "transfer(address,uint256)", ""},
		{"function balanceOf(address owner) external view returns (uint256 balance)", "balanceOf", "balanceOf(address)", "uint256"},
		{"get()(uint256,bytes)", "get", "get()", "uint256,bytes"},
		{"get() returns ((uint256,string)[])", "get", "get()", "(uint256,string)[]"},
		{"submit((address to, uint value, bytes data)[] calls, bool strict)", "submit", "submit((address,uint256,bytes)[],bool)", ""},
		{"f(tuple(uint256,bool) memory p)", "f", "f((uint256,bool))", ""},
		{"f(uint256[2][] calldata xs, byte b)", "f", "f(uint256[2][],bytes1)", ""},
		{"f(address payable to)", "f", "f(address)", ""},
		{"$weird_Name1()", "$weird_Name1", "$weird_Name1()", ""},
	} {
		fn, err := ParseSignature(test.input)
		require.NoError(t, err, "test %d (%s)", i, test.input)
		require.Equal(t, test.name, fn.Name, "test %d", i)
		require.Equal(t, test.sig, fn.Sig, "test %d", i)
		require.Equal(t, test.outputs, fn.Outputs.canonical(), "test %d", i)

		var want [4]byte
		copy(want[:], crypto.Keccak256([]byte(test.sig)))
		require.Equal(t, want, fn.Selector(), "test %d", i)
	}
}

func TestParseSignatureInvalid(t *testing.T) {
	for _, input := range []string{
		"",
		"f",
		"(uint256)",
		"f(uint256",
		"f(uint256,)",
		"f(uint7)",
		"f(uint256) garbage",
		"f(uint256 a b)",
		"f(uint256[x])",
		"f()(uint256)(bool)",
		"error Foo(uint256)",
	} {
		_, err := ParseSignature(input)
		require.Error(t, err, "input %q", input)
	}
}

func TestParseError(t *testing.T) {
	e, err := ParseError("error Unauthorized(address caller, bytes32 role)")
	require.NoError(t, err)
	require.Equal(t, "Unauthorized", e.Name)
	require.Equal(t, "Unauthorized(address,bytes32)", e.Sig)
	require.Equal(t, "error Unauthorized(address caller, bytes32 role)", e.String())

	anon, err := ParseError("Empty(uint256)")
	require.NoError(t, err)
	require.Equal(t, "arg0", anon.Inputs[0].Name)

	_, err = ParseError("Foo(uint256)(bool)")
	require.Error(t, err)
}

func TestFunctionPackUnpack(t *testing.T) {
	fn := NewFunction("balanceOf",
		Arguments{{Name: "owner", Type: Address}},
		Arguments{{Name: "balance", Type: Uint256}},
	)
	require.Equal(t, "function balanceOf(address owner) returns(uint256 balance)", fn.String())

	owner := common.HexToAddress("0x7777777777777777777777777777777777777777")
	input, err := fn.Pack(AddressValue(owner))
	require.NoError(t, err)
	require.Len(t, input, 36)
	require.Equal(t, []byte{0x70, 0xa0, 0x82, 0x31}, input[:4])

	args, err := fn.UnpackInput(input)
	require.NoError(t, err)
	require.Equal(t, owner, args[0].Address())

	_, err = fn.UnpackInput(append([]byte{0, 0, 0, 0}, input[4:]...))
	require.Error(t, err)
	_, err = fn.UnpackInput(input[:3])
	require.Error(t, err)

	out, err := fn.Unpack(hexWords(word(1000)))
	require.NoError(t, err)
	require.Equal(t, uint64(1000), out[0].Uint().Uint64())

	// The selector prefix is not aliased between calls.
	again, err := fn.Pack(AddressValue(common.Address{}))
	require.NoError(t, err)
	require.Equal(t, owner.Bytes(), input[16:36])
	require.Equal(t, input[:4], again[:4])
}
