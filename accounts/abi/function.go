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
	"strings"

	"github.com/sunyihoo/go-evmabi/crypto"
)

// Signature returns the canonical text signature name(type1,type2,...).
// Tuples are rendered as parenthesised component lists and arrays carry
// their []/[N] suffixes.
// Signature 返回规范的文本签名。
func Signature(name string, types ...Type) string {
	return fmt.Sprintf("%v(%v)", name, NewArguments(types...).canonical())
}

// Selector returns the first four bytes of the Keccak-256 hash of the
// canonical signature of name and types.
// Selector 返回规范签名 Keccak-256 哈希的前 4 个字节。
func Selector(name string, types ...Type) [4]byte {
	return crypto.Selector(Signature(name, types...))
}

// Function represents a callable contract function: a name, the input and
// output parameter lists and the derived signature and selector.
// Function 表示一个可调用的合约函数。
type Function struct {
	Name    string
	Inputs  Arguments
	Outputs Arguments
	str     string

	// Sig contains the string signature according to the ABI spec.
	// e.g. function foo(uint32 a, int b) = "foo(uint32,int256)"
	// Please note that "int" is substitute for its canonical representation "int256"
	Sig string

	// ID returns the canonical representation of the function's signature used by the
	// abi definition to identify method names and types.
	ID []byte
}

// NewFunction creates a new Function and precomputes its string
// representation, signature and selector.
// NewFunction 创建一个新的 Function，并预计算字符串表示、签名和选择器。
func NewFunction(name string, inputs Arguments, outputs Arguments) Function {
	var (
		types       = make([]string, len(inputs))
		inputNames  = make([]string, len(inputs))
		outputNames = make([]string, len(outputs))
	)
	for i, input := range inputs {
		inputNames[i] = strings.TrimSpace(fmt.Sprintf("%v %v", input.Type, input.Name))
		types[i] = input.Type.String()
	}
	for i, output := range outputs {
		outputNames[i] = output.Type.String()
		if len(output.Name) > 0 {
			outputNames[i] += fmt.Sprintf(" %v", output.Name)
		}
	}
	sig := fmt.Sprintf("%v(%v)", name, strings.Join(types, ","))
	id := crypto.Keccak256([]byte(sig))[:4]

	str := fmt.Sprintf("function %v(%v)", name, strings.Join(inputNames, ", "))
	if len(outputs) > 0 {
		str += fmt.Sprintf(" returns(%v)", strings.Join(outputNames, ", "))
	}
	return Function{
		Name:    name,
		Inputs:  inputs,
		Outputs: outputs,
		str:     str,
		Sig:     sig,
		ID:      id,
	}
}

// String returns the human readable declaration of the function.
func (f Function) String() string {
	return f.str
}

// Selector returns the 4 byte function selector.
func (f Function) Selector() [4]byte {
	var sel [4]byte
	copy(sel[:], f.ID)
	return sel
}

// Pack encodes a call: the selector followed by the encoded inputs.
// Pack 编码一次调用：选择器后接编码后的输入参数。
func (f Function) Pack(values ...Value) ([]byte, error) {
	arguments, err := f.Inputs.Pack(values...)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, f.ID...), arguments...), nil
}

// Unpack decodes the return data of a call into the output values.
func (f Function) Unpack(data []byte) ([]Value, error) {
	return f.Outputs.Unpack(data)
}

// UnpackInput decodes call data produced by Pack, checking the selector.
func (f Function) UnpackInput(data []byte) ([]Value, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("insufficient data for unpacking: have %d, want at least 4", len(data))
	}
	if !bytes.Equal(data[:4], f.ID) {
		return nil, fmt.Errorf("invalid identifier, have %#x want %#x", data[:4], f.ID)
	}
	return f.Inputs.Unpack(data[4:])
}
