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

	"github.com/sunyihoo/go-evmabi/common"
	"github.com/sunyihoo/go-evmabi/crypto"
)

// Error represents an error defined in the ABI (Application Binary Interface).
// It includes the error name, input arguments, string representation, signature, and a unique ID.
// Error 表示在 ABI 中定义的错误，包括名称、输入参数、签名以及唯一标识符。
type Error struct {
	Name   string
	Inputs Arguments
	str    string

	// Sig contains the string signature according to the ABI spec.
	// e.g. error foo(uint32 a, int b) = "foo(uint32,int256)"
	// Please note that "int" is substitute for its canonical representation "int256"
	Sig string

	// ID returns the canonical representation of the error's signature used by the
	// abi definition to identify event names and types.
	ID common.Hash
}

// NewError creates a new Error instance with the given name and inputs.
// Unnamed inputs are named arg0, arg1, ...
// NewError 使用给定的名称和输入参数创建一个新的 Error 实例。
func NewError(name string, inputs Arguments) Error {
	// sanitize inputs to remove inputs without names
	// and precompute string and sig representation.
	// 清理输入以移除没有名称的输入，并预计算字符串和签名表示。
	sanitized := make(Arguments, len(inputs))
	names := make([]string, len(inputs))
	types := make([]string, len(inputs))
	for i, input := range inputs {
		sanitized[i] = input
		if input.Name == "" {
			sanitized[i].Name = fmt.Sprintf("arg%d", i)
		}
		names[i] = fmt.Sprintf("%v %v", input.Type, sanitized[i].Name)
		types[i] = input.Type.String()
	}

	str := fmt.Sprintf("error %v(%v)", name, strings.Join(names, ", "))
	sig := fmt.Sprintf("%v(%v)", name, strings.Join(types, ","))
	id := common.BytesToHash(crypto.Keccak256([]byte(sig)))

	return Error{
		Name:   name,
		Inputs: sanitized,
		str:    str,
		Sig:    sig,
		ID:     id,
	}
}

// String returns the string representation of the error.
// String 返回错误的字符串表示形式。
func (e Error) String() string {
	return e.str
}

// Selector returns the 4 byte error selector.
func (e Error) Selector() [4]byte {
	var sel [4]byte
	copy(sel[:], e.ID[:4])
	return sel
}

// Pack encodes a revert payload: the selector followed by the encoded inputs.
func (e Error) Pack(values ...Value) ([]byte, error) {
	arguments, err := e.Inputs.Pack(values...)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, e.ID[:4]...), arguments...), nil
}

// Unpack decodes the provided data into the error's input arguments, returned
// as one tuple value. It first checks if the data matches the error's
// identifier (first 4 bytes), then unpacks the remaining data.
// Unpack 将提供的数据解码为错误的输入参数，以一个元组值返回。
func (e *Error) Unpack(data []byte) (Value, error) {
	if len(data) < 4 {
		return Value{}, fmt.Errorf("insufficient data for unpacking: have %d, want at least 4", len(data))
	}
	if !bytes.Equal(data[:4], e.ID[:4]) {
		return Value{}, fmt.Errorf("invalid identifier, have %#x want %#x", data[:4], e.ID[:4])
	}
	values, err := e.Inputs.Unpack(data[4:])
	if err != nil {
		return Value{}, err
	}
	return TupleValue(values...), nil
}
