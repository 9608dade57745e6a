// Copyright 2019 The go-ethereum Authors
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


package fourbyte

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sunyihoo/go-evmabi/accounts/abi"
	"github.com/sunyihoo/go-evmabi/common"
)

// DecodedCall is a method call parsed according to a signature found in the
// database.
// DecodedCall 表示根据数据库中的签名解析出的方法调用。
type DecodedCall struct {
	Function abi.Function
	Args     []abi.Value
}

// String renders the call as "transfer(address: 0x.., uint256: 42)".
func (cd *DecodedCall) String() string {
	args := make([]string, len(cd.Args))
	for i, arg := range cd.Args {
		args[i] = fmt.Sprintf("%v: %v", cd.Function.Inputs[i].Type, arg)
	}
	return fmt.Sprintf("%s(%s)", cd.Function.Name, strings.Join(args, ", "))
}

// DecodeCallData looks up the selector of the call data and decodes the
// arguments with the signature found.
func (db *Database) DecodeCallData(calldata []byte) (*DecodedCall, error) {
	if len(calldata) < 4 {
		return nil, fmt.Errorf("invalid call data, incomplete method signature (%d bytes < 4)", len(calldata))
	}
	selector, err := db.Selector(calldata[:4])
	if err != nil {
		return nil, err
	}
	return verifySelector(selector, calldata)
}

// DecodeRevert looks up the selector of revert data and returns the error
// declaration it identifies, provided the payload decodes against it.
// DecodeRevert 根据回滚数据的选择器查找错误声明，并确认数据可以按其解码。
func (db *Database) DecodeRevert(data []byte) (abi.Error, bool) {
	selector, err := db.Selector(data)
	if err != nil {
		return abi.Error{}, false
	}
	e, err := abi.ParseError(selector)
	if err != nil {
		return abi.Error{}, false
	}
	if _, err := e.Unpack(data); err != nil {
		return abi.Error{}, false
	}
	return e, true
}

// verifySelector checks whether the ABI encoded data blob matches the requested
// function signature.
//
// verifySelector 检查 ABI 编码的数据块是否与请求的函数签名匹配。
func verifySelector(selector string, calldata []byte) (*DecodedCall, error) {
	method, err := abi.ParseSignature(selector)
	if err != nil {
		return nil, fmt.Errorf("failed to parse selector: %v", err)
	}
	return parseCallData(calldata, method)
}

// parseCallData matches the provided call data against the method and
// returns the decoded arguments.
func parseCallData(calldata []byte, method abi.Function) (*DecodedCall, error) {
	// Validate the call data that it has the 4byte prefix and the rest divisible by 32 bytes
	// 验证调用数据，确保它有 4 字节的前缀，其余部分可被 32 字节整除
	if len(calldata) < 4 {
		return nil, fmt.Errorf("invalid call data, incomplete method signature (%d bytes < 4)", len(calldata))
	}
	argdata := calldata[4:]
	if len(argdata)%32 != 0 {
		return nil, fmt.Errorf("invalid call data; length should be a multiple of 32 bytes (was %d)", len(argdata))
	}
	values, err := method.UnpackInput(calldata)
	if err != nil {
		return nil, fmt.Errorf("signature %q matches, but arguments mismatch: %v", method.Sig, err)
	}
	// We're finished decoding the data. At this point, we encode the decoded data
	// to see if it matches with the original data. If we didn't do that, it would
	// be possible to stuff extra data into the arguments, which is not detected
	// by merely decoding the data.
	encoded, err := method.Inputs.Pack(values...)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(encoded, argdata) {
		was := common.Bytes2Hex(encoded)
		exp := common.Bytes2Hex(argdata)
		return nil, fmt.Errorf("WARNING: Supplied data is stuffed with extra data. \nWant %s\nHave %s\nfor method %v", exp, was, method.Sig)
	}
	return &DecodedCall{Function: method, Args: values}, nil
}
