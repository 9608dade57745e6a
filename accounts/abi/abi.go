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
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/holiman/uint256"
)

// The ABI holds information about a contract's callable functions and the
// errors it may revert with. It will allow you to type check function calls
// and packs data accordingly.
// ABI 包含合约可调用函数及其可能回滚的错误信息。
type ABI struct {
	Functions map[string]Function
	Errors    map[string]Error
}

// JSON returns a parsed ABI interface and error if it failed.
// JSON 返回解析后的 ABI 接口，如果失败则返回错误。
func JSON(reader io.Reader) (ABI, error) {
	dec := json.NewDecoder(reader)

	var abi ABI
	if err := dec.Decode(&abi); err != nil {
		return ABI{}, err
	}
	return abi, nil
}

// Pack the given function name to conform the ABI. Call data consists of
// the 4 byte selector followed by the encoded arguments.
// Pack 将给定函数的调用打包为 ABI 格式。
func (abi ABI) Pack(name string, args ...Value) ([]byte, error) {
	fn, exist := abi.Functions[name]
	if !exist {
		return nil, fmt.Errorf("function '%s' not found", name)
	}
	return fn.Pack(args...)
}

// Unpack unpacks the output of the named function, or the arguments of the
// named error, according to the abi specification.
// Unpack 根据 ABI 规范解包输出。
func (abi ABI) Unpack(name string, data []byte) ([]Value, error) {
	if fn, ok := abi.Functions[name]; ok {
		return fn.Outputs.Unpack(data)
	}
	if e, ok := abi.Errors[name]; ok {
		return e.Inputs.Unpack(data)
	}
	return nil, fmt.Errorf("abi: could not locate named function or error: %s", name)
}

// UnmarshalJSON implements json.Unmarshaler interface. Constructor, event,
// fallback and receive entries are accepted and skipped.
// UnmarshalJSON 实现 json.Unmarshaler 接口。
func (abi *ABI) UnmarshalJSON(data []byte) error {
	var fields []struct {
		Type    string
		Name    string
		Inputs  []Argument
		Outputs []Argument

		// Status indicator which can be: "pure", "view",
		// "nonpayable" or "payable".
		StateMutability string
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	abi.Functions = make(map[string]Function)
	abi.Errors = make(map[string]Error)
	for _, field := range fields {
		switch field.Type {
		case "function", "":
			abi.AddFunction(NewFunction(field.Name, field.Inputs, field.Outputs))
		case "error":
			// Errors cannot be overloaded or overridden but are inherited,
			// no need to resolve the name conflict here.
			abi.Errors[field.Name] = NewError(field.Name, field.Inputs)
		case "constructor", "event", "fallback", "receive":
		default:
			return fmt.Errorf("abi: could not recognize type %v of field %v", field.Type, field.Name)
		}
	}
	return nil
}

// AddFunction registers fn and returns the key it is stored under.
// Overloaded functions get a numeric suffix: transfer, transfer0, ...
// AddFunction 注册函数并返回其键名，重载函数会追加数字后缀。
func (abi *ABI) AddFunction(fn Function) string {
	if abi.Functions == nil {
		abi.Functions = make(map[string]Function)
	}
	name := ResolveNameConflict(fn.Name, func(s string) bool { _, ok := abi.Functions[s]; return ok })
	abi.Functions[name] = fn
	return name
}

// AddError registers e and returns the key it is stored under. Errors with
// the same name but different inputs are suffixed like functions.
func (abi *ABI) AddError(e Error) string {
	if abi.Errors == nil {
		abi.Errors = make(map[string]Error)
	}
	name := ResolveNameConflict(e.Name, func(s string) bool { _, ok := abi.Errors[s]; return ok })
	abi.Errors[name] = e
	return name
}

// FunctionByID looks up a function by the 4-byte id.
// FunctionByID 通过 4 字节 ID 查找函数。
func (abi *ABI) FunctionByID(sigdata []byte) (*Function, error) {
	if len(sigdata) < 4 {
		return nil, fmt.Errorf("data too short (%d bytes) for abi method lookup", len(sigdata))
	}
	for _, fn := range abi.Functions {
		if bytes.Equal(fn.ID, sigdata[:4]) {
			return &fn, nil
		}
	}
	return nil, fmt.Errorf("no method with id: %#x", sigdata[:4])
}

// ErrorByID looks up an error by the 4-byte id.
// ErrorByID 通过 4 字节 ID 查找错误。
func (abi *ABI) ErrorByID(sigdata [4]byte) (*Error, error) {
	for _, errABI := range abi.Errors {
		if bytes.Equal(errABI.ID[:4], sigdata[:]) {
			return &errABI, nil
		}
	}
	return nil, fmt.Errorf("no error with id: %#x", sigdata[:])
}

var (
	// errorStringABI is the builtin Error(string) revert.
	errorStringABI = NewError("Error", Arguments{{Name: "message", Type: String}})

	// panicABI is the builtin Panic(uint256) revert.
	panicABI = NewError("Panic", Arguments{{Name: "code", Type: Uint256}})
)

// BuiltinErrors returns the errors every contract can revert with:
// Error(string) and Panic(uint256).
func BuiltinErrors() []Error {
	return []Error{errorStringABI, panicABI}
}

// panicReasons map is for readable panic codes
// see this linkage for the details
// https://docs.soliditylang.org/en/v0.8.21/control-structures.html#panic-via-assert-and-error-via-require
// the reason string list is copied from ether.js
// https://github.com/ethers-io/ethers.js/blob/fa3a883ff7c88611ce766f58bdd4b8ac90814470/src.ts/abi/interface.ts#L207-L218
var panicReasons = map[uint64]string{
	0x00: "generic panic",                                         // 通用 panic
	0x01: "assert(false)",                                         // assert(false)
	0x11: "arithmetic underflow or overflow",                      // 算术下溢或溢出
	0x12: "division or modulo by zero",                            // 除以零或模零
	0x21: "enum overflow",                                         // 枚举溢出
	0x22: "invalid encoded storage byte array accessed",           // 访问无效编码的存储字节数组
	0x31: "out-of-bounds array access; popping on an empty array", // 数组越界访问；在空数组上弹出
	0x32: "out-of-bounds access of an array or bytesN",            // 数组或 bytesN 越界访问
	0x41: "out of memory",                                         // 内存不足
	0x51: "uninitialized function",                                // 未初始化函数
}

// PanicReason returns the readable reason of a solidity panic code.
func PanicReason(code *uint256.Int) string {
	// uint64 safety check for future
	// but the code is not bigger than MAX(uint64) now
	if code.IsUint64() {
		if reason, ok := panicReasons[code.Uint64()]; ok {
			return reason
		}
	}
	return fmt.Sprintf("unknown panic code: %#x", code.ToBig())
}

// UnpackRevert resolves the abi-encoded revert reason. According to the solidity
// spec https://solidity.readthedocs.io/en/latest/control-structures.html#revert,
// the provided revert reason is abi-encoded as if it were a call to function
// `Error(string)` or `Panic(uint256)`. So it's a special tool for it.
// UnpackRevert 解析 ABI 编码的 revert 原因。
func UnpackRevert(data []byte) (string, error) {
	if len(data) < 4 {
		return "", errors.New("invalid data for unpacking")
	}
	switch {
	case bytes.Equal(data[:4], errorStringABI.ID[:4]):
		unpacked, err := errorStringABI.Unpack(data)
		if err != nil {
			return "", err
		}
		return unpacked.Index(0).Text(), nil
	case bytes.Equal(data[:4], panicABI.ID[:4]):
		unpacked, err := panicABI.Unpack(data)
		if err != nil {
			return "", err
		}
		return PanicReason(unpacked.Index(0).Uint()), nil
	default:
		return "", errors.New("invalid data for unpacking")
	}
}
