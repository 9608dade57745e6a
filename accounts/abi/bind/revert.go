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


package bind

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sunyihoo/go-evmabi/accounts/abi"
	"github.com/sunyihoo/go-evmabi/common"
	"github.com/sunyihoo/go-evmabi/common/hexutil"
)

// RevertError is returned by a QueryRunner when the executed code reverted.
// Match is the declared (or builtin) error whose selector and layout fit the
// revert data, nil if none did.
// RevertError 表示执行被回滚；Match 为匹配的错误声明，未匹配时为 nil。
type RevertError struct {
	Data  []byte     // raw revert data, selector included
	Match *abi.Error // matched error declaration
	Value abi.Value  // decoded error arguments as a tuple, valid if Match != nil
}

// DecodeRevert resolves revert data against the declared errors. The builtin
// Error(string) and Panic(uint256) reverts are always recognised. A selector
// match whose arguments fail to decode is treated as unmatched.
func DecodeRevert(data []byte, errs []abi.Error) *RevertError {
	rev := &RevertError{Data: common.CopyBytes(data)}
	if len(data) < 4 {
		return rev
	}
	known := append(append([]abi.Error{}, errs...), abi.BuiltinErrors()...)
	for i := range known {
		value, err := known[i].Unpack(data)
		if err != nil {
			continue
		}
		rev.Match, rev.Value = &known[i], value
		break
	}
	return rev
}

// Error implements the error interface.
func (e *RevertError) Error() string {
	if reason, err := abi.UnpackRevert(e.Data); err == nil {
		return "execution reverted: " + reason
	}
	switch {
	case e.Match != nil:
		return "execution reverted: " + e.Match.Name + e.Value.String()
	case len(e.Data) > 0:
		return fmt.Sprintf("execution reverted: %#x", e.Data)
	default:
		return "execution reverted"
	}
}

// ErrorCode returns the JSON-RPC error code of a revert.
func (e *RevertError) ErrorCode() int { return 3 }

// ErrorData returns the hex encoded revert data.
func (e *RevertError) ErrorData() interface{} { return hexutil.Encode(e.Data) }

// revertDump renders decoded revert values. Addresses are dropped so that the
// output is stable across runs.
var revertDump = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// UnknownRevert is the fallback revert reason of generated bindings: the
// revert was not one of the errors the contract declared. Name is the
// matched error name (Error, Panic), or the hex selector if nothing matched.
// Value is a textual dump of the decoded arguments or the raw data.
// UnknownRevert 是生成绑定中的兜底回滚原因。
type UnknownRevert struct {
	Name  string
	Value string
}

// NewUnknownRevert describes a revert that a binding could not map onto one
// of its declared errors.
func NewUnknownRevert(rev *RevertError) UnknownRevert {
	if rev.Match != nil {
		return UnknownRevert{Name: rev.Match.Name, Value: revertDump.Sprint(rev.Value)}
	}
	name := "unknown"
	if len(rev.Data) >= 4 {
		name = hexutil.Encode(rev.Data[:4])
	}
	return UnknownRevert{Name: name, Value: strings.TrimSpace(revertDump.Sdump(rev.Data))}
}

// RevertName returns the name of the revert reason.
func (u UnknownRevert) RevertName() string { return u.Name }

func (u UnknownRevert) String() string {
	return u.Name + ": " + u.Value
}
