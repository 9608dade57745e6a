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
	"context"
	"errors"

	"github.com/sunyihoo/go-evmabi/accounts/abi"
	"github.com/sunyihoo/go-evmabi/common"
)

var (
	// ErrNoCode is returned by a call against a contract without runtime code.
	ErrNoCode = errors.New("no contract code to execute")

	// ErrNoRunner is returned when a bound contract has no query runner attached.
	ErrNoRunner = errors.New("no query runner attached")
)

// Stubs is a call-interception table. A call the executed code makes to one
// of the addresses runs the replacement runtime code instead of whatever is
// deployed there.
// Stubs 是调用拦截表：地址 -> 替换的运行时代码。
type Stubs map[common.Address][]byte

// Copy returns an independent copy of the table.
func (s Stubs) Copy() Stubs {
	if s == nil {
		return nil
	}
	cpy := make(Stubs, len(s))
	for addr, code := range s {
		cpy[addr] = common.CopyBytes(code)
	}
	return cpy
}

// QueryRunner executes a read-only call against a piece of runtime code in an
// EVM. Implementations are provided by the caller: a local simulator, a node
// reached over RPC, or a scripted fake in tests.
//
// On success RunQuery returns the raw return data. When the execution reverts
// it returns a *RevertError; DecodeRevert builds one from the revert data and
// the errors the caller declared. Any other failure is returned as a plain
// error.
// QueryRunner 在 EVM 中针对运行时代码执行只读调用。
type QueryRunner interface {
	RunQuery(ctx context.Context, code []byte, call []byte, errs []abi.Error, stubs Stubs) ([]byte, error)
}

// QueryRunnerFunc adapts a plain function to the QueryRunner interface.
type QueryRunnerFunc func(ctx context.Context, code []byte, call []byte, errs []abi.Error, stubs Stubs) ([]byte, error)

// RunQuery calls f.
func (f QueryRunnerFunc) RunQuery(ctx context.Context, code []byte, call []byte, errs []abi.Error, stubs Stubs) ([]byte, error) {
	return f(ctx, code, call, errs, stubs)
}
