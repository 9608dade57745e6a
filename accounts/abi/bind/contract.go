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
	"time"

	"github.com/sunyihoo/go-evmabi/accounts/abi"
	"github.com/sunyihoo/go-evmabi/common"
	"github.com/sunyihoo/go-evmabi/log"
)

// BoundContract is the base wrapper object that reflects a contract's runtime
// code together with the errors it may revert with. It offers the encode, run
// and decode cycle that generated bindings build on.
// BoundContract 是反映合约运行时代码及其错误声明的基础包装对象。
type BoundContract struct {
	Code   []byte      // runtime code the calls execute against
	Errors []abi.Error // declared errors, builtins are implied
	Runner QueryRunner // EVM the calls are executed in
	Stubs  Stubs       // call interception table handed to the runner
}

// NewBoundContract creates a low level contract interface through which calls
// can be made.
func NewBoundContract(code []byte, errs []abi.Error, runner QueryRunner, stubs Stubs) *BoundContract {
	return &BoundContract{
		Code:   common.CopyBytes(code),
		Errors: errs,
		Runner: runner,
		Stubs:  stubs,
	}
}

// Call encodes the arguments, runs fn against the contract code and decodes
// the returned data. A revert is a result rather than a failure: it is
// returned as revert with a nil error. err is set when the call could not be
// encoded, run or decoded.
//
// The call runs exactly once. It carries no timeout of its own, ctx bounds it.
func (c *BoundContract) Call(ctx context.Context, fn abi.Function, args ...abi.Value) (out []abi.Value, revert *RevertError, err error) {
	if c.Runner == nil {
		return nil, nil, ErrNoRunner
	}
	if len(c.Code) == 0 {
		return nil, nil, ErrNoCode
	}
	input, err := fn.Pack(args...)
	if err != nil {
		return nil, nil, err
	}
	var (
		logger = log.New("fn", fn.Sig)
		start  = time.Now()
	)
	logger.Trace("Running contract query", "input", input, "stubs", len(c.Stubs))

	output, err := c.Runner.RunQuery(ctx, c.Code, input, c.Errors, c.Stubs)
	if err != nil {
		var rev *RevertError
		if errors.As(err, &rev) {
			logger.Debug("Contract query reverted", "reason", rev, "elapsed", common.PrettyDuration(time.Since(start)))
			return nil, rev, nil
		}
		logger.Debug("Contract query failed", "err", err, "elapsed", common.PrettyDuration(time.Since(start)))
		return nil, nil, err
	}
	out, err = fn.Unpack(output)
	if err != nil {
		logger.Debug("Failed to decode query result", "output", output, "err", err)
		return nil, nil, err
	}
	logger.Trace("Contract query done", "elapsed", common.PrettyDuration(time.Since(start)))
	return out, nil, nil
}

// Revert is a convenience for generated code: it resolves raw revert data
// against the contract's declared errors.
func (c *BoundContract) Revert(data []byte) *RevertError {
	return DecodeRevert(data, c.Errors)
}
