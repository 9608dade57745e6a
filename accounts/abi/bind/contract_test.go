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
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-evmabi/accounts/abi"
	"github.com/sunyihoo/go-evmabi/common"
)

var (
	errorString = abi.BuiltinErrors()[0]
	panicError  = abi.BuiltinErrors()[1]
)

func mustParseError(t *testing.T, sig string) abi.Error {
	t.Helper()
	e, err := abi.ParseError(sig)
	require.NoError(t, err)
	return e
}

func mustParseFunction(t *testing.T, sig string) abi.Function {
	t.Helper()
	fn, err := abi.ParseSignature(sig)
	require.NoError(t, err)
	return fn
}

func TestDecodeRevertBuiltin(t *testing.T) {
	data, err := errorString.Pack(abi.StringValue("boom"))
	require.NoError(t, err)

	rev := DecodeRevert(data, nil)
	require.NotNil(t, rev.Match)
	require.Equal(t, "Error", rev.Match.Name)
	require.Equal(t, "boom", rev.Value.Index(0).Text())
	require.Equal(t, "execution reverted: boom", rev.Error())

	data, err = panicError.Pack(abi.Uint64Value(0x11))
	require.NoError(t, err)
	rev = DecodeRevert(data, nil)
	require.Equal(t, "Panic", rev.Match.Name)
	require.Equal(t, "execution reverted: arithmetic underflow or overflow", rev.Error())
}

func TestDecodeRevertDeclared(t *testing.T) {
	// The revert payload of a failed cross-contract call keeps its bytes
	// argument intact.
	callFailed := mustParseError(t, "CallFailed(uint256 index, address target, bytes reason)")
	target := common.HexToAddress("0x1111111111111111111111111111111111111111")
	args := []abi.Value{abi.Uint64Value(2), abi.AddressValue(target), abi.BytesValue([]byte{0xde, 0xad, 0xbe, 0xef})}
	data, err := callFailed.Pack(args...)
	require.NoError(t, err)

	rev := DecodeRevert(data, []abi.Error{callFailed})
	require.NotNil(t, rev.Match, spew.Sdump(rev))
	require.Equal(t, callFailed.Sig, rev.Match.Sig)
	require.True(t, rev.Value.Equal(abi.TupleValue(args...)), rev.Value.String())
	require.Equal(t, data, rev.Data)
	require.Equal(t, 3, rev.ErrorCode())
	require.Equal(t, "0x"+common.Bytes2Hex(data), rev.ErrorData())

	// Undeclared, the same data is not matched.
	rev = DecodeRevert(data, nil)
	require.Nil(t, rev.Match)
	require.Contains(t, rev.Error(), "execution reverted: 0x")
}

func TestDecodeRevertCorrupt(t *testing.T) {
	callFailed := mustParseError(t, "CallFailed(uint256 index, address target, bytes reason)")
	data, err := callFailed.Pack(abi.Uint64Value(2), abi.AddressValue(common.Address{}), abi.BytesValue(nil))
	require.NoError(t, err)

	// A matching selector over truncated arguments is not a match.
	rev := DecodeRevert(data[:36], []abi.Error{callFailed})
	require.Nil(t, rev.Match)

	rev = DecodeRevert(nil, []abi.Error{callFailed})
	require.Nil(t, rev.Match)
	require.Equal(t, "execution reverted", rev.Error())
}

func TestUnknownRevert(t *testing.T) {
	data, err := errorString.Pack(abi.StringValue("boom"))
	require.NoError(t, err)
	u := NewUnknownRevert(DecodeRevert(data, nil))
	require.Equal(t, "Error", u.RevertName())
	require.Contains(t, u.Value, `"boom"`)

	u = NewUnknownRevert(DecodeRevert([]byte{0xde, 0xad, 0xbe, 0xef, 0x01}, nil))
	require.Equal(t, "0xdeadbeef", u.Name)
	require.Contains(t, u.Value, "de ad be ef 01")
	require.Contains(t, u.String(), "0xdeadbeef: ")

	u = NewUnknownRevert(DecodeRevert(nil, nil))
	require.Equal(t, "unknown", u.Name)
}

func TestBoundContractCall(t *testing.T) {
	var (
		code    = []byte{0x60, 0x00}
		fn      = mustParseFunction(t, "balanceOf(address owner) returns (uint256)")
		owner   = common.HexToAddress("0x2222222222222222222222222222222222222222")
		gotCode []byte
		gotCall []byte
	)
	runner := QueryRunnerFunc(func(ctx context.Context, c []byte, call []byte, errs []abi.Error, stubs Stubs) ([]byte, error) {
		gotCode, gotCall = c, call
		return fn.Outputs.Pack(abi.UintValue(uint256.NewInt(1000)))
	})
	contract := NewBoundContract(code, nil, runner, nil)
	out, rev, err := contract.Call(context.Background(), fn, abi.AddressValue(owner))
	require.NoError(t, err)
	require.Nil(t, rev)
	require.Equal(t, uint64(1000), out[0].Uint().Uint64())
	require.Equal(t, code, gotCode)

	args, err := fn.UnpackInput(gotCall)
	require.NoError(t, err)
	require.Equal(t, owner, args[0].Address())
}

func TestBoundContractRevert(t *testing.T) {
	insufficient := mustParseError(t, "Insufficient(uint256 available, uint256 required)")
	fn := mustParseFunction(t, "withdraw(uint256)")
	runner := QueryRunnerFunc(func(ctx context.Context, code []byte, call []byte, errs []abi.Error, stubs Stubs) ([]byte, error) {
		data, err := insufficient.Pack(abi.Uint64Value(1), abi.Uint64Value(2))
		if err != nil {
			return nil, err
		}
		return nil, DecodeRevert(data, errs)
	})
	contract := NewBoundContract([]byte{0x00}, []abi.Error{insufficient}, runner, nil)
	out, rev, err := contract.Call(context.Background(), fn, abi.Uint64Value(2))
	require.NoError(t, err)
	require.Nil(t, out)
	require.Equal(t, "Insufficient", rev.Match.Name)
	require.Equal(t, contract.Revert(rev.Data).Value.String(), rev.Value.String())
}

func TestBoundContractFailure(t *testing.T) {
	fn := mustParseFunction(t, "total()(uint256)")
	failure := errors.New("node unavailable")
	runner := QueryRunnerFunc(func(context.Context, []byte, []byte, []abi.Error, Stubs) ([]byte, error) {
		return nil, failure
	})
	_, rev, err := NewBoundContract([]byte{0x00}, nil, runner, nil).Call(context.Background(), fn)
	require.ErrorIs(t, err, failure)
	require.Nil(t, rev)

	_, _, err = NewBoundContract(nil, nil, runner, nil).Call(context.Background(), fn)
	require.ErrorIs(t, err, ErrNoCode)

	_, _, err = NewBoundContract([]byte{0x00}, nil, nil, nil).Call(context.Background(), fn)
	require.ErrorIs(t, err, ErrNoRunner)

	// Bad arguments never reach the runner.
	_, _, err = NewBoundContract([]byte{0x00}, nil, runner, nil).Call(context.Background(), fn, abi.BoolValue(true))
	require.ErrorIs(t, err, abi.ErrTypeMismatch)

	// Return data that does not fit the outputs is a decoding failure.
	short := QueryRunnerFunc(func(context.Context, []byte, []byte, []abi.Error, Stubs) ([]byte, error) {
		return []byte{0x01}, nil
	})
	_, _, err = NewBoundContract([]byte{0x00}, nil, short, nil).Call(context.Background(), fn)
	require.ErrorIs(t, err, abi.ErrMismatchedType)
}
