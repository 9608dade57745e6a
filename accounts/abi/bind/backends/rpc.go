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


package backends

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sunyihoo/go-evmabi/accounts/abi"
	"github.com/sunyihoo/go-evmabi/accounts/abi/bind"
	"github.com/sunyihoo/go-evmabi/common"
	"github.com/sunyihoo/go-evmabi/common/hexutil"
	"github.com/sunyihoo/go-evmabi/log"
	"github.com/sunyihoo/go-evmabi/rpc"
)

// DefaultTarget is the address the runtime code is installed at for a call.
var DefaultTarget = common.HexToAddress("0x00000000000000000000000000000000000c0de0")

// This ensures RPCRunner implements bind.QueryRunner.
var _ bind.QueryRunner = (*RPCRunner)(nil)

// RPCRunner executes queries with eth_call on a node. The runtime code and
// the stubs are installed through the call's state override set, so the
// contract never has to be deployed.
// RPCRunner 通过节点的 eth_call 执行查询，代码和桩通过状态覆盖注入。
type RPCRunner struct {
	client *rpc.Client

	Target common.Address  // address the code runs at
	From   *common.Address // optional caller
	Block  rpc.BlockNumber // state the call runs against
}

// NewRPCRunner creates a runner on top of an RPC client.
func NewRPCRunner(client *rpc.Client) *RPCRunner {
	return &RPCRunner{client: client, Target: DefaultTarget, Block: rpc.LatestBlockNumber}
}

// DialRPCRunner connects to the given endpoint and creates a runner on it.
// The options are passed on to the RPC client, e.g. extra HTTP headers.
func DialRPCRunner(ctx context.Context, rawurl string, opts ...rpc.ClientOption) (*RPCRunner, error) {
	client, err := rpc.DialOptions(ctx, rawurl, opts...)
	if err != nil {
		return nil, err
	}
	return NewRPCRunner(client), nil
}

// Close closes the underlying RPC client.
func (r *RPCRunner) Close() {
	r.client.Close()
}

// callArgs is the transaction object of an eth_call.
type callArgs struct {
	From  *common.Address `json:"from,omitempty"`
	To    common.Address  `json:"to"`
	Input hexutil.Bytes   `json:"input"`
}

// overrideAccount is one entry of an eth_call state override set.
type overrideAccount struct {
	Code hexutil.Bytes `json:"code"`
}

// RunQuery implements bind.QueryRunner.
func (r *RPCRunner) RunQuery(ctx context.Context, code []byte, call []byte, errs []abi.Error, stubs bind.Stubs) ([]byte, error) {
	if len(code) == 0 {
		return nil, bind.ErrNoCode
	}
	if _, ok := stubs[r.Target]; ok {
		return nil, fmt.Errorf("stub collides with call target %v", r.Target)
	}
	overrides := make(map[common.Address]overrideAccount, len(stubs)+1)
	overrides[r.Target] = overrideAccount{Code: code}
	for addr, stub := range stubs {
		overrides[addr] = overrideAccount{Code: stub}
	}
	args := callArgs{From: r.From, To: r.Target, Input: call}

	var result hexutil.Bytes
	err := r.client.CallContext(ctx, &result, "eth_call", args, r.Block, overrides)
	if err == nil {
		return result, nil
	}
	if data, ok := revertData(err); ok {
		rev := bind.DecodeRevert(data, errs)
		log.Trace("Query reverted", "target", r.Target, "data", data, "match", rev.Match != nil)
		return nil, rev
	}
	return nil, err
}

// revertData extracts the revert data a node attached to a failed call.
// Nodes answer a revert with code 3 and the data in hex; some report it with
// the generic code and an "execution reverted" message only.
func revertData(err error) ([]byte, bool) {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if s, ok := dataErr.ErrorData().(string); ok {
			if data, err := hexutil.Decode(s); err == nil {
				return data, true
			}
		}
	}
	if rpc.IsRevert(err) || strings.HasPrefix(err.Error(), "execution reverted") {
		return nil, true
	}
	return nil, false
}
