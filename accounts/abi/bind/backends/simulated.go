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
	"sync"

	"github.com/sunyihoo/go-evmabi/accounts/abi"
	"github.com/sunyihoo/go-evmabi/accounts/abi/bind"
	"github.com/sunyihoo/go-evmabi/common"
	"github.com/sunyihoo/go-evmabi/crypto"
)

// Handler implements one function of a simulated contract. It receives the
// decoded call arguments and the stubs of the call, and returns the values to
// encode as return data. Returning a *Revert makes the call revert.
type Handler func(args []abi.Value, stubs bind.Stubs) ([]abi.Value, error)

// Revert is returned by a Handler to revert with a declared error.
type Revert struct {
	Decl abi.Error
	Args []abi.Value
}

func (r *Revert) Error() string {
	return "revert " + r.Decl.Sig
}

// This ensures SimulatedRunner implements bind.QueryRunner.
var _ bind.QueryRunner = (*SimulatedRunner)(nil)

// SimulatedRunner is a bind.QueryRunner that executes no bytecode. Functions
// are scripted in Go per piece of runtime code, which makes it useful for
// testing bindings without an EVM.
// SimulatedRunner 不执行字节码，而是按运行时代码用 Go 脚本化函数，便于测试绑定。
type SimulatedRunner struct {
	mu        sync.RWMutex
	contracts map[common.Hash]map[[4]byte]simulatedFunction
	calls     int
}

type simulatedFunction struct {
	fn      abi.Function
	handler Handler
}

// NewSimulatedRunner creates an empty simulated runner.
func NewSimulatedRunner() *SimulatedRunner {
	return &SimulatedRunner{contracts: make(map[common.Hash]map[[4]byte]simulatedFunction)}
}

// Handle scripts fn for the given runtime code.
func (s *SimulatedRunner) Handle(code []byte, fn abi.Function, handler Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := crypto.Keccak256Hash(code)
	if s.contracts[key] == nil {
		s.contracts[key] = make(map[[4]byte]simulatedFunction)
	}
	s.contracts[key][fn.Selector()] = simulatedFunction{fn: fn, handler: handler}
}

// Calls returns the number of queries run so far.
func (s *SimulatedRunner) Calls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls
}

// RunQuery implements bind.QueryRunner.
func (s *SimulatedRunner) RunQuery(ctx context.Context, code []byte, call []byte, errs []abi.Error, stubs bind.Stubs) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(code) == 0 {
		return nil, bind.ErrNoCode
	}
	if len(call) < 4 {
		// Calls without a selector hit the fallback, which reverts empty.
		return nil, bind.DecodeRevert(nil, errs)
	}
	s.mu.Lock()
	s.calls++
	sim, ok := s.contracts[crypto.Keccak256Hash(code)][[4]byte(call[:4])]
	s.mu.Unlock()
	if !ok {
		return nil, bind.DecodeRevert(nil, errs)
	}
	args, err := sim.fn.UnpackInput(call)
	if err != nil {
		return nil, bind.DecodeRevert(nil, errs)
	}
	out, err := sim.handler(args, stubs)
	if err != nil {
		var rev *Revert
		if !errors.As(err, &rev) {
			return nil, err
		}
		data, err := rev.Decl.Pack(rev.Args...)
		if err != nil {
			return nil, fmt.Errorf("invalid revert %s: %w", rev.Decl.Sig, err)
		}
		return nil, bind.DecodeRevert(data, errs)
	}
	return sim.fn.Outputs.Pack(out...)
}
