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
	"bufio"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/naoina/toml"
	"github.com/sunyihoo/go-evmabi/accounts/abi"
)

// Contract is one entry of a binding table: a contract's runtime code and
// the human readable declarations of the functions and errors bound to it.
//
//	[[Contracts]]
//	Name = "Token"
//	Code = "0x6080..."
//	Functions = ["balanceOf(address owner) view returns (uint256)"]
//	Errors = ["InsufficientBalance(uint256 available, uint256 required)"]
//
// Contract 是绑定表中的一项：合约运行时代码以及函数和错误的声明。
type Contract struct {
	Name      string
	Code      string            `toml:",omitempty"`
	Functions []string          `toml:",omitempty"`
	Errors    []string          `toml:",omitempty"`
	Aliases   map[string]string `toml:",omitempty"` // function key -> Go method name
}

// Table is the declarative input of the binding generator.
type Table struct {
	Package   string `toml:",omitempty"`
	Contracts []*Contract
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// LoadTable decodes a TOML binding table.
func LoadTable(r io.Reader) (*Table, error) {
	var table Table
	if err := tomlSettings.NewDecoder(bufio.NewReader(r)).Decode(&table); err != nil {
		return nil, err
	}
	if len(table.Contracts) == 0 {
		return nil, errors.New("binding table declares no contracts")
	}
	return &table, nil
}

// ContractFromABI builds a table entry from a Solidity JSON ABI. Functions
// and errors are listed in the order of their resolved names.
func ContractFromABI(name string, r io.Reader, code string) (*Contract, error) {
	parsed, err := abi.JSON(r)
	if err != nil {
		return nil, err
	}
	contract := &Contract{Name: name, Code: code}
	for _, key := range sortedKeys(parsed.Functions) {
		contract.Functions = append(contract.Functions, parsed.Functions[key].String())
	}
	for _, key := range sortedKeys(parsed.Errors) {
		contract.Errors = append(contract.Errors, parsed.Errors[key].String())
	}
	return contract, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParsedContract is a contract with its declarations parsed and its code
// decoded. Functions and Errors hold the ABI keys in declaration order.
type ParsedContract struct {
	Name      string
	Code      []byte
	ABI       abi.ABI
	Functions []string
	Errors    []string
}

// Parse decodes the code and declarations of the contract. Two functions, or
// two errors, sharing a selector are rejected.
func (c *Contract) Parse() (*ParsedContract, error) {
	code, err := ParseCode(c.Code)
	if err != nil {
		return nil, fmt.Errorf("contract %s: %v", c.Name, err)
	}
	parsed := &ParsedContract{
		Name: c.Name,
		Code: code,
		ABI:  abi.ABI{Functions: make(map[string]abi.Function), Errors: make(map[string]abi.Error)},
	}
	selectors := mapset.NewThreadUnsafeSet[[4]byte]()
	for _, sig := range c.Functions {
		fn, err := abi.ParseSignature(sig)
		if err != nil {
			return nil, fmt.Errorf("contract %s: %v", c.Name, err)
		}
		if !selectors.Add(fn.Selector()) {
			return nil, fmt.Errorf("contract %s: function %s selector %#x collides with an earlier declaration", c.Name, fn.Sig, fn.ID)
		}
		parsed.Functions = append(parsed.Functions, parsed.ABI.AddFunction(fn))
	}
	selectors.Clear()
	for _, sig := range c.Errors {
		e, err := abi.ParseError(sig)
		if err != nil {
			return nil, fmt.Errorf("contract %s: %v", c.Name, err)
		}
		if sel := e.Selector(); !selectors.Add(sel) {
			return nil, fmt.Errorf("contract %s: error %s selector %#x collides with an earlier declaration", c.Name, e.Sig, sel)
		}
		parsed.Errors = append(parsed.Errors, parsed.ABI.AddError(e))
	}
	return parsed, nil
}

// ErrorList returns the declared errors in declaration order.
func (p *ParsedContract) ErrorList() []abi.Error {
	errs := make([]abi.Error, len(p.Errors))
	for i, key := range p.Errors {
		errs[i] = p.ABI.Errors[key]
	}
	return errs
}

// Bind attaches the parsed contract to a query runner.
func (p *ParsedContract) Bind(runner QueryRunner, stubs Stubs) *BoundContract {
	return NewBoundContract(p.Code, p.ErrorList(), runner, stubs)
}

// MetaData collects all metadata for a bound contract. Generated bindings
// declare one per contract; the declarations are parsed on first use.
// MetaData 收集绑定合约的所有元数据，首次使用时解析。
type MetaData struct {
	mu     sync.Mutex
	Name   string
	Code   string
	Sigs   []string
	Errors []string
	parsed *ParsedContract
}

// Parse returns the parsed contract, parsing it on the first call.
func (m *MetaData) Parse() (*ParsedContract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.parsed != nil {
		return m.parsed, nil
	}
	contract := &Contract{Name: m.Name, Code: m.Code, Functions: m.Sigs, Errors: m.Errors}
	parsed, err := contract.Parse()
	if err != nil {
		return nil, err
	}
	m.parsed = parsed
	return m.parsed, nil
}
