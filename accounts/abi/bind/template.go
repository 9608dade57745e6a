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
	_ "embed"
)

// tmplData is the data structure required to fill the binding template.
// tmplData 是填充绑定模板所需的数据结构。
type tmplData struct {
	Package   string          // Name of the package to place the generated file in
	Contracts []*tmplContract // List of contracts to generate into this file
}

// tmplContract contains the data needed to generate an individual contract binding.
// tmplContract 包含生成单个合约绑定所需的数据。
type tmplContract struct {
	Type      string          // Type name of the main contract binding
	Code      string          // Hex encoded runtime code the calls execute against
	Sigs      []string        // Human readable function declarations, in key order
	ErrorSigs []string        // Human readable error declarations, in key order
	Functions []*tmplFunction // Contract functions
	Errors    []*tmplError    // Declared errors, one revert struct each
}

// identifiers lists the top level Go identifiers the contract binding declares.
func (c *tmplContract) identifiers() []string {
	idents := []string{c.Type, c.Type + "MetaData", "New" + c.Type, c.Type + "Revert", "Decode" + c.Type + "Revert"}
	for _, fn := range c.Functions {
		if fn.Structured {
			idents = append(idents, fn.RetType)
		}
		idents = append(idents, "convert"+c.Type+fn.Name)
	}
	for _, e := range c.Errors {
		idents = append(idents, e.Name)
	}
	return idents
}

// tmplFunction is a contract function with its names and types resolved for
// the Go binding.
type tmplFunction struct {
	Key        string       // Key of the function in the parsed ABI
	Name       string       // Normalized Go method suffix
	Sig        string       // Canonical signature, e.g. transfer(address,uint256)
	Inputs     []*tmplParam // Call parameters
	Outputs    []*tmplParam // Return values
	Structured bool         // Whether the returns are accumulated into a struct
	RetType    string       // Go type Unpack and Call return, empty without outputs
}

// tmplError is a declared error with its fields resolved for the Go binding.
type tmplError struct {
	Name   string       // Go struct name
	Raw    string       // Error name as declared
	Sig    string       // Canonical signature
	Fields []*tmplParam // Struct fields, one per error argument
}

// tmplParam is a parameter, return value or struct field with its Go type and
// the expressions converting it to and from abi.Value.
type tmplParam struct {
	Name      string // Go identifier
	Type      string // Go type
	ToValue   string // Expression converting Name into an abi.Value
	FromValue string // Expression converting the decoded abi.Value into Type
}

// tmplSourceGo is the Go source template that the generated Go contract binding
// is based on.
// tmplSourceGo 是生成的 Go 合约绑定所基于的 Go 源代码模板。
//
//go:embed source.go.tpl
var tmplSourceGo string
