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


// Package bind runs ABI encoded calls against contract runtime code and
// generates typed Go bindings from a declarative contract table.
package bind

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sunyihoo/go-evmabi/accounts/abi"
	"github.com/sunyihoo/go-evmabi/common/hexutil"
	"github.com/sunyihoo/go-evmabi/log"
)

func isKeyWord(arg string) bool {
	switch arg {
	case "break":
	case "case":
	case "chan":
	case "const":
	case "continue":
	case "default":
	case "defer":
	case "else":
	case "fallthrough":
	case "for":
	case "func":
	case "go":
	case "goto":
	case "if":
	case "import":
	case "interface":
	case "iota":
	case "map":
	case "make":
	case "new":
	case "package":
	case "range":
	case "return":
	case "select":
	case "struct":
	case "switch":
	case "type":
	case "var":
	default:
		return false
	}
	return true
}

// isReserved reports whether a parameter name would shadow an identifier the
// generated method bodies rely on.
func isReserved(arg string) bool {
	switch arg {
	case "c", "ctx", "data", "out", "ret", "rev", "revert", "err",
		"abi", "bind", "big", "common", "context", "uint256":
		return true
	}
	return isKeyWord(arg)
}

// Bind generates a Go wrapper around the given contracts. The wrapper is not
// meant to be used as is in client code, but rather as an intermediate layer
// which enforces compile time type safety and naming convention as opposed to
// having to manually maintain hard coded signatures that break on runtime.
// Bind 为给定合约生成 Go 包装器，强制编译期类型安全和命名约定。
func Bind(contracts []*Contract, pkg string) (string, error) {
	var (
		data = &tmplData{Package: pkg}

		// types tracks the top level identifiers across all contracts
		// types 记录所有合约生成的顶层标识符，用于检测冲突
		types = mapset.NewThreadUnsafeSet[string]()
	)
	for _, contract := range contracts {
		parsed, err := contract.Parse()
		if err != nil {
			return "", err
		}
		tc, err := bindContract(contract, parsed)
		if err != nil {
			return "", err
		}
		for _, ident := range tc.identifiers() {
			if !types.Add(ident) {
				return "", fmt.Errorf("duplicated identifier \"%s\" in contract %s, use aliases for renaming", ident, contract.Name)
			}
		}
		log.Debug("Bound contract", "type", tc.Type, "functions", len(tc.Functions), "errors", len(tc.Errors))
		data.Contracts = append(data.Contracts, tc)
	}
	buffer := new(bytes.Buffer)

	funcs := map[string]interface{}{
		"capitalise":   capitalise,
		"decapitalise": decapitalise,
	}
	tmpl := template.Must(template.New("").Funcs(funcs).Parse(tmplSourceGo))
	if err := tmpl.Execute(buffer, data); err != nil {
		return "", err
	}
	// Pass the code through gofmt to clean it up
	code, err := format.Source(buffer.Bytes())
	if err != nil {
		return "", fmt.Errorf("%v\n%s", err, buffer)
	}
	return string(code), nil
}

// bindContract converts a parsed contract into its template form.
func bindContract(contract *Contract, parsed *ParsedContract) (*tmplContract, error) {
	typ := capitalise(contract.Name)
	if typ == "" || !unicode.IsLetter(rune(typ[0])) {
		return nil, fmt.Errorf("invalid contract name %q", contract.Name)
	}
	tc := &tmplContract{
		Type:      typ,
		Code:      hexutil.Encode(parsed.Code),
		Sigs:      make([]string, 0, len(parsed.Functions)),
		ErrorSigs: make([]string, 0, len(parsed.Errors)),
	}
	// identifiers is used to detect duplicated method names. Overloaded
	// functions were already suffixed by the parser, this catches the
	// collisions introduced by normalisation (transfer vs Transfer).
	identifiers := mapset.NewThreadUnsafeSet[string]()
	for _, key := range parsed.Functions {
		original := parsed.ABI.Functions[key]
		tc.Sigs = append(tc.Sigs, original.String())

		name := capitalise(alias(contract.Aliases, key))
		// Name shouldn't start with a digit. It will make the generated code invalid.
		if len(name) > 0 && unicode.IsDigit(rune(name[0])) {
			name = abi.ResolveNameConflict(fmt.Sprintf("M%s", name), func(s string) bool { return identifiers.Contains(s) })
		}
		if !identifiers.Add(name) {
			return nil, fmt.Errorf("duplicated identifier \"%s\"(normalized \"%s\"), use aliases for renaming", key, name)
		}
		fn := &tmplFunction{
			Key:  key,
			Name: name,
			Sig:  original.Sig,
		}
		for j, input := range original.Inputs {
			param := input.Name
			if param == "" || isReserved(param) {
				param = fmt.Sprintf("arg%d", j)
			}
			fn.Inputs = append(fn.Inputs, &tmplParam{
				Name:    param,
				Type:    bindTypeGo(input.Type),
				ToValue: toValueGo(input.Type, param),
			})
		}
		fields := make(map[string]bool)
		for j, output := range original.Outputs {
			field := capitalise(output.Name)
			if field == "" {
				field = fmt.Sprintf("Ret%d", j)
			}
			field = abi.ResolveNameConflict(field, func(s string) bool { return fields[s] })
			fields[field] = true
			fn.Outputs = append(fn.Outputs, &tmplParam{
				Name:      field,
				Type:      bindTypeGo(output.Type),
				FromValue: fromValueGo(output.Type, fmt.Sprintf("out[%d]", j)),
			})
		}
		switch len(fn.Outputs) {
		case 0:
		case 1:
			fn.RetType = fn.Outputs[0].Type
		default:
			fn.Structured = true
			fn.RetType = typ + name + "Output"
		}
		tc.Functions = append(tc.Functions, fn)
	}
	for _, key := range parsed.Errors {
		e := parsed.ABI.Errors[key]
		tc.ErrorSigs = append(tc.ErrorSigs, e.String())

		te := &tmplError{
			Name: typ + capitalise(key),
			Raw:  e.Name,
			Sig:  e.Sig,
		}
		// RevertName is the method every error struct carries.
		fields := map[string]bool{"RevertName": true}
		for j, input := range e.Inputs {
			field := abi.ResolveNameConflict(capitalise(input.Name), func(s string) bool { return fields[s] })
			fields[field] = true
			te.Fields = append(te.Fields, &tmplParam{
				Name:      field,
				Type:      bindTypeGo(input.Type),
				FromValue: fromValueGo(input.Type, fmt.Sprintf("rev.Value.Index(%d)", j)),
			})
		}
		tc.Errors = append(tc.Errors, te)
	}
	return tc, nil
}

// bindTypeGo converts an ABI type to the Go type a binding exposes it as.
// Integers of any width are carried in their full 256 bit form, composite
// types are handed through as abi.Value.
// bindTypeGo 将 ABI 类型转换为 Go 类型。
func bindTypeGo(kind abi.Type) string {
	switch kind.T {
	case abi.UintTy:
		return "*uint256.Int"
	case abi.IntTy:
		return "*big.Int"
	case abi.AddressTy:
		return "common.Address"
	case abi.BoolTy:
		return "bool"
	case abi.StringTy:
		return "string"
	case abi.BytesTy:
		return "[]byte"
	case abi.FixedBytesTy:
		return fmt.Sprintf("[%d]byte", kind.Size)
	default:
		// arrays, slices and tuples
		return "abi.Value"
	}
}

// toValueGo returns the Go expression converting the variable name of the
// bound type into an abi.Value.
func toValueGo(kind abi.Type, name string) string {
	switch kind.T {
	case abi.UintTy:
		return fmt.Sprintf("abi.UintValue(%s)", name)
	case abi.IntTy:
		return fmt.Sprintf("abi.IntValue(%s)", name)
	case abi.AddressTy:
		return fmt.Sprintf("abi.AddressValue(%s)", name)
	case abi.BoolTy:
		return fmt.Sprintf("abi.BoolValue(%s)", name)
	case abi.StringTy:
		return fmt.Sprintf("abi.StringValue(%s)", name)
	case abi.BytesTy:
		return fmt.Sprintf("abi.BytesValue(%s)", name)
	case abi.FixedBytesTy:
		return fmt.Sprintf("abi.FixedBytesValue(%s[:])", name)
	default:
		return name
	}
}

// fromValueGo returns the Go expression converting the abi.Value expression
// expr into the bound type.
func fromValueGo(kind abi.Type, expr string) string {
	switch kind.T {
	case abi.UintTy:
		return expr + ".Uint()"
	case abi.IntTy:
		return expr + ".Int()"
	case abi.AddressTy:
		return expr + ".Address()"
	case abi.BoolTy:
		return expr + ".Bool()"
	case abi.StringTy:
		return expr + ".Text()"
	case abi.BytesTy:
		return expr + ".Bytes()"
	case abi.FixedBytesTy:
		return fmt.Sprintf("[%d]byte(%s.Bytes())", kind.Size, expr)
	default:
		return expr
	}
}

// alias returns an alias of the given string based on the aliasing rules
// or returns itself if no rule is matched.
func alias(aliases map[string]string, n string) string {
	if alias, exist := aliases[n]; exist {
		return alias
	}
	return n
}

// capitalise makes a camel-case string which starts with an upper case character.
var capitalise = abi.ToCamelCase

// decapitalise makes a camel-case string which starts with a lower case character.
func decapitalise(input string) string {
	if len(input) == 0 {
		return input
	}

	goForm := abi.ToCamelCase(input)
	return strings.ToLower(goForm[:1]) + goForm[1:]
}
